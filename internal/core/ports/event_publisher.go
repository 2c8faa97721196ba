package ports

import (
	"context"

	"printfarm/internal/core/domain/model/kernel"
)

// EventPublisher receives domain events after the unit of work that raised
// them has committed. Delivery is at most once.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
