package order

import (
	"time"

	"printfarm/internal/core/domain/model/kernel"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
)

type CreatedEvent struct {
	OrderID kernel.UUID
	Code    string
	Items   []ItemSnapshot
	Actor   string
	At      time.Time
}

// ItemSnapshot is the event-friendly form of a line item.
type ItemSnapshot struct {
	ProductID kernel.UUID
	Quantity  int
}

func (e CreatedEvent) EventType() string { return EventOrderCreated }
func (e CreatedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CreatedEvent) OccurredAt() time.Time { return e.At }

type StatusChangedEvent struct {
	OrderID kernel.UUID
	Code    string
	From    Status
	To      Status
	Actor   string
	At      time.Time
}

func (e StatusChangedEvent) EventType() string { return EventOrderStatusChanged }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time { return e.At }

type CancelledEvent struct {
	OrderID kernel.UUID
	Code    string
	From    Status
	Actor   string
	At      time.Time
}

func (e CancelledEvent) EventType() string { return EventOrderCancelled }
func (e CancelledEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CancelledEvent) OccurredAt() time.Time { return e.At }
