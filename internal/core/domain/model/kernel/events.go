package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a command and
// dispatched by the unit of work after the transaction commits.
type DomainEvent interface {
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventRecorder is embedded by aggregates that raise domain events.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(e DomainEvent) {
	r.events = append(r.events, e)
}

// PullEvents returns the pending events and forgets them.
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// PendingEvents returns the events recorded so far without clearing them.
func (r *EventRecorder) PendingEvents() []DomainEvent {
	return append([]DomainEvent(nil), r.events...)
}

// EventSource is implemented by aggregates that embed EventRecorder.
type EventSource interface {
	PullEvents() []DomainEvent
}
