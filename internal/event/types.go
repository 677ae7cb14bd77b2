package event

import "context"

// Priority orders listeners on a topic. Lower values run first.
type Priority int

// Widgets that own a gesture listen at PriorityCritical so that they see
// pointer input before host-level listeners.
const (
	PriorityCritical Priority = 0
	PriorityHigh     Priority = 100
	PriorityNormal   Priority = 200
	PriorityLow      Priority = 300
)

func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	}
	return "low"
}

// Handler receives published events. The event is type-erased; use Payload
// to recover the typed payload.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, event any) error

func (f HandlerFunc) Handle(ctx context.Context, event any) error { return f(ctx, event) }

// FilterFunc reports whether a listener wants an event.
type FilterFunc func(event any) bool

// ErrorHandler observes failed deliveries.
type ErrorHandler func(err *DeliveryError)

// Stats is a snapshot of bus counters.
type Stats struct {
	Published uint64
	Delivered uint64
	Failed    uint64
	Panicked  uint64
	Listeners int
}
