package event

import (
	"errors"
	"fmt"

	"github.com/dshills/trackbar/internal/event/topic"
)

var (
	ErrInvalidEvent         = errors.New("event: value carries no topic")
	ErrInvalidTopic         = errors.New("event: invalid topic")
	ErrNilHandler           = errors.New("event: nil handler")
	ErrInvalidSubscription  = errors.New("event: nil subscription")
	ErrSubscriptionNotFound = errors.New("event: subscription not registered")

	// ErrHandlerPanic is wrapped by the DeliveryError reported for a
	// handler that panicked.
	ErrHandlerPanic = errors.New("event: handler panicked")
)

// DeliveryError describes one handler that failed while an event was being
// published. Publish itself never returns it; it goes to the bus's error
// handler and log.
type DeliveryError struct {
	ListenerID string
	Topic      topic.Topic
	Err        error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s to listener %s: %v", e.Topic, e.ListenerID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Panicked reports whether the handler panicked rather than returning an error.
func (e *DeliveryError) Panicked() bool { return errors.Is(e.Err, ErrHandlerPanic) }

func panicError(recovered any) error {
	return fmt.Errorf("%w: %v", ErrHandlerPanic, recovered)
}
