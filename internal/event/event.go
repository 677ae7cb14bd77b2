package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/trackbar/internal/event/topic"
)

// Event is the envelope published on the bus.
type Event[T any] struct {
	Type     topic.Topic
	Payload  T
	Metadata Metadata
}

// Metadata is stamped on every event by NewEvent.
type Metadata struct {
	ID        string
	Timestamp time.Time
	// Source names the publisher, e.g. "pointer".
	Source string
}

// TopicProvider is what Publish needs from an event value.
type TopicProvider interface {
	EventTopic() topic.Topic
}

var timeNow = time.Now

func newID() string { return uuid.NewString() }

// NewEvent wraps payload for publication on t.
func NewEvent[T any](t topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:     t,
		Payload:  payload,
		Metadata: Metadata{ID: newID(), Timestamp: timeNow(), Source: source},
	}
}

func (e Event[T]) EventTopic() topic.Topic { return e.Type }
func (e Event[T]) EventMetadata() Metadata { return e.Metadata }

// Payload recovers a T from an Event[T] or *Event[T] received by a handler.
func Payload[T any](ev any) (payload T, ok bool) {
	switch e := ev.(type) {
	case Event[T]:
		return e.Payload, true
	case *Event[T]:
		if e != nil {
			return e.Payload, true
		}
	}
	return payload, false
}
