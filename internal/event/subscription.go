package event

import (
	"sync/atomic"

	"github.com/dshills/trackbar/internal/event/topic"
)

// Subscription is a listener handle. Handing it back to Unsubscribe is the
// only way to stop delivery.
type Subscription interface {
	ID() string
	Topic() topic.Topic

	// Active reports whether the listener still receives events.
	Active() bool

	// Cancel stops delivery without removing the listener from the bus.
	Cancel()
}

// SubscriptionOption tunes a listener at subscribe time.
type SubscriptionOption func(*listener)

// WithPriority orders the listener among others on the same topic.
// Lower priorities run first.
func WithPriority(p Priority) SubscriptionOption {
	return func(l *listener) { l.priority = p }
}

// WithFilter drops events the predicate rejects before the handler runs.
func WithFilter(accept FilterFunc) SubscriptionOption {
	return func(l *listener) { l.accept = accept }
}

// listener is the bus-side record behind a Subscription.
type listener struct {
	id       string
	pattern  topic.Topic
	handler  Handler
	priority Priority
	accept   FilterFunc

	// seq is assigned by the registry and breaks priority ties.
	seq       uint64
	cancelled atomic.Bool
}

func newListener(id string, pattern topic.Topic, h Handler, opts ...SubscriptionOption) *listener {
	l := &listener{id: id, pattern: pattern, handler: h, priority: PriorityNormal}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *listener) ID() string         { return l.id }
func (l *listener) Topic() topic.Topic { return l.pattern }
func (l *listener) Active() bool       { return !l.cancelled.Load() }
func (l *listener) Cancel()            { l.cancelled.Store(true) }

// wants is evaluated per delivery, so a listener cancelled by an earlier
// handler of the same publish is skipped.
func (l *listener) wants(event any) bool {
	if l.cancelled.Load() {
		return false
	}
	return l.accept == nil || l.accept(event)
}
