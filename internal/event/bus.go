package event

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/trackbar/internal/event/topic"
)

// Bus routes events to listeners by topic pattern.
type Bus interface {
	// Publish runs every matching handler in the caller's goroutine and
	// returns once they have all run.
	Publish(ctx context.Context, event any) error

	Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)
	SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)

	// Unsubscribe releases a listener. Releasing one twice returns
	// ErrSubscriptionNotFound.
	Unsubscribe(sub Subscription) error

	Stats() Stats
}

type bus struct {
	listeners *registry
	log       *zap.SugaredLogger
	onError   ErrorHandler

	published atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
	panicked  atomic.Uint64
}

// NewBus returns an empty synchronous bus.
func NewBus(opts ...BusOption) Bus {
	b := &bus{
		listeners: newRegistry(),
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish returns ErrInvalidEvent for values without a topic and the
// context's error if it is cancelled between handlers. Handler failures
// are reported, not returned.
func (b *bus) Publish(ctx context.Context, event any) error {
	tp, ok := event.(TopicProvider)
	if !ok || tp.EventTopic() == "" {
		return ErrInvalidEvent
	}

	targets := b.listeners.matching(tp.EventTopic())
	if len(targets) == 0 {
		return nil
	}
	b.published.Add(1)

	for _, l := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.wants(event) {
			b.deliver(ctx, event, l)
		}
	}
	return nil
}

func (b *bus) deliver(ctx context.Context, event any, l *listener) {
	b.delivered.Add(1)
	defer func() {
		if r := recover(); r != nil {
			b.panicked.Add(1)
			b.fail(l, panicError(r))
		}
	}()

	if err := l.handler.Handle(ctx, event); err != nil {
		b.failed.Add(1)
		b.fail(l, err)
	}
}

func (b *bus) fail(l *listener, err error) {
	derr := &DeliveryError{ListenerID: l.id, Topic: l.pattern, Err: err}
	if derr.Panicked() {
		b.log.Errorw("Listener panicked", "topic", l.pattern, "listener", l.id, "error", err)
	} else {
		b.log.Warnw("Listener failed", "topic", l.pattern, "listener", l.id, "error", err)
	}
	if b.onError != nil {
		b.onError(derr)
	}
}

// Subscribe is safe to call from inside a handler; the new listener sees
// the next publish, not the current one.
func (b *bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	l := newListener(newID(), pattern, handler, opts...)
	b.listeners.add(l)
	return l, nil
}

func (b *bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()
	if !b.listeners.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (b *bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Failed:    b.failed.Load(),
		Panicked:  b.panicked.Load(),
		Listeners: b.listeners.count(""),
	}
}
