// Package event provides the synchronous publish/subscribe bus that carries
// pointer input between the terminal host and its widgets.
//
// Subscribers register a handler for a topic pattern and receive a
// Subscription handle. The handle is the only thing needed to stop delivery
// later, which lets a widget bind transient listeners for the duration of a
// gesture and release them when the gesture ends.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	sub, err := bus.SubscribeFunc(topic.Topic("pointer.window.move"),
//	    func(ctx context.Context, ev any) error {
//	        // handle move
//	        return nil
//	    })
//
//	bus.Publish(ctx, event.NewEvent(topic.Topic("pointer.window.move"), payload, "pointer"))
//
//	_ = bus.Unsubscribe(sub)
//
// # Delivery
//
// Publish runs every matching handler in the caller's goroutine, ordered by
// priority and then by subscription order. A subscription cancelled by an
// earlier handler in the same dispatch is skipped. Handler errors and
// recovered panics are logged and passed to the ErrorHandler, if any.
//
// # Thread Safety
//
// The Bus is safe for concurrent use. Subscriptions may be added or removed
// from inside a handler.
package event
