package slider

import (
	"github.com/dshills/trackbar/internal/event"
	"github.com/dshills/trackbar/internal/event/topic"
)

// Surface is the visual side of a slider.
type Surface interface {
	// TrackGeometry measures the track. It is called before every position
	// computation because the track may move or resize between calls.
	TrackGeometry() Geometry

	// ThumbWidth returns the thumb width in pixels.
	ThumbWidth() float64

	// SetThumbOffset moves the thumb's left edge to px, relative to the
	// track's left edge.
	SetThumbOffset(px float64)

	// SetTrackVisible shows or hides the track.
	SetTrackVisible(visible bool)
}

// Binder subscribes and unsubscribes pointer listeners. event.Bus
// satisfies it.
type Binder interface {
	SubscribeFunc(topicPattern topic.Topic, fn event.HandlerFunc, opts ...event.SubscriptionOption) (event.Subscription, error)
	Unsubscribe(sub event.Subscription) error
}
