package pointer

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/trackbar/internal/event"
	"github.com/dshills/trackbar/internal/event/topic"
)

// Publisher is the part of the event bus the router needs.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

type region struct {
	target string
	rect   Rect
}

// Router derives pointer gestures from terminal mouse reports and
// publishes them. It is safe for concurrent use.
type Router struct {
	mu      sync.Mutex
	pub     Publisher
	regions []region

	pressed Button
	last    Position

	now func() time.Time
}

// NewRouter creates a router that publishes to pub.
func NewRouter(pub Publisher) *Router {
	return &Router{
		pub: pub,
		now: time.Now,
	}
}

// Register adds or replaces a hit-test region. Later registrations are
// hit-tested first.
func (r *Router) Register(target string, rect Rect) error {
	if !topic.Topic(target).IsValid() || target == WindowTarget {
		return event.ErrInvalidTopic
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(target)
	r.regions = append(r.regions, region{target: target, rect: rect})
	return nil
}

// Unregister removes a region. Unknown targets are ignored.
func (r *Router) Unregister(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(target)
}

func (r *Router) removeLocked(target string) {
	for i, reg := range r.regions {
		if reg.target == target {
			r.regions = append(r.regions[:i], r.regions[i+1:]...)
			return
		}
	}
}

// Pressed returns the button currently held, if any.
func (r *Router) Pressed() Button {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pressed
}

// Feed processes one mouse report: the pointer position and the button
// held at that moment (ButtonNone when all buttons are up).
func (r *Router) Feed(ctx context.Context, x, y int, held Button) error {
	pos := Position{X: x, Y: y}

	r.mu.Lock()
	prev := r.pressed
	moved := !pos.Equal(r.last)
	r.last = pos

	var (
		kind   Kind
		target string
		button Button
	)

	switch {
	case prev == ButtonNone && held != ButtonNone:
		r.pressed = held
		kind, button = Down, held
		target = r.hitLocked(pos)
	case prev != ButtonNone && held == ButtonNone:
		r.pressed = ButtonNone
		kind, button, target = Up, prev, WindowTarget
	case prev != ButtonNone && moved:
		kind, button, target = Move, prev, WindowTarget
	}
	now := r.now()
	r.mu.Unlock()

	// Presses outside every region and hover moves are not published.
	if kind == KindNone || target == "" {
		return nil
	}

	ev := Event{
		Position:  pos,
		Button:    button,
		Kind:      kind,
		Target:    target,
		Timestamp: now,
	}
	return r.pub.Publish(ctx, event.NewEvent(topicFor(ev), ev, source))
}

// Reset forgets the held button without publishing anything.
func (r *Router) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pressed = ButtonNone
}

func (r *Router) hitLocked(pos Position) string {
	for i := len(r.regions) - 1; i >= 0; i-- {
		if r.regions[i].rect.Contains(pos) {
			return r.regions[i].target
		}
	}
	return ""
}

func topicFor(ev Event) topic.Topic {
	switch ev.Kind {
	case Down:
		return DownTopic(ev.Target)
	case Move:
		return MoveTopic()
	default:
		return UpTopic()
	}
}
