package slider

import (
	"errors"

	"github.com/dshills/trackbar/internal/event"
	"github.com/dshills/trackbar/internal/input/pointer"
)

// DragState is the gesture state of a slider.
type DragState int

const (
	// DragIdle means no gesture is in progress and no window listeners exist.
	DragIdle DragState = iota

	// DragDragging means a gesture is in progress.
	DragDragging
)

// String returns the state name.
func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// dragSession owns the window listeners of one gesture.
type dragSession struct {
	move event.Subscription
	up   event.Subscription
}

// openSessionLocked subscribes the window move and up listeners. If either
// subscription fails nothing stays bound.
func (s *Slider) openSessionLocked() error {
	move, err := s.binder.SubscribeFunc(pointer.MoveTopic(), s.handleMove, event.WithPriority(event.PriorityCritical))
	if err != nil {
		return err
	}
	up, err := s.binder.SubscribeFunc(pointer.UpTopic(), s.handleUp, event.WithPriority(event.PriorityCritical))
	if err != nil {
		s.unbind(move)
		return err
	}

	s.session = &dragSession{move: move, up: up}
	s.log.Debugw("Drag started", "value", s.model.Value())
	return nil
}

// closeSessionLocked releases the session's listeners. It is a no-op when
// no session is open.
func (s *Slider) closeSessionLocked() {
	if s.session == nil {
		return
	}
	sess := s.session
	s.session = nil

	s.unbind(sess.move)
	s.unbind(sess.up)
	s.log.Debugw("Drag ended", "value", s.model.Value())
}

// unbind treats an already removed subscription as released.
func (s *Slider) unbind(sub event.Subscription) {
	if sub == nil {
		return
	}
	if err := s.binder.Unsubscribe(sub); err != nil && !errors.Is(err, event.ErrSubscriptionNotFound) {
		s.log.Warnw("Failed to release pointer listener", "topic", sub.Topic(), "error", err)
	}
}
