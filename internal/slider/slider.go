package slider

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/trackbar/internal/event"
	"github.com/dshills/trackbar/internal/input/pointer"
)

// Slider combines a Model with a Surface and the pointer drag gesture.
//
// All methods are safe for concurrent use. The change callback runs without
// the slider lock held and may call back into the slider; Surface methods
// run with it held and must not.
type Slider struct {
	mu sync.Mutex

	model   *Model
	surface Surface
	binder  Binder
	log     *zap.SugaredLogger
	target  string

	track   event.Subscription
	session *dragSession

	onChange    func(float64)
	moveToPoint bool
	visible     bool
	disposed    bool
}

// New creates a slider drawn on surface whose pointer listeners are bound
// through binder. It returns a *ConfigurationError if the initial range or
// step is invalid.
func New(surface Surface, binder Binder, opts ...Option) (*Slider, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	model := NewModel()
	if o.hasRange {
		if err := model.SetRange(o.min, o.max); err != nil {
			return nil, err
		}
	}
	if err := model.SetStep(o.step); err != nil {
		return nil, err
	}
	model.SetValue(model.Minimum())
	if o.hasValue {
		model.SetValue(o.value)
	}

	s := &Slider{
		model:    model,
		surface:  surface,
		binder:   binder,
		log:      o.logger.Named("slider"),
		target:   o.target,
		onChange: o.onChange,
		visible:  true,
	}

	track, err := binder.SubscribeFunc(pointer.DownTopic(s.target), s.handleDown,
		event.WithPriority(event.PriorityCritical), event.WithFilter(pointer.PrimaryOnly))
	if err != nil {
		return nil, err
	}
	s.track = track

	s.mu.Lock()
	s.placeThumbLocked()
	value := s.model.Value()
	s.mu.Unlock()

	s.notify(o.onChange, value)
	return s, nil
}

// Target returns the pointer region name the slider listens on.
func (s *Slider) Target() string {
	return s.target
}

// SetMinimum replaces the lower bound. The stored value is not re-clamped.
func (s *Slider) SetMinimum(min float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured(s.model.SetMinimum(min))
}

// SetMaximum replaces the upper bound. The stored value is not re-clamped.
func (s *Slider) SetMaximum(max float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured(s.model.SetMaximum(max))
}

// SetRange replaces both bounds. The stored value is not re-clamped.
func (s *Slider) SetRange(min, max float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured(s.model.SetRange(min, max))
}

// SetStep replaces the quantization step.
func (s *Slider) SetStep(step float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured(s.model.SetStep(step))
}

func (s *Slider) configured(err error) error {
	if err != nil {
		s.log.Warnw("Rejected slider configuration", "error", err)
		return err
	}
	s.placeThumbLocked()
	return nil
}

// Minimum returns the lower bound.
func (s *Slider) Minimum() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Minimum()
}

// Maximum returns the upper bound.
func (s *Slider) Maximum() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Maximum()
}

// Step returns the quantization step.
func (s *Slider) Step() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Step()
}

// SetValue clamps v into the range, stores it and moves the thumb.
// It does not invoke the change callback.
func (s *Slider) SetValue(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setValueLocked(v)
}

// Value returns the stored value.
func (s *Slider) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Value()
}

// PixelToValue converts a pointer x coordinate using the track's current
// geometry. It does not change the slider.
func (s *Slider) PixelToValue(clientX float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.PixelToValue(clientX, s.surface.TrackGeometry())
}

// SetMoveToPointEnabled stores the move-to-point flag. The flag is
// reported by MoveToPointEnabled and does not change drag behavior.
func (s *Slider) SetMoveToPointEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveToPoint = enabled
}

// MoveToPointEnabled returns the stored move-to-point flag.
func (s *Slider) MoveToPointEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveToPoint
}

// SetVisible shows or hides the track.
func (s *Slider) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = visible
	s.surface.SetTrackVisible(visible)
}

// Visible reports whether the track is shown.
func (s *Slider) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// OnChange replaces the change callback. nil removes it.
func (s *Slider) OnChange(fn func(float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Refresh re-measures the track and moves the thumb, for use after the
// surface has been laid out again.
func (s *Slider) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placeThumbLocked()
}

// State returns the current gesture state.
func (s *Slider) State() DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		return DragDragging
	}
	return DragIdle
}

// IsDragging returns true if a gesture is in progress.
func (s *Slider) IsDragging() bool {
	return s.State() == DragDragging
}

// Dispose releases the track listener and any in-progress gesture.
// Calling it more than once is safe.
func (s *Slider) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.disposed = true

	s.closeSessionLocked()
	s.unbind(s.track)
	s.track = nil
	s.onChange = nil
	s.log.Debug("Slider disposed")
}

func (s *Slider) handleDown(_ context.Context, ev any) error {
	p, ok := pointer.FromEvent(ev)
	if !ok {
		return nil
	}

	s.mu.Lock()
	if s.disposed || s.session != nil {
		s.mu.Unlock()
		return nil
	}

	value := s.updatePositionLocked(float64(p.Position.X))
	if err := s.openSessionLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	cb := s.onChange
	s.mu.Unlock()

	s.notify(cb, value)
	return nil
}

func (s *Slider) handleMove(_ context.Context, ev any) error {
	p, ok := pointer.FromEvent(ev)
	if !ok {
		return nil
	}

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil
	}
	value := s.updatePositionLocked(float64(p.Position.X))
	cb := s.onChange
	s.mu.Unlock()

	s.notify(cb, value)
	return nil
}

func (s *Slider) handleUp(_ context.Context, _ any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeSessionLocked()
	return nil
}

func (s *Slider) updatePositionLocked(clientX float64) float64 {
	v := s.model.PixelToValue(clientX, s.surface.TrackGeometry())
	s.setValueLocked(v)
	return s.model.Value()
}

func (s *Slider) setValueLocked(v float64) {
	s.model.SetValue(v)
	s.placeThumbLocked()
}

func (s *Slider) placeThumbLocked() {
	offset, ok := s.model.ThumbOffset(s.surface.TrackGeometry(), s.surface.ThumbWidth())
	if !ok {
		return
	}
	s.surface.SetThumbOffset(offset)
}

func (s *Slider) notify(cb func(float64), value float64) {
	if cb != nil {
		cb(value)
	}
}
