package slider

import "math"

// Default model settings.
const (
	DefaultMinimum = 0
	DefaultMaximum = 100
	DefaultStep    = 1
)

// Geometry is the measured position and size of the track, in pixels.
type Geometry struct {
	Left  float64
	Width float64
}

// Measurable reports whether positions can be mapped onto the track.
func (g Geometry) Measurable() bool {
	return g.Width > 0 && !math.IsInf(g.Width, 0) && !math.IsNaN(g.Left) && !math.IsInf(g.Left, 0)
}

// Model is the slider's range, step and value. It holds no geometry;
// callers pass the current measurement to each conversion.
//
// Model is not safe for concurrent use.
type Model struct {
	min   float64
	max   float64
	step  float64
	value float64
}

// NewModel returns a model with the default range [0, 100], step 1 and
// value 0.
func NewModel() *Model {
	return &Model{
		min:   DefaultMinimum,
		max:   DefaultMaximum,
		step:  DefaultStep,
		value: DefaultMinimum,
	}
}

// Minimum returns the lower bound.
func (m *Model) Minimum() float64 { return m.min }

// Maximum returns the upper bound.
func (m *Model) Maximum() float64 { return m.max }

// Step returns the quantization step.
func (m *Model) Step() float64 { return m.step }

// Value returns the stored value as it was stored.
func (m *Model) Value() float64 { return m.value }

// SetMinimum replaces the lower bound. The current value is not re-clamped.
func (m *Model) SetMinimum(min float64) error {
	if err := checkBound("minimum", min); err != nil {
		return err
	}
	if min > m.max {
		return &ConfigurationError{Field: "minimum", Value: min, Reason: "greater than maximum"}
	}
	m.min = min
	return nil
}

// SetMaximum replaces the upper bound. The current value is not re-clamped.
func (m *Model) SetMaximum(max float64) error {
	if err := checkBound("maximum", max); err != nil {
		return err
	}
	if max < m.min {
		return &ConfigurationError{Field: "maximum", Value: max, Reason: "less than minimum"}
	}
	m.max = max
	return nil
}

// SetRange replaces both bounds at once.
func (m *Model) SetRange(min, max float64) error {
	if err := checkBound("minimum", min); err != nil {
		return err
	}
	if err := checkBound("maximum", max); err != nil {
		return err
	}
	if min > max {
		return &ConfigurationError{Field: "minimum", Value: min, Reason: "greater than maximum"}
	}
	m.min, m.max = min, max
	return nil
}

// SetStep replaces the quantization step. It must be positive and finite.
func (m *Model) SetStep(step float64) error {
	if math.IsNaN(step) || math.IsInf(step, 0) {
		return &ConfigurationError{Field: "step", Value: step, Reason: "not a finite number"}
	}
	if step <= 0 {
		return &ConfigurationError{Field: "step", Value: step, Reason: "must be greater than zero"}
	}
	if !StepResolvable(step) {
		return &ConfigurationError{Field: "step", Value: step, Reason: "too small to quantize"}
	}
	m.step = step
	return nil
}

// SetValue clamps v into the range, stores it and returns the stored value.
// NaN leaves the stored value unchanged.
func (m *Model) SetValue(v float64) float64 {
	if math.IsNaN(v) {
		return m.value
	}
	m.value = clamp(v, m.min, m.max)
	return m.value
}

// PixelToValue converts a pointer x coordinate to a quantized, clamped
// value. It does not modify the model. An unmeasurable track yields the
// current value.
func (m *Model) PixelToValue(clientX float64, g Geometry) float64 {
	if !g.Measurable() || math.IsNaN(clientX) {
		return m.value
	}

	localX := clientX - g.Left
	unitsPerPixel := (m.max - m.min) / g.Width
	raw := localX * unitsPerPixel

	return clamp(Quantize(raw, m.min, m.step), m.min, m.max)
}

// ThumbOffset returns the thumb's left offset for the stored value: the
// value's position along the track minus half the thumb width. The second
// result is false when the track cannot be measured.
func (m *Model) ThumbOffset(g Geometry, thumbWidth float64) (float64, bool) {
	if !g.Measurable() {
		return 0, false
	}

	span := m.max - m.min
	if span == 0 {
		return -thumbWidth / 2, true
	}

	v := clamp(m.value, m.min, m.max)
	pixelsPerUnit := g.Width / span
	return (v-m.min)*pixelsPerUnit - thumbWidth/2, true
}

func checkBound(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigurationError{Field: field, Value: v, Reason: "not a finite number"}
	}
	return nil
}
