package slider

import "math"

// Strategy selects how a raw value is snapped to the step grid.
type Strategy int

const (
	// IntegerStep rounds the number of whole steps from the minimum.
	IntegerStep Strategy = iota

	// FractionalStepStable divides by a notch count rounded to three
	// decimals rather than multiplying a small step by a large count.
	FractionalStepStable
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case IntegerStep:
		return "integerStep"
	case FractionalStepStable:
		return "fractionalStepStable"
	default:
		return "unknown"
	}
}

// StrategyFor returns the strategy used for step.
func StrategyFor(step float64) Strategy {
	if step > 1 {
		return IntegerStep
	}
	return FractionalStepStable
}

// Quantize snaps raw to the grid anchored at min. step must be positive.
// The result is not clamped.
func (s Strategy) Quantize(raw, min, step float64) float64 {
	switch s {
	case IntegerStep:
		return roundHalfUp((raw-min)/step)*step + min
	default:
		notches := roundHalfUp(1000/step) / 1000
		return roundHalfUp(((raw-min)/step)/notches) + min
	}
}

// Quantize snaps raw using the strategy chosen for step.
func Quantize(raw, min, step float64) float64 {
	return StrategyFor(step).Quantize(raw, min, step)
}

// roundHalfUp rounds to the nearest integer with halves going toward
// positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// StepResolvable reports whether the notch count derived from step is
// finite, so that quantizing with it cannot produce NaN.
func StepResolvable(step float64) bool {
	return !math.IsInf(1000/step, 0)
}

// clamp maps NaN to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
