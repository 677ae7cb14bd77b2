package slider

import "go.uber.org/zap"

// DefaultTrackTarget is the pointer region name used when none is given.
const DefaultTrackTarget = "slider"

type options struct {
	logger   *zap.SugaredLogger
	target   string
	hasRange bool
	min, max float64
	step     float64
	hasValue bool
	value    float64
	onChange func(float64)
}

// Option configures a Slider.
type Option func(*options)

// WithLogger sets the logger. The slider logs under the name "slider".
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTrackTarget sets the pointer region whose presses start a drag.
func WithTrackTarget(target string) Option {
	return func(o *options) {
		o.target = target
	}
}

// WithRange sets the initial bounds.
func WithRange(min, max float64) Option {
	return func(o *options) {
		o.hasRange = true
		o.min, o.max = min, max
	}
}

// WithStep sets the initial step.
func WithStep(step float64) Option {
	return func(o *options) {
		o.step = step
	}
}

// WithValue sets the initial value. It is clamped into the range.
func WithValue(v float64) Option {
	return func(o *options) {
		o.hasValue = true
		o.value = v
	}
}

// WithOnChange registers the change callback. It is invoked once with the
// initial value when the slider is created.
func WithOnChange(fn func(float64)) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

func defaultOptions() options {
	return options{
		logger: zap.NewNop().Sugar(),
		target: DefaultTrackTarget,
		step:   DefaultStep,
	}
}
