package event

import "go.uber.org/zap"

// BusOption configures a Bus.
type BusOption func(*bus)

// WithLogger sets the logger failed deliveries are written to.
func WithLogger(log *zap.SugaredLogger) BusOption {
	return func(b *bus) {
		if log != nil {
			b.log = log
		}
	}
}

// WithErrorHandler registers a callback for every failed delivery,
// including recovered panics.
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(b *bus) { b.onError = h }
}
