// Package slider implements a horizontal slider: the mapping between pointer
// positions on a track and a quantized, clamped value, and the drag gesture
// that drives it.
//
// # Value Model
//
// Model holds the range, step and current value. Bounds and step are
// validated when assigned; an invalid assignment returns a
// *ConfigurationError and leaves the model unchanged.
//
// Pointer positions are converted with PixelToValue, which quantizes with
// one of two strategies chosen by step size:
//
//   - IntegerStep for steps greater than one
//   - FractionalStepStable for steps of one or less, which divides by a
//     rounded notch count instead of multiplying the step
//
// # Drag Controller
//
// A Slider binds a pointer-down listener on its track. A press opens a drag
// session holding window-scoped move and up subscriptions; release closes
// it. At most one session exists at a time:
//
//	Idle --down--> Dragging --move--> Dragging --up--> Idle
//
// Dispose closes any open session and the track binding.
//
// # Surface
//
// Drawing is delegated to a Surface, which reports track geometry and
// accepts the thumb offset. Geometry is re-read on every computation.
package slider
