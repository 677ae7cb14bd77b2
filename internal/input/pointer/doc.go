// Package pointer turns raw terminal mouse reports into pointer gestures.
//
// Terminals report the full button state on every mouse event rather than
// discrete press and release notifications. The Router remembers the last
// state and derives transitions from it:
//
//   - no button -> button held: Down, published only to the region under the pointer
//   - button held -> button held at a new position: Move, published to the window scope
//   - button held -> no button: Up, published to the window scope
//
// Region presses go to "pointer.<target>.down". Moves and releases always go
// to "pointer.window.move" and "pointer.window.up" so that a widget that
// started a gesture keeps receiving it after the pointer leaves its bounds.
//
//	router := pointer.NewRouter(bus)
//	router.Register("volume", pointer.Rect{X: 2, Y: 2, Width: 40, Height: 1})
//	router.Feed(ctx, x, y, pointer.ButtonLeft)
package pointer
