package app

import (
	"context"

	"github.com/dshills/trackbar/internal/input/pointer"
	"github.com/dshills/trackbar/internal/renderer/backend"
)

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ctx context.Context, ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ctx, ev)
	default:
		return nil
	}
}

// handleResize re-places the thumb; the track may have been clipped.
func (app *Application) handleResize(ev backend.Event) error {
	app.log.Debugw("Terminal resized", "width", ev.Width, "height", ev.Height)
	app.slider.Refresh()
	return nil
}

// handleKeyEvent quits on q, Escape or Ctrl-C.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyRune:
		if ev.Rune == 'q' || ev.Rune == 'Q' {
			return ErrQuit
		}
	}
	return nil
}

// handleMouseEvent feeds a mouse report to the pointer router. Wheel
// reports are ignored so they do not read as a release mid-drag.
func (app *Application) handleMouseEvent(ctx context.Context, ev backend.Event) error {
	var held pointer.Button
	switch ev.Button {
	case backend.MouseLeft:
		held = pointer.ButtonLeft
	case backend.MouseMiddle:
		held = pointer.ButtonMiddle
	case backend.MouseRight:
		held = pointer.ButtonRight
	case backend.MouseWheelUp, backend.MouseWheelDown:
		return nil
	default:
		held = pointer.ButtonNone
	}

	if err := app.router.Feed(ctx, ev.X, ev.Y, held); err != nil {
		app.log.Warnw("Dropped pointer event", "x", ev.X, "y", ev.Y, "error", err)
	}
	return nil
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel.
//
// PollEvent is blocking, so this goroutine may not exit immediately on
// shutdown. Run shuts the backend down on return, which unblocks it.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for app.running.Load() {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventInterrupt || !app.running.Load() {
				return
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}
