// Package app wires the slider, its terminal view and the pointer router
// into a runnable program and manages its lifecycle.
package app

import (
	"context"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/trackbar/internal/config"
	"github.com/dshills/trackbar/internal/event"
	"github.com/dshills/trackbar/internal/hook"
	"github.com/dshills/trackbar/internal/input/pointer"
	"github.com/dshills/trackbar/internal/logging"
	"github.com/dshills/trackbar/internal/renderer/backend"
	"github.com/dshills/trackbar/internal/renderer/core"
	"github.com/dshills/trackbar/internal/renderer/trackview"
	"github.com/dshills/trackbar/internal/slider"
)

// trackTarget is the pointer region of the slider track.
const trackTarget = slider.DefaultTrackTarget

// lookupEnv resolves TRACKBAR_* overrides.
var lookupEnv = os.LookupEnv

// Application owns every component of a running trackbar.
type Application struct {
	mu sync.Mutex

	opts   Options
	root   *zap.SugaredLogger
	log    *zap.SugaredLogger
	loader *config.Loader
	config *config.Config

	bus     event.Bus
	router  *pointer.Router
	view    *trackview.View
	slider  *slider.Slider
	hook    *hook.Hook
	watcher *config.Watcher
	backend backend.Backend

	running  atomic.Bool
	done     chan struct{}
	redraw   chan struct{}
	stopOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Watch reloads the configuration file when it changes.
	Watch bool

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogFile overrides the configured log file when set.
	LogFile string

	// Logger replaces the logger built from the configuration.
	Logger *zap.SugaredLogger
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		done:   make(chan struct{}),
		redraw: make(chan struct{}, 1),
	}

	if err := app.bootstrap(); err != nil {
		app.teardown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	var err error

	// 1. Config
	app.loader = config.NewLoader(app.opts.ConfigPath, config.WithEnv(lookupEnv))
	app.config, err = app.loader.Load()
	if err != nil {
		return startupFailed("config", err)
	}
	if app.opts.LogLevel != "" {
		app.config.Log.Level = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		app.config.Log.File = app.opts.LogFile
	}

	// 2. Logger
	root := app.opts.Logger
	if root == nil {
		root, err = logging.New(app.config.Log)
		if err != nil {
			return startupFailed("logger", err)
		}
	}
	app.root = root
	app.log = root.Named("app")
	app.log.Infow("Starting", "config", app.loader.Path())

	// 3. Event bus and pointer router
	app.bus = event.NewBus(event.WithLogger(root.Named("event")))
	app.router = pointer.NewRouter(app.bus)

	// 4. Track view
	track := app.config.Track
	app.view = trackview.New(track.X, track.Y, track.Width, themeFrom(app.config.Theme, app.log))
	if err := app.router.Register(trackTarget, hitRegion(app.view)); err != nil {
		return startupFailed("pointer router", err)
	}

	// 5. Optional hook, before the slider so the initial value reaches it
	if script := app.config.Hook.Script; script != "" {
		app.hook, err = hook.Load(script, hook.WithLogger(root.Named("hook")))
		if err != nil {
			return startupFailed("hook", err)
		}
	}

	// 6. Slider
	s := app.config.Slider
	app.slider, err = slider.New(app.view, app.bus,
		slider.WithLogger(root),
		slider.WithTrackTarget(trackTarget),
		slider.WithRange(s.Minimum, s.Maximum),
		slider.WithStep(s.Step),
		slider.WithValue(s.InitialValue()),
		slider.WithOnChange(app.valueChanged),
	)
	if err != nil {
		return startupFailed("slider", err)
	}
	app.slider.SetMoveToPointEnabled(s.MoveToPoint)

	return nil
}

// valueChanged is the slider's change callback.
func (app *Application) valueChanged(v float64) {
	app.view.SetLabel(FormatValue(v))

	if app.hook != nil {
		if err := app.hook.OnChange(v); err != nil {
			app.log.Warnw("Hook failed", "value", v, "error", err)
		}
	}
	app.requestRedraw()
}

// FormatValue renders a slider value for the label.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ApplyConfig re-applies a reloaded configuration to the running
// components. The log and hook settings only take effect on restart.
func (app *Application) ApplyConfig(cfg *config.Config) {
	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	track := cfg.Track
	app.view.Move(track.X, track.Y, track.Width)
	app.view.SetTheme(themeFrom(cfg.Theme, app.log))
	if err := app.router.Register(trackTarget, hitRegion(app.view)); err != nil {
		app.log.Warnw("Failed to move track region", "error", err)
	}

	s := cfg.Slider
	if err := app.slider.SetRange(s.Minimum, s.Maximum); err != nil {
		app.log.Warnw("Ignoring reloaded range", "error", err)
	}
	if err := app.slider.SetStep(s.Step); err != nil {
		app.log.Warnw("Ignoring reloaded step", "error", err)
	}
	app.slider.SetMoveToPointEnabled(s.MoveToPoint)
	app.slider.SetValue(s.InitialValue())

	app.view.SetLabel(FormatValue(app.slider.Value()))
	app.requestRedraw()
}

// requestRedraw asks the event loop to draw a frame.
func (app *Application) requestRedraw() {
	select {
	case app.redraw <- struct{}{}:
	default:
	}
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run starts the application main loop.
// Blocks until shutdown is requested. A quit key returns ErrQuit.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return startupFailed("backend", err)
	}
	defer app.backend.Shutdown()

	if app.opts.Watch {
		w, err := config.NewWatcher(app.loader, app.ApplyConfig,
			config.WithWatcherLogger(app.root.Named("config")))
		if err != nil {
			app.log.Warnw("Config live reload disabled", "error", err)
		} else {
			app.mu.Lock()
			app.watcher = w
			app.mu.Unlock()
		}
	}

	app.slider.Refresh()
	app.draw()

	return app.eventLoop(context.Background())
}

// eventLoop is the main application loop.
func (app *Application) eventLoop(ctx context.Context) error {
	events := app.startInputPolling()

	for {
		select {
		case <-app.done:
			return nil

		case <-app.redraw:
			app.draw()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ctx, ev); err != nil {
				return err
			}
			app.draw()
		}
	}
}

func (app *Application) draw() {
	app.view.Draw(app.backend)
	app.backend.Show()
}

// Shutdown stops the event loop and releases every component. It is safe
// to call more than once and from any goroutine.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
		app.teardown()
	})
}

// teardown releases components in reverse initialization order.
func (app *Application) teardown() {
	app.mu.Lock()
	w := app.watcher
	app.watcher = nil
	app.mu.Unlock()

	if w != nil {
		if err := w.Close(); err != nil {
			app.log.Warnw("Failed to stop config watcher", "error", err)
		}
	}
	if app.slider != nil {
		app.slider.Dispose()
	}
	if app.router != nil {
		app.router.Unregister(trackTarget)
	}
	if app.hook != nil {
		app.hook.Close()
	}
	if app.log != nil {
		if app.bus != nil {
			st := app.bus.Stats()
			app.log.Debugw("Event bus totals", "published", st.Published, "failed", st.Failed, "panicked", st.Panicked)
		}
		app.log.Info("Stopped")
		_ = app.log.Sync()
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Slider returns the slider.
func (app *Application) Slider() *slider.Slider {
	return app.slider
}

// View returns the track view.
func (app *Application) View() *trackview.View {
	return app.view
}

// EventBus returns the event bus.
func (app *Application) EventBus() event.Bus {
	return app.bus
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.config
}

// hitRegion is the pointer region covering the drawn track.
func hitRegion(v *trackview.View) pointer.Rect {
	b := v.Bounds()
	return pointer.Rect{X: b.Left, Y: b.Top, Width: b.Right - b.Left, Height: b.Bottom - b.Top}
}

// themeFrom overlays configured colors on the default theme.
func themeFrom(c config.ThemeConfig, log *zap.SugaredLogger) trackview.Theme {
	theme := trackview.DefaultTheme()
	for _, slot := range []struct {
		hex string
		dst *core.Color
	}{
		{c.FillStart, &theme.FillStart},
		{c.FillEnd, &theme.FillEnd},
		{c.Empty, &theme.Empty},
		{c.Thumb, &theme.Thumb},
	} {
		if slot.hex == "" {
			continue
		}
		color, err := core.ColorFromHex(slot.hex)
		if err != nil {
			log.Warnw("Ignoring theme color", "error", err)
			continue
		}
		*slot.dst = color
	}
	return theme
}
