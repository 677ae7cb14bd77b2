package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dshills/trackbar/internal/config"
	"github.com/dshills/trackbar/internal/renderer/backend"
	"github.com/dshills/trackbar/internal/slider"
)

func init() {
	lookupEnv = func(string) (string, bool) { return "", false }
}

func newTestApp(t *testing.T, configText string) *Application {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trackbar.toml")
	if configText != "" {
		require.NoError(t, os.WriteFile(path, []byte(configText), 0o644))
	}

	app, err := New(Options{ConfigPath: path, Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)
	return app
}

func mouse(x, y int, b backend.MouseButton) backend.Event {
	return backend.Event{Type: backend.EventMouse, X: x, Y: y, Button: b}
}

func key(k backend.Key, r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k, Rune: r}
}

func TestNew_Defaults(t *testing.T) {
	app := newTestApp(t, "")

	s := app.Slider()
	assert.Equal(t, 0.0, s.Minimum())
	assert.Equal(t, 100.0, s.Maximum())
	assert.Equal(t, 0.0, s.Value())
	assert.Equal(t, slider.DragIdle, s.State())
	assert.False(t, app.IsRunning())
}

func TestNew_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackbar.toml")
	require.NoError(t, os.WriteFile(path, []byte("[slider]\nstep = -1\n"), 0o644))

	_, err := New(Options{ConfigPath: path, Logger: zap.NewNop().Sugar()})
	require.Error(t, err)

	var startErr *StartupError
	require.True(t, errors.As(err, &startErr))
	assert.Equal(t, "config", startErr.Stage)
	assert.ErrorIs(t, err, config.ErrValidationFailed)
}

func TestNew_MissingHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackbar.toml")
	require.NoError(t, os.WriteFile(path, []byte("[hook]\nscript = \"/nonexistent/hook.lua\"\n"), 0o644))

	_, err := New(Options{ConfigPath: path, Logger: zap.NewNop().Sugar()})

	var startErr *StartupError
	require.True(t, errors.As(err, &startErr))
	assert.Equal(t, "hook", startErr.Stage)
}

func TestMouseDrag(t *testing.T) {
	// Default track: x=2, y=2, width=40, range [0, 100].
	app := newTestApp(t, "")
	ctx := context.Background()
	s := app.Slider()

	require.NoError(t, app.handleBackendEvent(ctx, mouse(22, 2, backend.MouseLeft)))
	assert.Equal(t, 50.0, s.Value())
	assert.Equal(t, slider.DragDragging, s.State())

	// Dragging off the track, and off its row, clamps to the maximum.
	require.NoError(t, app.handleBackendEvent(ctx, mouse(70, 9, backend.MouseLeft)))
	assert.Equal(t, 100.0, s.Value())

	// The wheel is not a release.
	require.NoError(t, app.handleBackendEvent(ctx, mouse(70, 9, backend.MouseWheelUp)))
	assert.True(t, s.IsDragging())

	require.NoError(t, app.handleBackendEvent(ctx, mouse(70, 9, backend.MouseNone)))
	assert.Equal(t, slider.DragIdle, s.State())
	assert.Equal(t, 100.0, s.Value())
}

func TestMousePressOutsideTrack(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, app.handleBackendEvent(ctx, mouse(22, 0, backend.MouseLeft)))
	assert.False(t, app.Slider().IsDragging())
	assert.Equal(t, 0.0, app.Slider().Value())

	require.NoError(t, app.handleBackendEvent(ctx, mouse(22, 0, backend.MouseNone)))
}

func TestRightButtonDoesNotDrag(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, app.handleBackendEvent(ctx, mouse(22, 2, backend.MouseRight)))
	assert.False(t, app.Slider().IsDragging())
	require.NoError(t, app.handleBackendEvent(ctx, mouse(22, 2, backend.MouseNone)))
}

func TestQuitKeys(t *testing.T) {
	app := newTestApp(t, "")

	tests := []struct {
		name string
		ev   backend.Event
		quit bool
	}{
		{"q", key(backend.KeyRune, 'q'), true},
		{"Q", key(backend.KeyRune, 'Q'), true},
		{"escape", key(backend.KeyEscape, 0), true},
		{"ctrl-c", key(backend.KeyCtrlC, 0), true},
		{"other rune", key(backend.KeyRune, 'x'), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.handleBackendEvent(context.Background(), tt.ev)
			if tt.quit {
				assert.ErrorIs(t, err, ErrQuit)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHookReceivesDragValues(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "hook.lua")
	require.NoError(t, os.WriteFile(script, []byte("calls = 0\nfunction on_change(v) calls = calls + 1; last = v end\n"), 0o644))

	app := newTestApp(t, "[hook]\nscript = \""+filepath.ToSlash(script)+"\"\n")
	ctx := context.Background()

	require.NoError(t, app.handleBackendEvent(ctx, mouse(22, 2, backend.MouseLeft)))
	require.NoError(t, app.handleBackendEvent(ctx, mouse(26, 2, backend.MouseLeft)))
	require.NoError(t, app.handleBackendEvent(ctx, mouse(26, 2, backend.MouseNone)))

	// Construction, down and one move.
	assert.Equal(t, "3", app.hook.L.GetGlobal("calls").String())
	assert.Equal(t, "60", app.hook.L.GetGlobal("last").String())
}

func TestApplyConfig(t *testing.T) {
	app := newTestApp(t, "")

	cfg := config.Default()
	cfg.Slider.Maximum = 10
	cfg.Slider.Step = 2
	v := 5.0
	cfg.Slider.Value = &v
	cfg.Track.Y = 4

	app.ApplyConfig(cfg)

	s := app.Slider()
	assert.Equal(t, 10.0, s.Maximum())
	assert.Equal(t, 2.0, s.Step())
	assert.Equal(t, 5.0, s.Value())
	assert.Same(t, cfg, app.Config())

	// The track region moved with the view.
	require.NoError(t, app.handleBackendEvent(context.Background(), mouse(22, 4, backend.MouseLeft)))
	assert.True(t, s.IsDragging())
	require.NoError(t, app.handleBackendEvent(context.Background(), mouse(22, 4, backend.MouseNone)))
}

func TestRun(t *testing.T) {
	app := newTestApp(t, "[slider]\nvalue = 25\n")
	b := backend.NewMemory(80, 10)
	require.NoError(t, app.SetBackend(b))

	result := make(chan error, 1)
	go func() { result <- app.Run() }()

	b.Post(mouse(42, 2, backend.MouseLeft))
	b.Post(mouse(42, 2, backend.MouseNone))
	b.Post(key(backend.KeyRune, 'q'))

	select {
	case err := <-result:
		assert.ErrorIs(t, err, ErrQuit)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}

	assert.Equal(t, 100.0, app.Slider().Value())
	assert.GreaterOrEqual(t, b.Frames(), 1)
	assert.Contains(t, b.Row(2), " 100")
}

func TestRun_NoBackend(t *testing.T) {
	app := newTestApp(t, "")
	assert.ErrorIs(t, app.Run(), ErrNoBackend)
}

func TestShutdownIdempotent(t *testing.T) {
	app := newTestApp(t, "")
	app.Shutdown()
	app.Shutdown()
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "50", FormatValue(50))
	assert.Equal(t, "0.5", FormatValue(0.5))
	assert.Equal(t, "-3", FormatValue(-3))
}
