// Package hook runs a user Lua script whenever the slider value changes.
//
// The script defines a global function:
//
//	function on_change(value)
//	  print("value is now " .. value)
//	end
//
// Only the base, table, string and math libraries are available. print
// writes to the log instead of the terminal.
package hook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// FunctionName is the global the script must define.
const FunctionName = "on_change"

// DefaultTimeout bounds a single on_change call.
const DefaultTimeout = 100 * time.Millisecond

// Errors returned by hooks.
var (
	// ErrClosed is returned when calling a closed hook.
	ErrClosed = errors.New("hook is closed")

	// ErrNoHandler indicates the script does not define on_change.
	ErrNoHandler = errors.New("script does not define " + FunctionName)
)

// Hook is a loaded script. It is safe for concurrent use; calls are
// serialized.
type Hook struct {
	mu sync.Mutex

	L       *lua.LState
	name    string
	log     *zap.SugaredLogger
	timeout time.Duration
	closed  bool
}

// Option configures a Hook.
type Option func(*Hook)

// WithLogger sets the logger receiving print output. A nil logger is ignored.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(h *Hook) {
		if logger != nil {
			h.log = logger
		}
	}
}

// WithTimeout bounds each on_change call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(h *Hook) {
		if d >= 0 {
			h.timeout = d
		}
	}
}

// Load runs the script at path and returns a hook calling its on_change.
func Load(path string, opts ...Option) (*Hook, error) {
	return load(path, func(L *lua.LState) error { return L.DoFile(path) }, opts)
}

// LoadString runs code as a script named name.
func LoadString(name, code string, opts ...Option) (*Hook, error) {
	return load(name, func(L *lua.LState) error { return L.DoString(code) }, opts)
}

func load(name string, run func(*lua.LState) error, opts []Option) (*Hook, error) {
	h := &Hook{
		name:    name,
		log:     zap.NewNop().Sugar(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.L = newState(h.log)
	if err := run(h.L); err != nil {
		h.L.Close()
		return nil, fmt.Errorf("loading hook %s: %w", name, err)
	}
	if h.L.GetGlobal(FunctionName).Type() != lua.LTFunction {
		h.L.Close()
		return nil, fmt.Errorf("loading hook %s: %w", name, ErrNoHandler)
	}

	return h, nil
}

// newState creates a Lua state with the safe libraries only.
func newState(log *zap.SugaredLogger) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		log.Info(strings.Join(parts, "\t"))
		return 0
	}))

	return L
}

// Name returns the script path or name.
func (h *Hook) Name() string {
	return h.name
}

// OnChange calls the script's on_change with value.
func (h *Hook) OnChange(value float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	if h.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()
		h.L.SetContext(ctx)
		defer h.L.RemoveContext()
	}

	err := h.L.CallByParam(lua.P{
		Fn:      h.L.GetGlobal(FunctionName),
		NRet:    0,
		Protect: true,
	}, lua.LNumber(value))
	if err != nil {
		return fmt.Errorf("hook %s: %w", h.name, err)
	}
	return nil
}

// Close releases the Lua state. It is safe to call more than once.
func (h *Hook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.L.Close()
	h.closed = true
}
