package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "trackbar.toml"

// Config is the complete trackbar configuration.
type Config struct {
	Slider SliderConfig `toml:"slider"`
	Track  TrackConfig  `toml:"track"`
	Theme  ThemeConfig  `toml:"theme"`
	Log    LogConfig    `toml:"log"`
	Hook   HookConfig   `toml:"hook"`
}

// SliderConfig holds the slider range and initial value.
type SliderConfig struct {
	Minimum float64 `toml:"minimum"`
	Maximum float64 `toml:"maximum"`
	Step    float64 `toml:"step"`
	// Value is the initial value; nil starts at Minimum.
	Value       *float64 `toml:"value"`
	MoveToPoint bool     `toml:"move_to_point"`
}

// InitialValue returns the configured value, or the minimum when unset.
func (s SliderConfig) InitialValue() float64 {
	if s.Value == nil {
		return s.Minimum
	}
	return *s.Value
}

// TrackConfig places the track on screen, in cells.
type TrackConfig struct {
	X     int `toml:"x"`
	Y     int `toml:"y"`
	Width int `toml:"width"`
}

// ThemeConfig holds "#rrggbb" track colors. Empty strings keep the
// built-in color.
type ThemeConfig struct {
	FillStart string `toml:"fill_start"`
	FillEnd   string `toml:"fill_end"`
	Empty     string `toml:"empty"`
	Thumb     string `toml:"thumb"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
	// File receives log output. Empty disables logging, since the terminal
	// belongs to the UI.
	File string `toml:"file"`
}

// HookConfig names an optional Lua script.
type HookConfig struct {
	Script string `toml:"script"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Slider: SliderConfig{
			Minimum: 0,
			Maximum: 100,
			Step:    1,
		},
		Track: TrackConfig{
			X:     2,
			Y:     2,
			Width: 40,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Parse decodes TOML data on top of the defaults. source names the data in
// errors. Unknown keys are rejected. The result is not validated.
func Parse(source string, data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, newParseError(source, err)
	}
	return cfg, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{File: source, Reason: err.Error(), Err: err}

	var decodeErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decodeErr):
		pe.Line, pe.Column = decodeErr.Position()
	case errors.As(err, &strictErr) && len(strictErr.Errors) > 0:
		first := strictErr.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Reason = "unknown key " + strings.Join(first.Key(), ".")
	}
	return pe
}

// Validate checks every setting and returns FieldErrors listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs FieldErrors
	add := func(path, msg string, value any) {
		errs = append(errs, &FieldError{Key: path, Reason: msg, Value: value})
	}

	s := c.Slider
	finiteBounds := true
	if !isFinite(s.Minimum) {
		add("slider.minimum", "must be a finite number", s.Minimum)
		finiteBounds = false
	}
	if !isFinite(s.Maximum) {
		add("slider.maximum", "must be a finite number", s.Maximum)
		finiteBounds = false
	}
	if finiteBounds && s.Minimum > s.Maximum {
		add("slider.minimum", fmt.Sprintf("must not exceed maximum %v", s.Maximum), s.Minimum)
	}
	switch {
	case !isFinite(s.Step) || s.Step <= 0:
		add("slider.step", "must be a finite number greater than zero", s.Step)
	case math.IsInf(1000/s.Step, 0):
		add("slider.step", "is too small to quantize", s.Step)
	}
	if s.Value != nil && !isFinite(*s.Value) {
		add("slider.value", "must be a finite number", *s.Value)
	}

	if c.Track.X < 0 {
		add("track.x", "must not be negative", c.Track.X)
	}
	if c.Track.Y < 0 {
		add("track.y", "must not be negative", c.Track.Y)
	}
	if c.Track.Width < 1 {
		add("track.width", "must be at least 1", c.Track.Width)
	}

	for _, color := range []struct{ path, hex string }{
		{"theme.fill_start", c.Theme.FillStart},
		{"theme.fill_end", c.Theme.FillEnd},
		{"theme.empty", c.Theme.Empty},
		{"theme.thumb", c.Theme.Thumb},
	} {
		if color.hex == "" {
			continue
		}
		if _, err := colorful.Hex(color.hex); err != nil {
			add(color.path, "must be a #rrggbb color", color.hex)
		}
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		add("log.level", "must be one of debug, info, warn, error", c.Log.Level)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Loader resolves a Config from defaults, a file and the environment.
type Loader struct {
	path      string
	lookupEnv func(string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEnv sets the environment lookup used for TRACKBAR_* overrides.
// Pass os.LookupEnv for the process environment.
func WithEnv(lookup func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.lookupEnv = lookup
	}
}

// NewLoader creates a loader for the file at path. Without WithEnv the
// environment is ignored.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	if path == "" {
		path = DefaultPath
	}
	l := &Loader{path: path}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the configuration file path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads, overrides and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(l.path)
	switch {
	case err == nil:
		cfg, err = Parse(l.path, data)
		if err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		// File doesn't exist, defaults apply
	default:
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}

	if l.lookupEnv != nil {
		if err := applyEnv(cfg, l.lookupEnv); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the file at path with process environment overrides.
func Load(path string) (*Config, error) {
	return NewLoader(path, WithEnv(os.LookupEnv)).Load()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
