package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trackbar.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.0, cfg.Slider.Minimum)
	assert.Equal(t, 100.0, cfg.Slider.Maximum)
	assert.Equal(t, 1.0, cfg.Slider.Step)
	assert.Equal(t, 0.0, cfg.Slider.InitialValue())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[slider]
minimum = -10
maximum = 10
step = 0.5
value = 2.5
move_to_point = true

[track]
width = 60

[theme]
thumb = "#ff0000"

[log]
level = "debug"
file = "out.log"

[hook]
script = "hook.lua"
`)

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, -10.0, cfg.Slider.Minimum)
	assert.Equal(t, 10.0, cfg.Slider.Maximum)
	assert.Equal(t, 0.5, cfg.Slider.Step)
	assert.Equal(t, 2.5, cfg.Slider.InitialValue())
	assert.True(t, cfg.Slider.MoveToPoint)

	// Unset keys keep their defaults.
	assert.Equal(t, 2, cfg.Track.X)
	assert.Equal(t, 60, cfg.Track.Width)
	assert.Equal(t, "#ff0000", cfg.Theme.Thumb)
	assert.Empty(t, cfg.Theme.FillStart)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "out.log", cfg.Log.File)
	assert.Equal(t, "hook.lua", cfg.Hook.Script)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "[slider]\nminimum = \n")

	_, err := NewLoader(path).Load()
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
	assert.Equal(t, path, pe.File)
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "[slider]\nmaxmum = 5\n")

	_, err := NewLoader(path).Load()

	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
	assert.Contains(t, pe.Reason, "slider.maxmum")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		paths  []string
	}{
		{
			name:   "minimum above maximum",
			mutate: func(c *Config) { c.Slider.Minimum = 200 },
			paths:  []string{"slider.minimum"},
		},
		{
			name:   "zero step",
			mutate: func(c *Config) { c.Slider.Step = 0 },
			paths:  []string{"slider.step"},
		},
		{
			name:   "subnormal step",
			mutate: func(c *Config) { c.Slider.Step = 1e-320 },
			paths:  []string{"slider.step"},
		},
		{
			name:   "negative step",
			mutate: func(c *Config) { c.Slider.Step = -1 },
			paths:  []string{"slider.step"},
		},
		{
			name:   "bad track",
			mutate: func(c *Config) { c.Track.X = -1; c.Track.Width = 0 },
			paths:  []string{"track.x", "track.width"},
		},
		{
			name:   "bad color",
			mutate: func(c *Config) { c.Theme.FillEnd = "blue" },
			paths:  []string{"theme.fill_end"},
		},
		{
			name:   "bad level",
			mutate: func(c *Config) { c.Log.Level = "loud" },
			paths:  []string{"log.level"},
		},
		{
			name: "all at once",
			mutate: func(c *Config) {
				c.Slider.Step = 0
				c.Track.Width = 0
				c.Log.Level = "loud"
			},
			paths: []string{"slider.step", "track.width", "log.level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)

			var verrs FieldErrors
			require.True(t, errors.As(err, &verrs))

			var got []string
			for _, e := range verrs {
				got = append(got, e.Key)
			}
			assert.Equal(t, tt.paths, got)
		})
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, "[slider]\nminimum = 5\nmaximum = 1\n")

	_, err := NewLoader(path).Load()
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "slider.minimum")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"warn\"\n")
	env := map[string]string{
		"TRACKBAR_LOG_LEVEL":     "DEBUG",
		"TRACKBAR_HOOK_SCRIPT":   "env.lua",
		"TRACKBAR_MOVE_TO_POINT": "true",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg, err := NewLoader(path, WithEnv(lookup)).Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "env.lua", cfg.Hook.Script)
	assert.True(t, cfg.Slider.MoveToPoint)

	cfg, err = NewLoader(path, WithEnv(noEnv)).Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidEnv(t *testing.T) {
	lookup := func(name string) (string, bool) {
		if name == "TRACKBAR_MOVE_TO_POINT" {
			return "maybe", true
		}
		return "", false
	}

	_, err := NewLoader(filepath.Join(t.TempDir(), "none.toml"), WithEnv(lookup)).Load()
	assert.ErrorIs(t, err, ErrInvalidEnv)
}

func TestNewLoader_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewLoader("").Path())
	assert.Contains(t, EnvVars(), "TRACKBAR_LOG_FILE")
}
