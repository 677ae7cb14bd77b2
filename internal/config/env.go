package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRACKBAR_"

// envSetters maps an environment variable to the setting it overrides.
var envSetters = map[string]func(*Config, string) error{
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.Log.Level = strings.ToLower(v)
		return nil
	},
	EnvPrefix + "LOG_FILE": func(c *Config, v string) error {
		c.Log.File = v
		return nil
	},
	EnvPrefix + "HOOK_SCRIPT": func(c *Config, v string) error {
		c.Hook.Script = v
		return nil
	},
	EnvPrefix + "MOVE_TO_POINT": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Slider.MoveToPoint = b
		return nil
	},
}

// EnvVars returns the names of the supported environment overrides.
func EnvVars() []string {
	names := make([]string, 0, len(envSetters))
	for name := range envSetters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// applyEnv applies overrides found through lookup.
// Note: Empty string values are treated as valid values, not as unset.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, name := range EnvVars() {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		if err := envSetters[name](cfg, val); err != nil {
			return fmt.Errorf("%w %s=%q: %v", ErrInvalidEnv, name, val, err)
		}
	}
	return nil
}
