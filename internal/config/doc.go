// Package config loads the trackbar configuration file.
//
// Configuration is resolved in three layers, higher overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← TRACKBAR_*
//	├─────────────────────────────┤
//	│  2. Configuration File      │  ← trackbar.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// A missing file is not an error; the defaults apply. The file is TOML:
//
//	[slider]
//	minimum = 0
//	maximum = 100
//	step = 1
//	value = 50
//	move_to_point = false
//
//	[track]
//	x = 2
//	y = 2
//	width = 40
//
//	[theme]
//	fill_start = "#3a7bd5"
//	fill_end = "#00d2ff"
//	empty = "#555555"
//	thumb = "#ffffff"
//
//	[log]
//	level = "info"
//	file = "trackbar.log"
//
//	[hook]
//	script = "hook.lua"
//
// Validation follows the slider's own rules and reports every problem at
// once as FieldErrors.
//
// # Live Reload
//
// A Watcher re-runs the Loader whenever the file is written and hands the
// new Config to a callback. Invalid edits are logged and skipped; the
// previous configuration stays in effect.
package config
