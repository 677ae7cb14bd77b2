package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI("-v")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "trackbar dev")
}

func TestHelpListsEnvironment(t *testing.T) {
	code, _, errOut := runCLI("-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "-log-level")
	assert.Contains(t, errOut, "TRACKBAR_LOG_LEVEL")
}

func TestBadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"-nope"}, "flag provided but not defined"},
		{"positional", []string{"extra"}, `unexpected argument "extra"`},
		{"log level", []string{"-log-level", "loud"}, "-log-level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("[slider]\nminimum = 10\nmaximum = 20\nvalue = 15\n"), 0o644))
	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[slider]\nstep = 0\n"), 0o644))

	code, out, _ := runCLI("-check", "-c", good)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "ok (range [10, 20], step 1, value 15)")

	code, _, errOut := runCLI("-check", "-config", bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "slider.step")
}
