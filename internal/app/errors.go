package app

import (
	"errors"
	"fmt"
)

var (
	// ErrQuit is returned by Run when the user asked to leave.
	ErrQuit = errors.New("app: quit")

	ErrAlreadyRunning = errors.New("app: already running")
	ErrNoBackend      = errors.New("app: Run called before SetBackend")
)

// StartupError reports which stage of bringing the slider up failed.
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }

func startupFailed(stage string, err error) error {
	return &StartupError{Stage: stage, Err: err}
}
