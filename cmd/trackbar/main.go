// Command trackbar shows a mouse-driven slider in the terminal and prints
// the chosen value on exit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap/zapcore"

	"github.com/dshills/trackbar/internal/app"
	"github.com/dshills/trackbar/internal/config"
	"github.com/dshills/trackbar/internal/renderer/backend"
)

// Set with -ldflags at release time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type cli struct {
	opts    app.Options
	check   bool
	version bool
}

func run(args []string, stdout, stderr io.Writer) int {
	c, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "trackbar: %v\n", err)
		return 2
	}

	switch {
	case c.version:
		fmt.Fprintf(stdout, "trackbar %s (commit %s, built %s)\n", version, commit, date)
		return 0
	case c.check:
		return checkConfig(c.opts.ConfigPath, stdout, stderr)
	}
	return serve(c.opts, stdout, stderr)
}

func parseArgs(args []string, stderr io.Writer) (*cli, error) {
	c := &cli{}
	fs := flag.NewFlagSet("trackbar", flag.ContinueOnError)
	fs.SetOutput(stderr)

	for _, name := range []string{"config", "c"} {
		fs.StringVar(&c.opts.ConfigPath, name, config.DefaultPath, "configuration `file`")
	}
	fs.BoolVar(&c.opts.Watch, "watch", true, "reload the configuration file when it changes")
	fs.StringVar(&c.opts.LogLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	fs.StringVar(&c.opts.LogFile, "log-file", "", "override log.file: a `path` or \"stderr\"")
	fs.BoolVar(&c.check, "check", false, "validate the configuration and exit")
	for _, name := range []string{"version", "v"} {
		fs.BoolVar(&c.version, name, false, "print version information and exit")
	}
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if c.opts.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.opts.LogLevel); err != nil {
			return nil, fmt.Errorf("-log-level: %w", err)
		}
	}
	return c, nil
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprint(w, "Usage: trackbar [options]\n\n")
	fmt.Fprint(w, "Drag the thumb with the left mouse button. q or Esc quits and\nprints the final value.\n\n")
	fs.PrintDefaults()
	fmt.Fprint(w, "\nEnvironment overrides:\n")
	for _, name := range config.EnvVars() {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

func checkConfig(path string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "trackbar: %v\n", err)
		return 1
	}
	s := cfg.Slider
	fmt.Fprintf(stdout, "%s: ok (range [%v, %v], step %v, value %v)\n",
		config.NewLoader(path).Path(), s.Minimum, s.Maximum, s.Step, s.InitialValue())
	return 0
}

func serve(opts app.Options, stdout, stderr io.Writer) int {
	a, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "trackbar: %v\n", err)
		return 1
	}
	defer a.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "trackbar: open terminal: %v\n", err)
		return 1
	}
	if err := a.SetBackend(term); err != nil {
		fmt.Fprintf(stderr, "trackbar: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		a.Shutdown()
	}()

	err = a.Run()
	switch {
	case errors.Is(err, app.ErrQuit):
		fmt.Fprintln(stdout, app.FormatValue(a.Slider().Value()))
	case err != nil:
		fmt.Fprintf(stderr, "trackbar: %v\n", err)
		return 1
	}
	return 0
}
