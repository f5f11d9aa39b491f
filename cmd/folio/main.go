package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/five82/folio/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("folio", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path (default ~/.config/folio/config.toml)")
	prefsPath := fs.String("prefs", "", "preferences file path (default ~/.config/folio/prefs.toml)")
	query := fs.StringP("query", "q", "", "initial search text")
	language := fs.StringP("language", "l", "", "initial language code, or \"any\"")
	once := fs.Bool("once", false, "fetch once, print the results and exit")
	logFile := fs.String("log-file", "", "log file path; empty string disables file logging")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Query:      *query,
		Once:       *once,
	}
	if fs.Changed("language") {
		opts.Language = language
	}
	if fs.Changed("log-file") {
		opts.LogFile = logFile
	}
	if fs.Changed("log-level") {
		opts.LogLevel = logLevel
	}
	if fs.Changed("metrics-addr") {
		opts.Metrics = metricsAddr
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		return 1
	}
	return 0
}
