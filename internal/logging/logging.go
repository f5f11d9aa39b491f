// Package logging configures folio's logrus logger. The TUI owns the terminal,
// so interactive sessions log to a file; headless runs may log to stderr.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey string

// SeqKey carries the catalog request sequence number.
const SeqKey ctxKey = "seq"

// slowThreshold marks tracked operations worth a warning.
const slowThreshold = time.Second

// Options configure logger output.
type Options struct {
	Path   string // log file; empty disables file output
	Level  string // logrus level name; empty means info
	Stderr bool   // log to stderr when Path is empty
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fileCloser detaches the logger before closing its file.
type fileCloser struct{ file *os.File }

func (c fileCloser) Close() error {
	logrus.SetOutput(io.Discard)
	return c.file.Close()
}

// Setup points the standard logrus logger at the configured sink. The returned
// closer releases the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	level := logrus.InfoLevel
	if name := strings.TrimSpace(opts.Level); name != "" {
		parsed, err := logrus.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	logrus.SetLevel(level)

	path := strings.TrimSpace(opts.Path)
	if path == "" {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
		if opts.Stderr {
			logrus.SetOutput(os.Stderr)
		} else {
			logrus.SetOutput(io.Discard)
		}
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	logrus.SetOutput(file)
	return fileCloser{file: file}, nil
}

// For returns an entry tagged with the request sequence stored in ctx.
func For(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	seq, ok := ctx.Value(SeqKey).(uint64)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.WithField("seq", seq)
}

// WithSeq stores a request sequence number on ctx.
func WithSeq(ctx context.Context, seq uint64) context.Context {
	return context.WithValue(ctx, SeqKey, seq)
}

// Track logs how long an operation took once the returned func is called.
func Track(ctx context.Context, msg string) func() {
	start := time.Now()
	return func() {
		dur := time.Since(start)
		entry := For(ctx).WithField("duration", dur.String())
		if dur > slowThreshold {
			entry.Warnf("%s completed (slow)", msg)
			return
		}
		entry.Debugf("%s completed", msg)
	}
}
