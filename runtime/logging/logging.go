// Package logging builds the CLI logger: a terse text handler on stderr and,
// optionally, a JSON handler on a log file.
package logging

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// DebugEnv enables debug output when set to any non-empty value.
const DebugEnv = "LOGIX_DEBUG"

// Options configures New.
type Options struct {
	Stderr io.Writer // defaults to os.Stderr
	Debug  bool
	File   io.Writer // JSON records at debug level, if set
}

// DebugFromEnv reports whether DebugEnv is set.
func DebugFromEnv() bool {
	return os.Getenv(DebugEnv) != ""
}

// New builds a logger from opts.
func New(opts Options) *slog.Logger {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				// Remove timestamp for cleaner output
				if a.Key == slog.TimeKey && len(groups) == 0 {
					return slog.Attr{}
				}
				return a
			},
		}),
	}
	if opts.File != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.File, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// OpenFile opens path for appending log records.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
