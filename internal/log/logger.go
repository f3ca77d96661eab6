// Package log provides structured logging for changelint on top of zerolog.
//
// Diagnostics and command output go to stdout through the cli package; this
// logger only carries operational detail (files opened, timings, watcher
// events) and writes to stderr.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stderr)
	JSON    bool      // emit JSON lines instead of console formatting
	NoColor bool
}

// DefaultLevel is used when neither Config.Level nor CHANGELINT_LOG_LEVEL is set.
const DefaultLevel = zerolog.WarnLevel

var (
	mu         sync.RWMutex
	base       zerolog.Logger
	configured bool
)

// Configure replaces the global logger. It is safe to call more than once;
// the CLI calls it after flags are parsed.
func Configure(cfg Config) {
	level := DefaultLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level)); err == nil {
			level = parsed
		}
	} else if env := os.Getenv("CHANGELINT_LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(env)); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if !cfg.JSON {
		writer = zerolog.ConsoleWriter{
			Out:        writer,
			NoColor:    cfg.NoColor,
			TimeFormat: time.TimeOnly,
		}
	}

	mu.Lock()
	defer mu.Unlock()
	base = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	configured = true
}

func logger() zerolog.Logger {
	mu.RLock()
	if configured {
		l := base
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	Configure(Config{})
	return logger()
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	return logger()
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return logger().With().Str("component", component).Logger()
}

// Derive attaches arbitrary fields to a child logger using the provided builder function.
func Derive(build func(*zerolog.Context)) zerolog.Logger {
	ctx := logger().With()
	if build != nil {
		build(&ctx)
	}
	return ctx.Logger()
}

// Debugf adapts the logger to the printf-style hooks used by helpers that
// take a func(format, args...) logger.
func Debugf(component string) func(format string, args ...any) {
	l := WithComponent(component)
	return func(format string, args ...any) {
		l.Debug().Msgf(format, args...)
	}
}
