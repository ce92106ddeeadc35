// Package logging wraps hclog behind a small interface so packages do not
// depend on the logging library directly.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Logger defines the logging interface used by the application.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// Named creates a sublogger with a name component.
	Named(name string) Logger
	// With adds key-value pairs to the logger's context.
	With(args ...interface{}) Logger
}

var _ Logger = (*hclogWrapper)(nil)

type hclogWrapper struct {
	logger hclog.Logger
}

func (w *hclogWrapper) Debug(msg string, args ...interface{}) { w.logger.Debug(msg, args...) }
func (w *hclogWrapper) Info(msg string, args ...interface{})  { w.logger.Info(msg, args...) }
func (w *hclogWrapper) Warn(msg string, args ...interface{})  { w.logger.Warn(msg, args...) }
func (w *hclogWrapper) Error(msg string, args ...interface{}) { w.logger.Error(msg, args...) }

func (w *hclogWrapper) Named(name string) Logger {
	return &hclogWrapper{logger: w.logger.Named(name)}
}

func (w *hclogWrapper) With(args ...interface{}) Logger {
	return &hclogWrapper{logger: w.logger.With(args...)}
}

// Options controls logger construction.
type Options struct {
	Level  string // DEBUG, INFO, WARN, ERROR; unknown values fall back to INFO
	Format string // "json" selects JSON output, anything else text
	Output io.Writer
}

// New builds the application logger.
func New(opts Options) Logger {
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return &hclogWrapper{logger: hclog.New(&hclog.LoggerOptions{
		Name:       "interactions-api",
		Level:      level,
		Output:     out,
		JSONFormat: strings.EqualFold(opts.Format, "json"),
	})}
}

// NewNull returns a logger that discards everything.
func NewNull() Logger {
	return &hclogWrapper{logger: hclog.NewNullLogger()}
}
