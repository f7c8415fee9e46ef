package logger

import (
	"io"
	"log/slog"
	"os"
)

type options struct {
	writer io.Writer
	level  slog.Leveler
	json   bool
	app    string
}

// Option configures the logger factory.
type Option func(*options)

// WithOutput sets the destination for log records. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithJSONFormatter switches output to JSON records.
func WithJSONFormatter() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithApp attaches an "app" attribute to every record.
func WithApp(name string) Option {
	return func(o *options) {
		o.app = name
	}
}

// New creates a configured *slog.Logger.
func New(opts ...Option) *slog.Logger {
	o := options{
		writer: os.Stderr,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(&o)
	}

	hopts := &slog.HandlerOptions{Level: o.level}

	var handler slog.Handler
	if o.json {
		handler = slog.NewJSONHandler(o.writer, hopts)
	} else {
		handler = slog.NewTextHandler(o.writer, hopts)
	}

	log := slog.New(handler)
	if o.app != "" {
		log = log.With(slog.String("app", o.app))
	}
	return log
}
