package services

import (
	"log/slog"
	"time"
)

type options struct {
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*options)

// WithLocation sets the timezone reservation dates and times are read in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		loc:    time.Local,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) opLogger(service, operation string, attrs ...any) *slog.Logger {
	pairs := append([]any{"service", service, "operation", operation}, attrs...)
	return o.logger.With(pairs...)
}
