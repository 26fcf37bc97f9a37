package rotation

import (
	"io"
	"log/slog"
	"time"
)

// DefaultVersionDescription labels versions created by the updater
const DefaultVersionDescription = "created by amirotate"

type options struct {
	logger      *slog.Logger
	debug       bool
	dryRun      bool
	location    *time.Location
	description string
}

// Option configures the rotation components
type Option func(*options)

// WithLogger sets the logger used for progress and diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDebug enables verbose diagnostics, such as listing every candidate image
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithDryRun stops the updater after the comparison step
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

// WithLocation sets the timezone image creation times are displayed in
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithDescription sets the description of created template versions
func WithDescription(description string) Option {
	return func(o *options) {
		if description != "" {
			o.description = description
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		location:    time.Local,
		description: DefaultVersionDescription,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
