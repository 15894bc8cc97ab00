package veritab

import (
	"github.com/rs/zerolog"

	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/tabular"
)

// options holds the configured settings for a Session.
type options struct {
	logger       *zerolog.Logger
	displayLimit *int // nil keeps the report assembler's default cap
	source       *tabular.Table
	target       *tabular.Table
}

func defaultOptions() *options {
	return &options{}
}

// Option is a function that configures a Session.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns session options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithLogger sets the logger used for session diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}

// WithDisplayLimit caps how many provenance row numbers each report
// record lists before truncating with a "+N more" suffix. Zero or a
// negative value removes the cap.
func WithDisplayLimit(n int) Option {
	return func(o *options) error {
		o.displayLimit = &n
		return nil
	}
}

// WithSource preloads the session's source table.
func WithSource(t *tabular.Table) Option {
	return func(o *options) error {
		if t == nil {
			return &errors.ValidationError{
				Field:   "source",
				Message: "cannot be nil",
			}
		}
		o.source = t
		return nil
	}
}

// WithTarget preloads the session's target table.
func WithTarget(t *tabular.Table) Option {
	return func(o *options) error {
		if t == nil {
			return &errors.ValidationError{
				Field:   "target",
				Message: "cannot be nil",
			}
		}
		o.target = t
		return nil
	}
}
