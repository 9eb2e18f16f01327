package validate

import (
	"context"
	"log/slog"
)

// CleanFunc is the whole-record hook run after all field and group rules.
// It may mutate or replace the cleaned data. Returning an error fails the
// validation with a single whole-record message under BaseErrorKey; use
// rules.Fail to raise a canonical message by symbolic reason.
type CleanFunc func(ctx context.Context, data map[string]any) (map[string]any, error)

// Option configures a ModelValidator during construction.
type Option func(*ModelValidator)

// WithClean injects the whole-record clean hook.
func WithClean(fn CleanFunc) Option {
	return func(v *ModelValidator) {
		v.clean = fn
	}
}

// WithLogger sets the logger used for debug output. Logging is discarded by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(v *ModelValidator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// ValidateOption narrows a single Validate call.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	only map[string]bool
}

// Only restricts validation to the named fields. Fields outside the subset
// are neither validated nor required, even when otherwise mandatory.
func Only(fields ...string) ValidateOption {
	return func(cfg *validateConfig) {
		cfg.only = make(map[string]bool, len(fields))
		for _, f := range fields {
			cfg.only[f] = true
		}
	}
}
