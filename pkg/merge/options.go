package merge

import (
	"github.com/agentstation/graphmerge/pkg/errors"
)

// options configures a merger.
type options struct {
	policy Policy
}

func defaultOptions() *options {
	return &options{
		policy: PolicyPrimaryWins,
	}
}

// Option is a function that configures a Merger.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns merger options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithPolicy sets the property conflict policy.
func WithPolicy(policy Policy) Option {
	return func(o *options) error {
		if !policy.valid() {
			return &errors.ValidationError{
				Field:   "policy",
				Value:   string(policy),
				Message: "must be primary-wins or secondary-wins",
			}
		}
		o.policy = policy
		return nil
	}
}
