package fetch

import "github.com/rs/zerolog"

// Option configures a Controller
type Option func(*options)

type options struct {
	logger       zerolog.Logger
	errorMessage func(error) string
}

func defaultOptions() options {
	return options{
		logger:       zerolog.Nop(),
		errorMessage: func(err error) string { return err.Error() },
	}
}

// WithLogger sets the controller logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithErrorMessage sets how a request error is turned into the message
// exposed on an error Result.
func WithErrorMessage(fn func(error) string) Option {
	return func(o *options) {
		if fn != nil {
			o.errorMessage = fn
		}
	}
}
