// SPDX-License-Identifier: MIT
package matrix

import "go.uber.org/zap"

// Option configures a Build call.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

func gatherOptions(opts ...Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger routes pipeline and formula diagnostics to l.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
