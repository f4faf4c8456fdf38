package bloom

import (
	"crypto"

	"github.com/datatrails/go-datatrails-common/logger"
)

// Options configures filter construction and decoding. The zero value selects
// DefaultHash and no logging.
type Options struct {
	hash crypto.Hash
	log  logger.Logger
}

type Option func(*Options)

// NewOptions returns Options with the defaults applied followed by opts.
func NewOptions(opts ...Option) Options {
	o := Options{hash: DefaultHash}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithHash selects the digest used to derive bit positions. Filters built
// with different digests never compare equal.
func WithHash(h crypto.Hash) Option {
	return func(o *Options) {
		o.hash = h
	}
}

// WithLogger supplies a logger for debug tracing of construction, clearing
// and decoding.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}

// Hash returns the configured digest.
func (o Options) Hash() crypto.Hash {
	return o.hash
}

// checkHash applies the process wide check for the default digest, and a per
// call check for any other.
func (o Options) checkHash() error {
	if o.hash == DefaultHash {
		return defaultHashErr
	}
	return CheckHash(o.hash)
}

func (o Options) debugf(format string, args ...any) {
	if o.log == nil {
		return
	}
	o.log.Debugf(format, args...)
}
