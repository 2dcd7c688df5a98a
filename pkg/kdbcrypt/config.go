package kdbcrypt

import "github.com/darrenldl/go-keepass/pkg/kdbcrypt/kdbcryptlog"

// Config carries policy knobs that sit above the protocol: the algorithms
// and byte layouts in spec.md §4 are fixed, but how strict a caller wants to
// be about suspicious inputs is a deployment decision.
type Config struct {
	// MinRounds rejects a Header whose KeyTransfRounds is below this
	// value. The library itself treats zero rounds as legal (spec.md
	// §4.5 note); this is where a caller's policy lives instead.
	MinRounds uint32

	// StrictPadding rejects a PKCS#7 pad byte outside 1..=16 as
	// ErrDecrypt instead of trusting it (spec.md §9, "Padding
	// validation"). Defaults to true.
	StrictPadding bool

	// Logger receives structured diagnostics. Defaults to a no-op logger.
	Logger kdbcryptlog.Logger
}

// Option configures a Config.
type Option func(*Config)

// WithMinRounds sets the minimum accepted key-transform round count.
func WithMinRounds(n uint32) Option {
	return func(c *Config) { c.MinRounds = n }
}

// WithStrictPadding toggles PKCS#7 pad-byte range validation.
func WithStrictPadding(strict bool) Option {
	return func(c *Config) { c.StrictPadding = strict }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l kdbcryptlog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// NewConfig builds a Config with the package defaults (no minimum round
// count, strict padding enabled, a no-op logger) and applies opts in order.
func NewConfig(opts ...Option) Config {
	c := Config{
		MinRounds:     0,
		StrictPadding: true,
		Logger:        kdbcryptlog.Noop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Logger == nil {
		c.Logger = kdbcryptlog.Noop()
	}
	return c
}
