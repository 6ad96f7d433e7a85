package fsa

import "go.uber.org/zap"

// Config configures automaton construction.
//
// The zero value is not valid; start from DefaultConfig and adjust with the
// With* modifiers.
type Config struct {
	// BinarySearchThreshold is the out-degree at which transition lookup
	// switches from a linear scan to binary search. Below it, a linear scan
	// over the sorted ranks is faster in practice.
	//
	// Default: 5
	BinarySearchThreshold int

	// AllowEmpty admits the empty sequence as an element. The automaton then
	// carries a root-accepting flag instead of rejecting the input with
	// ErrEmptySequence, and a second empty sequence is a duplicate key.
	//
	// Default: false
	AllowEmpty bool

	// Logger receives one debug record per build with the automaton's size
	// before and after minimization.
	//
	// Default: zap.NewNop()
	Logger *zap.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BinarySearchThreshold: 5,
		AllowEmpty:            false,
		Logger:                zap.NewNop(),
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.BinarySearchThreshold < 1 {
		return &Error{
			Kind:    InvalidConfig,
			Message: "BinarySearchThreshold must be >= 1",
		}
	}
	return nil
}

// WithBinarySearchThreshold returns a new config with the specified threshold
func (c Config) WithBinarySearchThreshold(threshold int) Config {
	c.BinarySearchThreshold = threshold
	return c
}

// WithAllowEmpty returns a new config with empty sequences allowed/rejected
func (c Config) WithAllowEmpty(allow bool) Config {
	c.AllowEmpty = allow
	return c
}

// WithLogger returns a new config with the specified logger
func (c Config) WithLogger(logger *zap.Logger) Config {
	c.Logger = logger
	return c
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
