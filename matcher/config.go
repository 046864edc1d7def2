package matcher

// Config tunes the matcher. The zero value is not valid; start from
// DefaultConfig.
type Config struct {
	// InitialStateCapacity is the number of states the transition table is
	// sized for at construction. The table grows on demand.
	//
	// Default: 1024
	InitialStateCapacity int

	// StartSetArrayMaxSize is the largest start set searched by scanning for
	// its members directly. Larger start sets use a membership classifier.
	//
	// Default: 5
	StartSetArrayMaxSize int

	// TimeoutCheckFrequency is the number of transitions between two
	// clock reads when a timeout is set.
	//
	// Default: 5
	TimeoutCheckFrequency int

	// MaxPrefixVariants bounds the number of case variants of an
	// ignore-case prefix handed to the multi-pattern searcher. Prefixes with
	// more variants are found by first-byte scanning and verification.
	//
	// Default: 64
	MaxPrefixVariants int

	// UsePrefixSearch enables skipping to occurrences of the literal prefix.
	//
	// Default: true
	UsePrefixSearch bool

	// UseStartSetSearch enables skipping to characters of the start set.
	//
	// Default: true
	UseStartSetSearch bool

	// UseWatchdog enables the match-start shortcut for patterns whose
	// matches all have one length. It applies to deserialized matchers as
	// well, whose pattern may carry the watchdog.
	//
	// Default: true
	UseWatchdog bool
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{
		InitialStateCapacity:  1024,
		StartSetArrayMaxSize:  5,
		TimeoutCheckFrequency: 5,
		MaxPrefixVariants:     64,
		UsePrefixSearch:       true,
		UseStartSetSearch:     true,
		UseWatchdog:           true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch {
	case c.InitialStateCapacity <= 0:
		return errorf(UnsupportedOption, nil, "InitialStateCapacity must be > 0")
	case c.StartSetArrayMaxSize < 0:
		return errorf(UnsupportedOption, nil, "StartSetArrayMaxSize must be >= 0")
	case c.TimeoutCheckFrequency <= 0:
		return errorf(UnsupportedOption, nil, "TimeoutCheckFrequency must be > 0")
	case c.MaxPrefixVariants < 0:
		return errorf(UnsupportedOption, nil, "MaxPrefixVariants must be >= 0")
	}
	return nil
}

// WithInitialStateCapacity returns a copy with the given table capacity.
func (c Config) WithInitialStateCapacity(n int) Config {
	c.InitialStateCapacity = n
	return c
}

// WithStartSetArrayMaxSize returns a copy with the given start set limit.
func (c Config) WithStartSetArrayMaxSize(n int) Config {
	c.StartSetArrayMaxSize = n
	return c
}

// WithTimeoutCheckFrequency returns a copy with the given check frequency.
func (c Config) WithTimeoutCheckFrequency(n int) Config {
	c.TimeoutCheckFrequency = n
	return c
}

// WithMaxPrefixVariants returns a copy with the given variant bound.
func (c Config) WithMaxPrefixVariants(n int) Config {
	c.MaxPrefixVariants = n
	return c
}

// WithPrefixSearch returns a copy with prefix search enabled/disabled
func (c Config) WithPrefixSearch(enabled bool) Config {
	c.UsePrefixSearch = enabled
	return c
}

// WithStartSetSearch returns a copy with start set search enabled/disabled
func (c Config) WithStartSetSearch(enabled bool) Config {
	c.UseStartSetSearch = enabled
	return c
}

// WithWatchdog returns a copy with the watchdog shortcut enabled/disabled
func (c Config) WithWatchdog(enabled bool) Config {
	c.UseWatchdog = enabled
	return c
}
