// Package srm provides a symbolic regex matcher for Go.
//
// srm compiles a pattern to a symbolic regex whose character predicates are
// drawn from a small alphabet of atoms (minterms), and matches it with a DFA
// built lazily from derivatives. Matching never backtracks: every search is
// linear in the input length, independent of the pattern.
//
// A search runs in up to three phases:
//   - .*A scans forward for the earliest position where some match ends
//   - reverse(A) scans back from there for the leftmost start
//   - A scans forward from the start for the end of the match
//
// Patterns whose matches all have the same length skip the last two phases.
//
// Basic usage:
//
//	re, err := srm.Compile(`a[^ab]+b`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	matches, err := re.MatchesString("xaTAG1bxaTAG2bc")
//	// matches = [(1,6) (8,6)]
//
// Compiled matchers serialize to one line of visible ASCII and can be
// restored without the pattern:
//
//	text := re.String()
//	re2, err := srm.Deserialize(text)
//
// Differences from the standard library regexp:
//   - Match length is leftmost-longest among matches starting leftmost;
//     lazy quantifiers select the shortest instead.
//   - Patterns that can match the empty string are rejected.
//   - Groups never capture.
//   - Offsets are byte offsets into UTF-8 input.
package srm

import (
	"errors"
	"regexp/syntax"
	"time"

	"github.com/coregx/srm/algebra"
	"github.com/coregx/srm/convert"
	"github.com/coregx/srm/matcher"
	"github.com/coregx/srm/symbolic"
)

// Options are pattern options, with the bit values of the serialized form.
type Options = matcher.Options

// Pattern options.
const (
	None             = matcher.None
	IgnoreCase       = matcher.IgnoreCase
	Multiline        = matcher.Multiline
	ExplicitCapture  = matcher.ExplicitCapture
	Singleline       = matcher.Singleline
	RightToLeft      = matcher.RightToLeft
	ECMAScript       = matcher.ECMAScript
	CultureInvariant = matcher.CultureInvariant
)

// supportedOptions are the options accepted by Compile.
const supportedOptions = IgnoreCase | Multiline | ExplicitCapture | Singleline | CultureInvariant

// Match is a match as byte offset and byte length.
type Match = matcher.Match

// NoMatch is the result of an unsuccessful search.
var NoMatch = matcher.NoMatch

// Stats is a snapshot of the search counters of a Regex.
type Stats = matcher.Stats

// Error is the error type returned by this package.
type Error = matcher.Error

// ErrorKind classifies errors.
type ErrorKind = matcher.ErrorKind

// Error kinds.
const (
	UnsupportedOption   = matcher.UnsupportedOption
	InvalidPattern      = matcher.InvalidPattern
	Timeout             = matcher.Timeout
	SerializationFormat = matcher.SerializationFormat
	ArgumentRange       = matcher.ArgumentRange
)

// Sentinel errors for use with errors.Is.
var (
	ErrUnsupportedOption   = matcher.ErrUnsupportedOption
	ErrInvalidPattern      = matcher.ErrInvalidPattern
	ErrTimeout             = matcher.ErrTimeout
	ErrSerializationFormat = matcher.ErrSerializationFormat
	ErrArgumentRange       = matcher.ErrArgumentRange
)

// Config holds the pattern options together with the matcher tuning knobs.
//
// Example:
//
//	config := srm.DefaultConfig()
//	config.Options = srm.IgnoreCase
//	config.Timeout = time.Second
//	re, err := srm.CompileWithConfig(`hello`, config)
type Config struct {
	// Options are the pattern options.
	Options Options

	// Timeout bounds the duration of each search. Zero means no bound.
	Timeout time.Duration

	// Culture selects culture-specific case folding ("tr" and "az" fold
	// i/İ and ı/I). It is ignored under CultureInvariant.
	Culture string

	matcher.Config
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{Config: matcher.DefaultConfig()}
}

// Validate checks the options, the timeout and the matcher configuration.
func (c Config) Validate() error {
	if rejected := c.Options &^ supportedOptions; rejected != 0 {
		return &Error{Kind: UnsupportedOption, Message: "unsupported option " + rejected.String()}
	}
	if c.Timeout < 0 {
		return &Error{Kind: ArgumentRange, Message: "negative timeout " + c.Timeout.String()}
	}
	return c.Config.Validate()
}

// Regex is a compiled symbolic regex.
//
// A Regex is safe for concurrent use. Searches share and grow one transition
// table, so a Regex gets faster as it is used.
type Regex struct {
	engine  matcher.Engine
	pattern string
}

// Compile compiles pattern with no options.
//
// Syntax is that of the standard library regexp/syntax package (Perl flags).
//
// Example:
//
//	re, err := srm.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("srm: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithOptions compiles pattern with the given options, search
// timeout (0 for none) and culture.
//
// Example:
//
//	re, err := srm.CompileWithOptions(`abc`, srm.IgnoreCase, time.Second, "")
func CompileWithOptions(pattern string, options Options, timeout time.Duration, culture string) (*Regex, error) {
	config := DefaultConfig()
	config.Options = options
	config.Timeout = timeout
	config.Culture = culture
	return CompileWithConfig(pattern, config)
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// RightToLeft and ECMAScript are rejected with an UnsupportedOption error,
// as is a pattern that can match the empty string or matches no character.
// Parse failures are InvalidPattern errors wrapping a *syntax.Error.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	culture := config.Culture
	if config.Options&CultureInvariant != 0 {
		culture = ""
	}

	re, err := syntax.Parse(pattern, syntaxFlags(config.Options))
	if err != nil {
		return nil, &Error{Kind: InvalidPattern, Message: "invalid pattern", Cause: err}
	}

	css := algebra.NewCharSetSolver()
	b := symbolic.NewBuilder[*algebra.BDD](css)
	conv := convert.New(css, b, culture)
	root, err := conv.Convert(re)
	if err != nil {
		if errors.Is(err, convert.ErrUnsupportedOp) {
			return nil, &Error{Kind: UnsupportedOption, Message: "unsupported construct", Cause: err}
		}
		return nil, err
	}

	engine, err := matcher.Compile(css, root, conv.WordLetterPredicate(), conv.NewlinePredicate(), matcher.Settings{
		Options: config.Options,
		Timeout: config.Timeout,
		Culture: culture,
		Config:  config.Config,
	})
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, pattern: pattern}, nil
}

// syntaxFlags maps options to parser flags.
func syntaxFlags(options Options) syntax.Flags {
	flags := syntax.Perl
	if options&IgnoreCase != 0 {
		flags |= syntax.FoldCase
	}
	if options&Multiline != 0 {
		flags &^= syntax.OneLine
	}
	if options&Singleline != 0 {
		flags |= syntax.DotNL
	}
	return flags
}

// Pattern returns the source text of the regex, or "" for a deserialized
// one.
func (r *Regex) Pattern() string {
	return r.pattern
}

// Options returns the pattern options.
func (r *Regex) Options() Options {
	return r.engine.Options()
}

// Culture returns the culture used for case folding.
func (r *Regex) Culture() string {
	return r.engine.Culture()
}

// Timeout returns the search timeout, 0 when none.
func (r *Regex) Timeout() time.Duration {
	return r.engine.Timeout()
}

// Stats returns a snapshot of the search counters.
func (r *Regex) Stats() Stats {
	return r.engine.Stats()
}

// ResetStats zeroes the search counters.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}
