package matcher

import (
	"regexp/syntax"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/coregx/srm/algebra"
	"github.com/coregx/srm/convert"
	"github.com/coregx/srm/symbolic"
)

// compileEngine parses pattern and compiles it with the given options and
// configuration.
func compileEngine(t testing.TB, pattern string, opts Options, timeout time.Duration, cfg Config) Engine {
	t.Helper()
	eng, err := tryCompile(pattern, opts, timeout, cfg)
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return eng
}

func tryCompile(pattern string, opts Options, timeout time.Duration, cfg Config) (Engine, error) {
	flags := syntax.Perl
	if opts&IgnoreCase != 0 {
		flags |= syntax.FoldCase
	}
	if opts&Multiline != 0 {
		flags &^= syntax.OneLine
	}
	if opts&Singleline != 0 {
		flags |= syntax.DotNL
	}
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, errorf(InvalidPattern, err, "invalid pattern %q", pattern)
	}
	css := algebra.NewCharSetSolver()
	b := symbolic.NewBuilder[*algebra.BDD](css)
	c := convert.New(css, b, "")
	root, err := c.Convert(re)
	if err != nil {
		return nil, err
	}
	return Compile(css, root, c.WordLetterPredicate(), c.NewlinePredicate(), Settings{
		Options: opts,
		Timeout: timeout,
		Config:  cfg,
	})
}

// matchAll collects the successive matches of eng in input.
func matchAll(t testing.TB, eng Engine, input string) []Match {
	t.Helper()
	out, err := findAll(eng, input)
	if err != nil {
		t.Fatalf("matches of %q: %v", input, err)
	}
	return out
}

func findAll(eng Engine, input string) ([]Match, error) {
	var out []Match
	data := []byte(input)
	for start := 0; start < len(data); {
		m, err := eng.FindMatch(data, start, -1)
		if err != nil {
			return nil, err
		}
		if !m.Success() {
			break
		}
		out = append(out, m)
		step := m.Length
		if step == 0 {
			_, step = utf8.DecodeRune(data[m.Index:])
		}
		start = m.Index + step
	}
	return out, nil
}
