package matcher

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/coregx/srm/algebra"
	"github.com/coregx/srm/internal/textenc"
	"github.com/coregx/srm/symbolic"
)

// Serialized matchers are one line of visible ASCII: fragmentCount
// fragments joined by fragmentSeparator, which no fragment contains.
const (
	fragmentSeparator = "#"
	fragmentCount     = 15
)

// Fragment order.
const (
	fragCulture = iota
	fragAlgebra
	fragNode
	fragOptions
	fragWordPred
	fragNewlinePred
	fragStartSet
	fragStartClassifier
	fragStartSetSize
	fragStartSetChars
	fragPrefix
	fragIgnoreCase
	fragArPrefix
	fragClassifier
	fragTimeout
)

// String returns the serialized form of m.
func (m *Matcher[P]) String() string {
	f := make([]string, fragmentCount)
	f[fragCulture] = textenc.EncodeString(m.settings.Culture)
	f[fragAlgebra] = m.alg.Serialize()
	f[fragNode] = m.b.Serialize(m.a)
	f[fragOptions] = textenc.EncodeUint(uint64(m.settings.Options))
	f[fragWordPred] = m.alg.SerializePredicate(m.wordPred)
	f[fragNewlinePred] = m.alg.SerializePredicate(m.newlinePred)
	f[fragStartSet] = m.alg.SerializePredicate(m.startSet)
	f[fragStartClassifier] = m.startClassifier.Serialize()
	f[fragStartSetSize] = textenc.EncodeUint(m.startSetSize)
	chars := make([]uint64, len(m.startSetChars))
	for i, c := range m.startSetChars {
		chars[i] = uint64(c)
	}
	f[fragStartSetChars] = textenc.EncodeUints(chars, ',')
	f[fragPrefix] = textenc.EncodeString(m.prefix)
	f[fragIgnoreCase] = strconv.FormatBool(m.ignoreCase)
	f[fragArPrefix] = textenc.EncodeString(m.arPrefix)
	f[fragClassifier] = m.classifier.Serialize()
	if m.settings.Timeout > 0 {
		f[fragTimeout] = textenc.EncodeInt(int(m.settings.Timeout))
	}
	return strings.Join(f, fragmentSeparator)
}

// Deserialize restores a matcher from text written by String. The algebra
// is rebuilt from the algebra fragment alone; cfg tunes the restored
// matcher.
func Deserialize(text string, cfg Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fragments := strings.Split(strings.TrimRight(text, "\r\n"), fragmentSeparator)
	if len(fragments) != fragmentCount {
		return nil, errorf(SerializationFormat, nil, "expected %d fragments, got %d", fragmentCount, len(fragments))
	}
	wide, atoms, err := algebra.DecodeAlgebra(fragments[fragAlgebra])
	if err != nil {
		return nil, fragmentError(fragAlgebra, err)
	}
	if wide {
		alg, err := algebra.NewBVAlgebra(atoms)
		if err != nil {
			return nil, fragmentError(fragAlgebra, err)
		}
		return deserialize[*algebra.BV](alg, fragments, cfg)
	}
	alg, err := algebra.NewBV64Algebra(atoms)
	if err != nil {
		return nil, fragmentError(fragAlgebra, err)
	}
	return deserialize[uint64](alg, fragments, cfg)
}

func fragmentError(i int, err error) error {
	return errorf(SerializationFormat, err, "malformed fragment %d", i+1)
}

func deserialize[P comparable](alg algebra.MintermAlgebra[P], f []string, cfg Config) (Engine, error) {
	var s Settings
	var an analysis[P]
	s.Config = cfg

	culture, err := textenc.DecodeString(f[fragCulture])
	if err != nil {
		return nil, fragmentError(fragCulture, err)
	}
	s.Culture = culture

	b := symbolic.NewBuilder[P](alg)
	a, err := b.Deserialize(f[fragNode])
	if err != nil {
		return nil, fragmentError(fragNode, err)
	}
	if !a.Info().ContainsSomeCharacter() || a.CanBeNullable() {
		return nil, fragmentError(fragNode, fmt.Errorf("pattern %v cannot be matched", a))
	}

	opts, err := textenc.DecodeUint(f[fragOptions])
	if err == nil && opts > math.MaxUint32 {
		err = fmt.Errorf("option bits %x out of range", opts)
	}
	if err != nil {
		return nil, fragmentError(fragOptions, err)
	}
	s.Options = Options(opts)

	var preds [3]P
	for i, frag := range []int{fragWordPred, fragNewlinePred, fragStartSet} {
		if preds[i], err = alg.DeserializePredicate(f[frag]); err != nil {
			return nil, fragmentError(frag, err)
		}
	}
	word, newline := preds[0], preds[1]
	an.startSet = preds[2]

	if an.startClassifier, err = algebra.DeserializeBooleanClassifier(f[fragStartClassifier]); err != nil {
		return nil, fragmentError(fragStartClassifier, err)
	}
	if an.startSetSize, err = textenc.DecodeUint(f[fragStartSetSize]); err != nil {
		return nil, fragmentError(fragStartSetSize, err)
	}
	chars, err := textenc.DecodeUints(f[fragStartSetChars], ',')
	if err != nil {
		return nil, fragmentError(fragStartSetChars, err)
	}
	for _, c := range chars {
		if c > uint64(algebra.MaxCodePoint) {
			return nil, fragmentError(fragStartSetChars, fmt.Errorf("code point %x out of range", c))
		}
		an.startSetChars = append(an.startSetChars, rune(c))
	}

	if an.prefix, err = textenc.DecodeString(f[fragPrefix]); err != nil {
		return nil, fragmentError(fragPrefix, err)
	}
	if an.ignoreCase, err = strconv.ParseBool(f[fragIgnoreCase]); err != nil {
		return nil, fragmentError(fragIgnoreCase, err)
	}
	if an.arPrefix, err = textenc.DecodeString(f[fragArPrefix]); err != nil {
		return nil, fragmentError(fragArPrefix, err)
	}

	classifier, err := algebra.DeserializeClassifier(f[fragClassifier], alg.AtomCount())
	if err != nil {
		return nil, fragmentError(fragClassifier, err)
	}

	if t := f[fragTimeout]; t != "" {
		ns, err := textenc.DecodeInt(t)
		if err == nil && ns <= 0 {
			err = fmt.Errorf("timeout %d is not positive", ns)
		}
		if err != nil {
			return nil, fragmentError(fragTimeout, err)
		}
		s.Timeout = time.Duration(ns)
	}

	m := newMatcher(alg, b, a, word, newline, s)
	if classifier.Serialize() != m.classifier.Serialize() {
		return nil, fragmentError(fragClassifier, errInconsistent)
	}
	want, err := m.verify(an)
	if err != nil {
		return nil, err
	}
	m.setup(want)
	return m, nil
}

var errInconsistent = errors.New("inconsistent with the pattern")

// verify checks the derived fragments read back in got against the analysis
// of the restored pattern, and returns that analysis.
func (m *Matcher[P]) verify(got analysis[P]) (analysis[P], error) {
	want := m.analyze()
	frag := -1
	switch {
	case got.startSet != want.startSet:
		frag = fragStartSet
	case got.startClassifier.Serialize() != want.startClassifier.Serialize():
		frag = fragStartClassifier
	case got.startSetSize != want.startSetSize:
		frag = fragStartSetSize
	case len(got.startSetChars) > 0 && (uint64(len(got.startSetChars)) != want.startSetSize ||
		!slices.Equal(got.startSetChars, enumerate(m.alg.Ranges(want.startSet)))):
		frag = fragStartSetChars
	case got.prefix != want.prefix:
		frag = fragPrefix
	case got.ignoreCase != want.ignoreCase:
		frag = fragIgnoreCase
	case got.arPrefix != want.arPrefix:
		frag = fragArPrefix
	}
	if frag >= 0 {
		return want, fragmentError(frag, errInconsistent)
	}
	return want, nil
}

// enumerate lists the code points of rs.
func enumerate(rs []algebra.RuneRange) []rune {
	var out []rune
	for _, r := range rs {
		for c := r.Lo; c <= r.Hi; c++ {
			out = append(out, c)
		}
	}
	return out
}
