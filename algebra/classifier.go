package algebra

import (
	"fmt"
	"slices"
	"strings"

	"github.com/coregx/srm/internal/conv"
	"github.com/coregx/srm/internal/textenc"
)

// Classifier maps a code point to the id of the atom containing it.
//
// ASCII code points are resolved through a direct table. Everything else is
// resolved by binary search over the sorted start points of the atom ranges,
// the same points/classes layout a run automaton uses for its alphabet.
type Classifier struct {
	ascii   [128]int32
	points  []rune  // sorted range starts, points[0] == 0
	classes []int32 // classes[i] is the atom of [points[i], points[i+1])
}

// NewClassifier builds a classifier from per-atom range lists. The atoms must
// partition the code point domain.
func NewClassifier(atoms [][]RuneRange) (*Classifier, error) {
	var parts []RuneRange
	var owner []int32
	for id, rs := range atoms {
		for _, r := range rs {
			parts = append(parts, r)
			owner = append(owner, conv.IntToInt32(id))
		}
	}
	idx := make([]int, len(parts))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int { return int(parts[a].Lo - parts[b].Lo) })

	c := &Classifier{}
	next := rune(0)
	for _, i := range idx {
		r := parts[i]
		if r.Lo != next {
			return nil, fmt.Errorf("algebra: atoms do not partition the domain at %#x", next)
		}
		if n := len(c.classes); n > 0 && c.classes[n-1] == owner[i] {
			next = r.Hi + 1
			continue
		}
		c.points = append(c.points, r.Lo)
		c.classes = append(c.classes, owner[i])
		next = r.Hi + 1
	}
	if next != MaxCodePoint+1 {
		return nil, fmt.Errorf("algebra: atoms do not cover the domain above %#x", next)
	}
	c.fillASCII()
	return c, nil
}

func (c *Classifier) fillASCII() {
	for r := range rune(128) {
		c.ascii[r] = c.classes[c.find(r)]
	}
}

func (c *Classifier) find(r rune) int {
	i, found := slices.BinarySearch(c.points, r)
	if !found {
		i--
	}
	return i
}

// Classify returns the atom id of r. A negative value classifies as U+FFFD.
func (c *Classifier) Classify(r rune) int {
	if r >= 0 && r < 128 {
		return int(c.ascii[r])
	}
	if r < 0 {
		r = 0xFFFD
	}
	return int(c.classes[c.find(r)])
}

// Serialize encodes the classifier as "point.class,point.class".
func (c *Classifier) Serialize() string {
	var b []byte
	for i, p := range c.points {
		if i > 0 {
			b = append(b, ',')
		}
		b = textenc.AppendUint(b, uint64(p))
		b = append(b, '.')
		b = textenc.AppendUint(b, uint64(c.classes[i]))
	}
	return string(b)
}

// DeserializeClassifier decodes text written by Classifier.Serialize.
// atomCount bounds the valid class ids.
func DeserializeClassifier(text string, atomCount int) (*Classifier, error) {
	if text == "" {
		return nil, fmt.Errorf("algebra: empty classifier")
	}
	c := &Classifier{}
	for _, part := range strings.Split(text, ",") {
		ps, cs, ok := strings.Cut(part, ".")
		if !ok {
			return nil, fmt.Errorf("algebra: malformed classifier entry %q", part)
		}
		p, err := textenc.DecodeUint(ps)
		if err != nil {
			return nil, err
		}
		cl, err := textenc.DecodeUint(cs)
		if err != nil {
			return nil, err
		}
		if cl >= uint64(atomCount) || p > uint64(MaxCodePoint) { //nolint:gosec // atomCount is positive
			return nil, fmt.Errorf("algebra: classifier entry %q out of range", part)
		}
		if n := len(c.points); (n == 0 && p != 0) || (n > 0 && rune(p) <= c.points[n-1]) { //nolint:gosec // bounded
			return nil, fmt.Errorf("algebra: classifier points not ascending at %q", part)
		}
		c.points = append(c.points, rune(p))     //nolint:gosec // bounded by MaxCodePoint
		c.classes = append(c.classes, int32(cl)) //nolint:gosec // bounded by atomCount
	}
	c.fillASCII()
	return c, nil
}

// BooleanClassifier is a membership test for a fixed character set, with a
// bitmap for ASCII and sorted ranges for the rest.
type BooleanClassifier struct {
	ascii  [2]uint64
	ranges []RuneRange // non-ASCII members, sorted
}

// NewBooleanClassifier builds a classifier for the union of rs.
func NewBooleanClassifier(rs []RuneRange) *BooleanClassifier {
	bc := &BooleanClassifier{}
	for _, r := range rs {
		for c := r.Lo; c <= r.Hi && c < 128; c++ {
			bc.ascii[c>>6] |= 1 << (c & 63)
		}
		if r.Hi >= 128 {
			bc.ranges = append(bc.ranges, RuneRange{max(r.Lo, 128), r.Hi})
		}
	}
	bc.ranges = normalizeRanges(bc.ranges)
	return bc
}

// Contains reports whether r is a member.
func (bc *BooleanClassifier) Contains(r rune) bool {
	if r >= 0 && r < 128 {
		return bc.ascii[r>>6]&(1<<(r&63)) != 0
	}
	return rangesContain(bc.ranges, r)
}

// Serialize encodes the classifier as "lo.hi;ranges".
func (bc *BooleanClassifier) Serialize() string {
	return textenc.EncodeUint(bc.ascii[0]) + "." + textenc.EncodeUint(bc.ascii[1]) + ";" + encodeRanges(bc.ranges)
}

// DeserializeBooleanClassifier decodes text written by BooleanClassifier.Serialize.
func DeserializeBooleanClassifier(text string) (*BooleanClassifier, error) {
	bitmap, rest, ok := strings.Cut(text, ";")
	if !ok {
		return nil, fmt.Errorf("algebra: malformed boolean classifier %q", text)
	}
	words, err := textenc.DecodeUints(bitmap, '.')
	if err != nil {
		return nil, err
	}
	if len(words) != 2 {
		return nil, fmt.Errorf("algebra: boolean classifier bitmap needs 2 words, got %d", len(words))
	}
	rs, err := decodeRanges(rest)
	if err != nil {
		return nil, err
	}
	return &BooleanClassifier{ascii: [2]uint64{words[0], words[1]}, ranges: rs}, nil
}
