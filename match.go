package srm

import "unicode/utf8"

// IsMatch reports whether input[start:end] contains a match. A negative
// end stands for len(input). Only the forward scan runs, so IsMatch is
// cheaper than finding the match.
//
// Character kinds around the range are taken from the whole input: `\b`
// at end looks at input[end].
func (r *Regex) IsMatch(input []byte, start, end int) (bool, error) {
	return r.engine.IsMatch(input, start, end)
}

// IsMatchString reports whether s contains a match.
func (r *Regex) IsMatchString(s string) (bool, error) {
	return r.engine.IsMatch([]byte(s), 0, -1)
}

// Matches returns the successive non-overlapping matches in
// input[start:end]. At most limit matches are returned when limit is
// positive. A negative end stands for len(input).
//
// Each search resumes at the end of the previous match; an empty match
// would resume one character further.
//
// Example:
//
//	re := srm.MustCompile(`a{2,4}`)
//	matches, _ := re.Matches([]byte("..aaaaaaaaaaa.."), 0, 0, -1)
//	// matches = [(2,4) (6,4) (10,3)]
func (r *Regex) Matches(input []byte, limit, start, end int) ([]Match, error) {
	var matches []Match
	m, err := r.engine.FindMatch(input, start, end)
	for err == nil && m.Success() {
		matches = append(matches, m)
		if limit > 0 && len(matches) >= limit {
			break
		}
		next := m.Index + max(m.Length, runeWidth(input, m.Index))
		if next >= len(input) {
			break
		}
		m, err = r.engine.FindMatch(input, next, end)
	}
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// MatchesString returns all matches in s.
func (r *Regex) MatchesString(s string) ([]Match, error) {
	return r.Matches([]byte(s), 0, 0, -1)
}

// runeWidth returns the width of the rune at i, at least 1.
func runeWidth(b []byte, i int) int {
	if i >= len(b) {
		return 1
	}
	_, w := utf8.DecodeRune(b[i:])
	return w
}

// The methods below follow the standard library regexp API. They report a
// search that fails, a timeout in particular, as no match; use IsMatch and
// Matches to observe the error.

// Match reports whether b contains a match.
//
// Example:
//
//	re := srm.MustCompile(`\d+`)
//	if re.Match([]byte("hello 123")) {
//	    println("contains digits")
//	}
func (r *Regex) Match(b []byte) bool {
	ok, err := r.engine.IsMatch(b, 0, -1)
	return ok && err == nil
}

// MatchString reports whether s contains a match.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// FindIndex returns the location of the first match in b as b[loc[0]:loc[1]],
// or nil.
func (r *Regex) FindIndex(b []byte) []int {
	m, err := r.engine.FindMatch(b, 0, -1)
	if err != nil || !m.Success() {
		return nil
	}
	return []int{m.Index, m.End()}
}

// FindStringIndex is FindIndex for a string.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// Find returns the text of the first match in b, or nil.
//
// Example:
//
//	re := srm.MustCompile(`\d+`)
//	match := re.Find([]byte("age: 42"))
//	println(string(match)) // "42"
func (r *Regex) Find(b []byte) []byte {
	loc := r.FindIndex(b)
	if loc == nil {
		return nil
	}
	return b[loc[0]:loc[1]:loc[1]]
}

// FindString returns the text of the first match in s, or "".
func (r *Regex) FindString(s string) string {
	loc := r.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindAllIndex returns the locations of the successive matches in b.
// If n >= 0, it returns at most n matches.
//
// Example:
//
//	re := srm.MustCompile(`\d+`)
//	indices := re.FindAllIndex([]byte("1 2 3"), -1)
//	// indices = [[0,1], [2,3], [4,5]]
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	matches, err := r.Matches(b, max(n, 0), 0, -1)
	if err != nil || len(matches) == 0 {
		return nil
	}
	indices := make([][]int, len(matches))
	for i, m := range matches {
		indices[i] = []int{m.Index, m.End()}
	}
	return indices
}

// FindAllStringIndex is FindAllIndex for a string.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.FindAllIndex([]byte(s), n)
}

// FindAll returns the text of the successive matches in b.
// If n >= 0, it returns at most n matches.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	indices := r.FindAllIndex(b, n)
	if indices == nil {
		return nil
	}
	out := make([][]byte, len(indices))
	for i, loc := range indices {
		out[i] = b[loc[0]:loc[1]:loc[1]]
	}
	return out
}

// FindAllString returns the text of the successive matches in s.
// If n >= 0, it returns at most n matches.
//
// Example:
//
//	re := srm.MustCompile(`\d+`)
//	matches := re.FindAllString("1 2 3", -1)
//	// matches = ["1", "2", "3"]
func (r *Regex) FindAllString(s string, n int) []string {
	indices := r.FindAllStringIndex(s, n)
	if indices == nil {
		return nil
	}
	out := make([]string, len(indices))
	for i, loc := range indices {
		out[i] = s[loc[0]:loc[1]]
	}
	return out
}

// Count returns the number of successive matches in b.
// If n >= 0, it counts at most n matches.
func (r *Regex) Count(b []byte, n int) int {
	return len(r.FindAllIndex(b, n))
}

// CountString is Count for a string.
func (r *Regex) CountString(s string, n int) int {
	return r.Count([]byte(s), n)
}

// ReplaceAllLiteral returns a copy of src with every match replaced by repl.
//
// Example:
//
//	re := srm.MustCompile(`\d+`)
//	result := re.ReplaceAllLiteral([]byte("age: 42"), []byte("XX"))
//	// result = []byte("age: XX")
func (r *Regex) ReplaceAllLiteral(src, repl []byte) []byte {
	indices := r.FindAllIndex(src, -1)
	result := make([]byte, 0, len(src))
	last := 0
	for _, loc := range indices {
		result = append(result, src[last:loc[0]]...)
		result = append(result, repl...)
		last = loc[1]
	}
	return append(result, src[last:]...)
}

// ReplaceAllLiteralString is ReplaceAllLiteral for strings.
func (r *Regex) ReplaceAllLiteralString(src, repl string) string {
	return string(r.ReplaceAllLiteral([]byte(src), []byte(repl)))
}

// Split slices s into the substrings between matches.
//
// The count determines the number of substrings to return:
//
//	n > 0: at most n substrings; the last substring will be the unsplit remainder.
//	n == 0: the result is nil (zero substrings)
//	n < 0: all substrings
//
// Example:
//
//	re := srm.MustCompile(`,`)
//	parts := re.Split("a,b,c", 2)
//	// parts = ["a", "b,c"]
func (r *Regex) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}
	count := -1
	if n > 0 {
		count = n - 1
	}
	indices := r.FindAllStringIndex(s, count)
	parts := make([]string, 0, len(indices)+1)
	last := 0
	for _, loc := range indices {
		parts = append(parts, s[last:loc[0]])
		last = loc[1]
	}
	return append(parts, s[last:])
}
