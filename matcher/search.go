package matcher

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// clock implements the cooperative timeout. A nil clock never expires.
type clock struct {
	deadline time.Time
	timeout  time.Duration
	every    int
	left     int
}

func (m *Matcher[P]) newClock() *clock {
	if m.settings.Timeout <= 0 {
		return nil
	}
	every := m.settings.Config.TimeoutCheckFrequency
	return &clock{
		deadline: time.Now().Add(m.settings.Timeout),
		timeout:  m.settings.Timeout,
		every:    every,
		left:     every,
	}
}

// tick reads the clock every c.every calls.
func (c *clock) tick() error {
	if c == nil {
		return nil
	}
	if c.left--; c.left > 0 {
		return nil
	}
	c.left = c.every
	if time.Now().Before(c.deadline) {
		return nil
	}
	return &Error{Kind: Timeout, Message: "match timeout", Timeout: c.timeout}
}

// checkRange validates [start, end) against input and resolves a negative
// end to len(input).
func checkRange(input []byte, start, end int) (int, error) {
	if end < 0 {
		end = len(input)
	}
	if start < 0 || start > len(input) || end > len(input) || end < start {
		return 0, errorf(ArgumentRange, nil, "range [%d, %d) outside input of length %d", start, end, len(input))
	}
	return end, nil
}

// FindMatch returns the first match within input[start:end], or NoMatch.
// A negative end stands for len(input).
func (m *Matcher[P]) FindMatch(input []byte, start, end int) (Match, error) {
	return m.find(false, input, start, end)
}

// IsMatch reports whether input[start:end] contains a match. Only the
// first phase of the search runs.
func (m *Matcher[P]) IsMatch(input []byte, start, end int) (bool, error) {
	match, err := m.find(true, input, start, end)
	return match.Success(), err
}

func (m *Matcher[P]) find(quick bool, input []byte, start, end int) (Match, error) {
	k, err := checkRange(input, start, end)
	if err != nil {
		return NoMatch, err
	}
	m.stats.searches.Add(1)
	c := m.newClock()
	matchEnd, iq0, watchdog, err := m.findFinalPosition(c, input, start, k)
	if err != nil {
		m.stats.timeouts.Add(1)
		return NoMatch, err
	}
	if matchEnd < 0 {
		return NoMatch, nil
	}
	if quick {
		return Match{Index: matchEnd, Length: 0}, nil
	}
	if watchdog > 0 && m.settings.Config.UseWatchdog {
		m.stats.watchdogShortcuts.Add(1)
		matchStart := matchEnd
		for range watchdog {
			_, w := utf8.DecodeLastRune(input[:matchStart])
			matchStart -= w
		}
		return Match{Index: matchStart, Length: matchEnd - matchStart}, nil
	}
	matchStart, err := m.findStartPosition(c, input, matchEnd, iq0)
	if err == nil {
		matchEnd, err = m.findEndPosition(c, input, matchStart, k)
	}
	if err != nil {
		m.stats.timeouts.Add(1)
		return NoMatch, err
	}
	return Match{Index: matchStart, Length: matchEnd - matchStart}, nil
}

// findFinalPosition scans input[i:k] with A1 for the earliest position where
// a match ends. It returns that position (exclusive), or -1, together with
// the last position where A1 was in an initial state and the watchdog of
// the accepting state.
func (m *Matcher[P]) findFinalPosition(c *clock, input []byte, i, k int) (end, iq0, watchdog int, err error) {
	q := m.a1q0[m.prevKind(input, i)]
	iq0 = i
	if q.nothing {
		// A starts with \A and i is not the start.
		return -1, iq0, -1, nil
	}
	haystack := input[:k]
	for i < k {
		if q.initial {
			iq0 = i
			switch {
			case m.prefixSearch != nil:
				p := m.prefixSearch.index(haystack, i)
				if p < 0 {
					return -1, iq0, -1, nil
				}
				m.stats.prefixSkips.Add(1)
				iq0, i = p, p
				if m.ignoreCase {
					q = m.a1q0[m.prevKind(input, i)]
					break
				}
				q = m.a1SkipState(m.prevKind(input, i))
				i += len(m.prefix)
				if q.nullable[m.nextKind(input, i)] {
					return i, iq0, q.watchdog, nil
				}
				if q.nothing || i >= k {
					return -1, iq0, -1, nil
				}
			case m.startSearch != nil:
				p := m.startSearch.index(haystack, i)
				if p < 0 {
					return -1, iq0, -1, nil
				}
				m.stats.startSetSkips.Add(1)
				iq0, i = p, p
				q = m.a1q0[m.prevKind(input, i)]
				if q.nothing {
					return -1, iq0, -1, nil
				}
			}
		}
		r, w := utf8.DecodeRune(haystack[i:])
		q = m.step(q, r, i+w == len(input))
		i += w
		if q.nullable[m.nextKind(input, i)] {
			return i, iq0, q.watchdog, nil
		}
		if q.nothing {
			return -1, iq0, -1, nil
		}
		if err := c.tick(); err != nil {
			return -1, iq0, -1, err
		}
	}
	return -1, iq0, -1, nil
}

// findStartPosition walks back from the match end with Ar and returns the
// earliest position where Ar accepts. It does not pass boundary.
func (m *Matcher[P]) findStartPosition(c *clock, input []byte, end, boundary int) (int, error) {
	pos := end
	prev := m.revPrevKind(input, pos)
	q := m.arq0[prev]
	if m.arPrefix != "" {
		q = m.arSkipState(prev)
		pos -= len(m.arPrefix)
		if pos == 0 {
			return 0, nil
		}
	}
	start := -1
	if q.nullable[m.revNextKind(input, pos)] {
		start = pos
	}
	for pos > boundary {
		r, w := utf8.DecodeLastRune(input[:pos])
		q = m.step(q, r, pos == len(input))
		pos -= w
		if q.nothing {
			break
		}
		if q.nullable[m.revNextKind(input, pos)] {
			start = pos
		}
		if err := c.tick(); err != nil {
			return -1, err
		}
	}
	if start < 0 {
		panic(fmt.Sprintf("matcher: no match start before offset %d", end))
	}
	return start, nil
}

// findEndPosition runs A forward from the match start and returns the end
// of the longest match, or of the shortest for a lazy pattern.
func (m *Matcher[P]) findEndPosition(c *clock, input []byte, i, k int) (int, error) {
	q := m.aq0[m.prevKind(input, i)]
	end := -1
	for i < k {
		r, w := utf8.DecodeRune(input[i:k])
		q = m.step(q, r, i+w == len(input))
		i += w
		if q.nullable[m.nextKind(input, i)] {
			if q.lazy {
				return i, nil
			}
			end = i
		} else if q.nothing {
			break
		}
		if err := c.tick(); err != nil {
			return -1, err
		}
	}
	if end < 0 {
		panic(fmt.Sprintf("matcher: no match end after offset %d", i))
	}
	return end, nil
}
