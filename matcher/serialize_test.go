package matcher

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSerialize_RoundTrip(t *testing.T) {
	for _, tc := range searchCorpus {
		t.Run(tc.pattern, func(t *testing.T) {
			eng := compileEngine(t, tc.pattern, tc.opts, 0, DefaultConfig())
			text := eng.String()
			if strings.Count(text, fragmentSeparator) != fragmentCount-1 {
				t.Fatalf("serialized form has %d separators: %q", strings.Count(text, fragmentSeparator), text)
			}
			for i := 0; i < len(text); i++ {
				if c := text[i]; c <= ' ' || c > '~' {
					t.Fatalf("serialized form has byte %#x at %d", c, i)
				}
			}
			restored, err := Deserialize(text, DefaultConfig())
			if err != nil {
				t.Fatalf("Deserialize: %v", err)
			}
			if diff := cmp.Diff(matchAll(t, eng, tc.input), matchAll(t, restored, tc.input)); diff != "" {
				t.Errorf("restored matcher differs (-orig +restored):\n%s", diff)
			}
			if got := restored.String(); got != text {
				t.Errorf("re-serialized form differs:\n got %q\nwant %q", got, text)
			}
			if restored.Options() != tc.opts {
				t.Errorf("Options() = %v, want %v", restored.Options(), tc.opts)
			}
		})
	}
}

func TestSerialize_WideAlgebra(t *testing.T) {
	// 70 distinct letters split the alphabet into more than 64 atoms.
	var sb strings.Builder
	for i, c := range "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789αβγδεζηθικλμ" {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteRune(c)
		sb.WriteRune(c)
	}
	eng := compileEngine(t, sb.String(), None, 0, DefaultConfig())
	if eng.AtomCount() <= 64 {
		t.Fatalf("AtomCount() = %d, want > 64", eng.AtomCount())
	}
	text := eng.String()
	if !strings.Contains(text, "#BV:") {
		t.Errorf("wide algebra not recorded in %q", text)
	}
	restored, err := Deserialize(text, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	input := "xx λλ zz 77 αβ"
	if diff := cmp.Diff(matchAll(t, eng, input), matchAll(t, restored, input)); diff != "" {
		t.Errorf("restored matcher differs (-orig +restored):\n%s", diff)
	}
}

func TestSerialize_Settings(t *testing.T) {
	eng := compileEngine(t, `abc`, IgnoreCase|Multiline, 250*time.Millisecond, DefaultConfig())
	restored, err := Deserialize(eng.String(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if restored.Timeout() != 250*time.Millisecond {
		t.Errorf("Timeout() = %v, want 250ms", restored.Timeout())
	}
	if restored.Options() != IgnoreCase|Multiline {
		t.Errorf("Options() = %v, want IgnoreCase|Multiline", restored.Options())
	}
	if restored.Culture() != "" {
		t.Errorf("Culture() = %q, want empty", restored.Culture())
	}
}

func TestDeserialize_Errors(t *testing.T) {
	text := compileEngine(t, `a[0-9]+`, None, 0, DefaultConfig()).String()
	fragments := strings.Split(text, fragmentSeparator)
	corrupt := func(i int, with string) string {
		f := append([]string(nil), fragments...)
		f[i] = with
		return strings.Join(f, fragmentSeparator)
	}
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"too few", strings.Join(fragments[:10], fragmentSeparator)},
		{"too many", text + fragmentSeparator},
		{"algebra kind", corrupt(fragAlgebra, "XX:0")},
		{"node", corrupt(fragNode, "(")},
		{"options", corrupt(fragOptions, "!")},
		{"culture", corrupt(fragCulture, "*")},
		{"ignore case", corrupt(fragIgnoreCase, "maybe")},
		{"timeout", corrupt(fragTimeout, "!")},
		{"start chars", corrupt(fragStartSetChars, "1,!")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(tt.text, DefaultConfig())
			if !errors.Is(err, ErrSerializationFormat) {
				t.Errorf("Deserialize error = %v, want SerializationFormat", err)
			}
		})
	}
}

func TestDeserialize_InconsistentFragments(t *testing.T) {
	text := compileEngine(t, `hello`, None, 0, DefaultConfig()).String()
	fragments := strings.Split(text, fragmentSeparator)
	other := strings.Split(compileEngine(t, `jellp`, None, 0, DefaultConfig()).String(), fragmentSeparator)
	corrupt := func(i int, with string) string {
		f := append([]string(nil), fragments...)
		f[i] = with
		return strings.Join(f, fragmentSeparator)
	}
	tests := []struct {
		name string
		frag int
		with string
	}{
		{"reverse prefix", fragArPrefix, "b2xs"}, // "oll"
		{"empty reverse prefix", fragArPrefix, ""},
		{"prefix", fragPrefix, "aGVscA"}, // "help"
		{"missing prefix", fragPrefix, ""},
		{"ignore case", fragIgnoreCase, "true"},
		{"start set", fragStartSet, fragments[fragWordPred]},
		{"start set size", fragStartSetSize, "2"},
		{"start chars", fragStartSetChars, "1"},
		{"start classifier", fragStartClassifier, other[fragStartClassifier]},
		{"classifier", fragClassifier, other[fragClassifier]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.with == fragments[tt.frag] {
				t.Fatalf("fragment %d is already %q", tt.frag, tt.with)
			}
			_, err := Deserialize(corrupt(tt.frag, tt.with), DefaultConfig())
			if !errors.Is(err, ErrSerializationFormat) {
				t.Errorf("Deserialize error = %v, want SerializationFormat", err)
			}
		})
	}
}

// TestDeserialize_MutatedDerivedFragments flips bytes of the fragments that
// are derived from the pattern. A restored matcher must behave like the
// original, or the text must be rejected.
func TestDeserialize_MutatedDerivedFragments(t *testing.T) {
	for _, pattern := range []string{`hello`, `[0-9]{3}-[0-9]{4}`, `ab+c|xyz`, `\bfoo\w*`} {
		eng := compileEngine(t, pattern, None, 0, DefaultConfig())
		input := "say hello, call 555-1234, abbc xyz foobar"
		want := matchAll(t, eng, input)
		fragments := strings.Split(eng.String(), fragmentSeparator)
		for frag := fragStartSet; frag <= fragArPrefix; frag++ {
			for i := 0; i < len(fragments[frag]); i++ {
				for _, c := range []byte("0Az") {
					if fragments[frag][i] == c {
						continue
					}
					f := append([]string(nil), fragments...)
					f[frag] = f[frag][:i] + string(c) + f[frag][i+1:]
					restored, err := Deserialize(strings.Join(f, fragmentSeparator), DefaultConfig())
					if err != nil {
						if !errors.Is(err, ErrSerializationFormat) {
							t.Fatalf("%s: fragment %d: error = %v", pattern, frag, err)
						}
						continue
					}
					if diff := cmp.Diff(want, matchAll(t, restored, input)); diff != "" {
						t.Errorf("%s: fragment %d byte %d = %q: matches differ (-want +got):\n%s", pattern, frag, i, c, diff)
					}
				}
			}
		}
	}
}

func TestDeserialize_WatchdogDisabled(t *testing.T) {
	eng := compileEngine(t, `abc|def`, None, 0, DefaultConfig())
	input := "xxabc def abd"
	want := matchAll(t, eng, input)
	restored, err := Deserialize(eng.String(), DefaultConfig().WithWatchdog(false))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, matchAll(t, restored, input)); diff != "" {
		t.Errorf("matches differ (-want +got):\n%s", diff)
	}
	if s := restored.Stats(); s.WatchdogShortcuts != 0 {
		t.Errorf("WatchdogShortcuts = %d with the watchdog disabled", s.WatchdogShortcuts)
	}
}
