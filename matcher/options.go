package matcher

import "strings"

// Options are pattern options. The bit values are part of the serialized
// form and must not change.
type Options uint32

// Pattern options.
const (
	// None selects the defaults.
	None Options = 0
	// IgnoreCase matches letters case-insensitively.
	IgnoreCase Options = 1 << 0
	// Multiline makes ^ and $ match at line breaks.
	Multiline Options = 1 << 1
	// ExplicitCapture is accepted and has no effect; groups never capture.
	ExplicitCapture Options = 1 << 2
	// Singleline makes . match '\n'.
	Singleline Options = 1 << 4
	// RightToLeft is rejected.
	RightToLeft Options = 1 << 6
	// ECMAScript is rejected.
	ECMAScript Options = 1 << 8
	// CultureInvariant ignores the culture for case folding.
	CultureInvariant Options = 1 << 9
)

var optionNames = []struct {
	o    Options
	name string
}{
	{IgnoreCase, "IgnoreCase"},
	{Multiline, "Multiline"},
	{ExplicitCapture, "ExplicitCapture"},
	{Singleline, "Singleline"},
	{RightToLeft, "RightToLeft"},
	{ECMAScript, "ECMAScript"},
	{CultureInvariant, "CultureInvariant"},
}

// String returns the option names joined by '|'.
func (o Options) String() string {
	if o == None {
		return "None"
	}
	var names []string
	for _, n := range optionNames {
		if o&n.o != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}
