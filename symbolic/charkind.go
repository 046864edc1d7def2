package symbolic

// CharKind classifies the character adjacent to a scan position. Anchors are
// nullable or not depending on the kinds on both sides of a position.
type CharKind uint8

// Character kinds.
const (
	// KindNone is any character not covered by another kind.
	KindNone CharKind = iota
	// KindStart stands for the position before the first character.
	KindStart
	// KindEnd stands for the position after the last character.
	KindEnd
	// KindNewline is a '\n' that is not the last character.
	KindNewline
	// KindNewlineZ is a '\n' that is the last character of the input.
	KindNewlineZ
	// KindWordLetter is a word character.
	KindWordLetter
)

// CharKindCount is the number of character kinds.
const CharKindCount = 6

var kindNames = [CharKindCount]string{"None", "Start", "End", "Newline", "NewlineZ", "WordLetter"}

func (k CharKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "CharKind(?)"
}

// IsWordLetter reports whether k is KindWordLetter.
func (k CharKind) IsWordLetter() bool { return k == KindWordLetter }

// startsLine reports whether a line begins after a character of kind k.
func (k CharKind) startsLine() bool {
	return k == KindStart || k == KindNewline || k == KindNewlineZ
}

// endsLine reports whether a line ends before a character of kind k.
func (k CharKind) endsLine() bool {
	return k == KindEnd || k == KindNewline || k == KindNewlineZ
}
