package algebra

import "testing"

func TestClassifier(t *testing.T) {
	_, atoms := testAtoms(t)
	c, err := NewClassifier(atoms)
	if err != nil {
		t.Fatal(err)
	}
	// atoms ordered by smallest member: [^0-9a-z], [0-9], [a-z]
	tests := []struct {
		r    rune
		want int
	}{
		{0, 0},
		{' ', 0},
		{'0', 1},
		{'9', 1},
		{'a', 2},
		{'z', 2},
		{'{', 0},
		{'é', 0},
		{0x10FFFF, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.r); got != tt.want {
			t.Errorf("Classify(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}

	back, err := DeserializeClassifier(c.Serialize(), len(atoms))
	if err != nil {
		t.Fatalf("DeserializeClassifier: %v", err)
	}
	for _, tt := range tests {
		if got := back.Classify(tt.r); got != tt.want {
			t.Errorf("deserialized Classify(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestClassifier_Errors(t *testing.T) {
	if _, err := NewClassifier([][]RuneRange{{{1, MaxCodePoint}}}); err == nil {
		t.Error("classifier with a gap at 0 accepted")
	}
	if _, err := NewClassifier([][]RuneRange{{{0, 10}}}); err == nil {
		t.Error("classifier not covering the domain accepted")
	}
	tests := []string{"", "1.0", "0.5", "0.0,0.1", "0;0"}
	for _, text := range tests {
		if _, err := DeserializeClassifier(text, 2); err == nil {
			t.Errorf("DeserializeClassifier(%q) succeeded", text)
		}
	}
}

func TestBooleanClassifier(t *testing.T) {
	bc := NewBooleanClassifier([]RuneRange{{'a', 'c'}, {'x', 0x100}, {0x3000, 0x3010}})
	in := []rune{'a', 'b', 'c', 'x', '~', 0x7F, 0x80, 0x100, 0x3005}
	out := []rune{'d', 'A', 0x101, 0x2FFF, 0x3011, -1}
	for _, r := range in {
		if !bc.Contains(r) {
			t.Errorf("Contains(%q) = false", r)
		}
	}
	for _, r := range out {
		if bc.Contains(r) {
			t.Errorf("Contains(%q) = true", r)
		}
	}
	back, err := DeserializeBooleanClassifier(bc.Serialize())
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range append(in, out...) {
		if back.Contains(r) != bc.Contains(r) {
			t.Errorf("deserialized Contains(%q) differs", r)
		}
	}
	if _, err := DeserializeBooleanClassifier("0.0"); err == nil {
		t.Error("classifier without range list accepted")
	}
}
