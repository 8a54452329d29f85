package grid

import "testing"

func TestParseDisplayRoundTrip(t *testing.T) {
	cases := []string{
		"ABC\nDEF\nGHI",
		"XX.\nX..\nXXX",
		"SIAM\nN.EM\nRYAL",
	}

	for _, text := range cases {
		g, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", text, err)
		}

		g2, err := Parse(g.Display())
		if err != nil {
			t.Fatalf("Parse(Display()) failed: %v", err)
		}

		if !g.Equal(g2) {
			t.Errorf("round trip mismatch: got %q, want %q", g2.Display(), g.Display())
		}
	}
}

func TestParseSkipsBlankLeadingTrailingLines(t *testing.T) {
	g, err := Parse("\n\n  \nABC\nDEF\n\n\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("got %dx%d, want 3x2", g.Width(), g.Height())
	}
}

func TestParseLowercaseLettersAndBlockMarkers(t *testing.T) {
	g, err := Parse("ab:\nx.X")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if g.At(0, 0) != 'A' || g.At(0, 1) != 'B' || !IsBlock(g.At(0, 2)) {
		t.Errorf("row 0 parsed incorrectly: %q", g.Display())
	}
	if !IsEmpty(g.At(1, 0)) || !IsBlock(g.At(1, 1)) || !IsEmpty(g.At(1, 2)) {
		t.Errorf("row 1 parsed incorrectly: %q", g.Display())
	}
}

func TestParseRaggedRowsRejected(t *testing.T) {
	_, err := Parse("ABC\nDE")
	if err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestParseEmptyInputRejected(t *testing.T) {
	_, err := Parse("\n\n\n")
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseInvalidCellRejected(t *testing.T) {
	_, err := Parse("AB9")
	if err == nil {
		t.Fatal("expected error for invalid cell character")
	}
}

func TestSetReturnsNewGridLeavesOriginalUntouched(t *testing.T) {
	g, err := Parse("XX\nXX")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	g2 := g.Set(0, 0, 'A')

	if g.At(0, 0) != Empty {
		t.Errorf("original grid mutated: got %q", string(g.At(0, 0)))
	}
	if g2.At(0, 0) != 'A' {
		t.Errorf("new grid missing set cell: got %q", string(g2.At(0, 0)))
	}
	if !g.SameShape(g2) {
		t.Error("Set must preserve dimensions and block pattern")
	}
}

func TestSameShapeDependsOnlyOnBlockPattern(t *testing.T) {
	a, _ := Parse("AB.\nCDE")
	b, _ := Parse("XX.\nXXX")
	if !a.SameShape(b) {
		t.Error("grids with identical block patterns but different letters should share shape")
	}

	c, _ := Parse("AB.\nCD.")
	if a.SameShape(c) {
		t.Error("grids with different block patterns should not share shape")
	}
}

func TestHasEmptyCells(t *testing.T) {
	full, _ := Parse("AB\nCD")
	if full.HasEmptyCells() {
		t.Error("fully-lettered grid should report no empty cells")
	}

	partial, _ := Parse("AX\nCD")
	if !partial.HasEmptyCells() {
		t.Error("partially-filled grid should report empty cells")
	}
}
