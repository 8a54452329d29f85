package outputfmt

import (
	"strings"
	"testing"

	"github.com/crossplay/fillengine/pkg/grid"
)

func TestFormatAcrossPuzzleIncludesAllSections(t *testing.T) {
	g, err := grid.Parse("ABC\nDEF\nGHI")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	doc := FormatAcrossPuzzle(g, Meta{Title: "Sample", Author: "A. Uthor", Copyright: "© 2026"})

	for _, section := range []string{
		"<ACROSS PUZZLE V2>", "<TITLE>", "Sample", "<AUTHOR>", "A. Uthor",
		"<COPYRIGHT>", "© 2026", "<SIZE>", "3x3", "<GRID>", "ABC", "<ACROSS>", "<DOWN>",
	} {
		if !strings.Contains(doc, section) {
			t.Errorf("output missing %q:\n%s", section, doc)
		}
	}
}

func TestFormatAcrossPuzzleEnumeratesWordsInGridOrder(t *testing.T) {
	g, err := grid.Parse("ABC\nDEF\nGHI")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	doc := FormatAcrossPuzzle(g, Meta{Title: "T", Author: "A", Copyright: "C"})

	across := section(doc, "<ACROSS>", "<DOWN>")
	wantAcross := []string{"1. ABC", "4. DEF", "5. GHI"}
	for _, w := range wantAcross {
		if !strings.Contains(across, w) {
			t.Errorf("across section missing %q, got:\n%s", w, across)
		}
	}

	down := section(doc, "<DOWN>", "")
	wantDown := []string{"1. ADG", "2. BEH", "3. CFI"}
	for _, w := range wantDown {
		if !strings.Contains(down, w) {
			t.Errorf("down section missing %q, got:\n%s", w, down)
		}
	}
}

func section(doc, start, end string) string {
	i := strings.Index(doc, start)
	if i < 0 {
		return ""
	}
	rest := doc[i+len(start):]
	if end == "" {
		return rest
	}
	j := strings.Index(rest, end)
	if j < 0 {
		return rest
	}
	return rest[:j]
}

func TestNumberingSharesNumberAcrossDirections(t *testing.T) {
	// A 3x3 grid with no blocks: every top-left cell of a slot gets the
	// next number in row-major scan order; (0,0) starts both an across
	// and a down slot and so shares number 1 between them.
	g, _ := grid.Parse("ABC\nDEF\nGHI")
	doc := FormatAcrossPuzzle(g, Meta{})

	if !strings.Contains(doc, "1. ABC") || !strings.Contains(doc, "1. ADG") {
		t.Errorf("expected the shared starting cell to number both directions 1, got:\n%s", doc)
	}
}
