// Package outputfmt renders a filled grid to the ACROSS PUZZLE V2
// tagged-section textual format: title/author/copyright/dimensions/
// grid/word-list output, numbered and ordered the way standard
// crossword publishing tools expect.
package outputfmt

import (
	"fmt"
	"strings"

	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/slotindex"
)

// Meta carries the puzzle-level fields ACROSS PUZZLE V2 requires beyond
// the grid itself. None of these are derived from the grid or the
// Filler; the caller supplies them (see cmd/crossgen's --title etc.).
type Meta struct {
	Title     string
	Author    string
	Copyright string
}

// Entry is one enumerated word: its grid-assigned clue number and text.
type Entry struct {
	Number int
	Word   string
}

// FormatAcrossPuzzle renders g and meta as an ACROSS PUZZLE V2 document.
// g must have no empty cells; every slot's letters are read directly off
// it, with no clue text attached since clue generation is out of scope.
func FormatAcrossPuzzle(g *grid.Grid, meta Meta) string {
	idx := slotindex.Build(g)
	across, down := splitByDirection(g, idx)

	var b strings.Builder
	b.WriteString("<ACROSS PUZZLE V2>\n")

	b.WriteString("<TITLE>\n")
	fmt.Fprintf(&b, "%s\n", meta.Title)

	b.WriteString("<AUTHOR>\n")
	fmt.Fprintf(&b, "%s\n", meta.Author)

	b.WriteString("<COPYRIGHT>\n")
	fmt.Fprintf(&b, "%s\n", meta.Copyright)

	b.WriteString("<SIZE>\n")
	fmt.Fprintf(&b, "%dx%d\n", g.Width(), g.Height())

	b.WriteString("<GRID>\n")
	for _, row := range strings.Split(g.Display(), "\n") {
		b.WriteString(row)
		b.WriteByte('\n')
	}

	b.WriteString("<ACROSS>\n")
	writeEntries(&b, across)

	b.WriteString("<DOWN>\n")
	writeEntries(&b, down)

	return b.String()
}

func writeEntries(b *strings.Builder, entries []Entry) {
	for _, e := range entries {
		fmt.Fprintf(b, "%d. %s\n", e.Number, e.Word)
	}
}

// splitByDirection numbers slots the way a standard crossword grid does
// (one shared sequence number per starting cell, assigned in row-major
// scan order) and buckets the resulting entries by direction.
func splitByDirection(g *grid.Grid, idx *slotindex.Index) (across, down []Entry) {
	number := assignNumbers(idx)

	for _, s := range idx.Slots {
		e := Entry{Number: number[s.ID], Word: slotWord(g, s)}
		if s.Dir == slotindex.Across {
			across = append(across, e)
		} else {
			down = append(down, e)
		}
	}
	return across, down
}

// assignNumbers gives every distinct starting cell one number, in the
// order those cells first appear scanning the grid row by row - the
// convention every crossword numbering scheme follows, across and down
// slots sharing a number when they start at the same cell.
func assignNumbers(idx *slotindex.Index) map[int]int {
	type cellKey = [2]int
	seen := make(map[cellKey]int)
	numbers := make(map[int]int, len(idx.Slots))

	ordered := make([]slotindex.Slot, len(idx.Slots))
	copy(ordered, idx.Slots)
	sortByStart(ordered)

	next := 1
	for _, s := range ordered {
		key := cellKey{s.StartRow, s.StartCol}
		n, ok := seen[key]
		if !ok {
			n = next
			seen[key] = n
			next++
		}
		numbers[s.ID] = n
	}
	return numbers
}

func sortByStart(slots []slotindex.Slot) {
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0; j-- {
			a, b := slots[j-1], slots[j]
			if a.StartRow < b.StartRow || (a.StartRow == b.StartRow && a.StartCol <= b.StartCol) {
				break
			}
			slots[j-1], slots[j] = slots[j], slots[j-1]
		}
	}
}

func slotWord(g *grid.Grid, s slotindex.Slot) string {
	buf := make([]byte, s.Length)
	for i := range buf {
		r, c := s.Cell(i)
		buf[i] = g.At(r, c)
	}
	return string(buf)
}
