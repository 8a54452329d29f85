// Package slotview provides the lazy character projection of a grid
// along a slot: the sole query key into the dictionary and the fill
// caches. A view behaves as a value - equality and hashing depend only
// on its character content, never on the grid's identity - and can be
// re-traversed any number of times.
package slotview

import (
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/slotindex"
)

// View is a read-only character sequence of length Slot.Length read
// from a grid along a slot.
type View struct {
	g *grid.Grid
	s slotindex.Slot
}

// New builds the view of g along s.
func New(g *grid.Grid, s slotindex.Slot) View {
	return View{g: g, s: s}
}

// Len returns the view's length, equal to the slot's length.
func (v View) Len() int { return v.s.Length }

// At returns the character at position i: a letter A-Z, or grid.Empty
// for an unfilled cell.
func (v View) At(i int) byte {
	r, c := v.s.Cell(i)
	return v.g.At(r, c)
}

// HasEmpty reports whether any position in the view is unfilled.
func (v View) HasEmpty() bool {
	for i := 0; i < v.Len(); i++ {
		if grid.IsEmpty(v.At(i)) {
			return true
		}
	}
	return false
}

// Pattern renders the view as a dictionary query pattern: letters as
// themselves, and a space at every empty position (the dictionary
// treats a space as a wildcard matching any letter). Pattern is also
// the view's equality/hash key - two views are equal iff their
// patterns are equal.
func (v View) Pattern() string {
	buf := make([]byte, v.Len())
	for i := range buf {
		buf[i] = v.At(i)
	}
	return string(buf)
}
