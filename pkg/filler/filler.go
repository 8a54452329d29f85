// Package filler implements the constraint-propagating backtracking
// search that fills a crossword grid from a dictionary: a LIFO search
// stack ordered by minimum remaining values, with forward checking via
// orthogonal viability validation and a wall-clock timeout. Each step
// selects the most-constrained slot, enumerates candidates from the
// word cache, validates crossing slots through the viability cache,
// and either pushes the resulting grid or backtracks.
package filler

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/crossplay/fillengine/pkg/cache"
	"github.com/crossplay/fillengine/pkg/dictionary"
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/slotindex"
	"github.com/crossplay/fillengine/pkg/slotview"
)

// ErrNoSolution is returned when the search stack drains without
// finding a complete, consistent fill.
var ErrNoSolution = errors.New("filler: no solution found")

// ErrNoFillableSlot is returned if the search reaches an incomplete
// grid with no slot left to select - this should never happen, since
// every complete grid is short-circuited before it is ever popped for
// slot selection.
var ErrNoFillableSlot = errors.New("filler: no fillable slot found in an incomplete grid")

// TimeExceededError is returned when the wall-clock budget elapses
// before a solution is found. It carries the budget and the number of
// candidate grids explored so far.
type TimeExceededError struct {
	Budget     time.Duration
	Candidates int
}

func (e *TimeExceededError) Error() string {
	return fmt.Sprintf("filler: time budget of %s exceeded after exploring %d candidates", e.Budget, e.Candidates)
}

// Filler is the backtracking search. A Filler is not safe for
// concurrent use by multiple goroutines calling Fill at once - build
// one Filler per concurrent Fill call, though the underlying
// Dictionary (read-only after construction) may be shared freely.
type Filler struct {
	dict    *dictionary.Dictionary
	words   *cache.WordCache
	viable  *cache.ViabilityCache
	random  bool
	maxTime time.Duration
	rng     *rand.Rand

	// NoRepeatWords, when set, forbids using the same word in more than
	// one slot of a candidate grid. The set of already-placed words is
	// derived fresh from each candidate grid rather than tracked as
	// mutable state threaded through the search.
	NoRepeatWords bool
}

// New builds a Filler over dict. random selects candidate-order mode:
// false for deterministic search (reproducible given dict's build
// order and the initial grid), true to shuffle each slot's candidate
// list with a fresh RNG draw. maxTime is the wall-clock search budget;
// zero means no time has been allotted and the search fails immediately
// if it would need to do any work.
func New(dict *dictionary.Dictionary, random bool, maxTime time.Duration) *Filler {
	return &Filler{
		dict:    dict,
		words:   cache.NewWordCache(),
		viable:  cache.NewViabilityCache(),
		random:  random,
		maxTime: maxTime,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewWithStores builds a Filler the same way New does, but backs its
// word and viability caches with caller-supplied stores instead of the
// default in-process map - e.g. internal/apiserver's redis-backed
// stores, so several worker processes filling against the same
// dictionary share cache entries instead of each paying for cold
// patterns independently.
func NewWithStores(dict *dictionary.Dictionary, random bool, maxTime time.Duration, words cache.WordStore, viable cache.ViabilityStore) *Filler {
	f := New(dict, random, maxTime)
	f.words = cache.NewWordCacheWithStore(words)
	f.viable = cache.NewViabilityCacheWithStore(viable)
	return f
}

// Fill searches for a grid with the same dimensions and block pattern
// as initial, no empty cells, and every slot of length >= 2 spelling a
// dictionary word. Every letter already fixed in initial is preserved.
//
// It returns *TimeExceededError if the wall-clock budget is reached
// first, or ErrNoSolution if the search stack is exhausted.
func (f *Filler) Fill(initial *grid.Grid) (*grid.Grid, error) {
	idx := slotindex.Build(initial)

	// A grid with no empty cells needs no search: it succeeds iff every
	// one of its slots already spells a dictionary word, regardless of
	// the time budget, since no non-trivial work is required.
	if !initial.HasEmptyCells() {
		if f.allSlotsViable(initial, idx.Slots) {
			return initial, nil
		}
		return nil, ErrNoSolution
	}

	start := time.Now()
	candidatesExplored := 0

	stack := []*grid.Grid{initial}

	for len(stack) > 0 {
		if time.Since(start) > f.maxTime {
			return nil, &TimeExceededError{Budget: f.maxTime, Candidates: candidatesExplored}
		}

		candidate := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		candidatesExplored++

		slot, ok := f.selectSlot(candidate, idx)
		if !ok {
			// Every slot in candidate is fully lettered. By construction
			// only grids with at least one empty cell are ever pushed, so
			// this should be unreachable; guard it anyway.
			if candidate.HasEmptyCells() {
				return nil, ErrNoFillableSlot
			}
			return candidate, nil
		}

		view := slotview.New(candidate, slot)
		fills := f.words.Matches(f.dict, view.Pattern())

		if f.NoRepeatWords {
			fills = f.excludeUsed(candidate, idx, fills)
		}

		if f.random {
			fills = shuffled(fills, f.rng)
		}

		orthogonals := idx.Orthogonals(slot)

		for _, word := range fills {
			next := place(candidate, slot, word)

			if !f.allOrthogonalsViable(next, orthogonals) {
				continue
			}
			if f.NoRepeatWords {
				// Placing word can also complete crossing slots, so check them all.
				spelled := make(map[string]bool)
				repeated := false
				for _, s := range idx.Slots {
					v := slotview.New(next, s)
					if !v.HasEmpty() {
						repeated = repeated || spelled[v.Pattern()]
						spelled[v.Pattern()] = true
					}
				}
				if repeated {
					continue
				}
			}

			if !next.HasEmptyCells() {
				return next, nil
			}
			stack = append(stack, next)
		}
	}

	return nil, ErrNoSolution
}

// selectSlot picks the slot, among those in candidate with at least one
// empty cell, minimizing the lexicographic key
// (len(candidates), start_row, start_col). Ties are broken by position,
// making the search deterministic when random is false.
func (f *Filler) selectSlot(candidate *grid.Grid, idx *slotindex.Index) (slotindex.Slot, bool) {
	var best slotindex.Slot
	bestCount := -1
	found := false

	for _, s := range idx.Slots {
		view := slotview.New(candidate, s)
		if !view.HasEmpty() {
			continue
		}
		count := len(f.words.Matches(f.dict, view.Pattern()))

		if !found ||
			count < bestCount ||
			(count == bestCount && lessPosition(s, best)) {
			best = s
			bestCount = count
			found = true
		}
	}

	return best, found
}

func lessPosition(a, b slotindex.Slot) bool {
	if a.StartRow != b.StartRow {
		return a.StartRow < b.StartRow
	}
	return a.StartCol < b.StartCol
}

// allOrthogonalsViable checks, for every orthogonal slot of the
// just-filled slot, that the dictionary has some word consistent with
// its current view over next. Slots not crossing the freshly filled
// one have an unchanged view and therefore an unchanged viability, so
// only orthogonals need to be re-checked.
func (f *Filler) allOrthogonalsViable(next *grid.Grid, orthogonals []slotindex.Slot) bool {
	for _, o := range orthogonals {
		view := slotview.New(next, o)
		if !f.viable.IsViable(f.dict, view.Pattern()) {
			return false
		}
	}
	return true
}

// allSlotsViable reports whether every slot already spells a
// dictionary word (used only for the already-complete boundary case,
// where there is no single freshly-filled slot whose orthogonals alone
// need checking).
func (f *Filler) allSlotsViable(g *grid.Grid, slots []slotindex.Slot) bool {
	for _, s := range slots {
		view := slotview.New(g, s)
		if !f.viable.IsViable(f.dict, view.Pattern()) {
			return false
		}
	}
	return true
}

// place returns a new grid equal to g except that slot's cells hold
// word's letters.
func place(g *grid.Grid, slot slotindex.Slot, word string) *grid.Grid {
	next := g
	for i := 0; i < slot.Length; i++ {
		r, c := slot.Cell(i)
		next = next.Set(r, c, word[i])
	}
	return next
}

// excludeUsed filters fills down to words not already spelled by some
// other fully-lettered slot in candidate.
func (f *Filler) excludeUsed(candidate *grid.Grid, idx *slotindex.Index, fills []string) []string {
	used := make(map[string]bool)
	for _, s := range idx.Slots {
		view := slotview.New(candidate, s)
		if !view.HasEmpty() {
			used[view.Pattern()] = true
		}
	}

	out := fills[:0:0]
	for _, w := range fills {
		if !used[w] {
			out = append(out, w)
		}
	}
	return out
}

func shuffled(words []string, rng *rand.Rand) []string {
	out := make([]string, len(words))
	copy(out, words)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
