// Package gridgen produces structurally valid empty crossword grids for
// the Filler to fill: black squares seeded at random, mirrored into
// 180-degree rotational symmetry, validated for full connectivity and a
// minimum word length. It generates grid *structure* only - it never
// scores or influences the quality of a fill, so it does not encroach
// on the core package's "no scoring of fill quality" boundary.
package gridgen

import (
	"errors"
	"math/rand"

	"github.com/crossplay/fillengine/pkg/grid"
)

// Difficulty is a black-square density preset.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// densityFor maps a difficulty preset to a fraction of black squares.
// These are conservative relative to hand-constructed puzzles: random
// seeding produces short words more easily than a human constructor
// does, so the densities stay low enough that MinWordLength is
// satisfiable within MaxAttempts.
func densityFor(d Difficulty) float64 {
	switch d {
	case Easy:
		return 0.06
	case Hard:
		return 0.10
	case Expert:
		return 0.12
	default:
		return 0.08
	}
}

// ErrGenerationFailed is returned when no valid grid was found within
// MaxAttempts tries at the requested size and density.
var ErrGenerationFailed = errors.New("gridgen: failed to generate a valid grid within the attempt budget")

// MaxAttempts bounds how many seeds Generate tries before giving up.
const MaxAttempts = 1000

// MinWordLength is the shortest slot length Generate will accept.
// Single isolated cells (length 1) are never slots at all and are
// ignored regardless of this setting.
const MinWordLength = 3

// Config describes a grid generation request.
type Config struct {
	Width, Height int
	Difficulty    Difficulty
	BlackDensity  float64 // overrides Difficulty when non-zero
	Seed          int64   // 0 lets Generate pick attempt-varying seeds
}

// Generate produces a grid of the requested size with 180-degree
// rotationally symmetric black squares, full white-cell connectivity,
// and no slot shorter than MinWordLength.
func Generate(cfg Config) (*grid.Grid, error) {
	density := cfg.BlackDensity
	if density == 0 {
		density = densityFor(cfg.Difficulty)
	}

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		seed := cfg.Seed + int64(attempt)
		blocks := seedBlocks(cfg.Width, cfg.Height, seed, density)
		enforceSymmetry(blocks, cfg.Width, cfg.Height)

		g := grid.New(cfg.Width, cfg.Height, blocks)

		if !isConnected(g) {
			continue
		}
		if hasShortWords(g) {
			continue
		}
		return g, nil
	}

	return nil, ErrGenerationFailed
}

// seedBlocks randomly places black squares in the top-left quadrant;
// enforceSymmetry mirrors them into the bottom-right quadrant so every
// placement ends up rotationally symmetric regardless of which quadrant
// the random draw landed in.
func seedBlocks(width, height int, seed int64, density float64) map[[2]int]bool {
	r := rand.New(rand.NewSource(seed))

	target := int(float64(width*height) * density / 2)

	qw, qh := (width+1)/2, (height+1)/2
	positions := make([][2]int, 0, qw*qh)
	for row := 0; row < qh; row++ {
		for col := 0; col < qw; col++ {
			positions = append(positions, [2]int{row, col})
		}
	}
	r.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

	blocks := make(map[[2]int]bool, target)
	for i := 0; i < len(positions) && i < target; i++ {
		blocks[positions[i]] = true
	}
	return blocks
}

func enforceSymmetry(blocks map[[2]int]bool, width, height int) {
	for pos := range blocks {
		mirror := [2]int{height - 1 - pos[0], width - 1 - pos[1]}
		blocks[mirror] = true
	}
}

// isConnected reports whether every non-block cell is reachable from
// any other by a path of orthogonal moves, via flood fill from the
// first non-block cell found in row-major order.
func isConnected(g *grid.Grid) bool {
	startRow, startCol, found := -1, -1, false
	total := 0
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			if g.At(r, c) == grid.Block {
				continue
			}
			total++
			if !found {
				startRow, startCol, found = r, c, true
			}
		}
	}
	if !found {
		return false
	}

	visited := make([][]bool, g.Height())
	for i := range visited {
		visited[i] = make([]bool, g.Width())
	}

	queue := [][2]int{{startRow, startCol}}
	visited[startRow][startCol] = true
	reached := 1

	dirs := [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range dirs {
			nr, nc := cur[0]+d[0], cur[1]+d[1]
			if nr < 0 || nr >= g.Height() || nc < 0 || nc >= g.Width() {
				continue
			}
			if visited[nr][nc] || g.At(nr, nc) == grid.Block {
				continue
			}
			visited[nr][nc] = true
			reached++
			queue = append(queue, [2]int{nr, nc})
		}
	}

	return reached == total
}

// hasShortWords reports whether any across or down run of non-block
// cells has length strictly between 1 and MinWordLength.
func hasShortWords(g *grid.Grid) bool {
	for r := 0; r < g.Height(); r++ {
		run := 0
		for c := 0; c < g.Width(); c++ {
			if g.At(r, c) == grid.Block {
				if run > 1 && run < MinWordLength {
					return true
				}
				run = 0
			} else {
				run++
			}
		}
		if run > 1 && run < MinWordLength {
			return true
		}
	}

	for c := 0; c < g.Width(); c++ {
		run := 0
		for r := 0; r < g.Height(); r++ {
			if g.At(r, c) == grid.Block {
				if run > 1 && run < MinWordLength {
					return true
				}
				run = 0
			} else {
				run++
			}
		}
		if run > 1 && run < MinWordLength {
			return true
		}
	}

	return false
}
