package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/slotindex"
	"github.com/spf13/cobra"
)

var (
	validateInput string
	validateDict  string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate crossword grid files",
	Long: `Validate one or more grid text files for correctness.

Checks include:
  - Parse correctness (equal row widths, at least one cell)
  - The parse(display(g)) == g round trip
  - Every slot has length >= 2 (single-cell runs are never slots)
  - If --dict is given and the grid has no empty cells, every slot
    spells a word in the dictionary

Examples:
  # Validate a single grid file
  crossgen validate --input puzzle.txt

  # Validate every grid file in a directory
  crossgen validate --input ./grids

  # Also check a fully-filled grid's words against a dictionary
  crossgen validate --input puzzle.txt --dict words.dict`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "input grid file or directory to validate (required)")
	validateCmd.Flags().StringVarP(&validateDict, "dict", "d", "", "dictionary to check filled slots against (optional)")
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if verbosity > 0 {
		fmt.Printf("Validating: %s\n", validateInput)
	}

	info, err := os.Stat(validateInput)
	if err != nil {
		return fmt.Errorf("failed to access input path: %w", err)
	}

	var files []string
	if info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(validateInput, "*.txt"))
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no .txt files found in directory: %s", validateInput)
		}
		files = matches
	} else {
		files = []string{validateInput}
	}

	var dict dictionaryChecker
	if validateDict != "" {
		d, err := loadDictionaryFile(validateDict)
		if err != nil {
			return fmt.Errorf("failed to load dictionary: %w", err)
		}
		dict = d
	}

	validCount, invalidCount := 0, 0
	for _, path := range files {
		errs := validateGridFile(path, dict)
		if len(errs) == 0 {
			if verbosity > 0 {
				fmt.Printf("OK   %s\n", filepath.Base(path))
			}
			validCount++
			continue
		}
		fmt.Printf("FAIL %s\n", filepath.Base(path))
		for _, e := range errs {
			fmt.Printf("     - %s\n", e)
		}
		invalidCount++
	}

	fmt.Printf("\nValidation Summary:\n")
	fmt.Printf("  Total files:   %d\n", len(files))
	fmt.Printf("  Valid:         %d\n", validCount)
	fmt.Printf("  Invalid:       %d\n", invalidCount)

	if invalidCount > 0 {
		os.Exit(1)
	}
	return nil
}

// dictionaryChecker is the subset of *dictionary.Dictionary validate
// needs, kept narrow so a nil interface value (no --dict given) can
// stand in for "skip the word check".
type dictionaryChecker interface {
	IsViable(pattern string) bool
}

func validateGridFile(path string, dict dictionaryChecker) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("failed to read file: %v", err)}
	}

	g, err := grid.Parse(string(data))
	if err != nil {
		return []string{fmt.Sprintf("parse error: %v", err)}
	}

	var errs []string

	reparsed, err := grid.Parse(g.Display())
	if err != nil || !reparsed.Equal(g) {
		errs = append(errs, "parse(display(g)) != g")
	}

	idx := slotindex.Build(g)
	for _, s := range idx.Slots {
		if s.Length < 2 {
			errs = append(errs, fmt.Sprintf("slot at (%d,%d) has length < 2", s.StartRow, s.StartCol))
		}
	}

	if dict != nil && !g.HasEmptyCells() {
		for _, s := range idx.Slots {
			pattern := slotPattern(g, s)
			if !dict.IsViable(pattern) {
				errs = append(errs, fmt.Sprintf("slot at (%d,%d) spells %q, not a dictionary word", s.StartRow, s.StartCol, pattern))
			}
		}
	}

	return errs
}

func slotPattern(g *grid.Grid, s slotindex.Slot) string {
	buf := make([]byte, s.Length)
	for i := range buf {
		r, c := s.Cell(i)
		buf[i] = g.At(r, c)
	}
	return string(buf)
}
