package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/crossplay/fillengine/pkg/dictionary"
	"github.com/crossplay/fillengine/pkg/filler"
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/outputfmt"
	"github.com/spf13/cobra"
)

var (
	fillGrid      string
	fillDict      string
	fillOutput    string
	fillFormat    string
	fillMaxTime   int
	fillRandom    bool
	fillNoRepeat  bool
	fillTitle     string
	fillAuthor    string
	fillCopyright string
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a crossword grid from a dictionary",
	Long: `Fill reads a grid text file and a dictionary, then runs the
constraint-propagating backtracking search to produce a completed grid in
which every across and down run of length 2 or more spells a dictionary
word.

Examples:
  # Fill a grid and print it to stdout
  crossgen fill --grid puzzle.txt --dict words.dict

  # Fill with a 30-second budget and emit ACROSS PUZZLE V2 text
  crossgen fill --grid puzzle.txt --dict words.dict --max-time 30 --format across --output puzzle.txt`,
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().StringVarP(&fillGrid, "grid", "g", "", "input grid text file (required)")
	fillCmd.Flags().StringVarP(&fillDict, "dict", "d", "", "dictionary path: binary (.dict) or word list (.json/.txt) (required)")
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "output file path (default: stdout)")
	fillCmd.Flags().StringVarP(&fillFormat, "format", "f", "grid", "output format: grid or across")
	fillCmd.Flags().IntVar(&fillMaxTime, "max-time", 120, "wall-clock search budget in seconds")
	fillCmd.Flags().BoolVar(&fillRandom, "random", false, "shuffle candidate order per slot instead of deterministic search")
	fillCmd.Flags().BoolVar(&fillNoRepeat, "no-repeat", false, "forbid the same word filling more than one slot")
	fillCmd.Flags().StringVar(&fillTitle, "title", "Untitled", "puzzle title (format=across only)")
	fillCmd.Flags().StringVar(&fillAuthor, "author", "", "puzzle author (format=across only)")
	fillCmd.Flags().StringVar(&fillCopyright, "copyright", "", "puzzle copyright (format=across only)")

	fillCmd.MarkFlagRequired("grid")
	fillCmd.MarkFlagRequired("dict")
}

func runFill(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(fillFormat)
	if format != "grid" && format != "across" {
		return fmt.Errorf("invalid format '%s': must be grid or across", fillFormat)
	}

	if verbosity > 0 {
		fmt.Printf("Loading grid: %s\n", fillGrid)
	}
	gridText, err := os.ReadFile(fillGrid)
	if err != nil {
		return fmt.Errorf("failed to read grid file: %w", err)
	}
	initial, err := grid.Parse(string(gridText))
	if err != nil {
		return fmt.Errorf("failed to parse grid: %w", err)
	}

	if verbosity > 0 {
		fmt.Printf("Loading dictionary: %s\n", fillDict)
	}
	dict, err := loadDictionaryFile(fillDict)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	if verbosity > 0 {
		fmt.Printf("Dictionary has %d words\n", dict.Size())
	}

	f := filler.New(dict, fillRandom, time.Duration(fillMaxTime)*time.Second)
	f.NoRepeatWords = fillNoRepeat

	start := time.Now()
	solved, err := f.Fill(initial)
	if err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	if verbosity > 0 {
		fmt.Printf("Solved in %s\n", time.Since(start))
	}

	var out string
	switch format {
	case "grid":
		out = solved.Display()
	case "across":
		out = outputfmt.FormatAcrossPuzzle(solved, outputfmt.Meta{
			Title:     fillTitle,
			Author:    fillAuthor,
			Copyright: fillCopyright,
		})
	}

	if fillOutput == "" {
		fmt.Print(out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Println()
		}
		return nil
	}
	if err := os.WriteFile(fillOutput, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Filled grid written to %s\n", fillOutput)
	return nil
}

// loadDictionaryFile loads path as a binary dictionary if it has the
// .dict extension this CLI's own build-dict subcommand produces, or
// otherwise builds one fresh from a JSON/text word list.
func loadDictionaryFile(path string) (*dictionary.Dictionary, error) {
	if strings.HasSuffix(strings.ToLower(path), ".dict") {
		return dictionary.LoadBinary(path)
	}
	return dictionary.Load(path)
}
