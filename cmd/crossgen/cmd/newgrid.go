package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/crossplay/fillengine/pkg/gridgen"
	"github.com/spf13/cobra"
)

var (
	newGridWidth      int
	newGridHeight     int
	newGridDifficulty string
	newGridSeed       int64
	newGridOutput     string
)

var newGridCmd = &cobra.Command{
	Use:   "newgrid",
	Short: "Generate a blank, structurally valid grid",
	Long: `Generate a blank crossword grid: black squares seeded at random,
mirrored for 180-degree rotational symmetry, and retried until fully
connected with no run shorter than the minimum word length.

The result has no letters filled in - pipe it to "crossgen fill" to
produce a completed puzzle.

Examples:
  # Generate a 15x15 medium-difficulty blank grid
  crossgen newgrid --width 15 --height 15 --difficulty medium --output blank.txt`,
	RunE: runNewGrid,
}

func init() {
	rootCmd.AddCommand(newGridCmd)

	newGridCmd.Flags().IntVar(&newGridWidth, "width", 15, "grid width")
	newGridCmd.Flags().IntVar(&newGridHeight, "height", 15, "grid height")
	newGridCmd.Flags().StringVarP(&newGridDifficulty, "difficulty", "d", "medium", "black-square density preset (easy, medium, hard, expert)")
	newGridCmd.Flags().Int64Var(&newGridSeed, "seed", 0, "base random seed (0 picks attempt-varying seeds)")
	newGridCmd.Flags().StringVarP(&newGridOutput, "output", "o", "", "output file path (default: stdout)")
}

func runNewGrid(cmd *cobra.Command, args []string) error {
	difficulty, err := parseGridDifficulty(newGridDifficulty)
	if err != nil {
		return err
	}

	if verbosity > 0 {
		fmt.Printf("Generating %dx%d grid (difficulty=%s)\n", newGridWidth, newGridHeight, newGridDifficulty)
	}

	g, err := gridgen.Generate(gridgen.Config{
		Width:      newGridWidth,
		Height:     newGridHeight,
		Difficulty: difficulty,
		Seed:       newGridSeed,
	})
	if err != nil {
		return fmt.Errorf("failed to generate grid: %w", err)
	}

	out := g.Display()
	if newGridOutput == "" {
		fmt.Print(out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Println()
		}
		return nil
	}
	if err := os.WriteFile(newGridOutput, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Grid written to %s\n", newGridOutput)
	return nil
}

func parseGridDifficulty(diff string) (gridgen.Difficulty, error) {
	switch strings.ToLower(diff) {
	case "easy":
		return gridgen.Easy, nil
	case "medium":
		return gridgen.Medium, nil
	case "hard":
		return gridgen.Hard, nil
	case "expert":
		return gridgen.Expert, nil
	default:
		return "", fmt.Errorf("invalid difficulty: %s (must be easy, medium, hard, or expert)", diff)
	}
}
