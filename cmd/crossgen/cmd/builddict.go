package cmd

import (
	"fmt"

	"github.com/crossplay/fillengine/pkg/dictionary"
	"github.com/spf13/cobra"
)

var (
	buildDictInput  string
	buildDictOutput string
)

var buildDictCmd = &cobra.Command{
	Use:   "build-dict",
	Short: "Build a binary dictionary from a word list",
	Long: `Build a prefix-tree dictionary from a word list and persist it to a
binary file the filler can load quickly without re-parsing the source list.

Input may be a JSON array of strings or a newline-delimited text file
(lines starting with '#' and blank lines are skipped); the format is
chosen by the input file's extension.

Examples:
  # Build from Peter Broda-style text list
  crossgen build-dict --input words.txt --output words.dict

  # Build from a JSON word array
  crossgen build-dict --input words.json --output words.dict`,
	RunE: runBuildDict,
}

func init() {
	rootCmd.AddCommand(buildDictCmd)

	buildDictCmd.Flags().StringVarP(&buildDictInput, "input", "i", "", "input word list (.json or .txt, required)")
	buildDictCmd.Flags().StringVarP(&buildDictOutput, "output", "o", "", "output binary dictionary path (required)")

	buildDictCmd.MarkFlagRequired("input")
	buildDictCmd.MarkFlagRequired("output")
}

func runBuildDict(cmd *cobra.Command, args []string) error {
	if verbosity > 0 {
		fmt.Printf("Loading word list: %s\n", buildDictInput)
	}

	dict, err := dictionary.Load(buildDictInput)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}

	if verbosity > 0 {
		fmt.Printf("Loaded %d words\n", dict.Size())
	}

	if err := dict.Save(buildDictOutput); err != nil {
		return fmt.Errorf("failed to write binary dictionary: %w", err)
	}

	fmt.Printf("Built dictionary of %d words -> %s\n", dict.Size(), buildDictOutput)
	return nil
}
