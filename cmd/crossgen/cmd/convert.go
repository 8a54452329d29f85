package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	convertInput  string
	convertOutput string
	convertFormat string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a dictionary between formats",
	Long: `Convert a word list between file formats.

Supported formats:
  - text: newline-delimited word list ('#'-prefixed lines are comments)
  - json: JSON array of strings
  - dict: this CLI's binary persisted dictionary format

Examples:
  # Convert a text word list to the binary format the filler loads fastest
  crossgen convert --input words.txt --output words.dict --format dict

  # Convert a binary dictionary back to a plain JSON array
  crossgen convert --input words.dict --output words.json --format json`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "input word list file (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file path (required)")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "target format: text, json, or dict (required)")

	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")
	convertCmd.MarkFlagRequired("format")
}

func runConvert(cmd *cobra.Command, args []string) error {
	targetFormat := strings.ToLower(convertFormat)
	if targetFormat != "text" && targetFormat != "json" && targetFormat != "dict" {
		return fmt.Errorf("unsupported format '%s': must be text, json, or dict", convertFormat)
	}

	if verbosity > 0 {
		fmt.Printf("Converting: %s -> %s (%s)\n", convertInput, convertOutput, targetFormat)
	}

	dict, err := loadDictionaryFile(convertInput)
	if err != nil {
		return fmt.Errorf("failed to read input dictionary: %w", err)
	}

	switch targetFormat {
	case "dict":
		if err := dict.Save(convertOutput); err != nil {
			return fmt.Errorf("failed to write binary dictionary: %w", err)
		}
	case "json":
		data, err := json.Marshal(dict.Words())
		if err != nil {
			return fmt.Errorf("failed to marshal word list: %w", err)
		}
		if err := os.WriteFile(convertOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	case "text":
		var b strings.Builder
		for _, w := range dict.Words() {
			b.WriteString(w)
			b.WriteByte('\n')
		}
		if err := os.WriteFile(convertOutput, []byte(b.String()), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	fmt.Printf("Converted %d words from %s to %s\n", dict.Size(), convertInput, convertOutput)
	return nil
}
