package dictionary

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadWordsJSON reads a JSON array of strings from path, e.g.
// ["CAT", "DOG", "BIRD"].
func LoadWordsJSON(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: failed to read %s: %w", path, err)
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("dictionary: failed to parse %s as a JSON word array: %w", path, err)
	}
	return words, nil
}

// LoadWordsText reads a newline-delimited word list from path. Blank
// lines and lines starting with '#' are skipped.
func LoadWordsText(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: failed to read %s: %w", path, err)
	}
	return words, nil
}

// Load builds a Dictionary from path, auto-detecting JSON (files ending
// in .json) vs newline-delimited text.
func Load(path string) (*Dictionary, error) {
	var words []string
	var err error
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		words, err = LoadWordsJSON(path)
	} else {
		words, err = LoadWordsText(path)
	}
	if err != nil {
		return nil, err
	}
	return Build(words), nil
}
