package cache

import "testing"

type countingDict struct {
	matchesCalls int
	viableCalls  int
	words        map[string][]string
	viable       map[string]bool
}

func (d *countingDict) Matches(pattern string) []string {
	d.matchesCalls++
	return d.words[pattern]
}

func (d *countingDict) IsViable(pattern string) bool {
	d.viableCalls++
	return d.viable[pattern]
}

func TestWordCacheMemoizes(t *testing.T) {
	dict := &countingDict{words: map[string][]string{"B SS": {"BASS", "BESS"}}}
	wc := NewWordCache()

	first := wc.Matches(dict, "B SS")
	second := wc.Matches(dict, "B SS")

	if dict.matchesCalls != 1 {
		t.Errorf("expected dictionary Matches to be called once, got %d", dict.matchesCalls)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("got %v and %v, want both to have 2 words", first, second)
	}
}

func TestViabilityCacheMemoizes(t *testing.T) {
	dict := &countingDict{viable: map[string]bool{"CAT": true, "XYZ": false}}
	vc := NewViabilityCache()

	for i := 0; i < 3; i++ {
		if !vc.IsViable(dict, "CAT") {
			t.Error("expected CAT to be viable")
		}
	}
	if vc.IsViable(dict, "XYZ") {
		t.Error("expected XYZ to be non-viable")
	}

	if dict.viableCalls != 2 {
		t.Errorf("expected dictionary IsViable to be called once per distinct pattern, got %d", dict.viableCalls)
	}
}

func TestCachesAreKeyedByPatternNotByCall(t *testing.T) {
	dict := &countingDict{words: map[string][]string{"A": {"A"}, "B": {"B"}}}
	wc := NewWordCache()

	wc.Matches(dict, "A")
	wc.Matches(dict, "B")
	wc.Matches(dict, "A")

	if dict.matchesCalls != 2 {
		t.Errorf("expected 2 distinct-pattern calls, got %d", dict.matchesCalls)
	}
}
