// Package dictionary implements the prefix-tree (trie) dictionary the
// Filler queries: "all words matching a pattern" and "is any word
// consistent with a pattern", where a space in the pattern is a
// wildcard. Each node has a fixed 26-way A-Z child array plus a
// terminal flag, and carries no score or frequency - only membership.
package dictionary

// node is one position in the trie. The root node carries no letter.
type node struct {
	children [26]*node
	terminal bool
}

func childIndex(ch byte) int {
	if ch < 'A' || ch > 'Z' {
		return -1
	}
	return int(ch - 'A')
}

// Dictionary is an immutable-after-build prefix tree over an uppercase
// word list.
type Dictionary struct {
	root *node
	size int
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{root: &node{}}
}

// Build constructs a dictionary from a word list, uppercasing and
// inserting each word in order. Words are not required to be
// pre-uppercased.
func Build(words []string) *Dictionary {
	d := New()
	for _, w := range words {
		d.Insert(w)
	}
	return d
}

// Insert adds word to the trie, uppercasing it first, marking the final
// node terminal. Words containing characters outside A-Z are ignored
// (the current grid text format cannot represent them as cells).
func (d *Dictionary) Insert(word string) {
	upper := toUpper(word)
	n := d.root
	for i := 0; i < len(upper); i++ {
		idx := childIndex(upper[i])
		if idx < 0 {
			return // not representable; skip rather than corrupt the tree
		}
		if n.children[idx] == nil {
			n.children[idx] = &node{}
		}
		n = n.children[idx]
	}
	if !n.terminal {
		n.terminal = true
		d.size++
	}
}

// Size returns the number of distinct words inserted.
func (d *Dictionary) Size() int { return d.size }

// Matches returns every word of length len(pattern) whose letters agree
// with pattern at each non-space position. A space in pattern matches
// any letter. Traversal order is the trie's natural child order
// (A before B before ... before Z at each node), so results are
// deterministic for a fixed build.
func (d *Dictionary) Matches(pattern string) []string {
	var out []string
	var buf [64]byte
	d.walk(d.root, pattern, 0, buf[:0], &out)
	return out
}

func (d *Dictionary) walk(n *node, pattern string, pos int, prefix []byte, out *[]string) {
	if n == nil {
		return
	}
	if pos == len(pattern) {
		if n.terminal {
			word := make([]byte, len(prefix))
			copy(word, prefix)
			*out = append(*out, string(word))
		}
		return
	}

	ch := pattern[pos]
	if ch == ' ' {
		for i := 0; i < 26; i++ {
			child := n.children[i]
			if child == nil {
				continue
			}
			d.walk(child, pattern, pos+1, append(prefix, byte('A'+i)), out)
		}
		return
	}

	idx := childIndex(ch)
	if idx < 0 {
		return
	}
	child := n.children[idx]
	if child == nil {
		return
	}
	d.walk(child, pattern, pos+1, append(prefix, ch), out)
}

// IsViable reports whether at least one word of length len(pattern)
// agrees with pattern. It short-circuits on the first match and never
// allocates the result list, so it is strictly cheaper than Matches.
func (d *Dictionary) IsViable(pattern string) bool {
	return d.isViable(d.root, pattern, 0)
}

func (d *Dictionary) isViable(n *node, pattern string, pos int) bool {
	if n == nil {
		return false
	}
	if pos == len(pattern) {
		return n.terminal
	}

	ch := pattern[pos]
	if ch == ' ' {
		for i := 0; i < 26; i++ {
			if n.children[i] != nil && d.isViable(n.children[i], pattern, pos+1) {
				return true
			}
		}
		return false
	}

	idx := childIndex(ch)
	if idx < 0 {
		return false
	}
	return d.isViable(n.children[idx], pattern, pos+1)
}

func toUpper(s string) string {
	needsUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			needsUpper = true
			break
		}
	}
	if !needsUpper {
		return s
	}
	buf := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		buf[i] = c
	}
	return string(buf)
}
