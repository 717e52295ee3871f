/*
This package defines a SnowballWord struct that is used
to encapsulate the rune buffer of a word while it is
normalized and stemmed. The struct wraps a caller owned
slice; its length is the logical length of the word and
removals never grow or reallocate the backing array.
*/
package snowballword

import (
	"fmt"
)

// SnowballWord represents a word that is going to be stemmed.
type SnowballWord struct {

	// A slice of runes; len(RS) is the logical length of the word.
	RS []rune
}

// New creates a SnowballWord holding a copy of `in`.
func New(in string) *SnowballWord {
	return &SnowballWord{RS: []rune(in)}
}

// FromRunes wraps the first `n` runes of `buf` without copying.
// Mutations are visible in `buf`. A length outside [0, len(buf)]
// is a caller bug and panics.
func FromRunes(buf []rune, n int) SnowballWord {
	if n < 0 || n > len(buf) {
		panic(fmt.Sprintf("snowballword: length %d out of range [0, %d]", n, len(buf)))
	}
	return SnowballWord{RS: buf[:n]}
}

// Len returns the logical length of the word.
func (w *SnowballWord) Len() int {
	return len(w.RS)
}

// Remove the last `n` runes from the SnowballWord.
func (w *SnowballWord) RemoveLastNRunes(n int) {
	w.RS = w.RS[:len(w.RS)-n]
}

// Remove the first `n` runes by shifting the rest of the
// word to the left and truncating.
func (w *SnowballWord) RemoveFirstNRunes(n int) {
	copy(w.RS, w.RS[n:])
	w.RS = w.RS[:len(w.RS)-n]
}

// HasPrefixRunes returns true if `w` starts with `prefix`.
func (w *SnowballWord) HasPrefixRunes(prefix []rune) bool {
	if len(prefix) > len(w.RS) {
		return false
	}
	for i, r := range prefix {
		if w.RS[i] != r {
			return false
		}
	}
	return true
}

// HasSuffixRunes returns true if `w` ends with `suffix`.
func (w *SnowballWord) HasSuffixRunes(suffix []rune) bool {
	offset := len(w.RS) - len(suffix)
	if offset < 0 {
		return false
	}
	for i, r := range suffix {
		if w.RS[offset+i] != r {
			return false
		}
	}
	return true
}

// FirstPrefix returns the index of the first prefix in `prefixes`
// that starts the word, or -1.
func (w *SnowballWord) FirstPrefix(prefixes ...[]rune) int {
	for i, prefix := range prefixes {
		if w.HasPrefixRunes(prefix) {
			return i
		}
	}
	return -1
}

// FirstSuffix returns the index of the first suffix in `suffixes`
// that ends the word, or -1.
func (w *SnowballWord) FirstSuffix(suffixes ...[]rune) int {
	for i, suffix := range suffixes {
		if w.HasSuffixRunes(suffix) {
			return i
		}
	}
	return -1
}

// Return the SnowballWord as a string
func (w *SnowballWord) String() string {
	return string(w.RS)
}
