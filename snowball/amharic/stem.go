package amharic

import (
	"github.com/oarkflow/amsearch/snowball/snowballword"
)

// Stem an Amharic word. The word is normalized first; stop words are
// returned normalized but unstemmed unless stemStopWords is set.
func Stem(word string, stemStopWords bool) string {
	rs := []rune(word)
	n := Normalize(rs, len(rs))
	if !stemStopWords && IsStopWord(string(rs[:n])) {
		return string(rs[:n])
	}
	n = StemRunes(rs, n)
	return string(rs[:n])
}

// StemRunes strips at most one suffix and then at most one prefix from
// buf[:n] in place and returns the new length. buf must already be
// normalized.
func StemRunes(buf []rune, n int) int {
	prefix, suffix := Affixes(buf, n)
	w := snowballword.FromRunes(buf, n)
	w.RemoveLastNRunes(suffix)
	w.RemoveFirstNRunes(prefix)
	return w.Len()
}

// Affixes reports how many runes StemRunes would cut from the front and
// the back of buf[:n] without changing buf. buf must already be normalized.
// Normalization keeps the length, so the counts also apply to the word in
// its original spelling.
func Affixes(buf []rune, n int) (prefix, suffix int) {
	w := snowballword.FromRunes(buf, n)
	suffix = matchSuffix(&w)
	w.RS = w.RS[:w.Len()-suffix]
	prefix = matchPrefix(&w)
	return prefix, suffix
}

// matchSuffix returns the size of the longest listed suffix the length
// guard allows, or 0.
func matchSuffix(w *snowballword.SnowballWord) int {
	for i := range suffixTiers {
		tier := &suffixTiers[i]
		if w.Len() < tier.minLen {
			continue
		}
		if w.FirstSuffix(tier.affixes...) >= 0 {
			return tier.size
		}
	}
	return 0
}

// matchPrefix returns the size of the longest listed prefix the length
// guard allows, or 0.
func matchPrefix(w *snowballword.SnowballWord) int {
	for i := range prefixTiers {
		tier := &prefixTiers[i]
		if w.Len() < tier.minLen {
			continue
		}
		if w.FirstPrefix(tier.affixes...) >= 0 {
			return tier.size
		}
	}
	return 0
}
