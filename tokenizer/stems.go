package tokenizer

import (
	"github.com/kljensen/snowball/english"

	"github.com/oarkflow/amsearch/snowball/amharic"
)

type Stem func(string, bool) string

var stems = map[Language]Stem{
	AMHARIC: stemAmharic,
	ENGLISH: english.Stem,
}

// stemAmharic matches affixes on the normalized form of word and cuts them
// from word as spelled, so a token left unnormalized keeps its letters.
func stemAmharic(word string, _ bool) string {
	rs := []rune(word)
	key := []rune(amharic.NormalizeString(word))
	prefix, suffix := amharic.Affixes(key, len(key))
	return string(rs[prefix : len(rs)-suffix])
}
