package stopwords

import (
	"github.com/oarkflow/amsearch/snowball/amharic"
)

// Amharic holds the stop words in normalized spelling, so tokens are looked
// up after orthographic normalization.
var Amharic = fromList(amharic.StopWords())

func fromList(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
