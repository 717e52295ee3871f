package tokenizer

import (
	"github.com/oarkflow/amsearch/tokenizer/stopwords"
)

type StopWords map[string]struct{}

var stopWords = map[Language]StopWords{
	AMHARIC: stopwords.Amharic,
	ENGLISH: stopwords.English,
}
