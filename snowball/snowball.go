package snowball

import (
	"errors"
	"fmt"

	"github.com/kljensen/snowball/english"

	"github.com/oarkflow/amsearch/snowball/amharic"
)

const (
	VERSION string = "v0.8.0"
)

var ErrUnknownLanguage = errors.New("unknown language")

// Stem a word in the specified language.
func Stem(word, language string, stemStopWords bool) (stemmed string, err error) {

	var f func(string, bool) string
	switch language {
	case "amharic", "am":
		f = amharic.Stem
	case "english", "en":
		f = english.Stem
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
		return
	}
	stemmed = f(word, stemStopWords)
	return

}
