package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/oarkflow/amsearch/lib"
	"github.com/oarkflow/amsearch/snowball/amharic"
)

const (
	AMHARIC Language = "am"
	ENGLISH Language = "en"
)

var languageNames = map[string]Language{
	"am":      AMHARIC,
	"amharic": AMHARIC,
	"en":      ENGLISH,
	"english": ENGLISH,
}

// Transformers keep state between calls, so each goroutine takes its own.
var cleaners = lib.NewPool[transform.Transformer](func() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
})

var (
	ErrLanguageNotSupported = errors.New("language not supported")
)

type Language string

type Config struct {
	EnableStemming      bool     `json:"enable_stemming"`
	EnableStopWords     bool     `json:"enable_stop_words"`
	EnableNormalization bool     `json:"enable_normalization"`
	EnableOrderFolding  bool     `json:"enable_order_folding"`
	StemExclusion       []string `json:"stem_exclusion"`
}

// DefaultConfig is the configuration used for indexing when none is given.
func DefaultConfig() Config {
	return Config{
		EnableStemming:      true,
		EnableStopWords:     true,
		EnableNormalization: true,
	}
}

type TokenizeParams struct {
	Text            string
	Language        Language
	AllowDuplicates bool
}

func IsSupportedLanguage(language Language) bool {
	_, ok := stems[language]
	return ok
}

// ParseLanguage accepts a language code or its English name.
func ParseLanguage(name string) (Language, error) {
	if language, ok := languageNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return language, nil
	}
	return "", fmt.Errorf("%w: %q", ErrLanguageNotSupported, name)
}

// Tokenize adds the terms of params.Text to tokens. With AllowDuplicates the
// value is the number of occurrences, otherwise every term counts once.
func Tokenize(params TokenizeParams, config Config, tokens map[string]int) error {
	return analyze(params.Text, params.Language, config, func(token string) {
		if params.AllowDuplicates {
			tokens[token]++
		} else {
			tokens[token] = 1
		}
	})
}

// Analyze returns the terms of text in order, duplicates included.
func Analyze(text string, language Language, config Config) ([]string, error) {
	var terms []string
	err := analyze(text, language, config, func(token string) {
		terms = append(terms, token)
	})
	return terms, err
}

// Normalize splits and normalizes text without removing stop words or
// stemming. The CLI prints words in this form before stemming them.
func Normalize(text string, language Language) ([]string, error) {
	return Analyze(text, language, Config{EnableNormalization: true})
}

func analyze(text string, language Language, config Config, emit func(string)) error {
	if !IsSupportedLanguage(language) {
		return fmt.Errorf("%w: %q", ErrLanguageNotSupported, language)
	}
	text = strings.ToLower(clean(text))
	var buf []rune
	for _, word := range splitSentence(text) {
		buf = append(buf[:0], []rune(word)...)
		if token := normalizeToken(buf, language, config); token != "" {
			emit(token)
		}
	}
	return nil
}

func clean(text string) string {
	cleaner := cleaners.Get()
	defer cleaners.Put(cleaner)
	result, _, err := transform.String(cleaner, text)
	if err != nil {
		return text
	}
	return result
}

// splitSentence breaks text on everything that is neither a letter nor a
// number, which covers the Ethiopic wordspace and punctuation.
func splitSentence(text string) []string {
	return strings.FieldsFunc(text, isSeparator)
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r)
}

func normalizeToken(buf []rune, language Language, config Config) string {
	n := foldDigits(buf, len(buf))
	if language == AMHARIC && config.EnableNormalization {
		n = amharic.Normalize(buf, n)
	}
	token := string(buf[:n])
	// stop words and exclusions are kept in normalized spelling
	key := token
	if language == AMHARIC && !config.EnableNormalization {
		key = amharic.NormalizeString(token)
	}
	if _, ok := stopWords[language][key]; config.EnableStopWords && ok {
		return ""
	}
	if config.EnableStemming && !isExcluded(key, language, config) {
		token = stems[language](token, false)
	}
	if language == AMHARIC && config.EnableOrderFolding {
		buf = append(buf[:0], []rune(token)...)
		token = string(buf[:amharic.FoldOrders(buf, len(buf))])
	}
	return token
}

func isExcluded(key string, language Language, config Config) bool {
	for _, word := range config.StemExclusion {
		word = strings.ToLower(word)
		if language == AMHARIC {
			word = amharic.NormalizeString(word)
		}
		if word == key {
			return true
		}
	}
	return false
}
