package amharic

// Common Amharic function words: pronouns, copulas, conjunctions,
// prepositions and demonstratives.
var stopWordList = []string{
	"ሁሉ", "ሁሉም", "ሆኖም", "ሆነ", "ለ", "ላይ", "ሌላ", "ሌሎች", "ልክ", "መሆኑ",
	"ምን", "ሰሞኑን", "ስለ", "ስለዚህ", "ሲሉ", "ቢሆን", "ብቻ", "ነበር", "ነበረ",
	"ነው", "ናቸው", "ናት", "ኋላ", "አሁን", "አለ", "አና", "አንድ", "እሱ",
	"እሷ", "እስከ", "እሳቸው", "እነሱ", "እና", "እንደ", "እንዲሁም", "እንጂ", "እዚህ",
	"እዚያ", "እኔ", "እኛ", "እናንተ", "እርስዎ", "አንተ", "አንቺ", "ከ", "ከዚህ",
	"ወደ", "ወይም", "ውስጥ", "የ", "ያለ", "ያ", "ይህ", "ይሄ", "ደግሞ", "ዛሬ",
	"ገና", "ግን", "ጋር", "በ", "በኋላ", "ቢሆንም", "ይኸው",
	"ወዘተ", "ሆኖ",
}

// stopWords is the normalized form of stopWordList.
var stopWords = buildStopWords(stopWordList)

func buildStopWords(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[NormalizeString(word)] = struct{}{}
	}
	return set
}

// IsStopWord reports whether a normalized word is a stop word.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// StopWords returns the normalized stop word list.
func StopWords() []string {
	words := make([]string, 0, len(stopWords))
	for word := range stopWords {
		words = append(words, word)
	}
	return words
}
