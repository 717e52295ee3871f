package amharic

// Ethiopic syllables live in U+1200..U+137F. Rows of eight codepoints share a
// consonant; the first seven columns are the vowel orders.
const (
	ethiopicFirst rune = 0x1200
	ethiopicLast  rune = 0x137F
)

// canonicalFamily folds every letter of each variant row onto the letter of
// the same vowel order in canonical.
type canonicalFamily struct {
	canonical string
	variants  []string
}

// Letters that are pronounced identically in modern Amharic.
var canonicalFamilies = []canonicalFamily{
	// ḥ and ḫ rows -> h
	{canonical: "ሀሁሂሃሄህሆ", variants: []string{"ሐሑሒሓሔሕሖ", "ኀኁኂኃኄኅኆ"}},
	// ś -> s
	{canonical: "ሰሱሲሳሴስሶ", variants: []string{"ሠሡሢሣሤሥሦ"}},
	// glottal stop -> ʕ
	{canonical: "ዐዑዒዓዔዕዖ", variants: []string{"አኡኢኣኤእኦ"}},
	// ṣ́ -> ṣ
	{canonical: "ፀፁፂፃፄፅፆ", variants: []string{"ጸጹጺጻጼጽጾ"}},
}

// Single letters outside the seven order grid.
var canonicalExtra = map[rune]rune{
	'ኧ': 'ዕ',
}

// canonicalTable[r-ethiopicFirst] is the canonical letter for r, or 0 when r
// is already canonical.
var canonicalTable = buildCanonicalTable()

func buildCanonicalTable() (table [ethiopicLast - ethiopicFirst + 1]rune) {
	for _, family := range canonicalFamilies {
		canonical := []rune(family.canonical)
		for _, variant := range family.variants {
			letters := []rune(variant)
			if len(letters) != len(canonical) {
				panic("amharic: canonical family " + variant + " does not line up with " + family.canonical)
			}
			for i, r := range letters {
				table[r-ethiopicFirst] = canonical[i]
			}
		}
	}
	for r, c := range canonicalExtra {
		table[r-ethiopicFirst] = c
	}
	return table
}

// Canonical returns the canonical spelling of a single letter.
func Canonical(r rune) rune {
	if r < ethiopicFirst || r > ethiopicLast {
		return r
	}
	if c := canonicalTable[r-ethiopicFirst]; c != 0 {
		return c
	}
	return r
}

// Normalize folds buf[:n] in place to canonical letters and returns the
// length, which never changes.
func Normalize(buf []rune, n int) int {
	for i := 0; i < n; i++ {
		r := buf[i]
		if r < ethiopicFirst || r > ethiopicLast {
			continue
		}
		if c := canonicalTable[r-ethiopicFirst]; c != 0 {
			buf[i] = c
		}
	}
	return n
}

// NormalizeString is Normalize for a whole string.
func NormalizeString(s string) string {
	rs := []rune(s)
	return string(rs[:Normalize(rs, len(rs))])
}
