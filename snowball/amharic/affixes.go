package amharic

// affixTier holds affixes of one length. A tier is only tried on words of
// at least minLen runes so that stripping leaves a stem of two or more.
type affixTier struct {
	size    int
	minLen  int
	affixes [][]rune
}

// minStem is the shortest stem the stemmer will leave behind.
const minStem = 2

// Affixes are written in everyday spelling and folded to canonical letters
// when the tiers are built, so they match normalized words.
var (
	suffixTiers = buildTiers("suffix", [][]string{
		{"አችኋለሁ", "አችዋለሁ", "አችዋለሽ"},
		{
			"ችሁአት", "ዋችኋል", "ዋቸዋል", "ቸዋለች", "አታለሁ",
			"አታለሽ", "ሃቸዋል", "ቸዋለህ", "ሻአቸው", "ሻቸዋል",
		},
		{
			"ሽኛል", "ሽዋል", "ሻታል", "ሽናል", "ሻቸው",
			"ኛለሽ", "ዋለሽ", "ናለሽ", "ኸኛል", "ኸዋል",
			"ሃተል", "ኸናል", "ኛለህ", "ዋለህ", "ታለህ",
			"ናለህ", "ኋችሁ", "ኋቸው", "ሃለሁ", "ሻለሁ",
			"ዋለሁ", "ቻችሁ", "ቻችው", "ናችሁ", "ናቸው",
			"ችሁኝ", "ችሁት", "ችሁን", "ኘለች", "ሃለች",
			"ሻለች", "ዋለች", "ታለች", "ናለች", "ንሃል",
			"ንሻል", "ነዋል", "ናታል", "ውኛል", "ውሃል",
			"ውሻል", "ውታል", "ዋታል", "ውናል", "ዋችሁ",
			"ዋችው", "ውያን",
		},
		{
			"ሽኝ", "ሽው", "ሻት", "ሽን", "ኛል", "ሃል", "ሻል", "ታል",
			"ናል", "ችሁ", "ቸሁ", "ኸኝ", "ኸው", "ሃት", "ኸን", "ሁህ",
			"ሁሽ", "ሁት", "ኋት", "ችኝ", "ችህ", "ችሽ", "ችው", "ቻት",
			"ችን", "ንህ", "ንሽ", "ነው", "ናት", "ውኝ", "ውህ", "ውሽ",
			"ውት", "ዋት", "ዎች", "ያን", "ያት", "ነት",
		},
		{"ኝ", "ህ", "ሽ", "ው", "ን", "ዊ", "ች", "ል", "ት", "ም", "ና"},
	})

	prefixTiers = buildTiers("prefix", [][]string{
		{"እንድ", "እንደ", "እንዲ", "የማይ"},
		{"እን", "እነ", "እየ", "አል", "የሚ", "የም", "አይ", "አስ", "በመ", "የተ"},
		{"እ", "ል", "ት", "ይ", "ብ", "በ", "ቢ", "መ", "ከ", "ለ", "ያ", "የ"},
	})
)

// buildTiers turns literal affix groups, longest group first, into tiers.
// A malformed table is a programming error caught at init.
func buildTiers(kind string, groups [][]string) []affixTier {
	tiers := make([]affixTier, 0, len(groups))
	for _, group := range groups {
		tier := affixTier{affixes: make([][]rune, 0, len(group))}
		seen := make(map[string]struct{}, len(group))
		for _, affix := range group {
			rs := []rune(affix)
			Normalize(rs, len(rs))
			if tier.size == 0 {
				tier.size = len(rs)
				tier.minLen = tier.size + minStem
			}
			if len(rs) != tier.size {
				panic("amharic: " + kind + " " + affix + " does not fit its tier")
			}
			if _, ok := seen[string(rs)]; ok {
				panic("amharic: duplicate " + kind + " " + affix)
			}
			seen[string(rs)] = struct{}{}
			tier.affixes = append(tier.affixes, rs)
		}
		if n := len(tiers); n > 0 && tiers[n-1].size <= tier.size {
			panic("amharic: " + kind + " tiers must be ordered longest first")
		}
		tiers = append(tiers, tier)
	}
	return tiers
}
