package tokenizer

import (
	"unicode"
)

// foldDigits rewrites decimal digits of any script to ASCII in place.
func foldDigits(buf []rune, n int) int {
	for i := 0; i < n; i++ {
		r := buf[i]
		if r <= unicode.MaxASCII || !unicode.Is(unicode.Nd, r) {
			continue
		}
		buf[i] = '0' + digitValue(r)
	}
	return n
}

// Every range of unicode.Nd starts at a zero digit and runs in blocks of ten.
func digitValue(r rune) rune {
	for _, rng := range unicode.Nd.R16 {
		if r >= rune(rng.Lo) && r <= rune(rng.Hi) {
			return (r - rune(rng.Lo)) % 10
		}
	}
	for _, rng := range unicode.Nd.R32 {
		if r >= rune(rng.Lo) && r <= rune(rng.Hi) {
			return (r - rune(rng.Lo)) % 10
		}
	}
	return 0
}
