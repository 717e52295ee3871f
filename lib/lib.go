package lib

import (
	"math"
)

// BM25 scores one term of one document field. tf is the term frequency in
// the field, matchingDocsCount the number of documents holding the term.
func BM25(tf float64, matchingDocsCount int, fieldLength int, avgFieldLength float64, docsCount int, k float64, b float64, d float64) float64 {
	idf := math.Log(1 + (float64(docsCount-matchingDocsCount)+0.5)/(float64(matchingDocsCount)+0.5))
	return idf * (d + tf*(k+1)) / (tf + k*(1-b+(b*float64(fieldLength))/avgFieldLength))
}

func Paginate(offset int, limit int, sliceLength int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > sliceLength {
		offset = sliceLength
	}

	end := offset + limit
	if end > sliceLength {
		end = sliceLength
	}

	return offset, end
}

// CommonPrefix returns the shared prefix of a and b and whether a and b are
// equal.
func CommonPrefix(a []rune, b []rune) ([]rune, bool) {
	lenA := len(a)
	lenB := len(b)
	minLength := lenA
	if lenB < lenA {
		minLength = lenB
	}

	var i int
	for i = 0; i < minLength; i++ {
		if a[i] != b[i] {
			break
		}
	}

	return a[:i], lenA == lenB && i == minLength
}
