package amharic

// sixthOrder is the column of the vowel-less form inside a row.
const sixthOrder = 5

// Consonant rows whose seven vowel orders fold onto the sixth order.
var foldRows = []rune{
	0x1200, 0x1208, 0x1210, 0x1218, 0x1220, 0x1228, 0x1230, 0x1238,
	0x1240, 0x1260, 0x1268, 0x1270, 0x1278, 0x1280, 0x1290, 0x1298,
	0x12A0, 0x12A8, 0x12B8, 0x12C8, 0x12D0, 0x12D8, 0x12E0, 0x12E8,
	0x12F0, 0x12F8, 0x1300, 0x1308, 0x1320, 0x1328, 0x1340, 0x1348,
	0x1350,
}

// foldRow[(r-ethiopicFirst)/8] reports whether the row of r folds.
var foldRow [(ethiopicLast - ethiopicFirst + 1) / 8]bool

func init() {
	for _, row := range foldRows {
		foldRow[(row-ethiopicFirst)/8] = true
	}
}

// FoldOrders rewrites every syllable of buf[:n] to the vowel-less sixth
// order of its consonant (ፈልጊ -> ፍልግ). Labialized forms in the eighth
// column and letters outside the folding rows are kept. The length never
// changes.
func FoldOrders(buf []rune, n int) int {
	for i := 0; i < n; i++ {
		r := buf[i]
		if r < ethiopicFirst || r > ethiopicLast {
			continue
		}
		offset := r - ethiopicFirst
		if col := offset % 8; col < 7 && foldRow[offset/8] {
			buf[i] = r - col + sixthOrder
		}
	}
	return n
}
