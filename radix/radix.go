package radix

import (
	"github.com/oarkflow/amsearch/lib"
)

// Trie is a compressed prefix tree from terms to the documents holding them.
// It is not safe for concurrent use.
type Trie struct {
	root *node
}

func New() *Trie {
	return &Trie{root: newNode(nil)}
}

// Insert records that document id holds word with the given frequency.
func (t *Trie) Insert(id int64, word string, frequency float64) {
	runes := []rune(word)
	if len(runes) == 0 {
		return
	}
	currNode := t.root

	i := 0
	for i < len(runes) {
		wordAtIndex := runes[i:]
		currChild, ok := currNode.children[wordAtIndex[0]]
		if !ok {
			n := newNode(wordAtIndex)
			n.addRecordInfo(id, frequency)
			currNode.addChild(n)
			return
		}

		commonPrefix, _ := lib.CommonPrefix(currChild.subword, wordAtIndex)
		commonPrefixLength := len(commonPrefix)
		subwordLength := len(currChild.subword)
		wordLength := len(wordAtIndex)

		// the word ends exactly at this child
		if commonPrefixLength == wordLength && commonPrefixLength == subwordLength {
			currChild.addRecordInfo(id, frequency)
			return
		}

		// the word is a proper prefix of the child subword
		if commonPrefixLength == wordLength && commonPrefixLength < subwordLength {
			n := newNode(wordAtIndex)
			n.addRecordInfo(id, frequency)

			currChild.subword = currChild.subword[commonPrefixLength:]
			n.addChild(currChild)
			currNode.addChild(n)

			return
		}

		// the word and the child subword diverge
		if commonPrefixLength < wordLength && commonPrefixLength < subwordLength {
			n := newNode(wordAtIndex[commonPrefixLength:])
			n.addRecordInfo(id, frequency)

			inBetweenNode := newNode(wordAtIndex[:commonPrefixLength])
			currNode.addChild(inBetweenNode)

			currChild.subword = currChild.subword[commonPrefixLength:]
			inBetweenNode.addChild(currChild)
			inBetweenNode.addChild(n)

			return
		}

		// the child subword is a prefix of the word
		i += subwordLength
		currNode = currChild
	}
}

// Delete removes document id from word.
func (t *Trie) Delete(id int64, word string) {
	runes := []rune(word)
	currNode := t.root

	for i := 0; i < len(runes); {
		wordAtIndex := runes[i:]
		currChild, ok := currNode.children[wordAtIndex[0]]
		if !ok {
			return
		}
		commonPrefix, eq := lib.CommonPrefix(currChild.subword, wordAtIndex)
		if eq {
			currChild.removeRecordInfo(id)
			if len(currChild.infos) > 0 {
				return
			}
			switch len(currChild.children) {
			case 0:
				currNode.removeChild(currChild)
				releaseNode(currChild)
			case 1:
				for _, child := range currChild.children {
					mergeNodes(currChild, child)
				}
			}
			return
		}
		if len(commonPrefix) < len(currChild.subword) {
			return
		}

		i += len(currChild.subword)
		currNode = currChild
	}
}

// Find returns the documents holding term with their frequencies. Without
// exact, every word starting with term matches as well.
func (t *Trie) Find(term string, exact bool) map[int64]float64 {
	runes := []rune(term)
	results := make(map[int64]float64)
	if len(runes) == 0 {
		return results
	}
	currNode := t.root

	for i := 0; i < len(runes); {
		wordAtIndex := runes[i:]
		currChild, ok := currNode.children[wordAtIndex[0]]
		if !ok {
			return results
		}
		commonPrefix, _ := lib.CommonPrefix(currChild.subword, wordAtIndex)
		commonPrefixLength := len(commonPrefix)
		subwordLength := len(currChild.subword)
		wordLength := len(wordAtIndex)

		switch {
		case commonPrefixLength == subwordLength && commonPrefixLength == wordLength:
			if exact {
				for id, frequency := range currChild.infos {
					results[id] = frequency
				}
				return results
			}
			collect(currChild, results)
			return results
		case commonPrefixLength == wordLength:
			// term ends inside the child subword
			if !exact {
				collect(currChild, results)
			}
			return results
		case commonPrefixLength < subwordLength:
			return results
		}

		i += subwordLength
		currNode = currChild
	}
	return results
}
