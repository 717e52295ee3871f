package amsearch

import (
	"sync"

	"github.com/oarkflow/amsearch/lib"
	"github.com/oarkflow/amsearch/radix"
)

type FindParams struct {
	Tokens    map[string]int
	BoolMode  Mode
	Exact     bool
	Relevance BM25Params
	DocsCount int
}

// Index holds the terms of one document field.
type Index struct {
	data           *radix.Trie
	avgFieldLength float64
	fieldLengths   map[int64]int
	mu             sync.RWMutex
}

func NewIndex() *Index {
	return &Index{
		data:         radix.New(),
		fieldLengths: make(map[int64]int),
	}
}

// Insert adds document id with its term counts. The average field length
// covers only the documents holding this field.
func (idx *Index) Insert(id int64, tokens map[string]int) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	totalTokens := 0
	for _, count := range tokens {
		totalTokens += count
	}
	for token, count := range tokens {
		tokenFrequency := float64(count) / float64(totalTokens)
		idx.data.Insert(id, token, tokenFrequency)
	}

	old, replaced := idx.fieldLengths[id]
	idx.fieldLengths[id] = totalTokens
	n := float64(len(idx.fieldLengths))
	if replaced {
		idx.avgFieldLength += float64(totalTokens-old) / n
		return
	}
	idx.avgFieldLength = (idx.avgFieldLength*(n-1) + float64(totalTokens)) / n
}

// Delete removes document id.
func (idx *Index) Delete(id int64, tokens map[string]int) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for token := range tokens {
		idx.data.Delete(id, token)
	}

	length, ok := idx.fieldLengths[id]
	if !ok {
		return
	}
	n := float64(len(idx.fieldLengths))
	delete(idx.fieldLengths, id)
	if n <= 1 {
		idx.avgFieldLength = 0
		return
	}
	idx.avgFieldLength = (idx.avgFieldLength*n - float64(length)) / (n - 1)
}

// Find scores the documents of this field against every query token.
func (idx *Index) Find(params *FindParams) map[int64]float64 {
	idScores := make(map[int64]float64)
	idTokensCount := make(map[int64]int)
	for token := range params.Tokens {
		for id, score := range idx.Score(token, params) {
			idScores[id] += score
			idTokensCount[id]++
		}
	}
	for id, tokensCount := range idTokensCount {
		if params.BoolMode == AND && tokensCount != len(params.Tokens) {
			delete(idScores, id)
		}
	}
	return idScores
}

// Score returns the BM25 score of token for every document of the field
// holding it, or a word starting with it unless params.Exact is set.
func (idx *Index) Score(token string, params *FindParams) map[int64]float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	infos := idx.data.Find(token, params.Exact)
	for id, frequency := range infos {
		infos[id] = lib.BM25(
			frequency,
			len(infos),
			idx.fieldLengths[id],
			idx.avgFieldLength,
			params.DocsCount,
			params.Relevance.K,
			params.Relevance.B,
			params.Relevance.D,
		)
	}
	return infos
}
