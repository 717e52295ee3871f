package web

import (
	"testing"

	"github.com/oarkflow/filters"
	"github.com/oarkflow/frame/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/amsearch"
	"github.com/oarkflow/amsearch/tokenizer"
)

func TestAnalyze(t *testing.T) {
	terms, err := Analyze(AnalyzeRequest{Text: "ሰላም ለኢትዮጵያውያን እና"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ሰላ", "ዒትዮጵያ"}, terms)

	off := false
	terms, err = Analyze(AnalyzeRequest{Text: "ሰላም እና", Stem: &off, StopWords: &off})
	require.NoError(t, err)
	assert.Equal(t, []string{"ሰላም", "ዕና"}, terms)

	terms, err = Analyze(AnalyzeRequest{Text: "ፈልጊአችኋለሁ", FoldOrders: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"ፍልግ"}, terms)

	terms, err = Analyze(AnalyzeRequest{Text: "searching", Language: "english"})
	require.NoError(t, err)
	assert.Equal(t, []string{"search"}, terms)

	_, err = Analyze(AnalyzeRequest{Text: "x", Language: "xx"})
	assert.ErrorIs(t, err, tokenizer.ErrLanguageNotSupported)
	assert.Equal(t, consts.StatusBadRequest, statusOf(err))
}

func TestBuildParams(t *testing.T) {
	params, err := BuildParams(Query{Query: "ቤት", Match: "any", Size: 5, Exact: true}, map[string]string{
		"q":        "ቤት",
		"category": "news",
		"author":   "ሀይሌ",
	})
	require.NoError(t, err)
	assert.Equal(t, amsearch.OR, params.BoolMode)
	assert.Equal(t, 5, params.Limit)
	assert.True(t, params.Exact)
	assert.True(t, params.Paginate)
	require.Len(t, params.Filters, 2)
	assert.Equal(t, "author", params.Filters[0].Field)
	assert.Equal(t, "category", params.Filters[1].Field)
	assert.Equal(t, filters.Equal, params.Filters[1].Operator)

	params, err = BuildParams(Query{Query: "ቤት"}, nil)
	require.NoError(t, err)
	assert.Equal(t, amsearch.AND, params.BoolMode)
	assert.Equal(t, 100, params.Limit)
}

func TestIndexAndSearch(t *testing.T) {
	key := "web-test"
	_, err := CreateEngine(NewEngine{Key: key, Language: "am"})
	require.NoError(t, err)
	t.Cleanup(func() { amsearch.RemoveEngine(key) })

	records, err := Index(key, IndexRequest{Data: []map[string]any{
		{"title": "የኢትዮጵያ ተማሪዎች", "category": "news"},
		{"title": "መጽሐፍ ቤት", "category": "books"},
	}})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	result, err := Search(key, Query{Query: "ተማሪ"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result["count"])

	result, err = Search(key, Query{Query: "ቤት", Match: "any"}, map[string]string{"category": "news"})
	require.NoError(t, err)
	assert.Equal(t, 0, result["count"])

	_, err = Index(key, IndexRequest{})
	assert.ErrorIs(t, err, ErrBadRequest)
	_, err = CreateEngine(NewEngine{})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, consts.StatusNotFound, statusOf(amsearch.ErrDocumentNotFound))
	assert.Equal(t, consts.StatusInternalServerError, statusOf(assert.AnError))
}
