package amsearch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/oarkflow/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/amsearch/tokenizer"
)

func sequence() func(any) int64 {
	var n atomic.Int64
	return func(any) int64 { return n.Add(1) }
}

func newEngine(t *testing.T, cfg ...*Config) *Engine[map[string]any] {
	t.Helper()
	c := &Config{IDGenerator: sequence()}
	engine, err := New[map[string]any](append([]*Config{c}, cfg...)...)
	require.NoError(t, err)
	return engine
}

func ids[Schema SchemaProps](result Result[Schema]) []int64 {
	out := make([]int64, 0, len(result.Hits))
	for _, hit := range result.Hits {
		out = append(out, hit.Id)
	}
	return out
}

func seed(t *testing.T, engine *Engine[map[string]any]) {
	t.Helper()
	docs := []map[string]any{
		{"title": "ኢትዮጵያውያን ተማሪዎች", "category": "news"},
		{"title": "መጽሐፍ ቤት", "category": "books"},
		{"title": "የማይሰራ ስልክ", "category": "news"},
	}
	for _, doc := range docs {
		_, err := engine.Insert(doc)
		require.NoError(t, err)
	}
}

func TestSearchFindsInflectedForms(t *testing.T) {
	engine := newEngine(t)
	seed(t, engine)

	tests := []struct {
		query string
		want  []int64
	}{
		{"ኢትዮጵያ", []int64{1}},
		{"መፅሀፍ", []int64{2}},
		{"ሰራ", []int64{3}},
		{"ስልኮች", nil},
	}
	for _, tt := range tests {
		result, err := engine.Search(&Params{Query: tt.query})
		require.NoError(t, err, tt.query)
		assert.ElementsMatch(t, tt.want, ids(result), tt.query)
	}
}

func TestSearchBoolMode(t *testing.T) {
	engine := newEngine(t)
	seed(t, engine)

	result, err := engine.Search(&Params{Query: "ኢትዮጵያ ሰራ"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)

	result, err = engine.Search(&Params{Query: "ኢትዮጵያ ሰራ", BoolMode: OR})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 3}, ids(result))
}

func TestSearchAndAcrossFields(t *testing.T) {
	engine := newEngine(t)
	_, err := engine.Insert(map[string]any{"title": "ዳቦ", "body": "ሰላም"})
	require.NoError(t, err)

	result, err := engine.Search(&Params{Query: "ዳቦ ሰላም"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(result))
}

func TestSearchPrefixAndExact(t *testing.T) {
	engine := newEngine(t)
	seed(t, engine)

	result, err := engine.Search(&Params{Query: "ዒትዮ"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(result))

	result, err = engine.Search(&Params{Query: "ዒትዮ", Exact: true})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestSearchStopWordQuery(t *testing.T) {
	engine := newEngine(t)
	seed(t, engine)

	result, err := engine.Search(&Params{Query: "እና"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestSearchEmptyQuerySamples(t *testing.T) {
	engine := newEngine(t)
	seed(t, engine)

	result, err := engine.Search(&Params{})
	require.NoError(t, err)
	assert.Len(t, result.Hits, 3)
	assert.NotEmpty(t, result.Message)
}

func TestSearchRanking(t *testing.T) {
	engine := newEngine(t)
	_, err := engine.Insert(map[string]any{"title": "ሰላም ቤት ዳቦ"})
	require.NoError(t, err)
	_, err = engine.Insert(map[string]any{"title": "ሰላም ሰላም"})
	require.NoError(t, err)

	result, err := engine.Search(&Params{Query: "ሰላም"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 2)
	assert.Equal(t, int64(2), result.Hits[0].Id)
	assert.Greater(t, result.Hits[0].Score, result.Hits[1].Score)
}

func TestSearchPaginate(t *testing.T) {
	engine := newEngine(t)
	for i := 0; i < 5; i++ {
		_, err := engine.Insert(map[string]any{"title": fmt.Sprintf("ሰላም %d", i)})
		require.NoError(t, err)
	}

	result, err := engine.Search(&Params{Query: "ሰላም", Paginate: true, Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, result.Hits, 1)
	assert.Equal(t, 5, result.Count)
	assert.Equal(t, 5, result.Total)
}

func TestSearchSort(t *testing.T) {
	engine := newEngine(t)
	for _, views := range []int{10, 300, 25} {
		_, err := engine.Insert(map[string]any{"title": "ዜና", "views": views})
		require.NoError(t, err)
	}

	result, err := engine.Search(&Params{Query: "ዜና", Properties: []string{"title"}, Sort: "-views"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, ids(result))

	result, err = engine.Search(&Params{Query: "ዜና", Properties: []string{"title"}, Sort: "views"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 2}, ids(result))
}

func TestSearchFilters(t *testing.T) {
	engine := newEngine(t)
	seed(t, engine)
	_, err := engine.Insert(map[string]any{"title": "ኢትዮጵያ", "category": "books"})
	require.NoError(t, err)

	result, err := engine.Search(&Params{
		Query:   "ኢትዮጵያ",
		Filters: []*filters.Filter{{Field: "category", Operator: filters.Equal, Value: "books"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, ids(result))
}

func TestUpdate(t *testing.T) {
	engine := newEngine(t)
	seed(t, engine)

	record, err := engine.Update(&UpdateParams[map[string]any]{Id: 3, Document: map[string]any{"title": "ቤቶች", "category": "news"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), record.Id)

	result, err := engine.Search(&Params{Query: "ሰራ"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)

	result, err = engine.Search(&Params{Query: "ቤቶች"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(result))

	_, err = engine.Update(&UpdateParams[map[string]any]{Id: 99, Document: map[string]any{}})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDelete(t *testing.T) {
	engine := newEngine(t)
	seed(t, engine)

	require.NoError(t, engine.Delete(&DeleteParams[map[string]any]{Id: 1}))
	assert.Equal(t, 2, engine.DocumentLen())
	_, ok := engine.GetDocument(1)
	assert.False(t, ok)

	result, err := engine.Search(&Params{Query: "ኢትዮጵያ"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)

	err = engine.Delete(&DeleteParams[map[string]any]{Id: 1})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestCacheIsClearedOnWrite(t *testing.T) {
	engine := newEngine(t)
	seed(t, engine)

	result, err := engine.Search(&Params{Query: "ቤት"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(result))

	_, err = engine.Insert(map[string]any{"title": "ቤት", "category": "news"})
	require.NoError(t, err)
	result, err = engine.Search(&Params{Query: "ቤት"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 4}, ids(result))
}

func TestClearCache(t *testing.T) {
	engine := newEngine(t)
	seed(t, engine)

	_, err := engine.Search(&Params{Query: "ቤት"})
	require.NoError(t, err)
	assert.Equal(t, 1, engine.cache.Len())
	engine.ClearCache()
	assert.Equal(t, 0, engine.cache.Len())
}

func TestCheck(t *testing.T) {
	engine := newEngine(t)
	news := []*filters.Filter{{Field: "category", Operator: filters.Equal, Value: "news"}}
	assert.True(t, engine.Check(map[string]any{"category": "news"}, news))
	assert.False(t, engine.Check(map[string]any{"category": "books"}, news))

	both := append(news, &filters.Filter{Field: "author", Operator: filters.Equal, Value: "ዐበበ"})
	assert.True(t, engine.Check(map[string]any{"category": "news", "author": "ዐበበ"}, both))
	assert.False(t, engine.Check(map[string]any{"category": "news", "author": "ከበደ"}, both))
}

func TestFieldsToStoreAndExclude(t *testing.T) {
	engine := newEngine(t, &Config{FieldsToExclude: []string{"secret"}})
	doc := map[string]any{"title": "ሰላም", "secret": "ዳቦ"}
	record, err := engine.Insert(doc)
	require.NoError(t, err)
	assert.NotContains(t, record.Data, "secret")
	assert.Contains(t, doc, "secret", "caller's document must not change")

	result, err := engine.Search(&Params{Query: "ዳቦ"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestNestedMapFields(t *testing.T) {
	engine := newEngine(t)
	_, err := engine.Insert(map[string]any{"author": map[string]any{"name": "ሐይሌ"}, "title": "ሩጫ"})
	require.NoError(t, err)
	assert.Contains(t, engine.Metadata()["index_keys"], "author.name")

	result, err := engine.Search(&Params{Query: "ሀይሌ", Properties: []string{"author.name"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(result))
}

type article struct {
	Title  string `index:"title"`
	Body   string `index:"body"`
	Views  int
	Author struct {
		Name string `index:"name"`
	} `index:"author"`
}

func TestStructDocuments(t *testing.T) {
	engine, err := New[article](&Config{IDGenerator: sequence()})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"title", "body", "author.name"}, engine.Metadata()["index_keys"])

	a := article{Title: "የኢትዮጵያ ዜና", Body: "ተማሪዎች"}
	a.Author.Name = "አበበ"
	_, err = engine.Insert(a)
	require.NoError(t, err)

	result, err := engine.Search(&Params{Query: "ተማሪ"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "የኢትዮጵያ ዜና", result.Hits[0].Data.Title)

	result, err = engine.Search(&Params{Query: "ዐበበ", Properties: []string{"author.name"}})
	require.NoError(t, err)
	assert.Len(t, result.Hits, 1)
}

func TestInsertWithPool(t *testing.T) {
	engine := newEngine(t)
	docs := make([]map[string]any, 100)
	for i := range docs {
		docs[i] = map[string]any{"title": fmt.Sprintf("ተማሪዎች %d", i)}
	}
	errs := engine.InsertWithPool(docs, runtime.NumCPU(), 10)
	assert.Empty(t, errs)
	assert.Equal(t, 100, engine.DocumentLen())

	result, err := engine.Search(&Params{Query: "ተማሪ"})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Count)
}

func TestInsertWithPoolCollectsErrors(t *testing.T) {
	engine := newEngine(t)
	docs := make([]map[string]any, 20)
	for i := range docs {
		docs[i] = map[string]any{"title": fmt.Sprintf("ቤት %d", i)}
	}
	errs := engine.InsertWithPool(docs, 4, 5, tokenizer.Language("xx"))
	assert.Len(t, errs, 20)
	for _, err := range errs {
		assert.ErrorIs(t, err, tokenizer.ErrLanguageNotSupported)
	}
	assert.Zero(t, engine.DocumentLen())
}

func TestLanguages(t *testing.T) {
	engine := newEngine(t)
	_, err := engine.Insert(map[string]any{"title": "running shoes"}, tokenizer.ENGLISH)
	require.NoError(t, err)

	result, err := engine.Search(&Params{Query: "run", Language: tokenizer.ENGLISH})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(result))

	_, err = engine.Insert(map[string]any{"title": "x"}, tokenizer.Language("xx"))
	assert.ErrorIs(t, err, tokenizer.ErrLanguageNotSupported)

	_, err = engine.Search(&Params{Query: "x", Language: "xx"})
	assert.ErrorIs(t, err, tokenizer.ErrLanguageNotSupported)
}

func TestJSONStorageRebuildsIndexes(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Key: "news", Storage: StorageJSON, Path: dir, IDGenerator: sequence()}
	engine := newEngine(t, cfg)
	seed(t, engine)

	reopened, err := New[map[string]any](&Config{Key: "news", Storage: StorageJSON, Path: dir})
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.DocumentLen())

	result, err := reopened.Search(&Params{Query: "ኢትዮጵያ"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(result))

	reset, err := New[map[string]any](&Config{Key: "news", Storage: StorageJSON, Path: dir, ResetPath: true})
	require.NoError(t, err)
	assert.Zero(t, reset.DocumentLen())
}

func TestFlyDBStorageRebuildsIndexes(t *testing.T) {
	dir := t.TempDir()
	engine := newEngine(t, &Config{Key: "library", Storage: StorageFlyDB, Path: dir})
	seed(t, engine)
	require.NoError(t, engine.Close())

	reopened, err := New[map[string]any](&Config{Key: "library", Storage: StorageFlyDB, Path: dir})
	require.NoError(t, err)
	assert.Equal(t, "flydb", reopened.Metadata()["storage"])
	assert.Equal(t, 3, reopened.DocumentLen())

	result, err := reopened.Search(&Params{Query: "መጽሐፍ"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(result))
	require.NoError(t, reopened.Close())
}

func TestUnknownStorage(t *testing.T) {
	_, err := New[map[string]any](&Config{Storage: "tape"})
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	data := `{"key":"shop","default_language":"en","index_keys":["title"],"cache_size":8,"tokenizer":{"enable_stemming":true}}`
	require.NoError(t, os.WriteFile(file, []byte(data), 0644))

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "shop", cfg.Key)
	assert.Equal(t, tokenizer.ENGLISH, cfg.DefaultLanguage)
	assert.Equal(t, []string{"title"}, cfg.IndexKeys)
	assert.Equal(t, 8, cfg.CacheSize)
	require.NotNil(t, cfg.TokenizerConfig)
	assert.True(t, cfg.TokenizerConfig.EnableStemming)

	engine := newEngine(t, cfg)
	_, err = engine.Insert(map[string]any{"title": "Running shoes", "color": "red"})
	require.NoError(t, err)
	result, err := engine.Search(&Params{Query: "run"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(result))

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMergeConfigs(t *testing.T) {
	cfg := MergeConfigs(
		&Config{Key: "a", IndexKeys: []string{"title"}, Rules: map[string]bool{"title": true}},
		nil,
		&Config{Key: "b", IndexKeys: []string{"body"}, SampleSize: 5},
	)
	assert.Equal(t, "b", cfg.Key)
	assert.Equal(t, []string{"title", "body"}, cfg.IndexKeys)
	assert.Equal(t, 5, cfg.SampleSize)
	assert.True(t, cfg.Rules["title"])
}

func TestRegistry(t *testing.T) {
	key := "registry-test"
	t.Cleanup(func() { RemoveEngine(key) })

	first, err := GetEngine[map[string]any](key)
	require.NoError(t, err)
	second, err := GetEngine[map[string]any](key)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Contains(t, AvailableEngines(), key)

	_, err = GetEngine[article](key)
	assert.Error(t, err)

	replaced, err := SetEngine[map[string]any](key, &Config{})
	require.NoError(t, err)
	again, err := GetEngine[map[string]any](key)
	require.NoError(t, err)
	assert.Same(t, replaced, again)
	assert.Equal(t, key, again.Key())
}
