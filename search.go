package amsearch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"sync"

	"github.com/oarkflow/filters"
	"github.com/oarkflow/gopool"
	"github.com/oarkflow/log"
	"github.com/oarkflow/xsync"

	"github.com/oarkflow/amsearch/lib"
	"github.com/oarkflow/amsearch/storage"
	"github.com/oarkflow/amsearch/tokenizer"
)

const (
	AND Mode = "AND"
	OR  Mode = "OR"
)

type Mode string

type SchemaProps any

var ErrDocumentNotFound = errors.New("document not found")

type Record[Schema SchemaProps] struct {
	Id   int64  `json:"id"`
	Data Schema `json:"data"`
}

type UpdateParams[Schema SchemaProps] struct {
	Id       int64
	Document Schema
	Language tokenizer.Language
}

type DeleteParams[Schema SchemaProps] struct {
	Id int64
}

type Params struct {
	Filters    []*filters.Filter  `json:"filters"`
	Query      string             `json:"query"`
	Properties []string           `json:"properties"`
	BoolMode   Mode               `json:"boolMode"`
	Exact      bool               `json:"exact"`
	Relevance  BM25Params         `json:"relevance"`
	Paginate   bool               `json:"paginate"`
	Offset     int                `json:"offset"`
	Limit      int                `json:"limit"`
	Sort       string             `json:"sort"`
	Language   tokenizer.Language `json:"lang"`
}

func (p *Params) ToInt64() int64 {
	return lib.CRC32Checksum(p)
}

type BM25Params struct {
	K float64 `json:"k"`
	B float64 `json:"b"`
	D float64 `json:"d"`
}

var defaultBM25 = BM25Params{K: 1.2, B: 0.75, D: 0.5}

type Result[Schema SchemaProps] struct {
	Hits    Hits[Schema] `json:"hits"`
	Count   int          `json:"count"`
	Total   int          `json:"total"`
	Message string       `json:"message"`
}

type Hit[Schema SchemaProps] struct {
	Id    int64   `json:"id"`
	Data  Schema  `json:"data"`
	Score float64 `json:"score"`
}

type Hits[Schema SchemaProps] []Hit[Schema]

func (r Hits[Schema]) Len() int { return len(r) }

func (r Hits[Schema]) Swap(i, j int) { r[i], r[j] = r[j], r[i] }

func (r Hits[Schema]) Less(i, j int) bool {
	if r[i].Score == r[j].Score {
		return r[i].Id < r[j].Id
	}
	return r[i].Score > r[j].Score
}

type Engine[Schema SchemaProps] struct {
	m               sync.RWMutex
	documents       storage.Store[int64, Schema]
	languages       xsync.IMap[int64, tokenizer.Language]
	indexes         xsync.IMap[string, *Index]
	indexKeys       []string
	defaultLanguage tokenizer.Language
	tokenizerConfig *tokenizer.Config
	rules           map[string]bool
	cache           *storage.LRU[int64, map[int64]float64]
	key             string
	sliceField      string
	cfg             *Config
}

func parseID(name string) (int64, error) {
	return strconv.ParseInt(name, 10, 64)
}

func getStore[Schema SchemaProps](c *Config) (storage.Store[int64, Schema], error) {
	switch c.Storage {
	case StorageJSON:
		return storage.NewJsonDB[int64, Schema](filepath.Join(c.Path, c.Key), c.SampleSize, parseID)
	case StorageFlyDB:
		if err := os.MkdirAll(c.Path, 0755); err != nil {
			return nil, err
		}
		return storage.NewFlyDB[int64, Schema](filepath.Join(c.Path, c.Key), c.SampleSize, parseID)
	case StorageMemory:
		return storage.NewMemDB[int64, Schema](c.SampleSize)
	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}
}

func New[Schema SchemaProps](cfg ...*Config) (*Engine[Schema], error) {
	c := withDefaults(MergeConfigs(cfg...))
	if !tokenizer.IsSupportedLanguage(c.DefaultLanguage) {
		return nil, fmt.Errorf("%w: %q", tokenizer.ErrLanguageNotSupported, c.DefaultLanguage)
	}
	if c.ResetPath && (c.Storage == StorageJSON || c.Storage == StorageFlyDB) {
		if err := os.RemoveAll(filepath.Join(c.Path, c.Key)); err != nil {
			return nil, err
		}
	}
	store, err := getStore[Schema](c)
	if err != nil {
		return nil, err
	}
	db := &Engine[Schema]{
		key:             c.Key,
		documents:       store,
		languages:       xsync.NewMap[int64, tokenizer.Language](),
		indexes:         xsync.NewMap[string, *Index](),
		defaultLanguage: c.DefaultLanguage,
		tokenizerConfig: c.TokenizerConfig,
		rules:           c.Rules,
		cache:           storage.NewLRU[int64, map[int64]float64](c.CacheSize),
		sliceField:      c.SliceField,
		cfg:             c,
	}
	db.buildIndexes()
	if len(db.indexKeys) == 0 {
		db.addIndexes(c.IndexKeys)
	}
	if db.documents.Len() > 0 {
		db.reindex()
	}
	return db, nil
}

func (db *Engine[Schema]) Key() string {
	return db.key
}

func (db *Engine[Schema]) Metadata() map[string]any {
	db.m.RLock()
	defer db.m.RUnlock()
	cfg := map[string]any{
		"key":               db.key,
		"index_keys":        slices.Clone(db.indexKeys),
		"language":          db.defaultLanguage,
		"storage":           db.documents.Name(),
		"fields_to_store":   db.cfg.FieldsToStore,
		"fields_to_exclude": db.cfg.FieldsToExclude,
		"documents":         db.DocumentLen(),
	}
	return cfg
}

func (db *Engine[Schema]) GetDocument(id int64) (Schema, bool) {
	return db.documents.Get(id)
}

func (db *Engine[Schema]) DocumentLen() int {
	return int(db.documents.Len())
}

func (db *Engine[Schema]) resolveLanguage(lang ...tokenizer.Language) (tokenizer.Language, error) {
	language := db.defaultLanguage
	if len(lang) > 0 && lang[0] != "" {
		language = lang[0]
	}
	if !tokenizer.IsSupportedLanguage(language) {
		return "", fmt.Errorf("%w: %q", tokenizer.ErrLanguageNotSupported, language)
	}
	return language, nil
}

// Insert stores doc and indexes its fields in the given language, or the
// default language when none is given.
func (db *Engine[Schema]) Insert(doc Schema, lang ...tokenizer.Language) (Record[Schema], error) {
	language, err := db.resolveLanguage(lang...)
	if err != nil {
		return Record[Schema]{}, err
	}
	doc = db.selectFields(doc)
	document := db.flattenSchema(doc)
	db.m.Lock()
	if len(db.indexKeys) == 0 {
		db.addIndexes(sortedKeys(document))
	}
	db.m.Unlock()

	id := db.cfg.IDGenerator(doc)
	if err := db.documents.Set(id, doc); err != nil {
		return Record[Schema]{}, err
	}
	db.languages.Set(id, language)
	db.indexDocument(id, document, language)
	db.ClearCache()
	return Record[Schema]{Id: id, Data: doc}, nil
}

// InsertWithPool inserts docs on noOfWorker goroutines and returns the
// errors of the documents that were rejected. Progress is logged every
// batchSize documents.
func (db *Engine[Schema]) InsertWithPool(docs []Schema, noOfWorker, batchSize int, lang ...tokenizer.Language) []error {
	docLen := len(docs)
	if docLen == 0 {
		return nil
	}
	if noOfWorker < 1 {
		noOfWorker = 1
	}
	if batchSize < 1 {
		batchSize = docLen
	}
	var (
		mu   sync.Mutex
		errs []error
	)
	// the first document decides the index keys when none are configured
	if _, err := db.Insert(docs[0], lang...); err != nil {
		errs = append(errs, err)
	}
	pool, err := gopool.NewPoolSimple(noOfWorker, func(job gopool.Job[Schema], _ int) error {
		if _, err := db.Insert(job.Payload, lang...); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
		return nil
	}, gopool.Name(db.key))
	if err != nil {
		return append(errs, err)
	}
	for i, doc := range docs[1:] {
		pool.Submit(doc)
		if (i+2)%batchSize == 0 {
			log.Info().Str("key", db.key).Int("submitted", i+2).Int("documents", docLen).Msg("Indexing documents")
		}
	}
	pool.StopAndWait()
	log.Info().Str("key", db.key).Int("documents", docLen).Int("errors", len(errs)).Msg("Indexed documents")
	return errs
}

func (db *Engine[Schema]) Update(params *UpdateParams[Schema]) (Record[Schema], error) {
	language, err := db.resolveLanguage(params.Language)
	if err != nil {
		return Record[Schema]{}, err
	}
	oldDocument, ok := db.GetDocument(params.Id)
	if !ok {
		return Record[Schema]{}, fmt.Errorf("%w: %d", ErrDocumentNotFound, params.Id)
	}
	oldLanguage, ok := db.languages.Get(params.Id)
	if !ok {
		oldLanguage = db.defaultLanguage
	}
	doc := db.selectFields(params.Document)
	db.deindexDocument(params.Id, db.flattenSchema(oldDocument), oldLanguage)
	if err := db.documents.Set(params.Id, doc); err != nil {
		return Record[Schema]{}, err
	}
	db.languages.Set(params.Id, language)
	db.indexDocument(params.Id, db.flattenSchema(doc), language)
	db.ClearCache()
	return Record[Schema]{Id: params.Id, Data: doc}, nil
}

func (db *Engine[Schema]) Delete(params *DeleteParams[Schema]) error {
	document, ok := db.GetDocument(params.Id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrDocumentNotFound, params.Id)
	}
	language, ok := db.languages.Get(params.Id)
	if !ok {
		language = db.defaultLanguage
	}
	db.deindexDocument(params.Id, db.flattenSchema(document), language)
	db.languages.Del(params.Id)
	db.ClearCache()
	return db.documents.Del(params.Id)
}

// Close releases the document store.
func (db *Engine[Schema]) Close() error {
	return db.documents.Close()
}

func (db *Engine[Schema]) ClearCache() {
	db.cache.Purge()
}

// Check reports whether data satisfies every filter.
func (db *Engine[Schema]) Check(data Schema, filter []*filters.Filter) bool {
	conditions := make([]filters.Condition, len(filter))
	for i, f := range filter {
		conditions[i] = f
	}
	return filters.MatchGroup(data, filters.NewFilterGroup(filters.AND, false, conditions...))
}

func (db *Engine[Schema]) Sample(params storage.SampleParams) (Result[Schema], error) {
	results := make(Hits[Schema], 0)
	sampleDocs, err := db.documents.Sample(params)
	if err != nil {
		return Result[Schema]{}, err
	}
	for id, doc := range sampleDocs {
		results = append(results, Hit[Schema]{Id: id, Data: doc, Score: 0})
	}
	return db.prepareResult(results, &Params{Paginate: false})
}

// Search runs params.Query through the analysis pipeline of the query
// language and scores every matching document with BM25.
func (db *Engine[Schema]) Search(params *Params) (Result[Schema], error) {
	if params.BoolMode == "" {
		params.BoolMode = AND
	}
	if params.Relevance == (BM25Params{}) {
		params.Relevance = defaultBM25
	}
	if params.Query == "" {
		rs, err := db.Sample(storage.SampleParams{Size: params.Limit})
		if err != nil {
			return rs, err
		}
		if len(params.Filters) > 0 {
			rs.Hits = slices.DeleteFunc(rs.Hits, func(hit Hit[Schema]) bool {
				return !db.Check(hit.Data, params.Filters)
			})
			rs.Count = len(rs.Hits)
		}
		rs.Message = "[WARN] - Query not applied"
		return rs, nil
	}
	cachedKey := params.ToInt64()
	if cachedKey != 0 {
		if scores, ok := db.cache.Get(cachedKey); ok {
			return db.prepareResult(db.getDocuments(scores), params)
		}
	}
	allIdScores, err := db.findWithParams(params)
	if err != nil {
		return Result[Schema]{}, err
	}
	results := make(Hits[Schema], 0, len(allIdScores))
	cache := make(map[int64]float64, len(allIdScores))
	for id, score := range allIdScores {
		doc, ok := db.GetDocument(id)
		if !ok {
			continue
		}
		if len(params.Filters) > 0 && !db.Check(doc, params.Filters) {
			continue
		}
		cache[id] = score
		results = append(results, Hit[Schema]{Id: id, Data: doc, Score: score})
	}
	if cachedKey != 0 {
		db.cache.Put(cachedKey, cache)
	}
	return db.prepareResult(results, params)
}

func (db *Engine[Schema]) findWithParams(params *Params) (map[int64]float64, error) {
	language, err := db.resolveLanguage(params.Language)
	if err != nil {
		return nil, err
	}
	db.m.RLock()
	properties := params.Properties
	if len(properties) == 0 {
		properties = slices.Clone(db.indexKeys)
	}
	db.m.RUnlock()

	tokens := tokensPool.Get()
	defer func() {
		clear(tokens)
		tokensPool.Put(tokens)
	}()
	clear(tokens)
	err = tokenizer.Tokenize(tokenizer.TokenizeParams{
		Text:            params.Query,
		Language:        language,
		AllowDuplicates: false,
	}, *db.tokenizerConfig, tokens)
	if err != nil {
		return nil, err
	}

	allIdScores := make(map[int64]float64)
	if len(tokens) == 0 {
		return allIdScores, nil
	}
	matched := make(map[int64]map[string]struct{})
	findParams := &FindParams{
		Tokens:    tokens,
		BoolMode:  params.BoolMode,
		Exact:     params.Exact,
		Relevance: params.Relevance,
		DocsCount: db.DocumentLen(),
	}
	for _, prop := range properties {
		index, ok := db.indexes.Get(prop)
		if !ok {
			continue
		}
		for token := range tokens {
			for id, score := range index.Score(token, findParams) {
				allIdScores[id] += score
				if matched[id] == nil {
					matched[id] = make(map[string]struct{}, len(tokens))
				}
				matched[id][token] = struct{}{}
			}
		}
	}
	if params.BoolMode == AND {
		for id, terms := range matched {
			if len(terms) != len(tokens) {
				delete(allIdScores, id)
			}
		}
	}
	return allIdScores, nil
}

func (db *Engine[Schema]) prepareResult(results Hits[Schema], params *Params) (Result[Schema], error) {
	if params.Sort != "" {
		db.sortHits(results, params.Sort)
	} else {
		sort.Sort(results)
	}
	if !params.Paginate {
		return Result[Schema]{Hits: results, Count: len(results), Total: db.DocumentLen()}, nil
	}
	if params.Limit == 0 {
		params.Limit = 20
	}
	start, stop := lib.Paginate(params.Offset, params.Limit, len(results))
	return Result[Schema]{Hits: results[start:stop], Count: len(results), Total: db.DocumentLen()}, nil
}

func (db *Engine[Schema]) getDocuments(scores map[int64]float64) Hits[Schema] {
	results := make(Hits[Schema], 0, len(scores))
	for id, score := range scores {
		if doc, ok := db.GetDocument(id); ok {
			results = append(results, Hit[Schema]{Id: id, Data: doc, Score: score})
		}
	}
	return results
}

// selectFields applies FieldsToStore and FieldsToExclude to map documents.
// The caller's map is left untouched.
func (db *Engine[Schema]) selectFields(doc Schema) Schema {
	if len(db.cfg.FieldsToStore) == 0 && len(db.cfg.FieldsToExclude) == 0 {
		return doc
	}
	m, ok := any(doc).(map[string]any)
	if !ok {
		return doc
	}
	selected := make(map[string]any, len(m))
	for k, v := range m {
		if len(db.cfg.FieldsToStore) > 0 && !slices.Contains(db.cfg.FieldsToStore, k) {
			continue
		}
		if slices.Contains(db.cfg.FieldsToExclude, k) {
			continue
		}
		selected[k] = v
	}
	if out, ok := any(selected).(Schema); ok {
		return out
	}
	return doc
}
