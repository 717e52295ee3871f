package web

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/oarkflow/filters"
	"github.com/oarkflow/frame/pkg/protocol/consts"

	"github.com/oarkflow/amsearch"
	"github.com/oarkflow/amsearch/tokenizer"
)

var builtInFields = []string{"q", "m", "l", "f", "o", "s", "e", "sort", "filters"}

var ErrBadRequest = errors.New("bad request")

// statusOf maps an error to the code reported in the response body.
func statusOf(err error) int {
	switch {
	case errors.Is(err, tokenizer.ErrLanguageNotSupported), errors.Is(err, ErrBadRequest):
		return consts.StatusBadRequest
	case errors.Is(err, amsearch.ErrDocumentNotFound):
		return consts.StatusNotFound
	default:
		return consts.StatusInternalServerError
	}
}

func parseLanguage(name string) (tokenizer.Language, error) {
	if name == "" {
		return "", nil
	}
	return tokenizer.ParseLanguage(name)
}

// Analyze runs text through the analysis pipeline.
func Analyze(req AnalyzeRequest) ([]string, error) {
	language, err := parseLanguage(req.Language)
	if err != nil {
		return nil, err
	}
	if language == "" {
		language = tokenizer.AMHARIC
	}
	cfg := tokenizer.DefaultConfig()
	if req.Stem != nil {
		cfg.EnableStemming = *req.Stem
	}
	if req.StopWords != nil {
		cfg.EnableStopWords = *req.StopWords
	}
	cfg.EnableOrderFolding = req.FoldOrders
	cfg.StemExclusion = req.StemExclusion
	return tokenizer.Analyze(req.Text, language, cfg)
}

// CreateEngine registers a new map document engine.
func CreateEngine(req NewEngine) (*amsearch.Engine[map[string]any], error) {
	if req.Key == "" {
		return nil, fmt.Errorf("%w: key not provided", ErrBadRequest)
	}
	language, err := parseLanguage(req.Language)
	if err != nil {
		return nil, err
	}
	cfg := amsearch.GetConfig(req.Key)
	if language != "" {
		cfg.DefaultLanguage = language
	}
	if req.Storage != "" {
		cfg.Storage = req.Storage
	}
	cfg.IndexKeys = req.FieldsToIndex
	cfg.FieldsToStore = req.FieldsToStore
	cfg.FieldsToExclude = req.FieldsToExclude
	cfg.ResetPath = req.Reset
	return amsearch.SetEngine[map[string]any](req.Key, cfg)
}

// Index inserts every document of req into the engine registered under key.
func Index(key string, req IndexRequest) ([]amsearch.Record[map[string]any], error) {
	if key == "" || len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: index key and data are required", ErrBadRequest)
	}
	language, err := parseLanguage(req.Language)
	if err != nil {
		return nil, err
	}
	engine, err := amsearch.GetEngine[map[string]any](key)
	if err != nil {
		return nil, err
	}
	records := make([]amsearch.Record[map[string]any], 0, len(req.Data))
	for _, data := range req.Data {
		record, err := engine.Insert(data, language)
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}

// BuildParams turns a search query into engine parameters. Query arguments
// that are not built in become equality filters.
func BuildParams(query Query, extra map[string]string) (*amsearch.Params, error) {
	language, err := parseLanguage(query.Language)
	if err != nil {
		return nil, err
	}
	mode := amsearch.AND
	if strings.EqualFold(query.Match, "any") || strings.EqualFold(query.Match, "or") {
		mode = amsearch.OR
	}
	params := &amsearch.Params{
		Query:      query.Query,
		Limit:      query.Size,
		Offset:     query.Offset,
		Language:   language,
		BoolMode:   mode,
		Properties: query.Fields,
		Exact:      query.Exact,
		Filters:    query.Filters,
		Sort:       query.Sort,
		Paginate:   true,
	}
	if params.Limit == 0 {
		params.Limit = 100
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !slices.Contains(builtInFields, k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		params.Filters = append(params.Filters, &filters.Filter{
			Field:    k,
			Operator: filters.Equal,
			Value:    extra[k],
		})
	}
	return params, nil
}

// Search queries the engine registered under key.
func Search(key string, query Query, extra map[string]string) (map[string]any, error) {
	params, err := BuildParams(query, extra)
	if err != nil {
		return nil, err
	}
	engine, err := amsearch.GetEngine[map[string]any](key)
	if err != nil {
		return nil, err
	}
	result, err := engine.Search(params)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"hits":    result.Hits,
		"count":   result.Count,
		"total":   result.Total,
		"message": result.Message,
	}, nil
}
