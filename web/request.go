package web

import (
	"github.com/oarkflow/filters"
)

type Query struct {
	Filters  []*filters.Filter `json:"filters"`
	Query    string            `json:"q" query:"q"`
	Match    string            `json:"m" query:"m"`
	Language string            `json:"l" query:"l"`
	Fields   []string          `json:"f" query:"f"`
	Offset   int               `json:"o" query:"o"`
	Size     int               `json:"s" query:"s"`
	Exact    bool              `json:"e" query:"e"`
	Sort     string            `json:"sort" query:"sort"`
}

type NewEngine struct {
	Key             string   `json:"key"`
	Language        string   `json:"lang"`
	FieldsToIndex   []string `json:"fields_to_index"`
	FieldsToStore   []string `json:"fields_to_store"`
	FieldsToExclude []string `json:"fields_to_exclude"`
	Storage         string   `json:"storage"`
	Reset           bool     `json:"reset"`
}

type IndexRequest struct {
	Data     []map[string]any `json:"data"`
	Language string           `json:"lang"`
}

type AnalyzeRequest struct {
	Text          string   `json:"text"`
	Language      string   `json:"lang"`
	Stem          *bool    `json:"stem"`
	StopWords     *bool    `json:"stop_words"`
	FoldOrders    bool     `json:"fold_orders"`
	StemExclusion []string `json:"stem_exclusion"`
}
