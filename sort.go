package amsearch

import (
	"cmp"
	"sort"
	"strconv"
	"strings"

	"github.com/oarkflow/amsearch/lib"
)

// sortHits orders hits by a document field. A leading "-" sorts descending.
// Values that parse as numbers compare numerically, others as strings; ties
// fall back to the score.
func (db *Engine[Schema]) sortHits(hits Hits[Schema], field string) {
	ascending := true
	if strings.HasPrefix(field, "-") {
		ascending = false
		field = field[1:]
	}
	values := make([]string, len(hits))
	for i, hit := range hits {
		values[i] = lib.ToString(db.flattenSchema(hit.Data)[field])
	}
	order := make([]int, len(hits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		c := compareValues(values[order[i]], values[order[j]])
		if c == 0 {
			return hits.Less(order[i], order[j])
		}
		return (c < 0) == ascending
	})
	sorted := make(Hits[Schema], len(hits))
	for i, idx := range order {
		sorted[i] = hits[idx]
	}
	copy(hits, sorted)
}

func compareValues(a, b string) int {
	aFloat, errA := strconv.ParseFloat(strings.ReplaceAll(a, ",", ""), 64)
	bFloat, errB := strconv.ParseFloat(strings.ReplaceAll(b, ",", ""), 64)
	if errA == nil && errB == nil {
		return cmp.Compare(aFloat, bFloat)
	}
	return strings.Compare(a, b)
}
