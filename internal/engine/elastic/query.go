package elastic

import (
	"strings"

	"github.com/manula2004/bagisto/internal/domain"
)

// scopeFilters renders the storefront scoping shared by both strategies.
// Every search, regardless of backend, is restricted to the active channel
// and locale and to enabled, individually visible products.
func scopeFilters(scope domain.StoreContext) []any {
	return []any{
		map[string]any{"term": map[string]any{"channel": scope.Channel}},
		map[string]any{"term": map[string]any{"locale": scope.Locale}},
		map[string]any{"term": map[string]any{"status": true}},
		map[string]any{"term": map[string]any{"visible_individually": true}},
	}
}

// stableSort orders by relevance with a product-id-descending tiebreak so
// pagination is deterministic across repeated identical queries.
func stableSort() []any {
	return []any{
		map[string]any{"_score": "desc"},
		map[string]any{"product_id": "desc"},
	}
}

// buildSimilarQuery treats the underscore-split tokens as one similarity
// hint: a fuzzy multi-field match whose ranking is left to the index.
func buildSimilarQuery(term string, scope domain.StoreContext, page, pageSize int) map[string]any {
	if page < 1 {
		page = 1
	}

	var must any
	if tokens := domain.SplitTokens(term); len(tokens) > 0 {
		must = map[string]any{
			"multi_match": map[string]any{
				"query":         strings.Join(tokens, " "),
				"fields":        []string{"name^3", "short_description"},
				"type":          "best_fields",
				"fuzziness":     "AUTO",
				"prefix_length": 1,
			},
		}
	} else {
		must = map[string]any{"match_all": map[string]any{}}
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   []any{must},
				"filter": scopeFilters(scope),
			},
		},
		"sort":             stableSort(),
		"from":             (page - 1) * pageSize,
		"size":             pageSize,
		"track_total_hits": true,
	}
}

// buildTokenORQuery OR-combines the underscore-split tokens into a query
// string, so a product matching any single token is a hit.
func buildTokenORQuery(term string, scope domain.StoreContext, page, pageSize int) map[string]any {
	if page < 1 {
		page = 1
	}

	var must any
	if tokens := domain.SplitTokens(term); len(tokens) > 0 {
		must = map[string]any{
			"query_string": map[string]any{
				"query":            strings.Join(tokens, " OR "),
				"fields":           []string{"name", "short_description"},
				"default_operator": "OR",
			},
		}
	} else {
		must = map[string]any{"match_all": map[string]any{}}
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   []any{must},
				"filter": scopeFilters(scope),
			},
		},
		"sort":             stableSort(),
		"from":             (page - 1) * pageSize,
		"size":             pageSize,
		"track_total_hits": true,
	}
}
