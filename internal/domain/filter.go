package domain

import (
	"net/url"
	"sort"
	"strings"
)

// reservedParams are request keys with dedicated meaning. Anything else is a
// candidate attribute code.
var reservedParams = map[string]struct{}{
	"price":                {},
	"name":                 {},
	"status":               {},
	"visible_individually": {},
	"search":               {},
	"url_key":              {},
	"sort":                 {},
	"order":                {},
	"page":                 {},
	"limit":                {},
}

// SortSpec is the raw sort request: an attribute code and a direction token.
// Either field may be empty when the request omitted it.
type SortSpec struct {
	Key       string
	Direction string
}

// OrderBy is a resolved order-by target: a concrete column reference and a
// normalized SQL direction ("ASC" or "DESC").
type OrderBy struct {
	Column    string
	Direction string
}

// FilterSpec is the request-scoped description of one catalog query. It is
// built once from inbound parameters, consumed by the query planner, and
// discarded.
type FilterSpec struct {
	CategoryIDs []int64

	// TextFilters maps a flat-table text facet (name, url_key, search) to its
	// requested substring. Multiple entries are additive.
	TextFilters map[string]string

	// PriceRange is the raw comma-separated price bound pair, nil when absent.
	PriceRange *string

	// AttributeFilters maps candidate attribute codes to their raw
	// comma-separated value tokens. Codes not recognized as filterable
	// attributes are dropped silently during planning.
	AttributeFilters map[string]string

	Sort SortSpec
}

// ParseFilterSpec builds a FilterSpec from query-string shaped parameters.
// It performs no value validation; malformed price or range tokens are
// rejected later, during planning, so that attribute metadata is available.
func ParseFilterSpec(values url.Values) *FilterSpec {
	spec := &FilterSpec{
		TextFilters:      make(map[string]string),
		AttributeFilters: make(map[string]string),
	}

	for key := range values {
		raw := values.Get(key)
		if raw == "" {
			continue
		}
		switch key {
		case "search", "name", "url_key":
			spec.TextFilters[key] = raw
		case "price":
			spec.PriceRange = &raw
		case "sort":
			spec.Sort.Key = raw
		case "order":
			spec.Sort.Direction = raw
		case "status", "visible_individually", "page", "limit":
			// Handled elsewhere; never treated as attribute codes.
		default:
			spec.AttributeFilters[key] = raw
		}
	}

	return spec
}

// AttributeCodes returns the candidate attribute codes present in the request,
// sorted for deterministic planning.
func (s *FilterSpec) AttributeCodes() []string {
	codes := make([]string, 0, len(s.AttributeFilters))
	for code := range s.AttributeFilters {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SplitValues splits a raw comma-separated token list, trimming whitespace and
// dropping empty tokens.
func SplitValues(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitTokens splits a search term on underscores, trimming whitespace and
// dropping empty tokens.
func SplitTokens(term string) []string {
	parts := strings.Split(term, "_")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsReservedParam reports whether the key has dedicated request semantics and
// can never name an attribute.
func IsReservedParam(key string) bool {
	_, ok := reservedParams[key]
	return ok
}
