package pagination

import (
	"net/http"
	"strconv"
)

// FallbackPerPage is the page size used when neither the request nor the
// configured page-size list yields a usable value.
const FallbackPerPage = 9

// maxPerPage caps request-supplied page sizes so a single call cannot
// drag an unbounded result set through the API.
const maxPerPage = 100

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// Resolve extracts pagination parameters from an HTTP request.
//
// The per-page value is resolved in order: an explicit positive "limit"
// query parameter, then the first entry of the configured page-size list,
// then FallbackPerPage. A malformed or non-positive limit falls through to
// the next source rather than failing the request. Page defaults to 1 and
// malformed values are treated as absent.
func Resolve(r *http.Request, pageSizes []int) Params {
	p := Params{Page: 1, PerPage: 0}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Page = v
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxPerPage {
			p.PerPage = v
		}
	}

	if p.PerPage == 0 && len(pageSizes) > 0 && pageSizes[0] > 0 {
		p.PerPage = pageSizes[0]
	}
	if p.PerPage == 0 {
		p.PerPage = FallbackPerPage
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// Fixed returns pagination parameters with a fixed per-page value, used by
// endpoints whose page size is not client controlled.
func Fixed(page, perPage int) Params {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = FallbackPerPage
	}
	return Params{Page: page, PerPage: perPage, Offset: (page - 1) * perPage}
}
