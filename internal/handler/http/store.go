package http

import (
	"net/http"
	"strconv"

	"github.com/manula2004/bagisto/internal/domain"
)

// Storefront scope headers. Absent or malformed headers fall back to the
// default store so anonymous traffic always resolves to a valid scope.
const (
	headerChannel       = "X-Channel"
	headerLocale        = "X-Locale"
	headerCustomerGroup = "X-Customer-Group"
	headerCurrency      = "X-Currency"
)

// resolveStoreContext builds the request's storefront scope by overlaying
// headers on the configured defaults.
func resolveStoreContext(r *http.Request, defaults domain.StoreContext) domain.StoreContext {
	scope := defaults

	if v := r.Header.Get(headerChannel); v != "" {
		scope.Channel = v
	}
	if v := r.Header.Get(headerLocale); v != "" {
		scope.Locale = v
	}
	if v := r.Header.Get(headerCustomerGroup); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			scope.CustomerGroupID = id
		}
	}
	if v := r.Header.Get(headerCurrency); v != "" {
		scope.Currency = v
	}

	return scope
}
