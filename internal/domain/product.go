package domain

import "time"

// FlatProduct is one row of the denormalized product projection for a single
// (product, channel, locale) combination. Rows are maintained by an external
// indexing process and are read-only here.
type FlatProduct struct {
	ProductID           int64      `json:"product_id"`
	Channel             string     `json:"channel"`
	Locale              string     `json:"locale"`
	Name                string     `json:"name"`
	ShortDescription    string     `json:"short_description"`
	URLKey              *string    `json:"url_key,omitempty"`
	Status              bool       `json:"status"`
	VisibleIndividually bool       `json:"visible_individually"`
	IsNew               bool       `json:"is_new"`
	Featured            bool       `json:"featured"`
	ParentID            *int64     `json:"parent_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`

	// MinPrice and MaxPrice come from the price index for the requesting
	// customer group. Nil when no index row exists for the product.
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
}

// RootID returns the family identifier shared by a parent product and all of
// its variants: the parent id when the row is a variant, otherwise the
// product's own id.
func (p *FlatProduct) RootID() int64 {
	if p.ParentID != nil {
		return *p.ParentID
	}
	return p.ProductID
}

// Page is an ordered window of catalog results plus enough bookkeeping for a
// caller to compute total pages without re-querying.
type Page struct {
	Items       []FlatProduct `json:"items"`
	TotalCount  int           `json:"total_count"`
	CurrentPage int           `json:"current_page"`
	PerPage     int           `json:"per_page"`
}

// EmptyPage returns a zero-result page for the given window.
func EmptyPage(page, perPage int) *Page {
	return &Page{Items: []FlatProduct{}, TotalCount: 0, CurrentPage: page, PerPage: perPage}
}

// StoreContext carries the storefront scope a request executes under. It is
// threaded explicitly into every query so nothing depends on ambient request
// state.
type StoreContext struct {
	Channel         string
	Locale          string
	CustomerGroupID int64
	Currency        string
}

// DefaultStoreContext returns the built-in storefront scope. Deployments
// usually override these values through configuration.
func DefaultStoreContext() StoreContext {
	return StoreContext{
		Channel:         "default",
		Locale:          "en",
		CustomerGroupID: 1,
		Currency:        "USD",
	}
}
