package engine

import (
	"context"

	"github.com/manula2004/bagisto/internal/domain"
)

// DefaultPageSize is the fixed window used by search results. Search pages
// are not client sized.
const DefaultPageSize = 16

// Engine is the pluggable full-text backend. One implementation is selected
// by configuration at startup; every implementation applies the same
// channel/locale/status/visible-individually scoping so switching backends
// never changes which products are eligible.
type Engine interface {
	// Search returns one fixed-size page of products matching the term
	// within the given storefront scope, ordered with a product-id-descending
	// tiebreak so repeated calls paginate deterministically.
	Search(ctx context.Context, term string, scope domain.StoreContext, page int) (*domain.Page, error)

	// Index adds or replaces one product document.
	Index(ctx context.Context, doc *domain.SearchableProduct) error

	// BulkIndex adds or replaces a batch of product documents.
	BulkIndex(ctx context.Context, docs []domain.SearchableProduct) error

	// Delete removes a product document within the given storefront scope.
	// Deleting an absent document is not an error.
	Delete(ctx context.Context, productID int64, scope domain.StoreContext) error
}
