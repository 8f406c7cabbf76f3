package repository

import (
	"context"

	"github.com/manula2004/bagisto/internal/domain"
)

// CatalogRepository is the read surface over the flat product projection.
type CatalogRepository interface {
	// Query plans and executes one faceted catalog query, returning the
	// requested page and the total match count.
	Query(ctx context.Context, spec *domain.FilterSpec, scope domain.StoreContext, page, perPage int) (*domain.Page, error)

	// GetByID returns a single product row within the given storefront scope.
	GetByID(ctx context.Context, productID int64, scope domain.StoreContext) (*domain.FlatProduct, error)
}

// AttributeRepository resolves attribute codes to store-configured metadata.
type AttributeRepository interface {
	// Filterable returns the definitions for the subset of the candidate
	// codes that name filterable attributes. Unrecognized codes are simply
	// absent from the result; they are never an error.
	Filterable(ctx context.Context, codes []string) ([]domain.AttributeDefinition, error)

	// ByCode returns the definition for a single code, or ErrNotFound.
	ByCode(ctx context.Context, code string) (*domain.AttributeDefinition, error)
}
