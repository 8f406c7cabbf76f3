package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/internal/repository"
)

// CatalogService implements the business logic for faceted catalog queries.
type CatalogService struct {
	repo   repository.CatalogRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.CatalogRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts resolves one faceted catalog query into a page of products.
func (s *CatalogService) ListProducts(ctx context.Context, spec *domain.FilterSpec, scope domain.StoreContext, page, perPage int) (*domain.Page, error) {
	if page < 1 {
		page = 1
	}

	result, err := s.repo.Query(ctx, spec, scope, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	s.logger.DebugContext(ctx, "catalog query executed",
		slog.Int("total", result.TotalCount),
		slog.Int("page", result.CurrentPage),
		slog.Int("per_page", result.PerPage),
		slog.Int("attribute_filters", len(spec.AttributeFilters)),
		slog.Int("category_ids", len(spec.CategoryIDs)),
	)
	return result, nil
}

// ListByCategories restricts a catalog query to products in any of the given
// categories.
func (s *CatalogService) ListByCategories(ctx context.Context, categoryIDs []int64, spec *domain.FilterSpec, scope domain.StoreContext, page, perPage int) (*domain.Page, error) {
	spec.CategoryIDs = categoryIDs
	return s.ListProducts(ctx, spec, scope, page, perPage)
}

// GetProduct returns a single product within the given storefront scope.
func (s *CatalogService) GetProduct(ctx context.Context, productID int64, scope domain.StoreContext) (*domain.FlatProduct, error) {
	product, err := s.repo.GetByID(ctx, productID, scope)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}
