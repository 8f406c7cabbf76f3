package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/internal/engine"
	apperrors "github.com/manula2004/bagisto/pkg/errors"
)

// SearchService implements the business logic for full-text product search.
// The backing engine is selected once at startup; the service never
// re-checks configuration per call.
type SearchService struct {
	engine engine.Engine
	logger *slog.Logger
}

// NewSearchService creates a new search service over the configured engine.
func NewSearchService(eng engine.Engine, logger *slog.Logger) *SearchService {
	return &SearchService{
		engine: eng,
		logger: logger,
	}
}

// Search runs one fixed-size search page within the given storefront scope.
func (s *SearchService) Search(ctx context.Context, term string, scope domain.StoreContext, page int) (*domain.Page, error) {
	if page < 1 {
		page = 1
	}

	result, err := s.engine.Search(ctx, term, scope, page)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	s.logger.DebugContext(ctx, "search executed",
		slog.String("term", term),
		slog.Int("total", result.TotalCount),
		slog.Int("page", result.CurrentPage),
	)
	return result, nil
}

// IndexProductInput holds the parameters for indexing a product document.
type IndexProductInput struct {
	ProductID           int64   `json:"product_id" validate:"required,gt=0"`
	Channel             string  `json:"channel" validate:"required"`
	Locale              string  `json:"locale" validate:"required"`
	Name                string  `json:"name" validate:"required"`
	ShortDescription    string  `json:"short_description"`
	URLKey              string  `json:"url_key"`
	Status              bool    `json:"status"`
	VisibleIndividually bool    `json:"visible_individually"`
	MinPrice            float64 `json:"min_price" validate:"gte=0"`
}

func (in *IndexProductInput) toDocument() *domain.SearchableProduct {
	return &domain.SearchableProduct{
		ProductID:           in.ProductID,
		Channel:             in.Channel,
		Locale:              in.Locale,
		Name:                in.Name,
		ShortDescription:    in.ShortDescription,
		URLKey:              in.URLKey,
		Status:              in.Status,
		VisibleIndividually: in.VisibleIndividually,
		MinPrice:            in.MinPrice,
		CreatedAt:           time.Now().UTC(),
	}
}

// IndexProduct adds or replaces a single product document in the engine.
func (s *SearchService) IndexProduct(ctx context.Context, input *IndexProductInput) error {
	if input.ProductID <= 0 {
		return apperrors.InvalidInput("index product: product_id is required")
	}
	if input.Name == "" {
		return apperrors.InvalidInput("index product: name is required")
	}

	if err := s.engine.Index(ctx, input.toDocument()); err != nil {
		return fmt.Errorf("index product %d: %w", input.ProductID, err)
	}

	s.logger.InfoContext(ctx, "product indexed",
		slog.Int64("product_id", input.ProductID),
		slog.String("channel", input.Channel),
		slog.String("locale", input.Locale),
	)
	return nil
}

// BulkIndexProducts adds or replaces a batch of product documents.
func (s *SearchService) BulkIndexProducts(ctx context.Context, inputs []IndexProductInput) error {
	if len(inputs) == 0 {
		return nil
	}

	docs := make([]domain.SearchableProduct, 0, len(inputs))
	for i := range inputs {
		if inputs[i].ProductID <= 0 || inputs[i].Name == "" {
			return apperrors.InvalidInput(fmt.Sprintf("bulk index: entry %d missing product_id or name", i))
		}
		docs = append(docs, *inputs[i].toDocument())
	}

	if err := s.engine.BulkIndex(ctx, docs); err != nil {
		return fmt.Errorf("bulk index %d products: %w", len(docs), err)
	}

	s.logger.InfoContext(ctx, "products bulk indexed", slog.Int("count", len(docs)))
	return nil
}

// DeleteProduct removes a product document within the storefront scope.
func (s *SearchService) DeleteProduct(ctx context.Context, productID int64, scope domain.StoreContext) error {
	if err := s.engine.Delete(ctx, productID, scope); err != nil {
		return fmt.Errorf("delete product %d from index: %w", productID, err)
	}

	s.logger.InfoContext(ctx, "product removed from index",
		slog.Int64("product_id", productID),
		slog.String("channel", scope.Channel),
		slog.String("locale", scope.Locale),
	)
	return nil
}
