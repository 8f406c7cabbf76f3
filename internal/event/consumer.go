package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/internal/service"
	pkgkafka "github.com/manula2004/bagisto/pkg/kafka"
)

// Kafka topics for flat-projection change events emitted by the external
// indexing process. Consuming them keeps the search index in step with the
// relational projection.
const (
	TopicProductIndexed = "catalog.product.indexed"
	TopicProductRemoved = "catalog.product.removed"
)

// ProductIndexedData is the payload of a product.indexed event: the full
// document for one (product, channel, locale).
type ProductIndexedData struct {
	ProductID           int64   `json:"product_id"`
	Channel             string  `json:"channel"`
	Locale              string  `json:"locale"`
	Name                string  `json:"name"`
	ShortDescription    string  `json:"short_description"`
	URLKey              string  `json:"url_key"`
	Status              bool    `json:"status"`
	VisibleIndividually bool    `json:"visible_individually"`
	MinPrice            float64 `json:"min_price"`
}

// ProductRemovedData is the payload of a product.removed event.
type ProductRemovedData struct {
	ProductID int64  `json:"product_id"`
	Channel   string `json:"channel"`
	Locale    string `json:"locale"`
}

// Consumer applies flat-projection change events to the search index.
type Consumer struct {
	searchService *service.SearchService
	logger        *slog.Logger
}

// NewConsumer creates a new index-sync event consumer.
func NewConsumer(searchService *service.SearchService, logger *slog.Logger) *Consumer {
	return &Consumer{
		searchService: searchService,
		logger:        logger,
	}
}

// Handle processes a Kafka event based on its type.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicProductIndexed:
		return c.handleProductIndexed(ctx, event)
	case TopicProductRemoved:
		return c.handleProductRemoved(ctx, event)
	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

// handleProductIndexed adds or replaces the product document.
func (c *Consumer) handleProductIndexed(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductIndexedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal product.indexed data: %w", err)
	}

	input := &service.IndexProductInput{
		ProductID:           data.ProductID,
		Channel:             data.Channel,
		Locale:              data.Locale,
		Name:                data.Name,
		ShortDescription:    data.ShortDescription,
		URLKey:              data.URLKey,
		Status:              data.Status,
		VisibleIndividually: data.VisibleIndividually,
		MinPrice:            data.MinPrice,
	}

	if err := c.searchService.IndexProduct(ctx, input); err != nil {
		return fmt.Errorf("index product from indexed event: %w", err)
	}

	c.logger.InfoContext(ctx, "indexed product from event",
		slog.Int64("product_id", data.ProductID),
		slog.String("channel", data.Channel),
		slog.String("locale", data.Locale),
	)
	return nil
}

// handleProductRemoved deletes the product document.
func (c *Consumer) handleProductRemoved(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductRemovedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal product.removed data: %w", err)
	}

	scope := domain.StoreContext{Channel: data.Channel, Locale: data.Locale}
	if err := c.searchService.DeleteProduct(ctx, data.ProductID, scope); err != nil {
		return fmt.Errorf("delete product from removed event: %w", err)
	}

	c.logger.InfoContext(ctx, "removed product from index via event",
		slog.Int64("product_id", data.ProductID),
	)
	return nil
}
