// Package main implements a standalone seed script that populates the
// catalog database with realistic test data: attribute definitions, a set
// of product families with variants, price-index rows per customer group,
// and category links. It writes direct SQL; the flat projection it fills is
// exactly what the catalog service queries.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	channels = []string{"default"}
	locales  = []string{"en"}

	colors = []string{"red", "blue", "black", "white", "green"}
	sizes  = []string{"S", "M", "L", "XL"}

	nouns      = []string{"Shirt", "Jacket", "Sneaker", "Backpack", "Hoodie", "Scarf", "Cap", "Belt"}
	adjectives = []string{"Classic", "Urban", "Vintage", "Sport", "Winter", "Summer"}
)

type attribute struct {
	code         string
	attrType     string
	isFilterable bool
	position     int
}

var attributes = []attribute{
	{code: "color", attrType: "select", isFilterable: true, position: 1},
	{code: "size", attrType: "select", isFilterable: true, position: 2},
	{code: "material", attrType: "text", isFilterable: false, position: 3},
	{code: "price", attrType: "price", isFilterable: true, position: 4},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "catalog"),
		getEnv("DB_PASSWORD", "catalog_secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "catalog"),
		getEnv("DB_SSLMODE", "disable"),
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}

	attrIDs, err := seedAttributes(ctx, pool)
	if err != nil {
		log.Fatalf("seed attributes: %v", err)
	}
	log.Printf("seeded %d attribute definitions", len(attrIDs))

	families, variants, err := seedProducts(ctx, pool, attrIDs)
	if err != nil {
		log.Fatalf("seed products: %v", err)
	}
	log.Printf("seeded %d product families (%d variants)", families, variants)

	log.Println("seed complete")
}

func seedAttributes(ctx context.Context, pool *pgxpool.Pool) (map[string]int64, error) {
	ids := make(map[string]int64, len(attributes))
	for _, a := range attributes {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO attribute_definitions (code, type, is_filterable, position)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (code) DO UPDATE SET
				type = EXCLUDED.type,
				is_filterable = EXCLUDED.is_filterable,
				position = EXCLUDED.position
			RETURNING id`,
			a.code, a.attrType, a.isFilterable, a.position,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("upsert attribute %s: %w", a.code, err)
		}
		ids[a.code] = id
	}
	return ids, nil
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, attrIDs map[string]int64) (int, int, error) {
	rng := rand.New(rand.NewSource(42))

	familyCount := 40
	nextID := int64(1000)
	variantTotal := 0

	for i := 0; i < familyCount; i++ {
		rootID := nextID
		nextID++

		name := fmt.Sprintf("%s %s", adjectives[rng.Intn(len(adjectives))], nouns[rng.Intn(len(nouns))])
		urlKey := fmt.Sprintf("product-%d", rootID)
		basePrice := 10 + rng.Float64()*190
		categoryID := int64(1 + rng.Intn(6))
		color := colors[rng.Intn(len(colors))]

		// Root (configurable) row.
		if err := insertFlat(ctx, pool, rootID, nil, name, urlKey, rng); err != nil {
			return 0, 0, err
		}
		if err := insertPriceIndex(ctx, pool, rootID, basePrice); err != nil {
			return 0, 0, err
		}

		_, err := pool.Exec(ctx, `
			INSERT INTO product_category_links (product_id, category_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`, rootID, categoryID)
		if err != nil {
			return 0, 0, fmt.Errorf("link product %d to category: %w", rootID, err)
		}

		// Attribute values are keyed on the root id so variant options roll
		// up to the family.
		sizeSet := sizes[:1+rng.Intn(len(sizes))]
		if err := insertOption(ctx, pool, rootID, attrIDs["color"], color); err != nil {
			return 0, 0, err
		}
		for _, s := range sizeSet {
			if err := insertOption(ctx, pool, rootID, attrIDs["size"], s); err != nil {
				return 0, 0, err
			}
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO product_attribute_values (product_id, attribute_id, value_decimal)
			VALUES ($1, $2, $3)`, rootID, attrIDs["price"], basePrice)
		if err != nil {
			return 0, 0, fmt.Errorf("insert price value for %d: %w", rootID, err)
		}

		// Variant rows: not individually visible, pointing at the root.
		for range sizeSet {
			variantID := nextID
			nextID++
			variantTotal++

			variantName := fmt.Sprintf("%s (%s)", name, color)
			if err := insertVariantFlat(ctx, pool, variantID, rootID, variantName, rng); err != nil {
				return 0, 0, err
			}
			if err := insertPriceIndex(ctx, pool, variantID, basePrice+rng.Float64()*10); err != nil {
				return 0, 0, err
			}
		}
	}

	return familyCount, variantTotal, nil
}

func insertFlat(ctx context.Context, pool *pgxpool.Pool, id int64, parentID *int64, name, urlKey string, rng *rand.Rand) error {
	for _, channel := range channels {
		for _, locale := range locales {
			_, err := pool.Exec(ctx, `
				INSERT INTO product_flat
					(product_id, channel, locale, name, short_description, url_key,
					 status, visible_individually, is_new, featured, parent_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, TRUE, TRUE, $7, $8, $9, NOW() - ($10 || ' days')::interval)
				ON CONFLICT (product_id, channel, locale) DO NOTHING`,
				id, channel, locale, name, "A quality "+name+" for every day.", urlKey,
				rng.Intn(4) == 0, rng.Intn(5) == 0, parentID, rng.Intn(365))
			if err != nil {
				return fmt.Errorf("insert flat row %d: %w", id, err)
			}
		}
	}
	return nil
}

func insertVariantFlat(ctx context.Context, pool *pgxpool.Pool, id, parentID int64, name string, rng *rand.Rand) error {
	for _, channel := range channels {
		for _, locale := range locales {
			_, err := pool.Exec(ctx, `
				INSERT INTO product_flat
					(product_id, channel, locale, name, short_description, url_key,
					 status, visible_individually, is_new, featured, parent_id, created_at)
				VALUES ($1, $2, $3, $4, $5, NULL, TRUE, FALSE, FALSE, FALSE, $6, NOW() - ($7 || ' days')::interval)
				ON CONFLICT (product_id, channel, locale) DO NOTHING`,
				id, channel, locale, name, "", parentID, rng.Intn(365))
			if err != nil {
				return fmt.Errorf("insert variant flat row %d: %w", id, err)
			}
		}
	}
	return nil
}

func insertPriceIndex(ctx context.Context, pool *pgxpool.Pool, productID int64, minPrice float64) error {
	for groupID := int64(1); groupID <= 2; groupID++ {
		_, err := pool.Exec(ctx, `
			INSERT INTO product_price_index (product_id, customer_group_id, min_price, max_price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (product_id, customer_group_id) DO UPDATE SET
				min_price = EXCLUDED.min_price,
				max_price = EXCLUDED.max_price`,
			productID, groupID, minPrice, minPrice*1.25)
		if err != nil {
			return fmt.Errorf("insert price index for %d: %w", productID, err)
		}
	}
	return nil
}

func insertOption(ctx context.Context, pool *pgxpool.Pool, productID, attributeID int64, option string) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO product_attribute_values (product_id, attribute_id, value_option)
		VALUES ($1, $2, $3)`, productID, attributeID, option)
	if err != nil {
		return fmt.Errorf("insert option %q for %d: %w", option, productID, err)
	}
	return nil
}
