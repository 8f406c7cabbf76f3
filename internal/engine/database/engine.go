package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/manula2004/bagisto/internal/domain"
	pkgdatabase "github.com/manula2004/bagisto/pkg/database"
	apperrors "github.com/manula2004/bagisto/pkg/errors"
)

// Engine is the relational fallback search strategy. It needs no external
// index: each underscore-split token is OR-matched as a case-insensitive
// substring against name and short description, under the same storefront
// scoping as the index-backed strategies.
type Engine struct {
	pool     pkgdatabase.DBTX
	pageSize int
}

// New creates the relational fallback engine. If pageSize is not positive,
// the shared search page size of 16 applies.
func New(pool pkgdatabase.DBTX, pageSize int) *Engine {
	if pageSize < 1 {
		pageSize = 16
	}
	return &Engine{pool: pool, pageSize: pageSize}
}

// Search executes one fixed-size page, count first, fetch only when matches
// exist. Results order by product id descending; without a relevance score
// that is the stable order shared with the index-backed strategies' tiebreak.
func (e *Engine) Search(ctx context.Context, term string, scope domain.StoreContext, page int) (*domain.Page, error) {
	if page < 1 {
		page = 1
	}

	conditions, args := e.buildConditions(term, scope)
	where := strings.Join(conditions, " AND ")

	var total int
	countSQL := "SELECT count(*) FROM product_flat f WHERE " + where
	if err := e.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count search matches: %w", err)
	}

	if total == 0 {
		return domain.EmptyPage(page, e.pageSize), nil
	}

	n := len(args)
	fetchSQL := `SELECT f.product_id, f.channel, f.locale, f.name, f.short_description, f.url_key,
		f.status, f.visible_individually, f.is_new, f.featured, f.parent_id, f.created_at
		FROM product_flat f WHERE ` + where +
		fmt.Sprintf(" ORDER BY f.product_id DESC LIMIT $%d OFFSET $%d", n+1, n+2)

	fetchArgs := make([]any, 0, n+2)
	fetchArgs = append(fetchArgs, args...)
	fetchArgs = append(fetchArgs, e.pageSize, (page-1)*e.pageSize)

	rows, err := e.pool.Query(ctx, fetchSQL, fetchArgs...)
	if err != nil {
		return nil, fmt.Errorf("fetch search matches: %w", err)
	}
	defer rows.Close()

	items := make([]domain.FlatProduct, 0, e.pageSize)
	for rows.Next() {
		var p domain.FlatProduct
		err := rows.Scan(
			&p.ProductID, &p.Channel, &p.Locale, &p.Name, &p.ShortDescription, &p.URLKey,
			&p.Status, &p.VisibleIndividually, &p.IsNew, &p.Featured, &p.ParentID, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan search match: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search matches: %w", err)
	}

	return &domain.Page{
		Items:       items,
		TotalCount:  total,
		CurrentPage: page,
		PerPage:     e.pageSize,
	}, nil
}

// buildConditions renders the scoping predicates plus the per-token substring
// match. Both the count and the fetch statements are built from the returned
// pair, so their predicates cannot diverge.
func (e *Engine) buildConditions(term string, scope domain.StoreContext) ([]string, []any) {
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	conditions := []string{
		"f.channel = " + arg(scope.Channel),
		"f.locale = " + arg(scope.Locale),
		"f.status = TRUE",
		"f.visible_individually = TRUE",
	}

	tokens := domain.SplitTokens(term)
	if len(tokens) > 0 {
		matches := make([]string, 0, len(tokens))
		for _, token := range tokens {
			p := arg("%" + token + "%")
			matches = append(matches, fmt.Sprintf("(f.name ILIKE %s OR f.short_description ILIKE %s)", p, p))
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
	}

	return conditions, args
}

// Index is not available on the relational fallback; the flat projection is
// maintained by the external indexing process.
func (e *Engine) Index(ctx context.Context, doc *domain.SearchableProduct) error {
	return apperrors.Unsupported("index")
}

// BulkIndex is not available on the relational fallback.
func (e *Engine) BulkIndex(ctx context.Context, docs []domain.SearchableProduct) error {
	return apperrors.Unsupported("bulk index")
}

// Delete is not available on the relational fallback.
func (e *Engine) Delete(ctx context.Context, productID int64, scope domain.StoreContext) error {
	return apperrors.Unsupported("delete")
}
