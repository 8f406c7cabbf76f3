package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/internal/repository"
	"github.com/manula2004/bagisto/pkg/database"
	apperrors "github.com/manula2004/bagisto/pkg/errors"
)

// CatalogRepository implements repository.CatalogRepository over the flat
// product projection in PostgreSQL.
type CatalogRepository struct {
	pool    database.DBTX
	builder *PlanBuilder
	attrs   repository.AttributeRepository

	defaultSort string

	// snapshotReads runs the count and fetch inside one repeatable-read
	// read-only transaction, closing the documented race where a write lands
	// between the two phases. Off by default; the catalog is a read-mostly
	// eventually-consistent projection.
	snapshotReads bool
}

// NewCatalogRepository creates a PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool database.DBTX, builder *PlanBuilder, attrs repository.AttributeRepository, defaultSort string, snapshotReads bool) *CatalogRepository {
	return &CatalogRepository{
		pool:          pool,
		builder:       builder,
		attrs:         attrs,
		defaultSort:   defaultSort,
		snapshotReads: snapshotReads,
	}
}

// Query plans one faceted catalog query and executes it in two phases: a
// distinct-id count first, then the row fetch only when the count is
// positive. Both statements are rendered from the same plan, so their filter
// predicates are identical by construction.
func (r *CatalogRepository) Query(ctx context.Context, spec *domain.FilterSpec, scope domain.StoreContext, page, perPage int) (*domain.Page, error) {
	plan, err := r.Plan(ctx, spec, scope)
	if err != nil {
		return nil, err
	}

	if !r.snapshotReads {
		return r.execute(ctx, r.pool, plan, page, perPage)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin snapshot read: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SET TRANSACTION ISOLATION LEVEL REPEATABLE READ READ ONLY"); err != nil {
		return nil, fmt.Errorf("set snapshot isolation: %w", err)
	}

	result, err := r.execute(ctx, tx, plan, page, perPage)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit snapshot read: %w", err)
	}
	return result, nil
}

// Plan resolves attribute metadata and ordering for the request and compiles
// the query plan without executing it.
func (r *CatalogRepository) Plan(ctx context.Context, spec *domain.FilterSpec, scope domain.StoreContext) (*QueryPlan, error) {
	var attrs []domain.AttributeDefinition
	if codes := spec.AttributeCodes(); len(codes) > 0 {
		var err error
		attrs, err = r.attrs.Filterable(ctx, codes)
		if err != nil {
			return nil, fmt.Errorf("resolve filterable attributes: %w", err)
		}
	}

	var sortDef *domain.AttributeDefinition
	if key := SortKey(spec.Sort, r.defaultSort); key != "" {
		def, err := r.attrs.ByCode(ctx, key)
		switch {
		case err == nil:
			sortDef = def
		case errors.Is(err, apperrors.ErrNotFound):
			// Unknown sort key: ordering falls back to creation time.
		default:
			return nil, fmt.Errorf("resolve sort attribute: %w", err)
		}
	}

	orderBy := ResolveSort(spec.Sort, sortDef, r.defaultSort)
	return r.builder.Build(spec, scope, attrs, orderBy)
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *CatalogRepository) execute(ctx context.Context, q queryer, plan *QueryPlan, page, perPage int) (*domain.Page, error) {
	countSQL, countArgs := plan.CountQuery()

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	if total == 0 {
		return domain.EmptyPage(page, perPage), nil
	}

	pageSQL, pageArgs := plan.PageQuery(perPage, (page-1)*perPage)
	rows, err := q.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer rows.Close()

	items := make([]domain.FlatProduct, 0, perPage)
	for rows.Next() {
		p, err := scanFlatProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return &domain.Page{
		Items:       items,
		TotalCount:  total,
		CurrentPage: page,
		PerPage:     perPage,
	}, nil
}

// GetByID returns one product row within the given storefront scope.
func (r *CatalogRepository) GetByID(ctx context.Context, productID int64, scope domain.StoreContext) (*domain.FlatProduct, error) {
	query := `
		SELECT f.product_id, f.channel, f.locale, f.name, f.short_description, f.url_key,
		       f.status, f.visible_individually, f.is_new, f.featured, f.parent_id, f.created_at,
		       pi.min_price, pi.max_price
		FROM product_flat f
		LEFT JOIN product_price_index pi ON pi.product_id = f.product_id AND pi.customer_group_id = $1
		WHERE f.product_id = $2 AND f.channel = $3 AND f.locale = $4`

	row := r.pool.QueryRow(ctx, query, scope.CustomerGroupID, productID, scope.Channel, scope.Locale)
	p, err := scanFlatProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", strconv.FormatInt(productID, 10))
		}
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}
	return p, nil
}

// scanFlatProduct scans one flat projection row, shared by the single-row and
// paged query paths.
func scanFlatProduct(row pgx.Row) (*domain.FlatProduct, error) {
	var p domain.FlatProduct
	err := row.Scan(
		&p.ProductID,
		&p.Channel,
		&p.Locale,
		&p.Name,
		&p.ShortDescription,
		&p.URLKey,
		&p.Status,
		&p.VisibleIndividually,
		&p.IsNew,
		&p.Featured,
		&p.ParentID,
		&p.CreatedAt,
		&p.MinPrice,
		&p.MaxPrice,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
