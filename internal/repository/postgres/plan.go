package postgres

import (
	"fmt"
	"strings"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/internal/pricing"
)

// selectColumns is the projection fetched for every catalog row. Price
// columns are aggregated because the outer query groups by the flat row key.
const selectColumns = `f.product_id, f.channel, f.locale, f.name, f.short_description, f.url_key, ` +
	`f.status, f.visible_individually, f.is_new, f.featured, f.parent_id, f.created_at, ` +
	`MIN(pi.min_price) AS min_price, MAX(pi.max_price) AS max_price`

// fromClause always carries the price-index join: sort-by-price and price
// range filtering both need it, and it must be a LEFT JOIN so products
// without an index row are not silently dropped. $1 is reserved for the
// customer group id.
const fromClause = `FROM product_flat f ` +
	`LEFT JOIN product_price_index pi ON pi.product_id = f.product_id AND pi.customer_group_id = $1`

// textColumns maps the reserved text facets to their flat-table columns.
var textColumns = map[string]string{
	"search":  "f.name",
	"name":    "f.name",
	"url_key": "f.url_key",
}

// QueryPlan is a composed, re-executable catalog query bound to no particular
// page. The count and fetch statements it renders share one condition list
// and one argument slice, so their filter predicates cannot diverge.
type QueryPlan struct {
	conditions []string
	args       []any
	orderBy    domain.OrderBy
}

// CountQuery renders the total-count statement: a distinct-id count over the
// fully filtered plan with ordering stripped.
func (p *QueryPlan) CountQuery() (string, []any) {
	sql := "SELECT count(DISTINCT f.product_id) " + fromClause +
		" WHERE " + strings.Join(p.conditions, " AND ")
	return sql, p.args
}

// PageQuery renders the row-fetch statement for one offset/limit window. The
// group-by on the flat row key collapses any fan-out from joined side tables,
// and a product-id tiebreak keeps pagination deterministic when the primary
// sort column has duplicates.
func (p *QueryPlan) PageQuery(limit, offset int) (string, []any) {
	order := p.orderBy.Column + " " + p.orderBy.Direction
	if p.orderBy.Column != "f.product_id" {
		order += ", f.product_id DESC"
	}

	n := len(p.args)
	sql := "SELECT " + selectColumns + " " + fromClause +
		" WHERE " + strings.Join(p.conditions, " AND ") +
		" GROUP BY f.product_id, f.channel, f.locale" +
		" ORDER BY " + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)

	args := make([]any, 0, n+2)
	args = append(args, p.args...)
	args = append(args, limit, offset)
	return sql, args
}

// OrderBy returns the resolved ordering the plan was built with.
func (p *QueryPlan) OrderBy() domain.OrderBy {
	return p.orderBy
}

// PlanBuilder compiles a FilterSpec into a QueryPlan. Building performs no
// I/O; attribute metadata and the resolved ordering are supplied by the
// caller.
type PlanBuilder struct {
	converter *pricing.Converter
}

// NewPlanBuilder creates a plan builder using the given price converter for
// currency-facing range bounds.
func NewPlanBuilder(converter *pricing.Converter) *PlanBuilder {
	return &PlanBuilder{converter: converter}
}

// Build composes the catalog query for one request. attrs must already be
// narrowed to recognized filterable attributes; codes the store does not
// know are dropped before this point.
func (b *PlanBuilder) Build(spec *domain.FilterSpec, scope domain.StoreContext, attrs []domain.AttributeDefinition, orderBy domain.OrderBy) (*QueryPlan, error) {
	p := &QueryPlan{orderBy: orderBy}

	// $1 belongs to the price-index join in fromClause.
	p.args = append(p.args, scope.CustomerGroupID)

	arg := func(v any) string {
		p.args = append(p.args, v)
		return fmt.Sprintf("$%d", len(p.args))
	}

	// Base scoping: active channel and locale, enabled, individually visible,
	// routable.
	p.conditions = append(p.conditions,
		"f.channel = "+arg(scope.Channel),
		"f.locale = "+arg(scope.Locale),
		"f.status = TRUE",
		"f.visible_individually = TRUE",
		"f.url_key IS NOT NULL",
	)

	// Category membership: any of the supplied categories.
	if len(spec.CategoryIDs) > 0 {
		p.conditions = append(p.conditions,
			"f.product_id IN (SELECT cl.product_id FROM product_category_links cl WHERE cl.category_id = ANY("+arg(spec.CategoryIDs)+"))")
	}

	// Text facets are additive; iterate in a fixed order so the rendered SQL
	// is stable for identical requests.
	for _, key := range []string{"search", "name", "url_key"} {
		if term, ok := spec.TextFilters[key]; ok {
			p.conditions = append(p.conditions,
				textColumns[key]+" ILIKE "+arg("%"+term+"%"))
		}
	}

	// Price range restricts the indexed minimum price to the inclusive
	// interval, after converting both bounds to base currency.
	if spec.PriceRange != nil {
		min, max, err := b.converter.RangeToBase(*spec.PriceRange, scope.Currency)
		if err != nil {
			return nil, err
		}
		p.conditions = append(p.conditions,
			"pi.min_price BETWEEN "+arg(min)+" AND "+arg(max))
	}

	// Attribute facets match at the family level: values are keyed on the
	// root product id, so a configurable product matches when any of its
	// variants satisfies the constraint.
	if len(attrs) > 0 {
		cond, err := b.matchesAllOf(p, spec, scope, attrs, arg)
		if err != nil {
			return nil, err
		}
		p.conditions = append(p.conditions, cond)
	}

	return p, nil
}

// matchesAllOf renders the multi-attribute AND constraint. The value table
// holds one row per (product, attribute), so a single row can never satisfy
// two different attributes; the per-attribute predicate groups are combined
// with OR and a family matches only when its count of matched attribute rows
// equals the number of filters.
func (b *PlanBuilder) matchesAllOf(p *QueryPlan, spec *domain.FilterSpec, scope domain.StoreContext, attrs []domain.AttributeDefinition, arg func(any) string) (string, error) {
	groups := make([]string, 0, len(attrs))
	for i := range attrs {
		def := &attrs[i]
		raw := spec.AttributeFilters[def.Code]
		col := "av." + def.ValueColumn()

		if def.IsRange() {
			min, max, err := b.converter.RangeToBase(raw, scope.Currency)
			if err != nil {
				return "", err
			}
			groups = append(groups, fmt.Sprintf("(av.attribute_id = %s AND %s BETWEEN %s AND %s)",
				arg(def.ID), col, arg(min), arg(max)))
			continue
		}

		values := domain.SplitValues(raw)
		groups = append(groups, fmt.Sprintf("(av.attribute_id = %s AND %s = ANY(%s))",
			arg(def.ID), col, arg(values)))
	}

	return "COALESCE(f.parent_id, f.product_id) IN (" +
		"SELECT av.product_id FROM product_attribute_values av" +
		" WHERE " + strings.Join(groups, " OR ") +
		" GROUP BY av.product_id" +
		" HAVING count(*) = " + arg(len(attrs)) +
		")", nil
}
