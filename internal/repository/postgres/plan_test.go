package postgres

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/internal/pricing"
	apperrors "github.com/manula2004/bagisto/pkg/errors"
)

func testBuilder() *PlanBuilder {
	return NewPlanBuilder(pricing.NewConverter("USD", map[string]float64{"EUR": 2}))
}

func testScope() domain.StoreContext {
	return domain.StoreContext{Channel: "default", Locale: "en", CustomerGroupID: 1, Currency: "USD"}
}

func specFromQuery(t *testing.T, rawQuery string) *domain.FilterSpec {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	return domain.ParseFilterSpec(values)
}

var nameDesc = domain.OrderBy{Column: "f.name", Direction: "DESC"}

func TestPlanBuilder_BaseScoping(t *testing.T) {
	plan, err := testBuilder().Build(specFromQuery(t, ""), testScope(), nil, nameDesc)
	require.NoError(t, err)

	sql, args := plan.CountQuery()
	assert.Contains(t, sql, "f.channel = $2")
	assert.Contains(t, sql, "f.locale = $3")
	assert.Contains(t, sql, "f.status = TRUE")
	assert.Contains(t, sql, "f.visible_individually = TRUE")
	assert.Contains(t, sql, "f.url_key IS NOT NULL")
	assert.Contains(t, sql, "LEFT JOIN product_price_index pi")
	assert.Equal(t, []any{int64(1), "default", "en"}, args)

	// No attribute filters means no value-table sub-query and no having clause.
	assert.NotContains(t, sql, "product_attribute_values")
	assert.NotContains(t, sql, "HAVING")
}

func TestPlanBuilder_CategoryFilter(t *testing.T) {
	spec := specFromQuery(t, "")
	spec.CategoryIDs = []int64{4, 7}

	plan, err := testBuilder().Build(spec, testScope(), nil, nameDesc)
	require.NoError(t, err)

	sql, args := plan.CountQuery()
	assert.Contains(t, sql, "product_category_links")
	assert.Contains(t, sql, "cl.category_id = ANY(")
	assert.Contains(t, args, []int64{4, 7})
}

func TestPlanBuilder_TextFilters(t *testing.T) {
	plan, err := testBuilder().Build(specFromQuery(t, "search=shirt&url_key=blue"), testScope(), nil, nameDesc)
	require.NoError(t, err)

	sql, args := plan.CountQuery()
	assert.Contains(t, sql, "f.name ILIKE")
	assert.Contains(t, sql, "f.url_key ILIKE")
	assert.Contains(t, args, "%shirt%")
	assert.Contains(t, args, "%blue%")
}

func TestPlanBuilder_PriceRange(t *testing.T) {
	plan, err := testBuilder().Build(specFromQuery(t, "price=10,20"), testScope(), nil, nameDesc)
	require.NoError(t, err)

	sql, args := plan.CountQuery()
	assert.Contains(t, sql, "pi.min_price BETWEEN")
	assert.Contains(t, args, 10.0)
	assert.Contains(t, args, 20.0)
}

func TestPlanBuilder_PriceRange_ConvertsCurrency(t *testing.T) {
	scope := testScope()
	scope.Currency = "EUR"

	plan, err := testBuilder().Build(specFromQuery(t, "price=10,20"), scope, nil, nameDesc)
	require.NoError(t, err)

	_, args := plan.CountQuery()
	assert.Contains(t, args, 20.0)
	assert.Contains(t, args, 40.0)
}

func TestPlanBuilder_PriceRange_Malformed(t *testing.T) {
	for _, raw := range []string{"price=cheap,20", "price=10", "price=10,20,30"} {
		_, err := testBuilder().Build(specFromQuery(t, raw), testScope(), nil, nameDesc)
		assert.ErrorIs(t, err, apperrors.ErrInvalidFilter, "query=%q", raw)
	}
}

func TestPlanBuilder_AttributeFilters_AndSemantics(t *testing.T) {
	spec := specFromQuery(t, "color=red,blue&size=M")
	attrs := []domain.AttributeDefinition{
		{ID: 10, Code: "color", Type: domain.AttributeSelect, IsFilterable: true},
		{ID: 11, Code: "size", Type: domain.AttributeSelect, IsFilterable: true},
	}

	plan, err := testBuilder().Build(spec, testScope(), attrs, nameDesc)
	require.NoError(t, err)

	sql, args := plan.CountQuery()
	assert.Contains(t, sql, "COALESCE(f.parent_id, f.product_id) IN (")
	assert.Contains(t, sql, "FROM product_attribute_values av")
	assert.Contains(t, sql, "GROUP BY av.product_id")
	assert.Contains(t, sql, "HAVING count(*) =")

	// Predicate groups are OR'd at the row level; the having-count turns that
	// into an AND across attributes.
	assert.Equal(t, 1, strings.Count(sql, ") OR ("))
	assert.Contains(t, args, []string{"red", "blue"})
	assert.Contains(t, args, []string{"M"})
	assert.Contains(t, args, 2)
}

func TestPlanBuilder_AttributePriceRange(t *testing.T) {
	spec := specFromQuery(t, "cost=5,15")
	attrs := []domain.AttributeDefinition{
		{ID: 20, Code: "cost", Type: domain.AttributePrice, IsFilterable: true},
	}

	plan, err := testBuilder().Build(spec, testScope(), attrs, nameDesc)
	require.NoError(t, err)

	sql, args := plan.CountQuery()
	assert.Contains(t, sql, "av.value_decimal BETWEEN")
	assert.Contains(t, args, 5.0)
	assert.Contains(t, args, 15.0)
}

func TestPlanBuilder_AttributePriceRange_Malformed(t *testing.T) {
	spec := specFromQuery(t, "cost=low,15")
	attrs := []domain.AttributeDefinition{
		{ID: 20, Code: "cost", Type: domain.AttributePrice, IsFilterable: true},
	}

	_, err := testBuilder().Build(spec, testScope(), attrs, nameDesc)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFilter)
}

func TestQueryPlan_CountStripsOrdering(t *testing.T) {
	plan, err := testBuilder().Build(specFromQuery(t, "search=shirt"), testScope(), nil, nameDesc)
	require.NoError(t, err)

	countSQL, _ := plan.CountQuery()
	assert.NotContains(t, countSQL, "ORDER BY")
	assert.NotContains(t, countSQL, "LIMIT")
}

func TestQueryPlan_CountAndPageShareArgs(t *testing.T) {
	plan, err := testBuilder().Build(specFromQuery(t, "search=shirt&price=10,20"), testScope(), nil, nameDesc)
	require.NoError(t, err)

	_, countArgs := plan.CountQuery()
	pageSQL, pageArgs := plan.PageQuery(9, 18)

	require.Len(t, pageArgs, len(countArgs)+2)
	assert.Equal(t, countArgs, pageArgs[:len(countArgs)])
	assert.Equal(t, 9, pageArgs[len(pageArgs)-2])
	assert.Equal(t, 18, pageArgs[len(pageArgs)-1])
	assert.Contains(t, pageSQL, "GROUP BY f.product_id, f.channel, f.locale")
}

func TestQueryPlan_PageQuery_StableTiebreak(t *testing.T) {
	plan, err := testBuilder().Build(specFromQuery(t, ""), testScope(), nil, nameDesc)
	require.NoError(t, err)

	sql, _ := plan.PageQuery(9, 0)
	assert.Contains(t, sql, "ORDER BY f.name DESC, f.product_id DESC")
}

func TestQueryPlan_PageQuery_PriceAlias(t *testing.T) {
	plan, err := testBuilder().Build(specFromQuery(t, ""), testScope(), nil,
		domain.OrderBy{Column: "min_price", Direction: "ASC"})
	require.NoError(t, err)

	sql, _ := plan.PageQuery(9, 0)
	assert.Contains(t, sql, "MIN(pi.min_price) AS min_price")
	assert.Contains(t, sql, "ORDER BY min_price ASC, f.product_id DESC")
}
