package elastic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manula2004/bagisto/internal/domain"
)

func testScope() domain.StoreContext {
	return domain.StoreContext{Channel: "default", Locale: "en", CustomerGroupID: 1, Currency: "USD"}
}

func boolClause(t *testing.T, q map[string]any) map[string]any {
	t.Helper()
	query, ok := q["query"].(map[string]any)
	require.True(t, ok)
	clause, ok := query["bool"].(map[string]any)
	require.True(t, ok)
	return clause
}

func TestBuildSimilarQuery_JoinsTokens(t *testing.T) {
	q := buildSimilarQuery("red_shirt", testScope(), 1, 16)

	must := boolClause(t, q)["must"].([]any)
	require.Len(t, must, 1)
	mm := must[0].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "red shirt", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
}

func TestBuildTokenORQuery_OrsTokens(t *testing.T) {
	q := buildTokenORQuery("red_shirt_cotton", testScope(), 1, 16)

	must := boolClause(t, q)["must"].([]any)
	require.Len(t, must, 1)
	qs := must[0].(map[string]any)["query_string"].(map[string]any)
	assert.Equal(t, "red OR shirt OR cotton", qs["query"])
}

func TestBuildQueries_ShareScopeFilters(t *testing.T) {
	for name, q := range map[string]map[string]any{
		"similar":  buildSimilarQuery("shirt", testScope(), 1, 16),
		"token_or": buildTokenORQuery("shirt", testScope(), 1, 16),
	} {
		filters := boolClause(t, q)["filter"].([]any)
		assert.Len(t, filters, 4, name)

		terms := make(map[string]any)
		for _, f := range filters {
			for field, v := range f.(map[string]any)["term"].(map[string]any) {
				terms[field] = v
			}
		}
		assert.Equal(t, "default", terms["channel"], name)
		assert.Equal(t, "en", terms["locale"], name)
		assert.Equal(t, true, terms["status"], name)
		assert.Equal(t, true, terms["visible_individually"], name)
	}
}

func TestBuildQueries_FixedPageWindow(t *testing.T) {
	q := buildSimilarQuery("shirt", testScope(), 3, 16)
	assert.Equal(t, 32, q["from"])
	assert.Equal(t, 16, q["size"])

	// Page below 1 is clamped.
	q = buildTokenORQuery("shirt", testScope(), 0, 16)
	assert.Equal(t, 0, q["from"])
}

func TestBuildQueries_StableTiebreak(t *testing.T) {
	q := buildTokenORQuery("shirt", testScope(), 1, 16)
	sort := q["sort"].([]any)
	require.Len(t, sort, 2)
	assert.Equal(t, map[string]any{"product_id": "desc"}, sort[1])
}

func TestBuildSimilarQuery_EmptyTermMatchesAll(t *testing.T) {
	q := buildSimilarQuery("  ", testScope(), 1, 16)
	must := boolClause(t, q)["must"].([]any)
	_, ok := must[0].(map[string]any)["match_all"]
	assert.True(t, ok)
}
