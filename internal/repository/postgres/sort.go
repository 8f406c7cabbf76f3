package postgres

import (
	"strings"

	"github.com/manula2004/bagisto/internal/domain"
)

// fallbackSort is used when no default is configured.
const fallbackSort = "name-desc"

// flatSortColumns lists the attribute codes whose values live directly on the
// flat projection and can therefore be ordered on. A recognized attribute
// without a flat column falls back to creation time.
var flatSortColumns = map[string]string{
	"name":              "f.name",
	"url_key":           "f.url_key",
	"short_description": "f.short_description",
	"status":            "f.status",
}

// ResolveSort maps a requested sort key to an order-by target. def is the
// attribute definition the key resolved to, nil when the store does not know
// the key. When the request carries no sort key, the configured default
// ("<key>-<direction>") fills in both key and direction.
func ResolveSort(spec domain.SortSpec, def *domain.AttributeDefinition, defaultSort string) domain.OrderBy {
	direction := spec.Direction
	if spec.Key == "" && direction == "" {
		_, direction = splitSortDefault(defaultSort)
	}

	column := "f.created_at"
	switch {
	case def == nil:
		// Unknown key: creation time is the only non-attribute sortable field.
	case def.Code == "price":
		column = "min_price"
	default:
		if col, ok := flatSortColumns[def.Code]; ok {
			column = col
		}
	}

	return domain.OrderBy{Column: column, Direction: normalizeDirection(direction)}
}

// SortKey returns the attribute code ordering should be resolved against:
// the requested key, or the key half of the configured default.
func SortKey(spec domain.SortSpec, defaultSort string) string {
	if spec.Key != "" {
		return spec.Key
	}
	key, _ := splitSortDefault(defaultSort)
	return key
}

func splitSortDefault(defaultSort string) (key, direction string) {
	if defaultSort == "" {
		defaultSort = fallbackSort
	}
	idx := strings.LastIndex(defaultSort, "-")
	if idx <= 0 {
		return defaultSort, "desc"
	}
	return defaultSort[:idx], defaultSort[idx+1:]
}

// normalizeDirection collapses a free-form direction token into a SQL
// direction. Unrecognized tokens become ASC so raw request input never
// reaches the rendered statement.
func normalizeDirection(direction string) string {
	if strings.EqualFold(direction, "desc") {
		return "DESC"
	}
	return "ASC"
}
