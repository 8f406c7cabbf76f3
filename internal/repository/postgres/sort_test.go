package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manula2004/bagisto/internal/domain"
)

func attrDef(code string, typ domain.AttributeType) *domain.AttributeDefinition {
	return &domain.AttributeDefinition{ID: 1, Code: code, Type: typ, IsFilterable: true}
}

func TestResolveSort(t *testing.T) {
	tests := []struct {
		name        string
		spec        domain.SortSpec
		def         *domain.AttributeDefinition
		defaultSort string
		want        domain.OrderBy
	}{
		{
			name: "price sorts on the price index",
			spec: domain.SortSpec{Key: "price", Direction: "asc"},
			def:  attrDef("price", domain.AttributePrice),
			want: domain.OrderBy{Column: "min_price", Direction: "ASC"},
		},
		{
			name: "flat attribute sorts on its column",
			spec: domain.SortSpec{Key: "name", Direction: "desc"},
			def:  attrDef("name", domain.AttributeText),
			want: domain.OrderBy{Column: "f.name", Direction: "DESC"},
		},
		{
			name: "unknown key falls back to creation time",
			spec: domain.SortSpec{Key: "popularity", Direction: "asc"},
			def:  nil,
			want: domain.OrderBy{Column: "f.created_at", Direction: "ASC"},
		},
		{
			name: "recognized attribute without flat column falls back to creation time",
			spec: domain.SortSpec{Key: "color", Direction: "asc"},
			def:  attrDef("color", domain.AttributeSelect),
			want: domain.OrderBy{Column: "f.created_at", Direction: "ASC"},
		},
		{
			name:        "absent sort uses configured default",
			spec:        domain.SortSpec{},
			def:         attrDef("price", domain.AttributePrice),
			defaultSort: "price-asc",
			want:        domain.OrderBy{Column: "min_price", Direction: "ASC"},
		},
		{
			name: "absent sort and config uses name-desc",
			spec: domain.SortSpec{},
			def:  attrDef("name", domain.AttributeText),
			want: domain.OrderBy{Column: "f.name", Direction: "DESC"},
		},
		{
			name: "unrecognized direction normalizes to ascending",
			spec: domain.SortSpec{Key: "name", Direction: "sideways"},
			def:  attrDef("name", domain.AttributeText),
			want: domain.OrderBy{Column: "f.name", Direction: "ASC"},
		},
		{
			name: "direction token is case insensitive",
			spec: domain.SortSpec{Key: "name", Direction: "DESC"},
			def:  attrDef("name", domain.AttributeText),
			want: domain.OrderBy{Column: "f.name", Direction: "DESC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSort(tt.spec, tt.def, tt.defaultSort)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortKey(t *testing.T) {
	assert.Equal(t, "price", SortKey(domain.SortSpec{Key: "price"}, "name-desc"))
	assert.Equal(t, "name", SortKey(domain.SortSpec{}, "name-desc"))
	assert.Equal(t, "name", SortKey(domain.SortSpec{}, ""))
	assert.Equal(t, "created_at", SortKey(domain.SortSpec{}, "created_at-asc"))
}
