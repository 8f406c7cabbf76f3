package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manula2004/bagisto/internal/domain"
	apperrors "github.com/manula2004/bagisto/pkg/errors"
)

func TestAttributeRepository_Filterable(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAttributeRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM attribute_definitions").
		WithArgs([]string{"color", "unknown_code"}).
		WillReturnRows(pgxmock.NewRows(attributeColumns).
			AddRow(int64(10), "color", "select", true, 1))

	defs, err := repo.Filterable(context.Background(), []string{"color", "unknown_code"})
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "color", defs[0].Code)
	assert.Equal(t, domain.AttributeSelect, defs[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttributeRepository_Filterable_NoCandidates(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAttributeRepository(mock)

	defs, err := repo.Filterable(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, defs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttributeRepository_ByCode(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAttributeRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM attribute_definitions").
		WithArgs("price").
		WillReturnRows(pgxmock.NewRows(attributeColumns).
			AddRow(int64(3), "price", "price", true, 5))

	def, err := repo.ByCode(context.Background(), "price")
	require.NoError(t, err)
	assert.Equal(t, domain.AttributePrice, def.Type)
	assert.True(t, def.IsRange())
	assert.Equal(t, "value_decimal", def.ValueColumn())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttributeRepository_ByCode_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAttributeRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM attribute_definitions").
		WithArgs("bogus").
		WillReturnError(pgx.ErrNoRows)

	def, err := repo.ByCode(context.Background(), "bogus")
	assert.Nil(t, def)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
