package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/pkg/database"
	apperrors "github.com/manula2004/bagisto/pkg/errors"
)

// AttributeRepository implements repository.AttributeRepository using PostgreSQL.
type AttributeRepository struct {
	pool database.DBTX
}

// NewAttributeRepository creates a PostgreSQL-backed attribute repository.
func NewAttributeRepository(pool database.DBTX) *AttributeRepository {
	return &AttributeRepository{pool: pool}
}

// Filterable returns definitions for the candidate codes that name filterable
// attributes, in configured position order. Codes the store does not know are
// simply absent from the result.
func (r *AttributeRepository) Filterable(ctx context.Context, codes []string) ([]domain.AttributeDefinition, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, code, type, is_filterable, position
		FROM attribute_definitions
		WHERE code = ANY($1) AND is_filterable = TRUE
		ORDER BY position, code`

	rows, err := r.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("query filterable attributes: %w", err)
	}
	defer rows.Close()

	var defs []domain.AttributeDefinition
	for rows.Next() {
		def, err := scanAttribute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attribute: %w", err)
		}
		defs = append(defs, *def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attributes: %w", err)
	}

	return defs, nil
}

// ByCode returns the definition for a single attribute code.
func (r *AttributeRepository) ByCode(ctx context.Context, code string) (*domain.AttributeDefinition, error) {
	query := `
		SELECT id, code, type, is_filterable, position
		FROM attribute_definitions
		WHERE code = $1`

	def, err := scanAttribute(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("attribute", code)
		}
		return nil, fmt.Errorf("get attribute %q: %w", code, err)
	}
	return def, nil
}

func scanAttribute(row pgx.Row) (*domain.AttributeDefinition, error) {
	var (
		def     domain.AttributeDefinition
		rawType string
	)
	err := row.Scan(&def.ID, &def.Code, &rawType, &def.IsFilterable, &def.Position)
	if err != nil {
		return nil, err
	}
	def.Type = domain.AttributeType(rawType)
	return &def, nil
}
