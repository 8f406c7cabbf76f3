package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manula2004/bagisto/internal/domain"
	apperrors "github.com/manula2004/bagisto/pkg/errors"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) Query(ctx context.Context, spec *domain.FilterSpec, scope domain.StoreContext, page, perPage int) (*domain.Page, error) {
	args := m.Called(ctx, spec, scope, page, perPage)
	if p, ok := args.Get(0).(*domain.Page); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogRepo) GetByID(ctx context.Context, productID int64, scope domain.StoreContext) (*domain.FlatProduct, error) {
	args := m.Called(ctx, productID, scope)
	if p, ok := args.Get(0).(*domain.FlatProduct); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCatalogService_ListProducts(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewCatalogService(repo, newTestLogger())

	spec := domain.ParseFilterSpec(nil)
	scope := domain.DefaultStoreContext()
	want := &domain.Page{Items: []domain.FlatProduct{{ProductID: 1}}, TotalCount: 1, CurrentPage: 1, PerPage: 9}

	repo.On("Query", mock.Anything, spec, scope, 1, 9).Return(want, nil)

	got, err := svc.ListProducts(context.Background(), spec, scope, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListProducts_ClampsPage(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewCatalogService(repo, newTestLogger())

	spec := domain.ParseFilterSpec(nil)
	scope := domain.DefaultStoreContext()

	repo.On("Query", mock.Anything, spec, scope, 1, 9).
		Return(domain.EmptyPage(1, 9), nil)

	_, err := svc.ListProducts(context.Background(), spec, scope, 0, 9)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListByCategories(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewCatalogService(repo, newTestLogger())

	scope := domain.DefaultStoreContext()
	repo.On("Query", mock.Anything, mock.MatchedBy(func(spec *domain.FilterSpec) bool {
		return len(spec.CategoryIDs) == 2 && spec.CategoryIDs[0] == 4
	}), scope, 1, 9).Return(domain.EmptyPage(1, 9), nil)

	_, err := svc.ListByCategories(context.Background(), []int64{4, 7}, domain.ParseFilterSpec(nil), scope, 1, 9)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListProducts_PropagatesError(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewCatalogService(repo, newTestLogger())

	spec := domain.ParseFilterSpec(nil)
	scope := domain.DefaultStoreContext()
	repo.On("Query", mock.Anything, spec, scope, 1, 9).
		Return(nil, apperrors.InvalidFilterValue("price", "cheap"))

	_, err := svc.ListProducts(context.Background(), spec, scope, 1, 9)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFilter)
	repo.AssertExpectations(t)
}

func TestCatalogService_GetProduct(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewCatalogService(repo, newTestLogger())

	scope := domain.DefaultStoreContext()
	want := &domain.FlatProduct{ProductID: 42, Name: "widget"}
	repo.On("GetByID", mock.Anything, int64(42), scope).Return(want, nil)

	got, err := svc.GetProduct(context.Background(), 42, scope)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewCatalogService(repo, newTestLogger())

	scope := domain.DefaultStoreContext()
	repo.On("GetByID", mock.Anything, int64(99), scope).
		Return(nil, apperrors.NotFound("product", "99"))

	_, err := svc.GetProduct(context.Background(), 99, scope)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, errors.Is(err, apperrors.ErrInvalidFilter))
	repo.AssertExpectations(t)
}
