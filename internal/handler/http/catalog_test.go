package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/internal/service"
	apperrors "github.com/manula2004/bagisto/pkg/errors"
	"github.com/manula2004/bagisto/pkg/httputil"
)

// response mirrors the envelope for decoding in assertions.
type response struct {
	Data  json.RawMessage         `json:"data"`
	Error *httputil.ErrorResponse `json:"error"`
}

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) Query(ctx context.Context, spec *domain.FilterSpec, scope domain.StoreContext, page, perPage int) (*domain.Page, error) {
	args := m.Called(ctx, spec, scope, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *mockCatalogRepo) GetByID(ctx context.Context, productID int64, scope domain.StoreContext) (*domain.FlatProduct, error) {
	args := m.Called(ctx, productID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlatProduct), args.Error(1)
}

func newCatalogRouter(repo *mockCatalogRepo) http.Handler {
	return newScopedCatalogRouter(repo, domain.DefaultStoreContext())
}

func newScopedCatalogRouter(repo *mockCatalogRepo, defaults domain.StoreContext) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewCatalogService(repo, logger)
	h := NewCatalogHandler(svc, []int{12, 24, 48}, defaults, logger)

	r := chi.NewRouter()
	r.Get("/api/v1/products", h.ListProducts)
	r.Get("/api/v1/products/{productID}", h.GetProduct)
	r.Get("/api/v1/categories/{categoryIDs}/products", h.ListByCategories)
	return r
}

func samplePage() *domain.Page {
	return &domain.Page{
		Items: []domain.FlatProduct{
			{ProductID: 42, Channel: "default", Locale: "en", Name: "Red Shirt", Status: true, VisibleIndividually: true},
		},
		TotalCount:  1,
		CurrentPage: 1,
		PerPage:     12,
	}
}

func TestListProducts_DefaultWindow(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("Query", mock.Anything, mock.Anything, mock.Anything, 1, 12).
		Return(samplePage(), nil)

	router := newCatalogRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Data       []domain.FlatProduct `json:"data"`
			TotalCount int                  `json:"total_count"`
			Page       int                  `json:"page"`
			PerPage    int                  `json:"per_page"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Data.TotalCount)
	assert.Equal(t, 12, resp.Data.PerPage)
	require.Len(t, resp.Data.Data, 1)
	assert.Equal(t, int64(42), resp.Data.Data[0].ProductID)

	repo.AssertExpectations(t)
}

func TestListProducts_LimitOverridesPageSizes(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("Query", mock.Anything, mock.Anything, mock.Anything, 2, 30).
		Return(&domain.Page{Items: []domain.FlatProduct{}, CurrentPage: 2, PerPage: 30}, nil)

	router := newCatalogRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=2&limit=30", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestListProducts_ForwardsAttributeFilters(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("Query", mock.Anything, mock.MatchedBy(func(spec *domain.FilterSpec) bool {
		return spec.AttributeFilters["color"] == "red,blue" && spec.TextFilters["search"] == "shirt"
	}), mock.Anything, 1, 12).Return(samplePage(), nil)

	router := newCatalogRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?color=red,blue&search=shirt", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestListProducts_ResolvesStoreHeaders(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("Query", mock.Anything, mock.Anything, mock.MatchedBy(func(scope domain.StoreContext) bool {
		return scope.Channel == "outlet" && scope.Locale == "de" && scope.CustomerGroupID == 3 && scope.Currency == "EUR"
	}), 1, 12).Return(samplePage(), nil)

	router := newCatalogRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("X-Channel", "outlet")
	req.Header.Set("X-Locale", "de")
	req.Header.Set("X-Customer-Group", "3")
	req.Header.Set("X-Currency", "EUR")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestListProducts_ConfiguredScopeDefaults(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("Query", mock.Anything, mock.Anything, mock.MatchedBy(func(scope domain.StoreContext) bool {
		return scope.Channel == "b2b" && scope.Locale == "fr" && scope.CustomerGroupID == 4 && scope.Currency == "EUR"
	}), 1, 12).Return(samplePage(), nil)

	defaults := domain.StoreContext{Channel: "b2b", Locale: "fr", CustomerGroupID: 4, Currency: "EUR"}
	router := newScopedCatalogRouter(repo, defaults)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestListProducts_InvalidPriceFilter(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("Query", mock.Anything, mock.Anything, mock.Anything, 1, 12).
		Return(nil, apperrors.InvalidFilterValue("price", "abc,def"))

	router := newCatalogRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?price=abc,def", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_FILTER_VALUE", resp.Error.Code)
}

func TestListByCategories_ParsesIDs(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("Query", mock.Anything, mock.MatchedBy(func(spec *domain.FilterSpec) bool {
		return len(spec.CategoryIDs) == 2 && spec.CategoryIDs[0] == 4 && spec.CategoryIDs[1] == 7
	}), mock.Anything, 1, 12).Return(samplePage(), nil)

	router := newCatalogRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/4,7/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestListByCategories_RejectsMalformedIDs(t *testing.T) {
	repo := new(mockCatalogRepo)
	router := newCatalogRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/4,abc/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)

	repo.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetProduct_Found(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("GetByID", mock.Anything, int64(42), mock.Anything).
		Return(&domain.FlatProduct{ProductID: 42, Name: "Red Shirt"}, nil)

	router := newCatalogRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("GetByID", mock.Anything, int64(999), mock.Anything).
		Return(nil, apperrors.NotFound("product", "999"))

	router := newCatalogRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestGetProduct_RejectsMalformedID(t *testing.T) {
	repo := new(mockCatalogRepo)
	router := newCatalogRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-number", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}
