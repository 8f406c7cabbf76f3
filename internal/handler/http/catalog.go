package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/internal/service"
	"github.com/manula2004/bagisto/pkg/httputil"
	"github.com/manula2004/bagisto/pkg/pagination"
)

// CatalogHandler handles HTTP requests for catalog listing endpoints.
type CatalogHandler struct {
	service   *service.CatalogService
	pageSizes []int
	defaults  domain.StoreContext
	logger    *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler. pageSizes is the
// channel's configured per-page ladder; its first entry is the default window
// when the request carries no limit parameter. defaults is the storefront
// scope for requests without scope headers.
func NewCatalogHandler(svc *service.CatalogService, pageSizes []int, defaults domain.StoreContext, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:   svc,
		pageSizes: pageSizes,
		defaults:  defaults,
		logger:    logger,
	}
}

// ListProducts handles GET /api/v1/products
//
// Every non-reserved query parameter is treated as an attribute filter, so the
// endpoint accepts e.g. ?color=red,blue&size=M&price=10,50&sort=name-desc.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	spec := domain.ParseFilterSpec(r.URL.Query())
	scope := resolveStoreContext(r, h.defaults)
	params := pagination.Resolve(r, h.pageSizes)

	page, err := h.service.ListProducts(r.Context(), spec, scope, params.Page, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: httputil.NewPaginatedResponse(page.Items, page.TotalCount, page.CurrentPage, page.PerPage),
	})
}

// ListByCategories handles GET /api/v1/categories/{categoryIDs}/products
//
// categoryIDs is a comma-separated list; products in any of the categories
// match.
func (h *CatalogHandler) ListByCategories(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "categoryIDs")

	var categoryIDs []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "categoryIDs must be a comma-separated list of positive integers"},
			})
			return
		}
		categoryIDs = append(categoryIDs, id)
	}
	if len(categoryIDs) == 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "at least one category id is required"},
		})
		return
	}

	spec := domain.ParseFilterSpec(r.URL.Query())
	scope := resolveStoreContext(r, h.defaults)
	params := pagination.Resolve(r, h.pageSizes)

	page, err := h.service.ListByCategories(r.Context(), categoryIDs, spec, scope, params.Page, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: httputil.NewPaginatedResponse(page.Items, page.TotalCount, page.CurrentPage, page.PerPage),
	})
}

// GetProduct handles GET /api/v1/products/{productID}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	scope := resolveStoreContext(r, h.defaults)

	product, err := h.service.GetProduct(r.Context(), productID, scope)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}
