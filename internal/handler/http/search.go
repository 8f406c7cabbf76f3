package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/internal/service"
	"github.com/manula2004/bagisto/pkg/httputil"
	"github.com/manula2004/bagisto/pkg/validator"
)

// SearchHandler handles HTTP requests for search endpoints.
type SearchHandler struct {
	service  *service.SearchService
	defaults domain.StoreContext
	logger   *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler. defaults is the
// storefront scope for requests without scope headers.
func NewSearchHandler(svc *service.SearchService, defaults domain.StoreContext, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service:  svc,
		defaults: defaults,
		logger:   logger,
	}
}

// --- Request DTOs ---

// IndexProductRequest is the JSON request body for indexing one product
// document.
type IndexProductRequest struct {
	ProductID           int64   `json:"product_id" validate:"required,gt=0"`
	Channel             string  `json:"channel" validate:"required"`
	Locale              string  `json:"locale" validate:"required"`
	Name                string  `json:"name" validate:"required"`
	ShortDescription    string  `json:"short_description"`
	URLKey              string  `json:"url_key"`
	Status              bool    `json:"status"`
	VisibleIndividually bool    `json:"visible_individually"`
	MinPrice            float64 `json:"min_price" validate:"gte=0"`
}

// BulkIndexRequest is the JSON request body for bulk indexing products.
type BulkIndexRequest struct {
	Products []IndexProductRequest `json:"products" validate:"required,min=1,max=500,dive"`
}

func (r *IndexProductRequest) toInput() service.IndexProductInput {
	return service.IndexProductInput{
		ProductID:           r.ProductID,
		Channel:             r.Channel,
		Locale:              r.Locale,
		Name:                r.Name,
		ShortDescription:    r.ShortDescription,
		URLKey:              r.URLKey,
		Status:              r.Status,
		VisibleIndividually: r.VisibleIndividually,
		MinPrice:            r.MinPrice,
	}
}

// --- Handlers ---

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	scope := resolveStoreContext(r, h.defaults)

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}

	result, err := h.service.Search(r.Context(), term, scope, page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: httputil.NewPaginatedResponse(result.Items, result.TotalCount, result.CurrentPage, result.PerPage),
	})
}

// IndexProduct handles POST /api/v1/search/index
func (h *SearchHandler) IndexProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req IndexProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := req.toInput()
	if err := h.service.IndexProduct(r.Context(), &input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]any{"product_id": req.ProductID, "status": "indexed"},
	})
}

// BulkIndex handles POST /api/v1/search/index/bulk
func (h *SearchHandler) BulkIndex(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20) // 10MB limit for bulk endpoint

	var req BulkIndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	inputs := make([]service.IndexProductInput, 0, len(req.Products))
	for i := range req.Products {
		inputs = append(inputs, req.Products[i].toInput())
	}

	if err := h.service.BulkIndexProducts(r.Context(), inputs); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]any{"indexed": len(inputs), "status": "ok"},
	})
}

// DeleteProduct handles DELETE /api/v1/search/{productID}
func (h *SearchHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	scope := resolveStoreContext(r, h.defaults)

	if err := h.service.DeleteProduct(r.Context(), productID, scope); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]any{"product_id": productID, "status": "deleted"},
	})
}
