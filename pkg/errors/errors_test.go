package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("product", "42")

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "product with id 42 not found")
}

func TestInvalidFilterValue(t *testing.T) {
	err := InvalidFilterValue("price", "abc,def")

	assert.Equal(t, "INVALID_FILTER_VALUE", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Contains(t, err.Message, `"price"`)
	assert.Contains(t, err.Message, `"abc,def"`)
}

func TestUnsupported(t *testing.T) {
	err := Unsupported("index")

	assert.Equal(t, http.StatusNotImplemented, err.Status)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestHTTPStatus_AppError(t *testing.T) {
	wrapped := fmt.Errorf("query products: %w", InvalidFilterValue("price", "x"))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(wrapped))
}

func TestHTTPStatus_Sentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"invalid filter", ErrInvalidFilter, http.StatusBadRequest},
		{"unsupported", ErrUnsupported, http.StatusNotImplemented},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	base := ErrNotFound
	wrapped := Wrap(base, "load attribute")

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Contains(t, wrapped.Error(), "load attribute")
}
