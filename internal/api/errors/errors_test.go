package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *APIError
		want int
	}{
		{NewValidationError("bad", nil), http.StatusUnprocessableEntity},
		{NewBadRequestError("bad"), http.StatusBadRequest},
		{NewNotFoundError("video"), http.StatusNotFound},
		{NewInternalError("boom"), http.StatusInternalServerError},
		{NewServiceUnavailableError("down"), http.StatusServiceUnavailable},
		{NewTooManyRequestsError("Rate limit exceeded"), http.StatusTooManyRequests},
		{NewGatewayTimeoutError("slow"), http.StatusGatewayTimeout},
		{&APIError{Kind: "unknown"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestWrapError_PreservesDetails(t *testing.T) {
	orig := NewValidationError("bad", map[string]string{"limit": "is too large"})

	wrapped := WrapError(orig, KindBadRequest, "Invalid search")

	assert.Equal(t, KindBadRequest, wrapped.Kind)
	assert.Equal(t, "is too large", wrapped.Details["limit"])
	assert.Nil(t, WrapError(nil, KindInternal, "x"))
	assert.Equal(t, "video not found", NewNotFoundError("video").Error())
}
