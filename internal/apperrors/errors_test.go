package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKindStatusCode(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindInvalidOperation, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{Kind("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.StatusCode())
		})
	}
}

func TestIsFollowsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("resolve author: %w", NotFound("user"))

	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindUnauthorized))
	assert.False(t, Is(errors.New("plain"), KindNotFound))
	assert.Equal(t, "NOT_FOUND: user not found", NotFound("user").Error())
}

func TestHTTPErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(zap.NewNop())

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedKind string
	}{
		{"app error", fmt.Errorf("wrapped: %w", Unauthorized("login required")), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"unknown error", errors.New("database is down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			e.HTTPErrorHandler(tt.err, c)

			assert.Equal(t, tt.expectedCode, rec.Code)
			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.expectedKind, body.Error.Code)
		})
	}
}
