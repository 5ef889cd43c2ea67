package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guda/guda-backend/internal/core/domain"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"missing credentials", domain.ErrMissingCredentials, http.StatusBadRequest, domain.ErrMissingCredentials.Error()},
		{"mismatch", fmt.Errorf("verify: %w", domain.ErrSignatureMismatch), http.StatusForbidden, domain.ErrSignatureMismatch.Error()},
		{"not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"validation", domain.Invalidf("email must be a valid email"), http.StatusBadRequest, "email must be a valid email"},
		{"exists", domain.ErrAdminExists, http.StatusConflict, "admin already exists"},
		{"in progress", domain.ErrRequestInProgress, http.StatusConflict, domain.ErrRequestInProgress.Error()},
		{"documents off", domain.ErrDocumentsDisabled, http.StatusServiceUnavailable, domain.ErrDocumentsDisabled.Error()},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/user/transaction", nil), rec)

			handle(tc.err, c)

			assert.Equal(t, tc.code, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.msg, body.Error)
		})
	}
}
