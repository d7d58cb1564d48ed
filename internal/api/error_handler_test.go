package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrVisitorNotFound, http.StatusNotFound},
		{fmt.Errorf("checkout: %w", domain.ErrAlreadyCheckedOut), http.StatusConflict},
		{fmt.Errorf("edit visitor: %w: timeIn", domain.ErrFieldNotEditable), http.StatusUnprocessableEntity},
		{domain.ErrInvalidRole, http.StatusUnprocessableEntity},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserExists, http.StatusConflict},
		{echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest},
		{errors.New("mongo exploded"), http.StatusInternalServerError},
	}

	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		h(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
			t.Errorf("%v: expected error envelope, got %s", tc.err, rec.Body.String())
		}
	}
}

func TestHTTPErrorHandler_HidesInternalErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("dial tcp 10.0.0.5:27017"), c)

	var body errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Error)
	}
}
