package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/warbler/backend/internal/repositories"
	"github.com/anonto42/warbler/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"duplicate", &services.ValidationError{Field: "username", Message: "taken", Duplicate: true}, http.StatusConflict},
		{"invalid", &services.ValidationError{Field: "email", Message: "bad"}, http.StatusBadRequest},
		{"not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{"foreign key", fmt.Errorf("insert: %w", gorm.ErrForeignKeyViolated), http.StatusNotFound},
		{"wrong password", services.ErrWrongPassword, http.StatusUnauthorized},
		{"self follow", repositories.ErrSelfFollow, http.StatusBadRequest},
		{"own message", repositories.ErrOwnMessage, http.StatusBadRequest},
		{"already following", repositories.ErrAlreadyFollowing, http.StatusConflict},
		{"not following", repositories.ErrNotFollowing, http.StatusNotFound},
		{"not owner", repositories.ErrNotOwner, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			err := toHTTPError(c, tt.err)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.code, he.Code)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	e := echo.New()
	for _, raw := range []string{"abc", "0", "-1", ""} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)
		_, err := parseIDParam(c, "id")
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he, raw)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, err := parseIDParam(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseLimit(t *testing.T) {
	e := echo.New()
	tests := map[string]int{"": 20, "5": 5, "0": 20, "101": 20, "x": 20, "100": 100}
	for query, want := range tests {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?limit="+query, nil), httptest.NewRecorder())
		assert.Equal(t, want, parseLimit(c, 20), query)
	}
}
