package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/warbler/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, userID uint, expires time.Time) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID:   userID,
		Username: "tester",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func serve(mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, *models.JwtCustomClaims, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *models.JwtCustomClaims
	err := mw(func(c echo.Context) error {
		seen = ClaimsFromContext(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, seen, err
}

func TestJWTAuthMiddleware(t *testing.T) {
	valid := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), 7, time.Now().Add(time.Hour))
	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), 7, time.Now().Add(-time.Hour))
	otherKey := signToken(t, jwt.SigningMethodHS256, []byte("other"), 7, time.Now().Add(time.Hour))
	noUser := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), 0, time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		header string
		ok     bool
	}{
		{"valid", "Bearer " + valid, true},
		{"lowercase scheme", "bearer " + valid, true},
		{"missing header", "", false},
		{"wrong scheme", "Basic " + valid, false},
		{"expired", "Bearer " + expired, false},
		{"wrong key", "Bearer " + otherKey, false},
		{"no user id", "Bearer " + noUser, false},
		{"garbage", "Bearer not.a.token", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, claims, err := serve(JWTAuthMiddleware(testSecret), tt.header)
			if tt.ok {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, uint(7), claims.UserID)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusUnauthorized, he.Code)
			assert.Nil(t, claims)
		})
	}
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	valid := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), 3, time.Now().Add(time.Hour))

	rec, claims, err := serve(OptionalJWTAuthMiddleware(testSecret), "Bearer "+valid)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, uint(3), claims.UserID)

	rec, claims, err = serve(OptionalJWTAuthMiddleware(testSecret), "Bearer junk")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, claims)

	rec, claims, err = serve(OptionalJWTAuthMiddleware(testSecret), "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, claims)
}
