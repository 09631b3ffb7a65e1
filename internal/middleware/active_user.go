package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/anonto42/warbler/backend/internal/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserLookup loads a user by ID.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// ActiveUserMiddleware rejects tokens whose user no longer exists. It must run
// after JWTAuthMiddleware.
func ActiveUserMiddleware(users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			if _, err := users.GetUserByID(c.Request().Context(), claims.UserID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "User no longer exists")
				}
				return err
			}
			return next(c)
		}
	}
}
