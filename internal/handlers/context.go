package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/warbler/backend/internal/middleware"
	"github.com/anonto42/warbler/backend/internal/repositories"
	"github.com/anonto42/warbler/backend/internal/services"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// getUserIDFromContext returns the authenticated user's ID, or 0 when the
// request carries no valid token.
func getUserIDFromContext(c echo.Context) uint {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

func parseLimit(c echo.Context, def int) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 || limit > 100 {
		return def
	}
	return limit
}

func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// toHTTPError maps domain and store errors to HTTP errors.
func toHTTPError(c echo.Context, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		if verr.Duplicate {
			return echo.NewHTTPError(http.StatusConflict, verr.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return echo.NewHTTPError(http.StatusNotFound, "Referenced record not found")
	case errors.Is(err, services.ErrWrongPassword):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, repositories.ErrSelfFollow), errors.Is(err, repositories.ErrOwnMessage):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrAlreadyFollowing):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, repositories.ErrNotFollowing):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}

	log.WithError(err).WithField("path", c.Path()).Error("request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}
