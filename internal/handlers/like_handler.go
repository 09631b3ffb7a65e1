package handlers

import (
	"net/http"

	"github.com/anonto42/warbler/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository) *LikeHandler {
	return &LikeHandler{likeRepository: likeRepo}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/messages/:id/like", h.ToggleLike)
}

// ToggleLike likes or unlikes :id for the authenticated user
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	liked, err := h.likeRepository.ToggleLike(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"message_id": id, "liked": liked})
}
