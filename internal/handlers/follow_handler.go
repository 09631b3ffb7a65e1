package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/warbler/backend/internal/models"
	"github.com/anonto42/warbler/backend/internal/repositories"
	"github.com/anonto42/warbler/backend/pkg/monitoring"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterPublicRoutes registers the follower listings
func (h *FollowHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser makes the authenticated user follow :id
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByID(ctx, targetID); err != nil {
		return toHTTPError(c, err)
	}
	if err := h.followRepository.Follow(ctx, currentUserID, targetID); err != nil {
		return toHTTPError(c, err)
	}
	monitoring.FollowsCreated.Inc()

	return success(c, http.StatusOK, echo.Map{"following": true})
}

// UnfollowUser removes the authenticated user's edge to :id
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followRepository.Unfollow(c.Request().Context(), currentUserID, targetID); err != nil {
		return toHTTPError(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"following": false})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return h.listUsers(c, h.followRepository.GetFollowers)
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return h.listUsers(c, h.followRepository.GetFollowing)
}

func (h *FollowHandler) listUsers(c echo.Context, list func(ctx context.Context, userID uint) ([]models.User, error)) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByID(ctx, id); err != nil {
		return toHTTPError(c, err)
	}

	users, err := list(ctx, id)
	if err != nil {
		return toHTTPError(c, err)
	}
	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}
	return success(c, http.StatusOK, echo.Map{"users": compact})
}
