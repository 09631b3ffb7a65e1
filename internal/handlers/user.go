package handlers

import (
	"net/http"

	"github.com/anonto42/warbler/backend/internal/models"
	"github.com/anonto42/warbler/backend/internal/repositories"
	"github.com/anonto42/warbler/backend/internal/services"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository    repositories.UserRepository
	followRepository  repositories.FollowRepository
	messageRepository repositories.MessageRepository
	likeRepository    repositories.LikeRepository
	accounts          *services.AccountService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	messageRepo repositories.MessageRepository,
	likeRepo repositories.LikeRepository,
	accounts *services.AccountService,
) *UserHandler {
	return &UserHandler{
		userRepository:    userRepo,
		followRepository:  followRepo,
		messageRepository: messageRepo,
		likeRepository:    likeRepo,
		accounts:          accounts,
	}
}

// RegisterPublicRoutes registers routes readable without a token
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/messages", h.GetUserMessages)
	g.GET("/users/:id/likes", h.GetUserLikes)
}

// RegisterProfileRoutes registers routes acting on the authenticated user
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.DELETE("/profile", h.DeleteProfile)
}

// ListUsers lists all users, or those whose username contains ?q=
func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	var users []models.User
	var err error
	if q := c.QueryParam("q"); q != "" {
		users, err = h.userRepository.SearchUsers(ctx, q)
	} else {
		users, err = h.userRepository.GetUsers(ctx)
	}
	if err != nil {
		return toHTTPError(c, err)
	}

	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}
	return success(c, http.StatusOK, echo.Map{"users": compact})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.buildProfile(c, id)
	if err != nil {
		return toHTTPError(c, err)
	}

	data := echo.Map{"user": profile}
	if current := getUserIDFromContext(c); current != 0 && current != id {
		following, err := h.followRepository.IsFollowing(c.Request().Context(), current, id)
		if err != nil {
			return toHTTPError(c, err)
		}
		data["is_following"] = following
	}
	return success(c, http.StatusOK, data)
}

func (h *UserHandler) GetUserMessages(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByID(ctx, id); err != nil {
		return toHTTPError(c, err)
	}

	messages, err := h.messageRepository.GetMessagesByUserID(ctx, id, parseLimit(c, repositories.DefaultTimelineLimit))
	if err != nil {
		return toHTTPError(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"messages": messages})
}

func (h *UserHandler) GetUserLikes(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByID(ctx, id); err != nil {
		return toHTTPError(c, err)
	}

	messages, err := h.likeRepository.GetLikedMessages(ctx, id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"messages": messages})
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.buildProfile(c, getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"user": profile})
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.accounts.UpdateProfile(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"user": user})
}

// DeleteProfile deletes the authenticated user and everything they own
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	id := getUserIDFromContext(c)
	if err := h.userRepository.DeleteUser(c.Request().Context(), id); err != nil {
		return toHTTPError(c, err)
	}
	log.WithField("user_id", id).Info("user deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) buildProfile(c echo.Context, id uint) (*models.UserProfile, error) {
	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{User: *user}
	if profile.MessagesCount, err = h.messageRepository.CountByUserID(ctx, id); err != nil {
		return nil, err
	}
	if profile.FollowersCount, err = h.followRepository.GetFollowersCount(ctx, id); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = h.followRepository.GetFollowingCount(ctx, id); err != nil {
		return nil, err
	}
	if profile.LikesCount, err = h.likeRepository.GetLikesCountByUserID(ctx, id); err != nil {
		return nil, err
	}
	return profile, nil
}
