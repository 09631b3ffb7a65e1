package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/warbler/backend/internal/models"
	"github.com/anonto42/warbler/backend/internal/repositories"
	"github.com/anonto42/warbler/backend/pkg/monitoring"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles HTTP requests related to messages
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	likeRepository    repositories.LikeRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, likeRepo repositories.LikeRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		likeRepository:    likeRepo,
	}
}

func (h *MessageHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/messages/:id", h.GetMessage)
}

// RegisterMessageRoutes registers message routes that need a token
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.CreateMessage)
	g.DELETE("/messages/:id", h.DeleteMessage)
	g.GET("/timeline", h.GetTimeline)
}

// TimelineMessage is a message with the viewer's like flag
type TimelineMessage struct {
	models.Message
	IsLiked bool `json:"is_liked"`
}

func (h *MessageHandler) CreateMessage(c echo.Context) error {
	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := c.Validate(&req); err != nil {
		return err
	}

	message := &models.Message{
		Text:   req.Text,
		UserID: getUserIDFromContext(c),
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return toHTTPError(c, err)
	}
	monitoring.MessagesPosted.Inc()

	return success(c, http.StatusCreated, echo.Map{"message": message})
}

func (h *MessageHandler) GetMessage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	message, err := h.messageRepository.GetMessageByID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"message": message})
}

// DeleteMessage deletes one of the authenticated user's messages
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.messageRepository.DeleteMessage(c.Request().Context(), id, getUserIDFromContext(c)); err != nil {
		return toHTTPError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTimeline returns the authenticated user's home timeline
func (h *MessageHandler) GetTimeline(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	ctx := c.Request().Context()

	messages, err := h.messageRepository.GetTimeline(ctx, currentUserID, parseLimit(c, repositories.DefaultTimelineLimit))
	if err != nil {
		return toHTTPError(c, err)
	}

	ids := make([]uint, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}
	liked, err := h.likeRepository.LikedMessageIDs(ctx, currentUserID, ids)
	if err != nil {
		return toHTTPError(c, err)
	}

	timeline := make([]TimelineMessage, len(messages))
	for i, m := range messages {
		timeline[i] = TimelineMessage{Message: m, IsLiked: liked[m.ID]}
	}
	return success(c, http.StatusOK, echo.Map{"messages": timeline})
}
