package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/dmarini-dev/lumina/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

const autoReplyDelay = 1500 * time.Millisecond

// MessageHandler handles 1:1 chat messages
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
	store             *storage.DiskStore
	clock             util.Clock
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, store *storage.DiskStore, clock util.Clock) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
		store:             store,
		clock:             clock,
	}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(e *echo.Echo) {
	e.GET("/messages/:conversationId", h.GetConversation)
	e.POST("/messages", h.SendMessage)
}

// GetConversation returns both directions of the thread between the caller
// and the conversation partner, oldest first.
func (h *MessageHandler) GetConversation(c echo.Context) error {
	partnerID := c.Param("conversationId")
	userID := c.QueryParam("userId")

	messages, err := h.messageRepository.GetConversation(c.Request().Context(), userID, partnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return c.JSON(http.StatusOK, messages)
}

// SendMessage stores a new message with optional media. Text messages to
// another user schedule a canned auto-reply shortly after.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	conversationID := c.FormValue("conversationId")
	senderID := c.FormValue("senderId")
	content := c.FormValue("content")
	if conversationID == "" || senderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "conversationId and senderId are required")
	}

	mediaPath := ""
	if file, err := c.FormFile("media"); err == nil {
		mediaPath, err = h.store.Save(file)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		MediaPath:      mediaPath,
		Timestamp:      h.clock.Now().UnixMilli(),
		ReadStatus:     models.MessageUnread,
	}
	if err := h.messageRepository.Create(c.Request().Context(), message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if content != "" && senderID != conversationID {
		h.scheduleAutoReply(senderID, conversationID)
	}

	return c.JSON(http.StatusCreated, message)
}

// scheduleAutoReply queues the recipient's canned response as an ordinary
// repository write, fired after a fixed delay. It runs against the same
// store as the primary write path rather than mutating anything directly.
func (h *MessageHandler) scheduleAutoReply(senderID, recipientID string) {
	recipient, err := h.userRepository.GetUserByID(recipientID)
	if err != nil {
		return
	}
	if _, err := h.userRepository.GetUserByID(senderID); err != nil {
		return
	}

	time.AfterFunc(autoReplyDelay, func() {
		reply := &models.Message{
			ConversationID: senderID,
			SenderID:       recipientID,
			Content:        fmt.Sprintf("(Response from %s): Acknowledgment protocol initiated. Message received. 🤖", recipient.Name),
			Timestamp:      h.clock.Now().UnixMilli(),
			ReadStatus:     models.MessageUnread,
		}
		if err := h.messageRepository.Create(context.Background(), reply); err != nil {
			log.Printf("failed to store auto-reply to %s: %v", senderID, err)
		}
	})
}
