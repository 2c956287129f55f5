package handlers

import (
	"errors"
	"log"
	"net/http"
	"sort"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comments on all content types
type CommentHandler struct {
	contentRepository  repositories.ContentRepository
	userRepository     repositories.UserRepository
	activityRepository repositories.ActivityRepository
	clock              util.Clock
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(contentRepo repositories.ContentRepository, userRepo repositories.UserRepository, activityRepo repositories.ActivityRepository, clock util.Clock) *CommentHandler {
	return &CommentHandler{
		contentRepository:  contentRepo,
		userRepository:     userRepo,
		activityRepository: activityRepo,
		clock:              clock,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo) {
	e.GET("/comments/:contentType/:contentId", h.ListComments)
	e.POST("/comments/:contentType/:contentId", h.CreateComment)
}

// EnrichedComment includes the author's profile, joined at read time
type EnrichedComment struct {
	models.Comment
	User models.UserCompact `json:"user"`
}

// CreateComment appends an immutable comment to a content item. Non-owner
// authors produce a comment activity carrying the text.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	contentType := c.Param("contentType")
	contentID := c.Param("contentId")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	item, err := h.contentRepository.GetByID(ctx, contentType, contentID)
	if err != nil {
		if errors.Is(err, repositories.ErrContentNotFound) || errors.Is(err, repositories.ErrUnknownContentType) {
			return echo.NewHTTPError(http.StatusNotFound, "Content not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Content:   req.Content,
		Timestamp: h.clock.Now().UnixMilli(),
	}
	if err := h.contentRepository.AppendComment(ctx, contentType, contentID, comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.UserID != item.UserID {
		h.recordCommentActivity(contentType, item, req.UserID, req.Content)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Comment added successfully!",
		"newComment": comment,
	})
}

// ListComments returns a content item's comments ascending by creation time,
// live-joined with author profiles. Unknown authors render as placeholders.
func (h *CommentHandler) ListComments(c echo.Context) error {
	contentType := c.Param("contentType")
	contentID := c.Param("contentId")

	ctx := c.Request().Context()
	item, err := h.contentRepository.GetByID(ctx, contentType, contentID)
	if err != nil {
		if errors.Is(err, repositories.ErrContentNotFound) || errors.Is(err, repositories.ErrUnknownContentType) {
			return echo.NewHTTPError(http.StatusNotFound, "Content not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	authorIDs := make([]string, 0, len(item.Comments))
	seen := make(map[string]bool)
	for _, comment := range item.Comments {
		if !seen[comment.UserID] {
			seen[comment.UserID] = true
			authorIDs = append(authorIDs, comment.UserID)
		}
	}

	profiles := make(map[string]models.UserCompact)
	authors, err := h.userRepository.GetUsersByIDs(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, u := range authors {
		profiles[u.ID] = u.ToCompact()
	}

	enriched := make([]EnrichedComment, len(item.Comments))
	for i, comment := range item.Comments {
		enriched[i] = EnrichedComment{Comment: comment}
		if profile, ok := profiles[comment.UserID]; ok {
			enriched[i].User = profile
		} else {
			enriched[i].User = models.PlaceholderUser(comment.UserID)
		}
	}
	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].Timestamp < enriched[j].Timestamp
	})

	return c.JSON(http.StatusOK, enriched)
}

func (h *CommentHandler) recordCommentActivity(contentType string, item *models.ContentItem, authorID, content string) {
	author, err := h.userRepository.GetUserByID(authorID)
	if err != nil {
		return
	}
	owner, err := h.userRepository.GetUserByID(item.UserID)
	if err != nil {
		return
	}

	activity := &models.Activity{
		Type: models.ActivityTypeComment,
		FromUser: models.ActivityActor{
			ID:     author.ID,
			Name:   author.Name,
			Avatar: author.Avatar,
		},
		Target: models.ActivityTarget{
			Type:      contentType,
			ID:        item.ID,
			Media:     item.MediaPath,
			OwnerID:   item.UserID,
			OwnerName: owner.Name,
		},
		CommentContent: content,
		Timestamp:      h.clock.Now().UnixMilli(),
	}
	if err := h.activityRepository.CreateActivity(activity); err != nil {
		log.Printf("failed to record comment activity for %s %s: %v", contentType, item.ID, err)
	}
}
