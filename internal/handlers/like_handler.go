package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles the like toggle across all content types
type LikeHandler struct {
	contentRepository  repositories.ContentRepository
	userRepository     repositories.UserRepository
	activityRepository repositories.ActivityRepository
	clock              util.Clock
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(contentRepo repositories.ContentRepository, userRepo repositories.UserRepository, activityRepo repositories.ActivityRepository, clock util.Clock) *LikeHandler {
	return &LikeHandler{
		contentRepository:  contentRepo,
		userRepository:     userRepo,
		activityRepository: activityRepo,
		clock:              clock,
	}
}

// RegisterLikeRoutes registers the like toggle route
func (h *LikeHandler) RegisterLikeRoutes(e *echo.Echo) {
	e.POST("/like-toggle/:contentType/:contentId", h.ToggleLike)
}

// ToggleLike flips the acting user's membership in the content item's
// like-set. A first-like on someone else's content appends a like activity.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	contentType := c.Param("contentType")
	contentID := c.Param("contentId")

	var req models.ToggleLikeRequest
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

	if item.HasLiked(req.UserID) {
		if err := h.contentRepository.RemoveLike(ctx, contentType, contentID, req.UserID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		count, err := h.likesCount(c, contentType, contentID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message":       fmt.Sprintf("%s unliked successfully!", contentType),
			"liked":         false,
			"newLikesCount": count,
		})
	}

	if err := h.contentRepository.AddLike(ctx, contentType, contentID, req.UserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Owners liking their own content do not notify themselves
	if req.UserID != item.UserID {
		h.recordLikeActivity(contentType, item, req.UserID)
	}

	count, err := h.likesCount(c, contentType, contentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":       fmt.Sprintf("%s liked successfully!", contentType),
		"liked":         true,
		"newLikesCount": count,
	})
}

// likesCount re-reads the item so the reported count is the set size after
// the mutation, not a delta off the earlier snapshot.
func (h *LikeHandler) likesCount(c echo.Context, contentType, contentID string) (int, error) {
	item, err := h.contentRepository.GetByID(c.Request().Context(), contentType, contentID)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return len(item.Likes), nil
}

// recordLikeActivity appends one like entry with actor and owner snapshots.
// An unresolvable actor or owner skips the entry rather than failing the like.
func (h *LikeHandler) recordLikeActivity(contentType string, item *models.ContentItem, likerID string) {
	liker, err := h.userRepository.GetUserByID(likerID)
	if err != nil {
		return
	}
	owner, err := h.userRepository.GetUserByID(item.UserID)
	if err != nil {
		return
	}

	activity := &models.Activity{
		Type: models.ActivityTypeLike,
		FromUser: models.ActivityActor{
			ID:     liker.ID,
			Name:   liker.Name,
			Avatar: liker.Avatar,
		},
		Target: models.ActivityTarget{
			Type:      contentType,
			ID:        item.ID,
			Media:     item.MediaPath,
			OwnerID:   item.UserID,
			OwnerName: owner.Name,
		},
		Timestamp: h.clock.Now().UnixMilli(),
	}
	if err := h.activityRepository.CreateActivity(activity); err != nil {
		log.Printf("failed to record like activity for %s %s: %v", contentType, item.ID, err)
	}
}
