package handlers

import (
	"net/http"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ActivityHandler derives per-user notification feeds from the activity log
type ActivityHandler struct {
	activityRepository repositories.ActivityRepository
	userRepository     repositories.UserRepository
	contentRepository  repositories.ContentRepository
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityRepo repositories.ActivityRepository, userRepo repositories.UserRepository, contentRepo repositories.ContentRepository) *ActivityHandler {
	return &ActivityHandler{
		activityRepository: activityRepo,
		userRepository:     userRepo,
		contentRepository:  contentRepo,
	}
}

// RegisterActivityRoutes registers the activity feed route
func (h *ActivityHandler) RegisterActivityRoutes(e *echo.Echo) {
	e.GET("/activities/:userId", h.GetActivities)
}

// GetActivities returns the user's feed, newest first. Actor profiles and
// target media are re-resolved at read time; entries whose references no
// longer exist fall back to the stored snapshot instead of failing.
func (h *ActivityHandler) GetActivities(c echo.Context) error {
	userID := c.Param("userId")

	feed, err := h.activityRepository.GetFeedForUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()
	actorCache := make(map[string]*models.User)

	for i := range feed {
		activity := &feed[i]

		actor, ok := actorCache[activity.FromUser.ID]
		if !ok {
			actor, _ = h.userRepository.GetUserByID(activity.FromUser.ID)
			actorCache[activity.FromUser.ID] = actor
		}
		if actor != nil {
			activity.FromUser = models.ActivityActor{ID: actor.ID, Name: actor.Name, Avatar: actor.Avatar}
		}

		switch activity.Target.Type {
		case models.ContentTypePost, models.ContentTypeStory, models.ContentTypeVideo:
			item, err := h.contentRepository.GetByID(ctx, activity.Target.Type, activity.Target.ID)
			if err == nil {
				activity.Target.Media = item.MediaPath
			}
		}
	}

	return c.JSON(http.StatusOK, feed)
}
