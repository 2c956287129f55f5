package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/dmarini-dev/lumina/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

const storyLifetime = 24 * time.Hour

// StoryHandler handles ephemeral stories
type StoryHandler struct {
	contentRepository repositories.ContentRepository
	userRepository    repositories.UserRepository
	store             *storage.DiskStore
	clock             util.Clock
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(contentRepo repositories.ContentRepository, userRepo repositories.UserRepository, store *storage.DiskStore, clock util.Clock) *StoryHandler {
	return &StoryHandler{
		contentRepository: contentRepo,
		userRepository:    userRepo,
		store:             store,
		clock:             clock,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(e *echo.Echo) {
	e.GET("/stories", h.ListStories)
	e.POST("/stories", h.CreateStory)
}

// CreateStory stores a new story expiring 24h from now
func (h *StoryHandler) CreateStory(c echo.Context) error {
	userID := c.FormValue("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required")
	}

	mediaPath := models.RandomPicsumURL(600, 1000)
	mediaType := "image"
	if file, err := c.FormFile("media"); err == nil {
		var saveErr error
		mediaPath, saveErr = h.store.Save(file)
		if saveErr != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, saveErr.Error())
		}
		if strings.HasPrefix(file.Header.Get("Content-Type"), "video/") {
			mediaType = "video"
		}
	}

	now := h.clock.Now()
	story := &models.ContentItem{
		UserID:     userID,
		MediaPath:  mediaPath,
		MediaType:  mediaType,
		Timestamp:  now.UnixMilli(),
		ExpiryTime: now.Add(storyLifetime).UnixMilli(),
	}
	if err := h.contentRepository.Create(c.Request().Context(), models.ContentTypeStory, story); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, story)
}

// EnrichedStory adds the like count to a story payload
type EnrichedStory struct {
	models.ContentItem
	LikesCount int `json:"likesCount"`
}

// StoryGroup is one user's active stories
type StoryGroup struct {
	User    models.UserCompact `json:"user"`
	Stories []EnrichedStory    `json:"stories"`
}

// ListStories returns unexpired stories grouped by owner. Groups are ordered
// by each owner's newest story; expired stories are excluded but not deleted.
func (h *StoryHandler) ListStories(c echo.Context) error {
	ctx := c.Request().Context()
	stories, err := h.contentRepository.ListActiveStories(ctx, h.clock.Now().UnixMilli())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	grouped := make(map[string][]EnrichedStory)
	ownerIDs := make([]string, 0)
	for _, story := range stories {
		if _, ok := grouped[story.UserID]; !ok {
			ownerIDs = append(ownerIDs, story.UserID)
		}
		grouped[story.UserID] = append(grouped[story.UserID], EnrichedStory{
			ContentItem: story,
			LikesCount:  len(story.Likes),
		})
	}

	sort.SliceStable(ownerIDs, func(i, j int) bool {
		return grouped[ownerIDs[i]][0].Timestamp > grouped[ownerIDs[j]][0].Timestamp
	})

	profiles := make(map[string]models.UserCompact)
	owners, err := h.userRepository.GetUsersByIDs(ownerIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, u := range owners {
		profiles[u.ID] = u.ToCompact()
	}

	result := make([]StoryGroup, len(ownerIDs))
	for i, ownerID := range ownerIDs {
		user, ok := profiles[ownerID]
		if !ok {
			user = models.PlaceholderUser(ownerID)
		}
		result[i] = StoryGroup{User: user, Stories: grouped[ownerID]}
	}

	return c.JSON(http.StatusOK, result)
}
