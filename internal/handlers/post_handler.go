package handlers

import (
	"net/http"
	"strings"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/dmarini-dev/lumina/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// PostHandler handles feed posts
type PostHandler struct {
	contentRepository repositories.ContentRepository
	userRepository    repositories.UserRepository
	store             *storage.DiskStore
	clock             util.Clock
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(contentRepo repositories.ContentRepository, userRepo repositories.UserRepository, store *storage.DiskStore, clock util.Clock) *PostHandler {
	return &PostHandler{
		contentRepository: contentRepo,
		userRepository:    userRepo,
		store:             store,
		clock:             clock,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(e *echo.Echo) {
	e.GET("/posts", h.ListPosts)
	e.POST("/posts", h.CreatePost)
}

// EnrichedContentItem carries read-time counts and the author's live profile
type EnrichedContentItem struct {
	models.ContentItem
	LikesCount    int                `json:"likesCount"`
	CommentsCount int                `json:"commentsCount"`
	User          models.UserCompact `json:"user"`
}

// enrichContentItems joins author profiles onto content items and adds
// like/comment counts. Unknown owners get a placeholder profile.
func enrichContentItems(items []models.ContentItem, userRepo repositories.UserRepository) ([]EnrichedContentItem, error) {
	ownerIDs := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		if !seen[item.UserID] {
			seen[item.UserID] = true
			ownerIDs = append(ownerIDs, item.UserID)
		}
	}

	owners, err := userRepo.GetUsersByIDs(ownerIDs)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]models.UserCompact, len(owners))
	for _, u := range owners {
		profiles[u.ID] = u.ToCompact()
	}

	enriched := make([]EnrichedContentItem, len(items))
	for i, item := range items {
		enriched[i] = EnrichedContentItem{
			ContentItem:   item,
			LikesCount:    len(item.Likes),
			CommentsCount: len(item.Comments),
		}
		if profile, ok := profiles[item.UserID]; ok {
			enriched[i].User = profile
		} else {
			enriched[i].User = models.PlaceholderUser(item.UserID)
		}
	}
	return enriched, nil
}

// CreatePost stores a new post; without an upload it falls back to a random
// placeholder image.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := c.FormValue("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required")
	}
	caption := c.FormValue("caption")

	mediaPath := models.RandomPicsumURL(600, 400)
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

	post := &models.ContentItem{
		UserID:    userID,
		MediaPath: mediaPath,
		Caption:   caption,
		MediaType: mediaType,
		Timestamp: h.clock.Now().UnixMilli(),
	}
	if err := h.contentRepository.Create(c.Request().Context(), models.ContentTypePost, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, post)
}

// ListPosts returns posts newest first, optionally filtered by owner
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.contentRepository.List(c.Request().Context(), models.ContentTypePost, c.QueryParam("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := enrichContentItems(posts, h.userRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, enriched)
}
