package handlers

import (
	"math/rand"
	"net/http"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/dmarini-dev/lumina/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// Fallback clips used when a video is created without an upload
var sampleVideoPaths = []string{
	"/uploads/sample_video_1.mp4",
	"/uploads/sample_video_2.mp4",
}

// VideoHandler handles short videos
type VideoHandler struct {
	contentRepository repositories.ContentRepository
	userRepository    repositories.UserRepository
	store             *storage.DiskStore
	clock             util.Clock
}

// NewVideoHandler creates a new VideoHandler
func NewVideoHandler(contentRepo repositories.ContentRepository, userRepo repositories.UserRepository, store *storage.DiskStore, clock util.Clock) *VideoHandler {
	return &VideoHandler{
		contentRepository: contentRepo,
		userRepository:    userRepo,
		store:             store,
		clock:             clock,
	}
}

// RegisterVideoRoutes registers video-related routes
func (h *VideoHandler) RegisterVideoRoutes(e *echo.Echo) {
	e.GET("/videos", h.ListVideos)
	e.POST("/videos", h.CreateVideo)
}

// CreateVideo stores a new video
func (h *VideoHandler) CreateVideo(c echo.Context) error {
	userID := c.FormValue("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required")
	}
	title := c.FormValue("title")
	if title == "" {
		title = "Untitled_Data_Stream"
	}

	mediaPath := sampleVideoPaths[rand.Intn(len(sampleVideoPaths))]
	if file, err := c.FormFile("media"); err == nil {
		var saveErr error
		mediaPath, saveErr = h.store.Save(file)
		if saveErr != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, saveErr.Error())
		}
	}

	video := &models.ContentItem{
		UserID:    userID,
		MediaPath: mediaPath,
		Title:     title,
		Timestamp: h.clock.Now().UnixMilli(),
	}
	if err := h.contentRepository.Create(c.Request().Context(), models.ContentTypeVideo, video); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, video)
}

// ListVideos returns videos in shuffled order, optionally filtered by owner
func (h *VideoHandler) ListVideos(c echo.Context) error {
	videos, err := h.contentRepository.List(c.Request().Context(), models.ContentTypeVideo, c.QueryParam("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rand.Shuffle(len(videos), func(i, j int) {
		videos[i], videos[j] = videos[j], videos[i]
	})

	enriched, err := enrichContentItems(videos, h.userRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, enriched)
}
