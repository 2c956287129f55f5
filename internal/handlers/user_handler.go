package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository       repositories.UserRepository
	friendshipRepository repositories.FriendshipRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, friendshipRepo repositories.FriendshipRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo, friendshipRepository: friendshipRepo}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(e *echo.Echo) {
	e.GET("/me/:userId", h.GetProfile)
	e.POST("/me/update", h.UpdateProfile)
	e.GET("/users/search", h.SearchUsers)
}

// GetProfile retrieves a user profile by id
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := c.Param("userId")
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("User ID %s not found.", userID))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies partial name/avatar changes to the user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("User ID %s not found.", req.UserID))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully!",
		"user":    user,
	})
}

// SearchUsers finds users matching the query, excluding the caller and
// their existing friends. Queries shorter than two characters return an
// empty result.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("query")
	currentUserID := c.QueryParam("currentUserId")

	if utf8.RuneCountInString(query) < 2 {
		return c.JSON(http.StatusOK, []models.UserCompact{})
	}

	excludeIDs := []string{currentUserID}
	if currentUserID != "" {
		friendIDs, err := h.friendshipRepository.GetFriendIDs(currentUserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		excludeIDs = append(excludeIDs, friendIDs...)
	}

	users, err := h.userRepository.SearchUsers(query, excludeIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(users))
	for i, u := range users {
		results[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, results)
}
