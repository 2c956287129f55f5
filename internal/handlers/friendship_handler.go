package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles follow actions, which create the explicit
// friendship pair consumed by the contact resolver
type FriendshipHandler struct {
	friendshipRepository repositories.FriendshipRepository
	userRepository       repositories.UserRepository
	activityRepository   repositories.ActivityRepository
	clock                util.Clock
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendshipRepo repositories.FriendshipRepository, userRepo repositories.UserRepository, activityRepo repositories.ActivityRepository, clock util.Clock) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipRepository: friendshipRepo,
		userRepository:       userRepo,
		activityRepository:   activityRepo,
		clock:                clock,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(e *echo.Echo) {
	e.POST("/follow", h.Follow)
}

// Follow creates a friendship between the two users and notifies the target
// with a follow activity.
func (h *FriendshipHandler) Follow(c echo.Context) error {
	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.UserID == req.TargetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	follower, err := h.userRepository.GetUserByID(req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if _, err := h.userRepository.GetUserByID(req.TargetID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Target user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	exists, err := h.friendshipRepository.FriendshipExists(req.UserID, req.TargetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if exists {
		return c.JSON(http.StatusOK, echo.Map{"message": "Already following this user."})
	}

	friendship := &models.Friendship{User1ID: req.UserID, User2ID: req.TargetID}
	if err := h.friendshipRepository.CreateFriendship(friendship); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	activity := &models.Activity{
		Type: models.ActivityTypeFollow,
		FromUser: models.ActivityActor{
			ID:     follower.ID,
			Name:   follower.Name,
			Avatar: follower.Avatar,
		},
		Target: models.ActivityTarget{
			Type: models.TargetTypeUser,
			ID:   req.TargetID,
		},
		Timestamp: h.clock.Now().UnixMilli(),
	}
	if err := h.activityRepository.CreateActivity(activity); err != nil {
		log.Printf("failed to record follow activity for %s: %v", req.TargetID, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Followed successfully!",
		"friendship": friendship,
	})
}
