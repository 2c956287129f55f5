package handlers

import (
	"net/http"
	"sort"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ContactHandler resolves a user's contact list from friendships and
// message history
type ContactHandler struct {
	friendshipRepository repositories.FriendshipRepository
	messageRepository    repositories.MessageRepository
	userRepository       repositories.UserRepository
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(friendshipRepo repositories.FriendshipRepository, messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *ContactHandler {
	return &ContactHandler{
		friendshipRepository: friendshipRepo,
		messageRepository:    messageRepo,
		userRepository:       userRepo,
	}
}

// RegisterContactRoutes registers the contact list route
func (h *ContactHandler) RegisterContactRoutes(e *echo.Echo) {
	e.GET("/contacts/:userId", h.GetContacts)
}

// Contact is one entry in the resolved contact list
type Contact struct {
	models.UserCompact
	LastMessageTimestamp int64 `json:"lastMessageTimestamp"`
}

// GetContacts merges explicit friends with implicit message partners and
// orders them by last-message recency.
func (h *ContactHandler) GetContacts(c echo.Context) error {
	userID := c.Param("userId")

	friendIDs, err := h.friendshipRepository.GetFriendIDs(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	messages, err := h.messageRepository.GetMessagesTouching(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	candidates := contactCandidates(userID, friendIDs, messages)

	ids := make([]string, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	profiles := make(map[string]models.UserCompact, len(users))
	for _, u := range users {
		profiles[u.ID] = u.ToCompact()
	}

	return c.JSON(http.StatusOK, rankContacts(candidates, profiles))
}

// contactCandidates builds the candidate id set: the other member of every
// friendship plus every distinct message partner, each mapped to the most
// recent message timestamp exchanged with the user (0 when none exists).
// The user themselves is never a candidate.
func contactCandidates(userID string, friendIDs []string, messages []models.Message) map[string]int64 {
	candidates := make(map[string]int64)

	for _, id := range friendIDs {
		if id != userID {
			candidates[id] = 0
		}
	}

	for _, msg := range messages {
		partner, ok := msg.PartnerOf(userID)
		if !ok || partner == userID {
			continue
		}
		if msg.Timestamp > candidates[partner] {
			candidates[partner] = msg.Timestamp
		} else if _, exists := candidates[partner]; !exists {
			candidates[partner] = 0
		}
	}

	return candidates
}

// rankContacts resolves candidate profiles and orders the list by last
// message timestamp descending, ties by id ascending. Candidates without a
// directory profile are dropped, matching the read paths elsewhere.
func rankContacts(candidates map[string]int64, profiles map[string]models.UserCompact) []Contact {
	contacts := make([]Contact, 0, len(candidates))
	for id, lastTimestamp := range candidates {
		profile, ok := profiles[id]
		if !ok {
			continue
		}
		contacts = append(contacts, Contact{UserCompact: profile, LastMessageTimestamp: lastTimestamp})
	}

	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].LastMessageTimestamp != contacts[j].LastMessageTimestamp {
			return contacts[i].LastMessageTimestamp > contacts[j].LastMessageTimestamp
		}
		return contacts[i].ID < contacts[j].ID
	})
	return contacts
}
