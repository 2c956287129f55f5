package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestContactCandidatesMergesFriendsAndPartners(t *testing.T) {
	messages := []models.Message{
		{SenderID: "dev", ConversationID: "anna", Timestamp: 10},
		{SenderID: "anna", ConversationID: "dev", Timestamp: 50},
		{SenderID: "elena", ConversationID: "dev", Timestamp: 80},
		{SenderID: "dev", ConversationID: "dev", Timestamp: 99}, // self thread, ignored
	}

	candidates := contactCandidates("dev", []string{"anna", "marco"}, messages)

	require.Equal(t, map[string]int64{
		"anna":  50, // friend with messages: most recent timestamp wins
		"marco": 0,  // friend without messages
		"elena": 80, // message partner without friendship
	}, candidates)
}

func TestContactCandidatesExcludesSelf(t *testing.T) {
	candidates := contactCandidates("dev", []string{"dev", "anna"}, nil)
	require.NotContains(t, candidates, "dev")
	require.Contains(t, candidates, "anna")
}

func TestRankContactsOrdersByRecency(t *testing.T) {
	candidates := map[string]int64{"anna": 50, "marco": 0, "elena": 80, "ghost": 70}
	profiles := map[string]models.UserCompact{
		"anna":  {ID: "anna", Name: "Anna_X"},
		"marco": {ID: "marco", Name: "Marco_Z"},
		"elena": {ID: "elena", Name: "Elena_K"},
		// ghost has no directory profile and is dropped
	}

	contacts := rankContacts(candidates, profiles)

	require.Len(t, contacts, 3)
	require.Equal(t, "elena", contacts[0].ID)
	require.Equal(t, "anna", contacts[1].ID)
	require.Equal(t, "marco", contacts[2].ID)
	require.Equal(t, int64(0), contacts[2].LastMessageTimestamp)
}

func TestRankContactsBreaksTiesByID(t *testing.T) {
	candidates := map[string]int64{"b-user": 10, "a-user": 10, "c-user": 10}
	profiles := map[string]models.UserCompact{
		"a-user": {ID: "a-user"},
		"b-user": {ID: "b-user"},
		"c-user": {ID: "c-user"},
	}

	contacts := rankContacts(candidates, profiles)

	require.Equal(t, []string{"a-user", "b-user", "c-user"},
		[]string{contacts[0].ID, contacts[1].ID, contacts[2].ID})
}

func TestGetContactsEndToEnd(t *testing.T) {
	dev := newDirectoryUser("dev")
	anna := newDirectoryUser("anna")
	marco := newDirectoryUser("marco")
	elena := newDirectoryUser("elena")
	userRepo := newFakeUserRepository(dev, anna, marco, elena)

	friendshipRepo := &fakeFriendshipRepository{}
	require.NoError(t, friendshipRepo.CreateFriendship(&models.Friendship{User1ID: dev.ID, User2ID: anna.ID}))
	require.NoError(t, friendshipRepo.CreateFriendship(&models.Friendship{User1ID: marco.ID, User2ID: dev.ID}))

	messageRepo := &fakeMessageRepository{messages: []models.Message{
		{ID: "m-1", SenderID: dev.ID, ConversationID: anna.ID, Timestamp: 10},
		{ID: "m-2", SenderID: anna.ID, ConversationID: dev.ID, Timestamp: 50},
		{ID: "m-3", SenderID: elena.ID, ConversationID: dev.ID, Timestamp: 80},
		{ID: "m-4", SenderID: "vanished-user", ConversationID: dev.ID, Timestamp: 90},
		{ID: "m-5", SenderID: anna.ID, ConversationID: marco.ID, Timestamp: 95}, // does not touch dev
	}}

	h := NewContactHandler(friendshipRepo, messageRepo, userRepo)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/contacts/"+dev.ID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/contacts/:userId")
	c.SetParamNames("userId")
	c.SetParamValues(dev.ID)

	require.NoError(t, h.GetContacts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var contacts []Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))

	// vanished-user has no directory profile; everyone else appears once,
	// ordered by last-message recency with message-less friends at the end
	require.Len(t, contacts, 3)
	require.Equal(t, elena.ID, contacts[0].ID)
	require.Equal(t, int64(80), contacts[0].LastMessageTimestamp)
	require.Equal(t, anna.ID, contacts[1].ID)
	require.Equal(t, int64(50), contacts[1].LastMessageTimestamp)
	require.Equal(t, marco.ID, contacts[2].ID)
	require.Equal(t, int64(0), contacts[2].LastMessageTimestamp)
	require.Equal(t, anna.Name, contacts[1].Name)
}
