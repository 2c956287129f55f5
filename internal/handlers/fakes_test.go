package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/validators"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// In-memory repository fakes. Each mirrors the contract of its production
// counterpart closely enough that handlers cannot tell them apart.

type fakeContentRepository struct {
	items map[string]map[string]*models.ContentItem
}

func newFakeContentRepository() *fakeContentRepository {
	return &fakeContentRepository{items: map[string]map[string]*models.ContentItem{
		models.ContentTypePost:  {},
		models.ContentTypeStory: {},
		models.ContentTypeVideo: {},
	}}
}

func (r *fakeContentRepository) Create(_ context.Context, contentType string, item *models.ContentItem) error {
	coll, ok := r.items[contentType]
	if !ok {
		return repositories.ErrUnknownContentType
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Likes == nil {
		item.Likes = []string{}
	}
	if item.Comments == nil {
		item.Comments = []models.Comment{}
	}
	coll[item.ID] = item
	return nil
}

// GetByID returns a deep copy so handler reads see a snapshot, matching
// document store semantics.
func (r *fakeContentRepository) GetByID(_ context.Context, contentType, id string) (*models.ContentItem, error) {
	coll, ok := r.items[contentType]
	if !ok {
		return nil, repositories.ErrUnknownContentType
	}
	item, ok := coll[id]
	if !ok {
		return nil, repositories.ErrContentNotFound
	}
	snapshot := *item
	snapshot.Likes = append([]string(nil), item.Likes...)
	snapshot.Comments = append([]models.Comment(nil), item.Comments...)
	return &snapshot, nil
}

func (r *fakeContentRepository) List(_ context.Context, contentType, ownerID string) ([]models.ContentItem, error) {
	coll, ok := r.items[contentType]
	if !ok {
		return nil, repositories.ErrUnknownContentType
	}
	var items []models.ContentItem
	for _, item := range coll {
		if ownerID == "" || item.UserID == ownerID {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Timestamp > items[j].Timestamp })
	return items, nil
}

func (r *fakeContentRepository) ListActiveStories(_ context.Context, nowMillis int64) ([]models.ContentItem, error) {
	var items []models.ContentItem
	for _, item := range r.items[models.ContentTypeStory] {
		if item.ExpiryTime > nowMillis {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Timestamp > items[j].Timestamp })
	return items, nil
}

func (r *fakeContentRepository) AddLike(_ context.Context, contentType, id, userID string) error {
	coll, ok := r.items[contentType]
	if !ok {
		return repositories.ErrUnknownContentType
	}
	item, ok := coll[id]
	if !ok {
		return repositories.ErrContentNotFound
	}
	if !item.HasLiked(userID) {
		item.Likes = append(item.Likes, userID)
	}
	return nil
}

func (r *fakeContentRepository) RemoveLike(_ context.Context, contentType, id, userID string) error {
	coll, ok := r.items[contentType]
	if !ok {
		return repositories.ErrUnknownContentType
	}
	item, ok := coll[id]
	if !ok {
		return repositories.ErrContentNotFound
	}
	kept := item.Likes[:0]
	for _, likerID := range item.Likes {
		if likerID != userID {
			kept = append(kept, likerID)
		}
	}
	item.Likes = kept
	return nil
}

func (r *fakeContentRepository) AppendComment(_ context.Context, contentType, id string, comment models.Comment) error {
	coll, ok := r.items[contentType]
	if !ok {
		return repositories.ErrUnknownContentType
	}
	item, ok := coll[id]
	if !ok {
		return repositories.ErrContentNotFound
	}
	item.Comments = append(item.Comments, comment)
	return nil
}

func (r *fakeContentRepository) CountByType(_ context.Context, contentType string) (int64, error) {
	coll, ok := r.items[contentType]
	if !ok {
		return 0, repositories.ErrUnknownContentType
	}
	return int64(len(coll)), nil
}

type fakeUserRepository struct {
	users map[string]*models.User
}

func newFakeUserRepository(users ...*models.User) *fakeUserRepository {
	r := &fakeUserRepository{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepository) CreateUser(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) GetUserByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	snapshot := *user
	return &snapshot, nil
}

func (r *fakeUserRepository) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			snapshot := *user
			return &snapshot, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepository) GetUsersByIDs(ids []string) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepository) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) SearchUsers(query string, excludeIDs []string) ([]models.User, error) {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	needle := strings.ToLower(query)
	var users []models.User
	for _, user := range r.users {
		if excluded[user.ID] {
			continue
		}
		if strings.Contains(strings.ToLower(user.Username), needle) || strings.Contains(strings.ToLower(user.Name), needle) {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepository) CountUsers() (int64, error) {
	return int64(len(r.users)), nil
}

type fakeActivityRepository struct {
	activities []models.Activity
}

func (r *fakeActivityRepository) CreateActivity(activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	r.activities = append(r.activities, *activity)
	return nil
}

func (r *fakeActivityRepository) GetFeedForUser(userID string) ([]models.Activity, error) {
	var feed []models.Activity
	for _, a := range r.activities {
		if a.Target.OwnerID == userID || (a.Type == models.ActivityTypeFollow && a.Target.ID == userID) {
			feed = append(feed, a)
		}
	}
	sort.Slice(feed, func(i, j int) bool {
		if feed[i].Timestamp != feed[j].Timestamp {
			return feed[i].Timestamp > feed[j].Timestamp
		}
		return feed[i].ID < feed[j].ID
	})
	return feed, nil
}

type fakeFriendshipRepository struct {
	rows []models.Friendship
}

func (r *fakeFriendshipRepository) CreateFriendship(friendship *models.Friendship) error {
	if friendship.ID == "" {
		friendship.ID = uuid.NewString()
	}
	r.rows = append(r.rows, *friendship)
	return nil
}

func (r *fakeFriendshipRepository) FriendshipExists(userA, userB string) (bool, error) {
	for _, f := range r.rows {
		if (f.User1ID == userA && f.User2ID == userB) || (f.User1ID == userB && f.User2ID == userA) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFriendshipRepository) GetFriendIDs(userID string) ([]string, error) {
	var ids []string
	for _, f := range r.rows {
		switch userID {
		case f.User1ID:
			ids = append(ids, f.User2ID)
		case f.User2ID:
			ids = append(ids, f.User1ID)
		}
	}
	return ids, nil
}

type fakeMessageRepository struct {
	messages []models.Message
}

func (r *fakeMessageRepository) Create(_ context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepository) GetConversation(_ context.Context, userID, partnerID string) ([]models.Message, error) {
	var thread []models.Message
	for _, m := range r.messages {
		if (m.SenderID == userID && m.ConversationID == partnerID) ||
			(m.SenderID == partnerID && m.ConversationID == userID) {
			thread = append(thread, m)
		}
	}
	sort.Slice(thread, func(i, j int) bool { return thread[i].Timestamp < thread[j].Timestamp })
	return thread, nil
}

func (r *fakeMessageRepository) GetMessagesTouching(_ context.Context, userID string) ([]models.Message, error) {
	var touching []models.Message
	for _, m := range r.messages {
		if m.SenderID == userID || m.ConversationID == userID {
			touching = append(touching, m)
		}
	}
	return touching, nil
}

type fakeStreakRepository struct {
	records map[string]models.StreakRecord
}

func newFakeStreakRepository() *fakeStreakRepository {
	return &fakeStreakRepository{records: make(map[string]models.StreakRecord)}
}

func (r *fakeStreakRepository) Get(pairKey string) (*models.StreakRecord, error) {
	rec, ok := r.records[pairKey]
	if !ok {
		return &models.StreakRecord{PairKey: pairKey}, nil
	}
	return &rec, nil
}

func (r *fakeStreakRepository) Advance(pairKey string, now time.Time) (*models.StreakRecord, error) {
	rec, ok := r.records[pairKey]
	if !ok {
		rec = models.StreakRecord{PairKey: pairKey}
	}
	rec = models.AdvanceStreak(rec, now)
	r.records[pairKey] = rec
	return &rec, nil
}

// Test plumbing shared across handler tests.

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func newDirectoryUser(id string) *models.User {
	return &models.User{
		ID:       id,
		Username: gofakeit.Username(),
		Name:     gofakeit.Name(),
		Avatar:   gofakeit.URL(),
	}
}
