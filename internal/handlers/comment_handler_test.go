package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (*CommentHandler, *fakeContentRepository, *fakeUserRepository, *fakeActivityRepository, *models.ContentItem, *models.User, *models.User, *util.StubClock) {
	t.Helper()

	owner := newDirectoryUser("owner-1")
	author := newDirectoryUser("author-1")
	userRepo := newFakeUserRepository(owner, author)

	contentRepo := newFakeContentRepository()
	item := &models.ContentItem{UserID: owner.ID, MediaPath: "/uploads/media-1.jpg", Timestamp: 1000}
	require.NoError(t, contentRepo.Create(context.Background(), models.ContentTypePost, item))

	activityRepo := &fakeActivityRepository{}
	clock := util.NewStubClock(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	h := NewCommentHandler(contentRepo, userRepo, activityRepo, clock)
	return h, contentRepo, userRepo, activityRepo, item, owner, author, clock
}

func postComment(t *testing.T, h *CommentHandler, contentType, contentID, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/comments/"+contentType+"/"+contentID, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/comments/:contentType/:contentId")
	c.SetParamNames("contentType", "contentId")
	c.SetParamValues(contentType, contentID)
	return rec, h.CreateComment(c)
}

func listComments(t *testing.T, h *CommentHandler, contentType, contentID string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/comments/"+contentType+"/"+contentID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/comments/:contentType/:contentId")
	c.SetParamNames("contentType", "contentId")
	c.SetParamValues(contentType, contentID)
	return rec, h.ListComments(c)
}

func TestCreateCommentAppendsAndNotifies(t *testing.T) {
	h, contentRepo, _, activityRepo, item, owner, author, clock := newCommentFixture(t)

	rec, err := postComment(t, h, models.ContentTypePost, item.ID, `{"userId":"`+author.ID+`","content":"Amazing capture!"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	stored, err := contentRepo.GetByID(context.Background(), models.ContentTypePost, item.ID)
	require.NoError(t, err)
	require.Len(t, stored.Comments, 1)
	comment := stored.Comments[0]
	require.NotEmpty(t, comment.ID)
	require.Equal(t, author.ID, comment.UserID)
	require.Equal(t, "Amazing capture!", comment.Content)
	require.Equal(t, clock.Now().UnixMilli(), comment.Timestamp)

	require.Len(t, activityRepo.activities, 1)
	activity := activityRepo.activities[0]
	require.Equal(t, models.ActivityTypeComment, activity.Type)
	require.Equal(t, author.ID, activity.FromUser.ID)
	require.Equal(t, owner.ID, activity.Target.OwnerID)
	require.Equal(t, "Amazing capture!", activity.CommentContent)
}

func TestCreateCommentOwnContentNoActivity(t *testing.T) {
	h, contentRepo, _, activityRepo, item, owner, _, _ := newCommentFixture(t)

	rec, err := postComment(t, h, models.ContentTypePost, item.ID, `{"userId":"`+owner.ID+`","content":"Replying to myself"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	stored, err := contentRepo.GetByID(context.Background(), models.ContentTypePost, item.ID)
	require.NoError(t, err)
	require.Len(t, stored.Comments, 1)
	require.Empty(t, activityRepo.activities)
}

func TestCreateCommentEmptyContentReturns400(t *testing.T) {
	h, contentRepo, _, _, item, _, author, _ := newCommentFixture(t)

	_, err := postComment(t, h, models.ContentTypePost, item.ID, `{"userId":"`+author.ID+`","content":""}`)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)

	stored, err := contentRepo.GetByID(context.Background(), models.ContentTypePost, item.ID)
	require.NoError(t, err)
	require.Empty(t, stored.Comments)
}

func TestCreateCommentMissingContentReturns404(t *testing.T) {
	h, _, _, _, _, _, author, _ := newCommentFixture(t)

	_, err := postComment(t, h, models.ContentTypePost, "no-such-id", `{"userId":"`+author.ID+`","content":"hello"}`)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestListCommentsAscendingWithPlaceholders(t *testing.T) {
	h, contentRepo, _, _, item, _, author, _ := newCommentFixture(t)

	ctx := context.Background()
	require.NoError(t, contentRepo.AppendComment(ctx, models.ContentTypePost, item.ID,
		models.Comment{ID: "c-3", UserID: author.ID, Content: "third", Timestamp: 300}))
	require.NoError(t, contentRepo.AppendComment(ctx, models.ContentTypePost, item.ID,
		models.Comment{ID: "c-1", UserID: "deleted-user", Content: "first", Timestamp: 100}))
	require.NoError(t, contentRepo.AppendComment(ctx, models.ContentTypePost, item.ID,
		models.Comment{ID: "c-2", UserID: author.ID, Content: "second", Timestamp: 200}))

	rec, err := listComments(t, h, models.ContentTypePost, item.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var enriched []EnrichedComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enriched))
	require.Len(t, enriched, 3)

	require.Equal(t, []string{"c-1", "c-2", "c-3"}, []string{enriched[0].ID, enriched[1].ID, enriched[2].ID})

	// Vanished authors render as a placeholder profile instead of failing
	require.Equal(t, "Unknown_Unit", enriched[0].User.Name)
	require.Equal(t, "deleted-user", enriched[0].User.ID)
	require.Equal(t, author.Name, enriched[1].User.Name)
	require.Equal(t, author.Name, enriched[2].User.Name)
}

func TestListCommentsMissingContentReturns404(t *testing.T) {
	h, _, _, _, _, _, _, _ := newCommentFixture(t)

	_, err := listComments(t, h, models.ContentTypeVideo, "no-such-id")
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Code)
}
