package handlers

import (
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

func getStreak(t *testing.T, h *StreakHandler, userA, userB string) models.StreakRecord {
	t.Helper()

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/streak/"+userA+"/"+userB, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/streak/:userA/:userB")
	c.SetParamNames("userA", "userB")
	c.SetParamValues(userA, userB)

	require.NoError(t, h.GetStreak(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var record models.StreakRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	return record
}

func updateStreak(t *testing.T, h *StreakHandler, user1, user2 string) models.StreakRecord {
	t.Helper()

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/streak/update", `{"user1Id":"`+user1+`","user2Id":"`+user2+`"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.UpdateStreak(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var record models.StreakRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	return record
}

func TestGetStreakDefaultsToZero(t *testing.T) {
	clock := util.NewStubClock(time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local))
	h := NewStreakHandler(newFakeStreakRepository(), clock)

	record := getStreak(t, h, "alice", "bob")
	require.Equal(t, 0, record.CurrentStreak)
	require.Equal(t, int64(0), record.LastInteractionTimestamp)
}

func TestUpdateStreakLifecycle(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	clock := util.NewStubClock(start)
	h := NewStreakHandler(newFakeStreakRepository(), clock)

	record := updateStreak(t, h, "alice", "bob")
	require.Equal(t, 1, record.CurrentStreak)
	require.Equal(t, start.UnixMilli(), record.LastInteractionTimestamp)

	// Same day: streak unchanged, timestamp advanced
	clock.Advance(1 * time.Hour)
	record = updateStreak(t, h, "alice", "bob")
	require.Equal(t, 1, record.CurrentStreak)
	require.Equal(t, clock.Now().UnixMilli(), record.LastInteractionTimestamp)

	// Next day within the 24h grace window: streak increments
	clock.Advance(23 * time.Hour)
	record = updateStreak(t, h, "alice", "bob")
	require.Equal(t, 2, record.CurrentStreak)

	// Over 24h of silence: streak resets to 1
	clock.Advance(25 * time.Hour)
	record = updateStreak(t, h, "alice", "bob")
	require.Equal(t, 1, record.CurrentStreak)
}

func TestStreakSymmetricAcrossArgumentOrder(t *testing.T) {
	clock := util.NewStubClock(time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local))
	h := NewStreakHandler(newFakeStreakRepository(), clock)

	updateStreak(t, h, "bob", "alice")

	record := getStreak(t, h, "alice", "bob")
	require.Equal(t, 1, record.CurrentStreak)

	record = getStreak(t, h, "bob", "alice")
	require.Equal(t, 1, record.CurrentStreak)
}

func TestUpdateStreakMissingUserReturns400(t *testing.T) {
	clock := util.NewStubClock(time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local))
	h := NewStreakHandler(newFakeStreakRepository(), clock)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/streak/update", `{"user1Id":"alice"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.UpdateStreak(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
}
