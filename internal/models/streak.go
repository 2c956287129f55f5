package models

import "time"

// StreakRecord counts consecutive interaction days for an unordered user
// pair (PostgreSQL). PairKey is the canonical key from PairKey().
type StreakRecord struct {
	PairKey                  string `json:"-" gorm:"primaryKey;size:80"`
	CurrentStreak            int    `json:"currentStreak"`
	LastInteractionTimestamp int64  `json:"lastInteractionTimestamp"`
}

// UpdateStreakRequest defines the request body for recording an interaction
type UpdateStreakRequest struct {
	User1ID string `json:"user1Id" validate:"required"`
	User2ID string `json:"user2Id" validate:"required"`
}

// PairKey canonicalizes two user ids into a single key. Lexicographic
// ordering guarantees both argument orders address the same record.
func PairKey(a, b string) string {
	if a < b {
		return a + "_" + b
	}
	return b + "_" + a
}

// AdvanceStreak applies one interaction to a streak record at time now.
// A gap over 24h resets the streak to 1; otherwise the first interaction of
// a new calendar day (in now's location) increments it; further interactions
// on the same day leave it unchanged. The last-interaction timestamp is
// always moved to now.
func AdvanceStreak(rec StreakRecord, now time.Time) StreakRecord {
	last := time.UnixMilli(rec.LastInteractionTimestamp).In(now.Location())

	if now.UnixMilli()-rec.LastInteractionTimestamp > (24 * time.Hour).Milliseconds() {
		rec.CurrentStreak = 1
	} else if !sameCalendarDay(last, now) {
		rec.CurrentStreak++
	}

	rec.LastInteractionTimestamp = now.UnixMilli()
	return rec
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
