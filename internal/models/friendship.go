package models

// Friendship represents an explicit relationship between two users. The pair
// is unordered: queries must match it from either side.
type Friendship struct {
	ID      string `json:"id" gorm:"primaryKey;size:36"`
	User1ID string `json:"user1Id" gorm:"index;size:36"`
	User2ID string `json:"user2Id" gorm:"index;size:36"`
}

// FollowRequest defines the request body for following a user
type FollowRequest struct {
	UserID   string `json:"userId" validate:"required"`
	TargetID string `json:"targetId" validate:"required"`
}
