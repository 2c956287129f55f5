package models

// Activity types
const (
	ActivityTypeLike    = "like"
	ActivityTypeComment = "comment"
	ActivityTypeFollow  = "follow"
)

// TargetTypeUser marks follow activities, whose target is an account rather
// than a content item.
const TargetTypeUser = "user"

// ActivityActor is the acting user's profile snapshot, taken at creation time
type ActivityActor struct {
	ID     string `json:"id" gorm:"size:36;index"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ActivityTarget references what was acted on. OwnerID is the recipient of
// the notification for content targets.
type ActivityTarget struct {
	Type      string `json:"type" gorm:"size:20"`
	ID        string `json:"id" gorm:"size:36;index"`
	Media     string `json:"media,omitempty"`
	OwnerID   string `json:"userId,omitempty" gorm:"size:36;index"`
	OwnerName string `json:"ownerName,omitempty"`
}

// Activity is one append-only notification-log entry (PostgreSQL). Entries
// are never mutated after creation.
type Activity struct {
	ID             string         `json:"id" gorm:"primaryKey;size:36"`
	Type           string         `json:"type" gorm:"size:20;index"`
	FromUser       ActivityActor  `json:"fromUser" gorm:"embedded;embeddedPrefix:from_user_"`
	Target         ActivityTarget `json:"target" gorm:"embedded;embeddedPrefix:target_"`
	CommentContent string         `json:"commentContent,omitempty"`
	Timestamp      int64          `json:"timestamp" gorm:"index"`
}
