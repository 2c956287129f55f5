package models

// Content types addressable through the like/comment endpoints
const (
	ContentTypePost  = "post"
	ContentTypeStory = "story"
	ContentTypeVideo = "video"
)

// CollectionFor maps a content type to its MongoDB collection name
func CollectionFor(contentType string) (string, bool) {
	switch contentType {
	case ContentTypePost:
		return "posts", true
	case ContentTypeStory:
		return "stories", true
	case ContentTypeVideo:
		return "videos", true
	default:
		return "", false
	}
}

// Comment is a single immutable comment embedded in a content item
type Comment struct {
	ID        string `json:"id" bson:"id"`
	UserID    string `json:"userId" bson:"user_id"`
	Content   string `json:"content" bson:"content"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}

// ContentItem is the shared shape of posts, stories and videos (MongoDB).
// Likes carries set semantics: a user id appears at most once.
type ContentItem struct {
	ID         string    `json:"id" bson:"_id"`
	UserID     string    `json:"userId" bson:"user_id"`
	MediaPath  string    `json:"mediaPath" bson:"media_path"`
	Caption    string    `json:"caption,omitempty" bson:"caption,omitempty"`
	Title      string    `json:"title,omitempty" bson:"title,omitempty"`
	MediaType  string    `json:"type,omitempty" bson:"media_type,omitempty"` // image or video
	Timestamp  int64     `json:"timestamp" bson:"timestamp"`
	ExpiryTime int64     `json:"expiryTime,omitempty" bson:"expiry_time,omitempty"` // stories only
	ViewsCount int       `json:"viewsCount" bson:"views_count"`
	Likes      []string  `json:"likes" bson:"likes"`
	Comments   []Comment `json:"comments" bson:"comments"`
}

// HasLiked reports whether userID is in the like-set
func (c *ContentItem) HasLiked(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLikeRequest defines the request body for the like toggle endpoint
type ToggleLikeRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// CreateCommentRequest defines the request body for adding a comment
type CreateCommentRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Content string `json:"content" validate:"required,min=1,max=500"`
}
