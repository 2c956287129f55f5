package models

// Read status ordinals for messages
const (
	MessageUnread    = 0
	MessageDelivered = 1
	MessageRead      = 2
)

// Message is one side of a 1:1 thread (MongoDB). ConversationID is the id of
// the other party; the thread (a, b) is addressed symmetrically.
type Message struct {
	ID             string `json:"id" bson:"_id"`
	ConversationID string `json:"conversationId" bson:"conversation_id"`
	SenderID       string `json:"senderId" bson:"sender_id"`
	Content        string `json:"content,omitempty" bson:"content,omitempty"`
	MediaPath      string `json:"mediaPath,omitempty" bson:"media_path,omitempty"`
	Timestamp      int64  `json:"timestamp" bson:"timestamp"`
	ReadStatus     int    `json:"readStatus" bson:"read_status"`
}

// PartnerOf returns the other side of the thread relative to userID, and
// whether the message touches userID at all.
func (m *Message) PartnerOf(userID string) (string, bool) {
	switch userID {
	case m.SenderID:
		return m.ConversationID, true
	case m.ConversationID:
		return m.SenderID, true
	default:
		return "", false
	}
}
