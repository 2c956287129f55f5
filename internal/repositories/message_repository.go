package repositories

import (
	"context"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// GetConversation returns both directions of the 1:1 thread between the
	// two users, oldest first.
	GetConversation(ctx context.Context, userID, partnerID string) ([]models.Message, error)
	// GetMessagesTouching returns every message the user sent or received
	GetMessagesTouching(ctx context.Context, userID string) ([]models.Message, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// Create inserts a new message, assigning an id when absent
func (r *MongoMessageRepository) Create(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// GetConversation retrieves the symmetric thread between userID and partnerID
func (r *MongoMessageRepository) GetConversation(ctx context.Context, userID, partnerID string) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID, "conversation_id": partnerID},
		bson.M{"sender_id": partnerID, "conversation_id": userID},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetMessagesTouching retrieves every message where the user is on either side
func (r *MongoMessageRepository) GetMessagesTouching(ctx context.Context, userID string) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"conversation_id": userID},
	}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
