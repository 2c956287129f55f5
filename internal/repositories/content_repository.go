package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentRepository defines the interface for the content store. One
// repository serves all three content collections; operations are dispatched
// by content type.
type ContentRepository interface {
	Create(ctx context.Context, contentType string, item *models.ContentItem) error
	GetByID(ctx context.Context, contentType, id string) (*models.ContentItem, error)
	// List returns items newest first, optionally filtered by owner
	List(ctx context.Context, contentType, ownerID string) ([]models.ContentItem, error)
	// ListActiveStories returns stories whose expiry is still in the future
	ListActiveStories(ctx context.Context, nowMillis int64) ([]models.ContentItem, error)
	AddLike(ctx context.Context, contentType, id, userID string) error
	RemoveLike(ctx context.Context, contentType, id, userID string) error
	AppendComment(ctx context.Context, contentType, id string, comment models.Comment) error
	CountByType(ctx context.Context, contentType string) (int64, error)
}

// MongoContentRepository implements ContentRepository for MongoDB
type MongoContentRepository struct {
	db *mongo.Database
}

// NewMongoContentRepository creates a new MongoContentRepository
func NewMongoContentRepository(db *mongo.Database) *MongoContentRepository {
	return &MongoContentRepository{db: db}
}

func (r *MongoContentRepository) collection(contentType string) (*mongo.Collection, error) {
	name, ok := models.CollectionFor(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, contentType)
	}
	return r.db.Collection(name), nil
}

// Create inserts a new content item, assigning an id when absent
func (r *MongoContentRepository) Create(ctx context.Context, contentType string, item *models.ContentItem) error {
	coll, err := r.collection(contentType)
	if err != nil {
		return err
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
	_, err = coll.InsertOne(ctx, item)
	return err
}

// GetByID retrieves a content item by type and id
func (r *MongoContentRepository) GetByID(ctx context.Context, contentType, id string) (*models.ContentItem, error) {
	coll, err := r.collection(contentType)
	if err != nil {
		return nil, err
	}
	var item models.ContentItem
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &item, nil
}

// List retrieves items of one type, newest first, optionally by owner
func (r *MongoContentRepository) List(ctx context.Context, contentType, ownerID string) ([]models.ContentItem, error) {
	coll, err := r.collection(contentType)
	if err != nil {
		return nil, err
	}
	filter := bson.M{}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.ContentItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListActiveStories retrieves unexpired stories, newest first
func (r *MongoContentRepository) ListActiveStories(ctx context.Context, nowMillis int64) ([]models.ContentItem, error) {
	coll := r.db.Collection("stories")
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{"expiry_time": bson.M{"$gt": nowMillis}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.ContentItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddLike adds userID to the like-set. $addToSet keeps set semantics even
// under concurrent toggles.
func (r *MongoContentRepository) AddLike(ctx context.Context, contentType, id, userID string) error {
	coll, err := r.collection(contentType)
	if err != nil {
		return err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"likes": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrContentNotFound
	}
	return nil
}

// RemoveLike removes userID from the like-set
func (r *MongoContentRepository) RemoveLike(ctx context.Context, contentType, id, userID string) error {
	coll, err := r.collection(contentType)
	if err != nil {
		return err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"likes": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrContentNotFound
	}
	return nil
}

// AppendComment pushes a comment onto the item's comment-list
func (r *MongoContentRepository) AppendComment(ctx context.Context, contentType, id string, comment models.Comment) error {
	coll, err := r.collection(contentType)
	if err != nil {
		return err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrContentNotFound
	}
	return nil
}

// CountByType returns the number of items in a content collection
func (r *MongoContentRepository) CountByType(ctx context.Context, contentType string) (int64, error) {
	coll, err := r.collection(contentType)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, bson.M{})
}
