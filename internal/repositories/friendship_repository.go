package repositories

import (
	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for friendship data operations
type FriendshipRepository interface {
	CreateFriendship(friendship *models.Friendship) error
	FriendshipExists(userA, userB string) (bool, error)
	GetFriendIDs(userID string) ([]string, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// CreateFriendship stores a new friendship pair
func (r *PostgresFriendshipRepository) CreateFriendship(friendship *models.Friendship) error {
	if friendship.ID == "" {
		friendship.ID = uuid.NewString()
	}
	return r.db.Create(friendship).Error
}

// FriendshipExists checks whether the pair is already related, in either order
func (r *PostgresFriendshipRepository) FriendshipExists(userA, userB string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}

// GetFriendIDs returns the other member of every friendship containing userID
func (r *PostgresFriendshipRepository) GetFriendIDs(userID string) ([]string, error) {
	var rows []models.Friendship
	if err := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, f := range rows {
		if f.User1ID == userID {
			ids = append(ids, f.User2ID)
		} else {
			ids = append(ids, f.User1ID)
		}
	}
	return ids, nil
}
