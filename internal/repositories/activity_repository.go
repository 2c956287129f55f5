package repositories

import (
	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository defines the interface for the append-only activity log
type ActivityRepository interface {
	CreateActivity(activity *models.Activity) error
	// GetFeedForUser returns the activities belonging to a user's feed:
	// entries whose target the user owns, plus follow entries targeting the
	// user directly. Ordered newest first; equal timestamps order by id.
	GetFeedForUser(userID string) ([]models.Activity, error)
}

type postgresActivityRepository struct {
	db *gorm.DB
}

// NewPostgresActivityRepository creates a new ActivityRepository backed by PostgreSQL
func NewPostgresActivityRepository(db *gorm.DB) ActivityRepository {
	return &postgresActivityRepository{db: db}
}

func (r *postgresActivityRepository) CreateActivity(activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	return r.db.Create(activity).Error
}

func (r *postgresActivityRepository) GetFeedForUser(userID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.
		Where("target_owner_id = ? OR (type = ? AND target_id = ?)", userID, models.ActivityTypeFollow, userID).
		Order("timestamp DESC, id ASC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}
