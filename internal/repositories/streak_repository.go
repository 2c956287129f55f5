package repositories

import (
	"errors"
	"time"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StreakRepository defines the interface for streak record operations
type StreakRepository interface {
	// Get returns the record for a canonical pair key, or the zero-value
	// default record when none has been written yet.
	Get(pairKey string) (*models.StreakRecord, error)
	// Advance applies one interaction at time now as a single
	// read-modify-write and returns the updated record.
	Advance(pairKey string, now time.Time) (*models.StreakRecord, error)
}

// PostgresStreakRepository implements StreakRepository for PostgreSQL
type PostgresStreakRepository struct {
	db *gorm.DB
}

// NewPostgresStreakRepository creates a new PostgresStreakRepository
func NewPostgresStreakRepository(db *gorm.DB) *PostgresStreakRepository {
	return &PostgresStreakRepository{db: db}
}

// Get retrieves the streak record for a canonical pair key
func (r *PostgresStreakRepository) Get(pairKey string) (*models.StreakRecord, error) {
	var rec models.StreakRecord
	if err := r.db.Where("pair_key = ?", pairKey).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.StreakRecord{PairKey: pairKey}, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Advance runs the streak state machine inside a transaction. The row is
// locked so concurrent interactions for the same pair serialize.
func (r *PostgresStreakRepository) Advance(pairKey string, now time.Time) (*models.StreakRecord, error) {
	var rec models.StreakRecord
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pair_key = ?", pairKey).First(&rec).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			rec = models.StreakRecord{PairKey: pairKey}
		}
		rec = models.AdvanceStreak(rec, now)
		rec.PairKey = pairKey
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
