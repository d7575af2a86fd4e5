package lookuplog

import (
	"time"

	"gorm.io/gorm"
)

const maxRecentLookups = 100

type Repository interface {
	LogLookup(record LookupRecord) error
	RecentLookups(limit int) ([]LookupRecord, error)
}

type LookupSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &LookupSQLRepository{db: db}
}

func (r *LookupSQLRepository) LogLookup(record LookupRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	return r.db.Create(&record).Error
}

// RecentLookups returns the newest records first. Limits outside 1..100 fall
// back to 100.
func (r *LookupSQLRepository) RecentLookups(limit int) ([]LookupRecord, error) {
	if limit <= 0 || limit > maxRecentLookups {
		limit = maxRecentLookups
	}

	var records []LookupRecord
	err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
