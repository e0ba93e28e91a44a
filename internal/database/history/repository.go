package history

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/ibooks-highlights/internal/entities"
)

const defaultLimit = 50

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogExport saves an export record to the database.
func (r *Repository) LogExport(record *entities.ExportRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	return r.db.Create(record).Error
}

// GetRecent retrieves the latest export records, most recent first.
func (r *Repository) GetRecent(limit int) ([]entities.ExportRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	var records []entities.ExportRecord
	err := r.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&records).Error
	return records, err
}

// GetByBook retrieves every export of one book, most recent first.
func (r *Repository) GetByBook(bookID string) ([]entities.ExportRecord, error) {
	var records []entities.ExportRecord
	err := r.db.Where("book_id = ?", bookID).Order("created_at DESC").Order("id DESC").Find(&records).Error
	return records, err
}

// CountByBook returns how many successful exports a book has.
func (r *Repository) CountByBook(bookID string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.ExportRecord{}).
		Where("book_id = ? AND status = ?", bookID, entities.ExportStatusSuccess).
		Count(&count).Error
	return count, err
}

// DeleteOlderThan removes export records older than the given time.
// Returns the number of deleted records.
func (r *Repository) DeleteOlderThan(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.ExportRecord{})
	return result.RowsAffected, result.Error
}
