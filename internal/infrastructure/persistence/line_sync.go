package persistence

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lineModel is implemented by the quote and order line models
type lineModel interface {
	LineID() uuid.UUID
}

// syncLines makes the stored lines of a document match lines: rows that are
// no longer present are deleted and the remaining ones are upserted.
func syncLines[T lineModel](tx *gorm.DB, parentColumn string, parentID uuid.UUID, lines []T) error {
	keep := make([]uuid.UUID, len(lines))
	for i := range lines {
		keep[i] = lines[i].LineID()
	}

	var zero T
	stale := tx.Where(parentColumn+" = ?", parentID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&zero).Error; err != nil {
		return err
	}

	for i := range lines {
		if err := tx.Save(&lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// orderLinesByPosition is the preload scope that returns lines in document order
func orderLinesByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}
