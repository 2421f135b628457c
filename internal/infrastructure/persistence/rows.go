package persistence

import (
	"github.com/printdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// row is a pointer to a gorm model M that converts to its entity D
type row[M, D any] interface {
	*M
	ToDomain() *D
}

// firstRow loads the first match of query, mapping a miss to shared.ErrNotFound
func firstRow[M, D any, P row[M, D]](query *gorm.DB, conds ...any) (*D, error) {
	var m M
	if err := query.First(&m, conds...).Error; err != nil {
		return nil, notFound(err)
	}
	return P(&m).ToDomain(), nil
}

// allRows loads every match of query. The result is never nil.
func allRows[M, D any, P row[M, D]](query *gorm.DB) ([]D, error) {
	var ms []M
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return toEntities[M, D, P](ms), nil
}

func toEntities[M, D any, P row[M, D]](ms []M) []D {
	out := make([]D, len(ms))
	for i := range ms {
		out[i] = *P(&ms[i]).ToDomain()
	}
	return out
}

func countRows(query *gorm.DB) (int64, error) {
	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func anyRows(query *gorm.DB) (bool, error) {
	n, err := countRows(query)
	return n > 0, err
}

// deleteRows runs a delete, reporting shared.ErrNotFound when it matched nothing
func deleteRows(query *gorm.DB, model any, conds ...any) error {
	result := query.Delete(model, conds...)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
