package postgres

import (
	"context"

	"github.com/frahmantamala/finance-tracker/internal/category"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) DistinctByOwner(ctx context.Context, ownerID int64, kind string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("user_id = ? AND type = ?", ownerID, kind).
		Distinct().
		Order("category ASC").
		Pluck("category", &names).Error
	return names, err
}
