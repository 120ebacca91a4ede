package postgres

import (
	"context"

	lbDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/lendborrow"
	"github.com/frahmantamala/finance-tracker/internal/lendborrow"
	"gorm.io/gorm"
)

type LendBorrowRepository struct {
	db *gorm.DB
}

func NewLendBorrowRepository(db *gorm.DB) lendborrow.RepositoryAPI {
	return &LendBorrowRepository{db: db}
}

func (r *LendBorrowRepository) Create(ctx context.Context, rec *lbDatamodel.LendBorrow) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *LendBorrowRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*lbDatamodel.LendBorrow, error) {
	var records []*lbDatamodel.LendBorrow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date DESC").
		Order("id DESC").
		Find(&records).Error
	return records, err
}

func (r *LendBorrowRepository) UpdateStatus(ctx context.Context, id, ownerID int64, status string) error {
	result := r.db.WithContext(ctx).
		Model(&lbDatamodel.LendBorrow{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return lendborrow.ErrRecordNotFound
	}
	return nil
}

func (r *LendBorrowRepository) ExistsForOwner(ctx context.Context, id, ownerID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&lbDatamodel.LendBorrow{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Count(&count).Error
	return count > 0, err
}

func (r *LendBorrowRepository) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&lbDatamodel.LendBorrow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return lendborrow.ErrRecordNotFound
	}
	return nil
}
