package postgres

import (
	"context"

	"github.com/frahmantamala/finance-tracker/internal/summary"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const (
	sumByKindQuery = `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = ? AND type = ?`

	groupByCategoryQuery = `SELECT category, COALESCE(SUM(amount), 0) AS total
		FROM expenses
		WHERE user_id = ? AND type = ?
		GROUP BY category
		ORDER BY category`

	listEntriesQuery = `SELECT type, amount, date FROM expenses WHERE user_id = ? ORDER BY date`
)

// SummaryRepository runs the aggregate queries through sqlx so the same SQL
// works against postgres and sqlite via Rebind.
type SummaryRepository struct {
	db *sqlx.DB
}

func NewSummaryRepository(db *sqlx.DB) summary.RepositoryAPI {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) SumByKind(ctx context.Context, ownerID int64, kind string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(sumByKindQuery), ownerID, kind); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *SummaryRepository) GroupByCategory(ctx context.Context, ownerID int64, kind string) ([]summary.CategoryTotal, error) {
	var rows []summary.CategoryTotal
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(groupByCategoryQuery), ownerID, kind); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SummaryRepository) ListEntries(ctx context.Context, ownerID int64) ([]summary.Entry, error) {
	var rows []summary.Entry
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listEntriesQuery), ownerID); err != nil {
		return nil, err
	}
	return rows, nil
}
