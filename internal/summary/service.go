package summary

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// RepositoryAPI is the read side of the ledger. Sums over no rows are zero.
type RepositoryAPI interface {
	SumByKind(ctx context.Context, ownerID int64, kind string) (decimal.Decimal, error)
	GroupByCategory(ctx context.Context, ownerID int64, kind string) ([]CategoryTotal, error)
	ListEntries(ctx context.Context, ownerID int64) ([]Entry, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Totals(ctx context.Context, ownerID int64) (*Totals, error) {
	income, err := s.repo.SumByKind(ctx, ownerID, kindIncome)
	if err != nil {
		s.logger.Error("failed to sum income", "error", err, "user_id", ownerID)
		return nil, err
	}
	expense, err := s.repo.SumByKind(ctx, ownerID, kindExpense)
	if err != nil {
		s.logger.Error("failed to sum expenses", "error", err, "user_id", ownerID)
		return nil, err
	}
	return &Totals{
		Income:  income,
		Expense: expense,
		Savings: income.Sub(expense),
	}, nil
}

func (s *Service) ChartBreakdown(ctx context.Context, ownerID int64) (*ChartBreakdown, error) {
	groups, err := s.repo.GroupByCategory(ctx, ownerID, kindExpense)
	if err != nil {
		s.logger.Error("failed to group by category", "error", err, "user_id", ownerID)
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list entries", "error", err, "user_id", ownerID)
		return nil, err
	}

	categories := make(map[string]decimal.Decimal, len(groups))
	for _, g := range groups {
		categories[g.Category] = g.Total
	}
	return &ChartBreakdown{
		Categories: categories,
		Months:     bucketByMonth(entries),
	}, nil
}
