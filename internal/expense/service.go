package expense

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"github.com/shopspring/decimal"
)

// RepositoryAPI is the ledger storage. Every lookup is scoped to the owner;
// a row owned by someone else is reported as ErrExpenseNotFound.
type RepositoryAPI interface {
	Create(ctx context.Context, e *expenseDatamodel.Expense) error
	GetByIDForOwner(ctx context.Context, id, ownerID int64) (*expenseDatamodel.Expense, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*expenseDatamodel.Expense, error)
	Update(ctx context.Context, e *expenseDatamodel.Expense) error
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    validation.Today,
	}
}

func (s *Service) CreateExpense(ctx context.Context, ownerID int64, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err, "user_id", ownerID)
		return nil, err
	}

	itemName := strings.TrimSpace(dto.ItemName)
	if itemName == "" {
		itemName = DefaultItemName
	}
	category := strings.TrimSpace(dto.Category)
	if category == "" {
		category = DefaultCategory
	}

	model := &expenseDatamodel.Expense{
		UserID:   ownerID,
		ItemName: itemName,
		Kind:     dto.Kind,
		Amount:   dto.Amount.Round(AmountPlaces),
		Category: category,
		Date:     validation.ParseDateOr(dto.Date, s.now()),
	}
	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", ownerID)
		return nil, err
	}

	s.logger.Info("expense created", "expense_id", model.ID, "user_id", ownerID, "type", model.Kind)
	return FromDataModel(model), nil
}

// RecordScannedItem stores one categorized receipt line as an Expense dated today.
func (s *Service) RecordScannedItem(ctx context.Context, ownerID int64, itemName string, amount decimal.Decimal, category string) (*Expense, error) {
	name := TruncateItemName(itemName, MaxItemNameLength)
	if name == "" {
		name = DefaultItemName
	}
	model := &expenseDatamodel.Expense{
		UserID:   ownerID,
		ItemName: name,
		Kind:     KindExpense,
		Amount:   amount.Round(AmountPlaces),
		Category: TruncateItemName(category, MaxCategoryLength),
		Date:     s.now(),
	}
	if err := s.repo.Create(ctx, model); err != nil {
		return nil, err
	}
	return FromDataModel(model), nil
}

func (s *Service) ListExpenses(ctx context.Context, ownerID int64) ([]*Expense, error) {
	models, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", ownerID)
		return nil, err
	}
	expenses := make([]*Expense, 0, len(models))
	for _, m := range models {
		expenses = append(expenses, FromDataModel(m))
	}
	return expenses, nil
}

func (s *Service) GetExpense(ctx context.Context, ownerID, id int64) (*Expense, error) {
	model, err := s.repo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(model), nil
}

func (s *Service) UpdateExpense(ctx context.Context, ownerID, id int64, dto UpdateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if dto.ItemName != nil {
		model.ItemName = strings.TrimSpace(*dto.ItemName)
	}
	if dto.Kind != nil {
		model.Kind = *dto.Kind
	}
	if dto.Amount != nil {
		model.Amount = dto.Amount.Round(AmountPlaces)
	}
	if dto.Category != nil {
		model.Category = strings.TrimSpace(*dto.Category)
	}
	if dto.Date != nil {
		// a malformed date keeps the stored one
		model.Date = validation.ParseDateOr(*dto.Date, model.Date)
	}

	if err := s.repo.Update(ctx, model); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id, "user_id", ownerID)
		return nil, err
	}
	return FromDataModel(model), nil
}

func (s *Service) DeleteExpense(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.DeleteForOwner(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info("expense deleted", "expense_id", id, "user_id", ownerID)
	return nil
}
