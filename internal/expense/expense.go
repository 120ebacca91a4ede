package expense

import (
	"strings"
	"time"
	"unicode/utf8"

	errors "github.com/frahmantamala/finance-tracker/internal"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"github.com/shopspring/decimal"
)

const (
	KindExpense = "Expense"
	KindIncome  = "Income"

	DefaultItemName = "Unknown Item"
	DefaultCategory = "General"

	MaxItemNameLength = 100
	MaxCategoryLength = 50

	// AmountPlaces matches the decimal(10,2) amount column.
	AmountPlaces = 2
)

var ErrExpenseNotFound = errors.NewNotFoundError("expense not found", errors.ErrCodeExpenseNotFound)

type Expense struct {
	ID        int64
	UserID    int64
	ItemName  string
	Kind      string
	Amount    decimal.Decimal
	Category  string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Expense) IsIncome() bool {
	return e.Kind == KindIncome
}

func (e *Expense) ToDataModel() *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:        e.ID,
		UserID:    e.UserID,
		ItemName:  e.ItemName,
		Kind:      e.Kind,
		Amount:    e.Amount,
		Category:  e.Category,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func FromDataModel(m *expenseDatamodel.Expense) *Expense {
	if m == nil {
		return nil
	}
	return &Expense{
		ID:        m.ID,
		UserID:    m.UserID,
		ItemName:  m.ItemName,
		Kind:      m.Kind,
		Amount:    m.Amount,
		Category:  m.Category,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TruncateItemName cuts name to at most max characters, never splitting a rune.
func TruncateItemName(name string, max int) string {
	name = strings.TrimSpace(name)
	if max <= 0 || utf8.RuneCountInString(name) <= max {
		return name
	}
	runes := []rune(name)
	return string(runes[:max])
}
