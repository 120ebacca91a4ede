package expense

import (
	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type CreateExpenseDTO struct {
	ItemName string          `json:"item_name"`
	Kind     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	// Date is optional; an empty or malformed value records today.
	Date string `json:"date,omitempty"`
}

func (dto CreateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("item_name", dto.ItemName).MaxLength(MaxItemNameLength)
	v.Field("type", dto.Kind).Required().OneOf(errors.ErrCodeInvalidKind, KindExpense, KindIncome)
	v.Field("category", dto.Category).MaxLength(MaxCategoryLength)
	return v.Validate()
}

// UpdateExpenseDTO is a partial update; nil fields are left untouched.
type UpdateExpenseDTO struct {
	ItemName *string          `json:"item_name,omitempty"`
	Kind     *string          `json:"type,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Category *string          `json:"category,omitempty"`
	Date     *string          `json:"date,omitempty"`
}

func (dto UpdateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.ItemName != nil {
		v.Field("item_name", dto.ItemName).Required().MaxLength(MaxItemNameLength)
	}
	if dto.Kind != nil {
		v.Field("type", dto.Kind).Required().OneOf(errors.ErrCodeInvalidKind, KindExpense, KindIncome)
	}
	if dto.Category != nil {
		v.Field("category", dto.Category).Required().MaxLength(MaxCategoryLength)
	}
	return v.Validate()
}

type ExpenseResponse struct {
	ID       int64   `json:"id"`
	ItemName string  `json:"item_name"`
	Kind     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

func ToResponse(e *Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:       e.ID,
		ItemName: e.ItemName,
		Kind:     e.Kind,
		Amount:   e.Amount.InexactFloat64(),
		Category: e.Category,
		Date:     e.Date.Format(validation.DateLayout),
	}
}

func ToResponseList(expenses []*Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, ToResponse(e))
	}
	return out
}
