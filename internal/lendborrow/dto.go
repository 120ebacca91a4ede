package lendborrow

import (
	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type CreateRecordDTO struct {
	Person  string          `json:"person"`
	Amount  decimal.Decimal `json:"amount"`
	Kind    string          `json:"type"`
	Date    string          `json:"date,omitempty"`
	DueDate string          `json:"dueDate,omitempty"`
	Reason  string          `json:"reason,omitempty"`
}

func (dto CreateRecordDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("person", dto.Person).Required().MaxLength(MaxPersonLength)
	v.Field("type", dto.Kind).Required().OneOf(errors.ErrCodeInvalidKind, KindLent, KindBorrowed)
	v.Field("date", dto.Date).Date()
	v.Field("dueDate", dto.DueDate).Date()
	v.Field("amount", dto.Amount).Custom(func(value interface{}) *errors.AppError {
		if value.(decimal.Decimal).IsNegative() {
			return errors.NewValidationFieldError("amount", "amount must not be negative", errors.ErrCodeInvalidAmount)
		}
		return nil
	})
	return v.Validate()
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateStatusDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("status", dto.Status).OneOf(errors.ErrCodeInvalidStatus, StatusPending, StatusSettled)
	return v.Validate()
}

type RecordResponse struct {
	ID      int64   `json:"id"`
	Person  string  `json:"person"`
	Amount  float64 `json:"amount"`
	Kind    string  `json:"type"`
	Date    string  `json:"date"`
	DueDate string  `json:"dueDate"`
	Reason  string  `json:"reason"`
	Status  string  `json:"status"`
}

type ListResponse struct {
	Records []RecordResponse `json:"records"`
}

func ToResponse(r *Record) RecordResponse {
	resp := RecordResponse{
		ID:     r.ID,
		Person: r.Person,
		Amount: r.Amount.InexactFloat64(),
		Kind:   r.Kind,
		Date:   r.Date.Format(validation.DateLayout),
		Reason: r.Reason,
		Status: r.Status,
	}
	if r.DueDate != nil {
		resp.DueDate = r.DueDate.Format(validation.DateLayout)
	}
	return resp
}
