package lendborrow

import (
	"time"

	errors "github.com/frahmantamala/finance-tracker/internal"
	lbDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/lendborrow"
	"github.com/shopspring/decimal"
)

const (
	KindLent     = "lent"
	KindBorrowed = "borrowed"

	StatusPending = "pending"
	StatusSettled = "settled"

	MaxPersonLength = 100
)

var ErrRecordNotFound = errors.NewNotFoundError("lend/borrow record not found", errors.ErrCodeRecordNotFound)

// Record is money lent to or borrowed from a person.
type Record struct {
	ID      int64
	UserID  int64
	Person  string
	Kind    string
	Amount  decimal.Decimal
	Date    time.Time
	DueDate *time.Time
	Reason  string
	Status  string
}

func (r *Record) IsSettled() bool {
	return r.Status == StatusSettled
}

func FromDataModel(m *lbDatamodel.LendBorrow) *Record {
	if m == nil {
		return nil
	}
	return &Record{
		ID:      m.ID,
		UserID:  m.UserID,
		Person:  m.Person,
		Kind:    m.Kind,
		Amount:  m.Amount,
		Date:    m.Date,
		DueDate: m.DueDate,
		Reason:  m.Reason,
		Status:  m.Status,
	}
}
