package lendborrow

import (
	"time"

	"github.com/shopspring/decimal"
)

type LendBorrow struct {
	ID        int64           `gorm:"primaryKey"`
	UserID    int64           `gorm:"column:user_id;not null;index"`
	Person    string          `gorm:"column:person;size:100;not null"`
	Kind      string          `gorm:"column:type;size:10;not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
	Date      time.Time       `gorm:"column:date;type:date;not null"`
	DueDate   *time.Time      `gorm:"column:due_date;type:date"`
	Reason    string          `gorm:"column:reason"`
	Status    string          `gorm:"column:status;size:20;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (LendBorrow) TableName() string {
	return "lend_borrows"
}
