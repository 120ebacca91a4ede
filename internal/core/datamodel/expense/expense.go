package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single ledger row. Kind is stored in the "type" column.
type Expense struct {
	ID        int64           `gorm:"primaryKey"`
	UserID    int64           `gorm:"column:user_id;not null;index"`
	ItemName  string          `gorm:"column:item_name;size:100;not null"`
	Kind      string          `gorm:"column:type;size:20;not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
	Category  string          `gorm:"column:category;size:50;not null"`
	Date      time.Time       `gorm:"column:date;type:date;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}
