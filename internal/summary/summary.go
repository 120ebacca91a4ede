package summary

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	kindExpense = "Expense"
	kindIncome  = "Income"
)

// Entry is the slice of a ledger row the chart needs.
type Entry struct {
	Kind   string          `db:"type"`
	Amount decimal.Decimal `db:"amount"`
	Date   time.Time       `db:"date"`
}

type CategoryTotal struct {
	Category string          `db:"category"`
	Total    decimal.Decimal `db:"total"`
}

type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Savings decimal.Decimal
}

// MonthBucket holds the sums for one calendar month. Records from different
// years that share a month are merged into the same bucket.
type MonthBucket struct {
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func (b MonthBucket) Label() string {
	return b.Month.String()[:3]
}

type ChartBreakdown struct {
	Categories map[string]decimal.Decimal
	Months     []MonthBucket
}

// bucketByMonth keeps only months that have at least one entry, in calendar order.
func bucketByMonth(entries []Entry) []MonthBucket {
	var buckets [13]*MonthBucket
	for _, e := range entries {
		m := e.Date.Month()
		if buckets[m] == nil {
			buckets[m] = &MonthBucket{Month: m}
		}
		switch e.Kind {
		case kindIncome:
			buckets[m].Income = buckets[m].Income.Add(e.Amount)
		case kindExpense:
			buckets[m].Expense = buckets[m].Expense.Add(e.Amount)
		}
	}

	out := make([]MonthBucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		if buckets[m] != nil {
			out = append(out, *buckets[m])
		}
	}
	return out
}
