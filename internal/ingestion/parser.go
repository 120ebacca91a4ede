package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

// Alignment decides how item and amount lines are matched up.
type Alignment string

const (
	// AlignTruncate pairs by index and stops at the shorter column.
	AlignTruncate Alignment = "truncate"
	// AlignStrict requires both columns to have the same number of non-blank lines.
	AlignStrict Alignment = "strict"
)

var amountPattern = regexp.MustCompile(`(?:[₹$€£]\s*)?(\d[\d,]*(?:\.\d+)?)`)

type Pair struct {
	Item   string
	Amount decimal.Decimal
}

// Billable reports whether the pair should be categorized and stored.
func (p Pair) Billable() bool {
	return p.Amount.IsPositive()
}

// SplitLines returns the trimmed, non-blank lines of text.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ParseAmount reads the first number on the line, ignoring a leading currency
// symbol and thousands separators, rounded to the ledger's precision. Lines
// without a number parse as zero.
func ParseAmount(line string) decimal.Decimal {
	m := amountPattern.FindStringSubmatch(line)
	if m == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d.Round(expense.AmountPlaces)
}

// PairLines drops blank lines from each column independently, then pairs
// the i-th item with the i-th amount.
func PairLines(itemLines, amountLines []string, align Alignment) ([]Pair, error) {
	items := nonBlank(itemLines)
	amounts := nonBlank(amountLines)

	if align == AlignStrict && len(items) != len(amounts) {
		return nil, errors.NewInvalidInputError(fmt.Sprintf(
			"found %d item lines but %d amount lines", len(items), len(amounts)))
	}

	n := min(len(items), len(amounts))
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, Pair{Item: items[i], Amount: ParseAmount(amounts[i])})
	}
	return pairs, nil
}

func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
