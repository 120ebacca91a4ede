package category

const (
	KindExpense = "Expense"
	KindIncome  = "Income"
)

var presets = map[string][]string{
	KindExpense: {"Food", "Travel", "Shopping", "Bills", "Health", "Entertainment", "Other"},
	KindIncome:  {"Salary", "Freelance", "Investments", "Business", "Other"},
}

// Category is a label offered when entering a ledger row. Preset labels are
// built in; the rest come from the owner's own entries.
type Category struct {
	Name   string
	Preset bool
}

func Presets(kind string) []string {
	return append([]string(nil), presets[kind]...)
}

func (c Category) ToResponse() CategoryResponse {
	return CategoryResponse{Name: c.Name, Preset: c.Preset}
}
