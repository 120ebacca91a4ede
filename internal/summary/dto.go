package summary

type TotalsResponse struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	TotalSavings float64 `json:"total_savings"`
}

type ChartResponse struct {
	Categories map[string]float64 `json:"categories"`
	Months     []string           `json:"months"`
	Income     []float64          `json:"income"`
	Expense    []float64          `json:"expense"`
}

func ToTotalsResponse(t *Totals) TotalsResponse {
	return TotalsResponse{
		TotalIncome:  t.Income.InexactFloat64(),
		TotalExpense: t.Expense.InexactFloat64(),
		TotalSavings: t.Savings.InexactFloat64(),
	}
}

func ToChartResponse(c *ChartBreakdown) ChartResponse {
	resp := ChartResponse{
		Categories: make(map[string]float64, len(c.Categories)),
		Months:     make([]string, 0, len(c.Months)),
		Income:     make([]float64, 0, len(c.Months)),
		Expense:    make([]float64, 0, len(c.Months)),
	}
	for name, total := range c.Categories {
		resp.Categories[name] = total.InexactFloat64()
	}
	for _, b := range c.Months {
		resp.Months = append(resp.Months, b.Label())
		resp.Income = append(resp.Income, b.Income.InexactFloat64())
		resp.Expense = append(resp.Expense, b.Expense.InexactFloat64())
	}
	return resp
}
