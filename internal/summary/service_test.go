package summary_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/finance-tracker/internal/summary"
)

type mockSummaryRepository struct {
	sums     map[string]decimal.Decimal
	groups   []summary.CategoryTotal
	entries  []summary.Entry
	sumError error
}

func (m *mockSummaryRepository) SumByKind(_ context.Context, _ int64, kind string) (decimal.Decimal, error) {
	if m.sumError != nil {
		return decimal.Zero, m.sumError
	}
	return m.sums[kind], nil
}

func (m *mockSummaryRepository) GroupByCategory(_ context.Context, _ int64, _ string) ([]summary.CategoryTotal, error) {
	return m.groups, nil
}

func (m *mockSummaryRepository) ListEntries(_ context.Context, _ int64) ([]summary.Entry, error) {
	return m.entries, nil
}

func entryOn(kind string, amount int64, year int, month time.Month) summary.Entry {
	return summary.Entry{
		Kind:   kind,
		Amount: decimal.NewFromInt(amount),
		Date:   time.Date(year, month, 10, 0, 0, 0, 0, time.UTC),
	}
}

var _ = Describe("Service", func() {
	var (
		repo    *mockSummaryRepository
		service *summary.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = &mockSummaryRepository{sums: map[string]decimal.Decimal{}}
		service = summary.NewService(repo, nil)
		ctx = context.Background()
	})

	Describe("Totals", func() {
		It("returns zeros, never nulls, for an owner without records", func() {
			totals, err := service.Totals(ctx, 1)

			Expect(err).NotTo(HaveOccurred())
			resp := summary.ToTotalsResponse(totals)
			Expect(resp).To(Equal(summary.TotalsResponse{}))
		})

		It("computes savings as income minus expense exactly", func() {
			repo.sums["Income"] = decimal.RequireFromString("1000.10")
			repo.sums["Expense"] = decimal.RequireFromString("250.25")

			totals, err := service.Totals(ctx, 1)

			Expect(err).NotTo(HaveOccurred())
			Expect(totals.Savings.Equal(decimal.RequireFromString("749.85"))).To(BeTrue())
			Expect(totals.Savings.Equal(totals.Income.Sub(totals.Expense))).To(BeTrue())
		})

		It("is stable across repeated calls", func() {
			repo.sums["Income"] = decimal.NewFromInt(10)

			first, err := service.Totals(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			second, err := service.Totals(ctx, 1)
			Expect(err).NotTo(HaveOccurred())

			Expect(summary.ToTotalsResponse(first)).To(Equal(summary.ToTotalsResponse(second)))
		})

		It("propagates repository errors", func() {
			repo.sumError = errors.New("boom")

			_, err := service.Totals(ctx, 1)

			Expect(err).To(MatchError("boom"))
		})
	})

	Describe("ChartBreakdown", func() {
		It("lists only months with records, in calendar order", func() {
			// Given
			repo.entries = []summary.Entry{
				entryOn("Expense", 30, 2024, time.March),
				entryOn("Income", 100, 2024, time.January),
				entryOn("Expense", 20, 2024, time.January),
			}

			// When
			chart, err := service.ChartBreakdown(ctx, 1)

			// Then
			Expect(err).NotTo(HaveOccurred())
			resp := summary.ToChartResponse(chart)
			Expect(resp.Months).To(Equal([]string{"Jan", "Mar"}))
			Expect(resp.Income).To(Equal([]float64{100, 0}))
			Expect(resp.Expense).To(Equal([]float64{20, 30}))
		})

		It("merges the same month across years", func() {
			repo.entries = []summary.Entry{
				entryOn("Expense", 5, 2023, time.December),
				entryOn("Expense", 7, 2024, time.December),
			}

			chart, err := service.ChartBreakdown(ctx, 1)

			Expect(err).NotTo(HaveOccurred())
			resp := summary.ToChartResponse(chart)
			Expect(resp.Months).To(Equal([]string{"Dec"}))
			Expect(resp.Expense).To(Equal([]float64{12}))
		})

		It("maps expense categories to their totals", func() {
			repo.groups = []summary.CategoryTotal{
				{Category: "Groceries", Total: decimal.RequireFromString("250.5")},
				{Category: "Movie", Total: decimal.NewFromInt(300)},
			}

			chart, err := service.ChartBreakdown(ctx, 1)

			Expect(err).NotTo(HaveOccurred())
			resp := summary.ToChartResponse(chart)
			Expect(resp.Categories).To(Equal(map[string]float64{"Groceries": 250.5, "Movie": 300}))
		})

		It("renders empty collections for an owner without records", func() {
			chart, err := service.ChartBreakdown(ctx, 1)

			Expect(err).NotTo(HaveOccurred())
			resp := summary.ToChartResponse(chart)
			Expect(resp.Categories).NotTo(BeNil())
			Expect(resp.Months).To(BeEmpty())
			Expect(resp.Months).NotTo(BeNil())
		})
	})
})
