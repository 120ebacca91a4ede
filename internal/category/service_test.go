package category_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appErrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/category"
)

type mockCategoryRepository struct {
	used     map[string][]string
	getError error
}

func (m *mockCategoryRepository) DistinctByOwner(_ context.Context, _ int64, kind string) ([]string, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.used[kind], nil
}

func names(categories []category.Category) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.Name)
	}
	return out
}

var _ = Describe("Service", func() {
	var (
		repo    *mockCategoryRepository
		service *category.Service
	)

	BeforeEach(func() {
		repo = &mockCategoryRepository{used: map[string][]string{}}
		service = category.NewService(repo, nil)
	})

	It("lists the expense presets when nothing has been used", func() {
		categories, err := service.ListCategories(context.Background(), 1, "")

		Expect(err).NotTo(HaveOccurred())
		Expect(names(categories)).To(Equal(category.Presets(category.KindExpense)))
		Expect(categories[0].Preset).To(BeTrue())
	})

	It("appends the owner's own categories without duplicating presets", func() {
		repo.used[category.KindExpense] = []string{"Food", "Groceries", "Movie"}

		categories, err := service.ListCategories(context.Background(), 1, category.KindExpense)

		Expect(err).NotTo(HaveOccurred())
		Expect(names(categories)).To(Equal([]string{
			"Food", "Travel", "Shopping", "Bills", "Health", "Entertainment", "Other", "Groceries", "Movie",
		}))
		Expect(categories[len(categories)-1].Preset).To(BeFalse())
	})

	It("uses the income presets for income", func() {
		categories, err := service.ListCategories(context.Background(), 1, category.KindIncome)

		Expect(err).NotTo(HaveOccurred())
		Expect(names(categories)).To(ContainElement("Salary"))
		Expect(names(categories)).NotTo(ContainElement("Food"))
	})

	It("rejects an unknown kind", func() {
		_, err := service.ListCategories(context.Background(), 1, "Transfer")

		appErr, ok := appErrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("propagates repository errors", func() {
		repo.getError = errors.New("db down")

		_, err := service.ListCategories(context.Background(), 1, category.KindExpense)

		Expect(err).To(MatchError("db down"))
	})
})

var _ = Describe("Handler", func() {
	It("serves the catalog for the requested kind", func() {
		handler := category.NewHandler(category.NewService(&mockCategoryRepository{}, nil))
		req := httptest.NewRequest(http.MethodGet, "/categories?type=Income", nil)
		req = req.WithContext(appErrors.ContextWithOwnerID(req.Context(), 1))
		rec := httptest.NewRecorder()

		handler.GetCategories(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		var resp category.CategoriesResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Kind).To(Equal("Income"))
		Expect(resp.Categories).To(HaveLen(5))
	})
})
