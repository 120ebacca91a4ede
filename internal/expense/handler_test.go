package expense_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appErrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/expense"
)

var _ = Describe("Handler", func() {
	var (
		repo    *mockExpenseRepository
		handler *expense.Handler
		router  chi.Router
	)

	withOwner := func(req *http.Request, ownerID int64) *http.Request {
		return req.WithContext(appErrors.ContextWithOwnerID(req.Context(), ownerID))
	}

	BeforeEach(func() {
		repo = newMockExpenseRepository()
		handler = expense.NewHandler(expense.NewService(repo, nil))
		router = chi.NewRouter()
		router.Post("/expenses", handler.CreateExpense)
		router.Get("/expenses", handler.ListExpenses)
		router.Get("/expenses/{id}", handler.GetExpense)
		router.Patch("/expenses/{id}", handler.UpdateExpense)
		router.Delete("/expenses/{id}", handler.DeleteExpense)
	})

	It("rejects anonymous requests", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses", nil))

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("creates and lists an entry", func() {
		body := `{"item_name":"Uber Auto Ride","type":"Expense","amount":120,"category":"Cab Ride","date":"2024-03-04"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, withOwner(httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body)), 5))
		Expect(rec.Code).To(Equal(http.StatusCreated))

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, withOwner(httptest.NewRequest(http.MethodGet, "/expenses", nil), 5))
		Expect(rec.Code).To(Equal(http.StatusOK))

		var list []expense.ExpenseResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Amount).To(Equal(120.0))
		Expect(list[0].Date).To(Equal("2024-03-04"))
		Expect(list[0].Kind).To(Equal("Expense"))
	})

	It("returns 404 for another owner's entry", func() {
		_, err := expense.NewService(repo, nil).CreateExpense(context.Background(), 5, expense.CreateExpenseDTO{
			ItemName: "Tea", Kind: expense.KindExpense,
		})
		Expect(err).NotTo(HaveOccurred())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, withOwner(httptest.NewRequest(http.MethodGet, "/expenses/1", nil), 6))

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(ContainSubstring("EXPENSE_NOT_FOUND"))
	})

	It("rejects a malformed body", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, withOwner(httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader("{")), 5))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a non-numeric id", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, withOwner(httptest.NewRequest(http.MethodDelete, "/expenses/abc", nil), 5))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})
