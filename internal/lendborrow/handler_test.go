package lendborrow_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	appErrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/lendborrow"
)

type mockService struct {
	records     []*lendborrow.Record
	lastStatus  string
	lastID      int64
	lastOwnerID int64
	err         error
}

func (m *mockService) CreateRecord(_ context.Context, ownerID int64, dto lendborrow.CreateRecordDTO) (*lendborrow.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastOwnerID = ownerID
	return &lendborrow.Record{
		ID:     1,
		Person: dto.Person,
		Kind:   dto.Kind,
		Amount: dto.Amount,
		Date:   time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		Status: lendborrow.StatusPending,
	}, nil
}

func (m *mockService) ListRecords(_ context.Context, ownerID int64) ([]*lendborrow.Record, error) {
	m.lastOwnerID = ownerID
	return m.records, m.err
}

func (m *mockService) UpdateStatus(_ context.Context, ownerID, id int64, dto lendborrow.UpdateStatusDTO) error {
	m.lastOwnerID, m.lastID, m.lastStatus = ownerID, id, dto.Status
	return m.err
}

func (m *mockService) DeleteRecord(_ context.Context, ownerID, id int64) error {
	m.lastOwnerID, m.lastID = ownerID, id
	return m.err
}

var _ = Describe("Handler", func() {
	var (
		svc    *mockService
		router *chi.Mux
	)

	BeforeEach(func() {
		svc = &mockService{}
		h := lendborrow.NewHandler(svc)
		router = chi.NewRouter()
		router.Get("/lend-borrow", h.ListRecords)
		router.Post("/lend-borrow", h.CreateRecord)
		router.Patch("/lend-borrow/{id}", h.UpdateStatus)
		router.Delete("/lend-borrow/{id}", h.DeleteRecord)
	})

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req = req.WithContext(appErrors.ContextWithOwnerID(req.Context(), 3))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("wraps the list in a records field", func() {
		svc.records = []*lendborrow.Record{{
			ID:     9,
			Person: "Ravi",
			Kind:   lendborrow.KindLent,
			Amount: decimal.RequireFromString("250.50"),
			Date:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			Status: lendborrow.StatusPending,
		}}

		rec := serve(http.MethodGet, "/lend-borrow", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		var body lendborrow.ListResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Records).To(HaveLen(1))
		Expect(body.Records[0].Amount).To(Equal(250.5))
		Expect(body.Records[0].Date).To(Equal("2025-01-02"))
		Expect(body.Records[0].DueDate).To(BeEmpty())
		Expect(svc.lastOwnerID).To(Equal(int64(3)))
	})

	It("creates a record and returns 201", func() {
		rec := serve(http.MethodPost, "/lend-borrow", `{"person":"Ravi","amount":100,"type":"lent"}`)

		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(rec.Body.String()).To(ContainSubstring(`"status":"pending"`))
	})

	It("passes the path id and status through", func() {
		rec := serve(http.MethodPatch, "/lend-borrow/12", `{"status":"settled"}`)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(svc.lastID).To(Equal(int64(12)))
		Expect(svc.lastStatus).To(Equal(lendborrow.StatusSettled))
	})

	It("maps a foreign record to 404", func() {
		svc.err = lendborrow.ErrRecordNotFound

		rec := serve(http.MethodDelete, "/lend-borrow/12", "")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects a non-numeric id", func() {
		rec := serve(http.MethodDelete, "/lend-borrow/abc", "")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})
