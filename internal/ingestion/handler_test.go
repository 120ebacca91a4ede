package ingestion_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	appErrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/ingestion"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

type stubPipeline struct {
	result   *ingestion.IngestResult
	err      error
	received *ingestion.Upload
}

func (s *stubPipeline) Ingest(_ context.Context, upload ingestion.Upload) (*ingestion.IngestResult, error) {
	s.received = &upload
	return s.result, s.err
}

func billRequest(image []byte, rectangles string, withImage bool) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if withImage {
		fw, err := mw.CreateFormFile("image", "bill.png")
		Expect(err).NotTo(HaveOccurred())
		_, err = fw.Write(image)
		Expect(err).NotTo(HaveOccurred())
	}
	if rectangles != "" {
		Expect(mw.WriteField("rectangles", rectangles)).To(Succeed())
	}
	Expect(mw.Close()).To(Succeed())

	req := httptest.NewRequest(http.MethodPost, "/bills", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(appErrors.ContextWithOwnerID(req.Context(), 4))
}

var _ = Describe("Handler", func() {
	var (
		pipeline *stubPipeline
		handler  *ingestion.Handler
	)

	const twoRects = `[{"x":0,"y":0,"width":10,"height":10},{"x":10,"y":0,"width":10,"height":10}]`

	BeforeEach(func() {
		pipeline = &stubPipeline{result: &ingestion.IngestResult{}}
		handler = ingestion.NewHandler(pipeline, 0)
	})

	It("returns the stored results with their scanner keys", func() {
		pipeline.result.Results = []ingestion.Result{
			{ID: 3, Item: "Milk 1L", Amount: decimal.NewFromInt(55), Category: "Dairy"},
		}
		rec := httptest.NewRecorder()

		handler.UploadBill(rec, billRequest(receiptPNG(20, 10), twoRects, true))

		Expect(rec.Code).To(Equal(http.StatusOK))
		var body []map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body).To(HaveLen(1))
		Expect(body[0]).To(HaveKeyWithValue("id", 3.0))
		Expect(body[0]).To(HaveKeyWithValue("Item", "Milk 1L"))
		Expect(body[0]).To(HaveKeyWithValue("Amount", 55.0))
		Expect(body[0]).To(HaveKeyWithValue("Category", "Dairy"))
		Expect(pipeline.received.OwnerID).To(Equal(int64(4)))
		Expect(pipeline.received.Rectangles).To(HaveLen(2))
	})

	It("renders an empty array when nothing was stored", func() {
		rec := httptest.NewRecorder()

		handler.UploadBill(rec, billRequest(receiptPNG(20, 10), twoRects, true))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON("[]"))
	})

	It("rejects a missing image", func() {
		rec := httptest.NewRecorder()

		handler.UploadBill(rec, billRequest(nil, twoRects, false))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(pipeline.received).To(BeNil())
	})

	It("rejects a single rectangle", func() {
		rec := httptest.NewRecorder()

		handler.UploadBill(rec, billRequest(receiptPNG(20, 10), `[{"x":0,"y":0,"width":10,"height":10}]`, true))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("INVALID_INPUT"))
		Expect(pipeline.received).To(BeNil())
	})

	It("maps decode errors to 422", func() {
		pipeline.err = appErrors.NewDecodeError("uploaded image could not be decoded", nil)
		rec := httptest.NewRecorder()

		handler.UploadBill(rec, billRequest([]byte("garbage"), twoRects, true))

		Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
	})

	It("logs failures with the request's trace fields", func() {
		var logs bytes.Buffer
		pipeline.err = appErrors.NewInternalError("ledger unavailable", nil)
		req := billRequest(receiptPNG(20, 10), twoRects, true)
		reqLogger := slog.New(slog.NewJSONHandler(&logs, nil)).With("traceID", "trace-42", "user_id", int64(4))
		req = req.WithContext(logger.NewContext(req.Context(), reqLogger))
		rec := httptest.NewRecorder()

		handler.UploadBill(rec, req)

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(logs.String()).To(ContainSubstring("UploadBill: ingestion failed"))
		Expect(logs.String()).To(ContainSubstring(`"traceID":"trace-42"`))
		Expect(logs.String()).To(ContainSubstring(`"user_id":4`))
	})
})
