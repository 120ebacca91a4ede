package ingestion

import (
	"context"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

const defaultMaxUploadBytes = 10 << 20

type PipelineAPI interface {
	Ingest(ctx context.Context, upload Upload) (*IngestResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Pipeline       PipelineAPI
	MaxUploadBytes int64
}

func NewHandler(pipeline PipelineAPI, maxUploadBytes int64) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		BaseHandler:    transport.NewBaseHandler(lg),
		Pipeline:       pipeline,
		MaxUploadBytes: maxUploadBytes,
	}
}

// UploadBill expects a multipart form with an "image" file and a
// "rectangles" JSON field.
func (h *Handler) UploadBill(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		h.Log(r).Warn("UploadBill: invalid multipart form", "error", err)
		h.HandleServiceError(w, r, errors.NewInvalidInputError("missing image or rectangles"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, _, err := r.FormFile("image")
	if err != nil {
		h.HandleServiceError(w, r, errors.NewInvalidInputError("missing image or rectangles"))
		return
	}
	defer file.Close()

	rects, err := ParseRectangles(r.FormValue("rectangles"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	result, err := h.Pipeline.Ingest(r.Context(), Upload{
		OwnerID:    ownerID,
		Image:      file,
		Rectangles: rects,
	})
	if err != nil {
		h.Log(r).Error("UploadBill: ingestion failed", "error", err)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponseList(result.Results))
}
