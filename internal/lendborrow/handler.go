package lendborrow

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

type ServiceAPI interface {
	CreateRecord(ctx context.Context, ownerID int64, dto CreateRecordDTO) (*Record, error)
	ListRecords(ctx context.Context, ownerID int64) ([]*Record, error)
	UpdateStatus(ctx context.Context, ownerID, id int64, dto UpdateStatusDTO) error
	DeleteRecord(ctx context.Context, ownerID, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	records, err := h.Service.ListRecords(r.Context(), ownerID)
	if err != nil {
		h.Log(r).Error("ListRecords: service error", "error", err)
		h.HandleServiceError(w, r, err)
		return
	}

	resp := ListResponse{Records: make([]RecordResponse, 0, len(records))}
	for _, rec := range records {
		resp.Records = append(resp.Records, ToResponse(rec))
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	var dto CreateRecordDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	rec, err := h.Service.CreateRecord(r.Context(), ownerID, dto)
	if err != nil {
		h.Log(r).Error("CreateRecord: service error", "error", err)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ToResponse(rec))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	var dto UpdateStatusDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), ownerID, id, dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteRecord(r.Context(), ownerID, id); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
