package expense

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

type ServiceAPI interface {
	CreateExpense(ctx context.Context, ownerID int64, dto CreateExpenseDTO) (*Expense, error)
	ListExpenses(ctx context.Context, ownerID int64) ([]*Expense, error)
	GetExpense(ctx context.Context, ownerID, id int64) (*Expense, error)
	UpdateExpense(ctx context.Context, ownerID, id int64, dto UpdateExpenseDTO) (*Expense, error)
	DeleteExpense(ctx context.Context, ownerID, id int64) error
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

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	var dto CreateExpenseDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	e, err := h.Service.CreateExpense(r.Context(), ownerID, dto)
	if err != nil {
		h.Log(r).Error("CreateExpense: service error", "error", err)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ToResponse(e))
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	expenses, err := h.Service.ListExpenses(r.Context(), ownerID)
	if err != nil {
		h.Log(r).Error("ListExpenses: service error", "error", err)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponseList(expenses))
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	e, err := h.Service.GetExpense(r.Context(), ownerID, id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(e))
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	var dto UpdateExpenseDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	e, err := h.Service.UpdateExpense(r.Context(), ownerID, id, dto)
	if err != nil {
		h.Log(r).Error("UpdateExpense: service error", "error", err, "expense_id", id)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(e))
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteExpense(r.Context(), ownerID, id); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
