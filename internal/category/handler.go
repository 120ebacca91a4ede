package category

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

type ServiceAPI interface {
	ListCategories(ctx context.Context, ownerID int64, kind string) ([]Category, error)
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = KindExpense
	}

	categories, err := h.Service.ListCategories(r.Context(), ownerID, kind)
	if err != nil {
		h.Log(r).Error("GetCategories: failed to get categories", "error", err)
		h.HandleServiceError(w, r, err)
		return
	}

	resp := CategoriesResponse{Kind: kind, Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, c.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}
