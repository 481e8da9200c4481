package inventory

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hopecare/internal/transport"
)

type ServiceAPI interface {
	PositionFor(ctx context.Context, programID int64, product string) (Position, error)
	ListPositions(ctx context.Context) ([]Position, error)
	LowStockThreshold() int64
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Service.ListPositions(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, PositionsResponse{
		LowStockThreshold: h.Service.LowStockThreshold(),
		Positions:         positions,
	})
}

// PositionFor answers GET /inventory/position?program_id=&product=.
func (h *Handler) PositionFor(w http.ResponseWriter, r *http.Request) {
	programID, err := h.QueryID(r, "program_id")
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	p, err := h.Service.PositionFor(r.Context(), programID, r.URL.Query().Get("product"))
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}
