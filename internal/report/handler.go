package report

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hopecare/internal/transport"
)

type ServiceAPI interface {
	DashboardMetrics(ctx context.Context) (Metrics, error)
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

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	m, err := h.Service.DashboardMetrics(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, m)
}
