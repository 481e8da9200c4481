package delivery

import (
	"context"
	"net/http"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/transport"
)

type ServiceAPI interface {
	PerformDelivery(ctx context.Context, dto PerformDeliveryDTO, actor errors.Actor) (*Delivery, error)
	ListDeliveries(ctx context.Context) ([]*Delivery, error)
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

func (h *Handler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListDeliveries(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, DeliveriesResponse{Deliveries: list})
}

// PerformDelivery answers 201 on success. Insufficient stock comes back as a
// 400 carrying the requested and available figures.
func (h *Handler) PerformDelivery(w http.ResponseWriter, r *http.Request) {
	actor, _ := errors.ActorFromContext(r.Context())

	var dto PerformDeliveryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	d, err := h.Service.PerformDelivery(r.Context(), dto, actor)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, d)
}
