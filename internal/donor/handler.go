package donor

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hopecare/internal/transport"
)

type ServiceAPI interface {
	RegisterDonor(ctx context.Context, dto RegisterDonorDTO) (*Donor, error)
	UpdateDonor(ctx context.Context, id int64, dto UpdateDonorDTO) (*Donor, error)
	SearchDonors(ctx context.Context, term string) ([]*Donor, error)
	GetDonor(ctx context.Context, id int64) (*Donor, error)
	ListDonors(ctx context.Context) ([]*Donor, error)
	DeactivateDonor(ctx context.Context, id int64) error
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

// ListDonors lists every donor, or searches active donors when ?q= is given.
func (h *Handler) ListDonors(w http.ResponseWriter, r *http.Request) {
	var (
		donors []*Donor
		err    error
	)
	if q := r.URL.Query(); q.Has("q") {
		donors, err = h.Service.SearchDonors(r.Context(), q.Get("q"))
	} else {
		donors, err = h.Service.ListDonors(r.Context())
	}
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, DonorsResponse{Donors: donors})
}

func (h *Handler) RegisterDonor(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDonorDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	d, err := h.Service.RegisterDonor(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) GetDonor(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	d, err := h.Service.GetDonor(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) UpdateDonor(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	var dto UpdateDonorDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	d, err := h.Service.UpdateDonor(r.Context(), id, dto)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) DeactivateDonor(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	if err := h.Service.DeactivateDonor(r.Context(), id); err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
