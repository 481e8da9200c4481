package beneficiary

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hopecare/internal/transport"
)

type ServiceAPI interface {
	RegisterBeneficiary(ctx context.Context, dto RegisterBeneficiaryDTO) (*Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, id int64, dto UpdateBeneficiaryDTO) (*Beneficiary, error)
	GetBeneficiary(ctx context.Context, id int64) (*Beneficiary, error)
	ListBeneficiaries(ctx context.Context) ([]*Beneficiary, error)
	DeactivateBeneficiary(ctx context.Context, id int64) error
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

func (h *Handler) ListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListBeneficiaries(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, BeneficiariesResponse{Beneficiaries: list})
}

func (h *Handler) RegisterBeneficiary(w http.ResponseWriter, r *http.Request) {
	var dto RegisterBeneficiaryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	b, err := h.Service.RegisterBeneficiary(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) GetBeneficiary(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	b, err := h.Service.GetBeneficiary(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) UpdateBeneficiary(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	var dto UpdateBeneficiaryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	b, err := h.Service.UpdateBeneficiary(r.Context(), id, dto)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) DeactivateBeneficiary(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	if err := h.Service.DeactivateBeneficiary(r.Context(), id); err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
