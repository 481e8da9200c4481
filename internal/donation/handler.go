package donation

import (
	"context"
	"net/http"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/currency"
	"github.com/frahmantamala/hopecare/internal/transport"
)

type ServiceAPI interface {
	RecordMoneyDonation(ctx context.Context, dto MoneyDonationDTO, actor errors.Actor) (*Donation, error)
	RecordProductDonation(ctx context.Context, dto ProductDonationDTO, actor errors.Actor) (*Donation, error)
	ListDonations(ctx context.Context) ([]*Donation, error)
	ListCurrencies(ctx context.Context) ([]*currency.Currency, error)
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

func (h *Handler) ListDonations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListDonations(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, DonationsResponse{Donations: list})
}

func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListCurrencies(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, CurrenciesResponse{BaseCurrency: currency.BaseCode, Currencies: list})
}

func (h *Handler) RecordMoneyDonation(w http.ResponseWriter, r *http.Request) {
	actor, _ := errors.ActorFromContext(r.Context())

	var dto MoneyDonationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	d, err := h.Service.RecordMoneyDonation(r.Context(), dto, actor)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) RecordProductDonation(w http.ResponseWriter, r *http.Request) {
	actor, _ := errors.ActorFromContext(r.Context())

	var dto ProductDonationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	d, err := h.Service.RecordProductDonation(r.Context(), dto, actor)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, d)
}
