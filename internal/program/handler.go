package program

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hopecare/internal/transport"
)

type ServiceAPI interface {
	CreateProgram(ctx context.Context, dto CreateProgramDTO) (*Program, error)
	GetProgram(ctx context.Context, id int64) (*Program, error)
	ListPrograms(ctx context.Context) ([]*Program, error)
	DeactivateProgram(ctx context.Context, id int64) error
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

func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.Service.ListPrograms(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ProgramsResponse{Programs: programs})
}

func (h *Handler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var dto CreateProgramDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	p, err := h.Service.CreateProgram(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	p, err := h.Service.GetProgram(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) DeactivateProgram(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	if err := h.Service.DeactivateProgram(r.Context(), id); err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
