package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

// locationService defines the minimal interface needed by LocationHandler.
type locationService interface {
	States(ctx context.Context) ([]domain.State, error)
	Municipalities(ctx context.Context, sigla string) ([]domain.Municipality, error)
}

// LocationHandler serves the IBGE reference-data endpoints.
type LocationHandler struct {
	svc locationService
	log *slog.Logger
}

// NewLocationHandler creates a LocationHandler.
func NewLocationHandler(svc locationService, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{svc: svc, log: logger.With("handler", "locations")}
}

type stateResponse struct {
	ID    int    `json:"id"`
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
}

type municipalityResponse struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

// Estados handles GET /api/estados.
func (h *LocationHandler) Estados(w http.ResponseWriter, r *http.Request) {
	states, err := h.svc.States(r.Context())
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}

	resp := make([]stateResponse, 0, len(states))
	for _, s := range states {
		resp = append(resp, stateResponse{ID: s.ID, Sigla: s.Sigla, Nome: s.Nome})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Municipios handles GET /api/estados/{sigla}/municipios.
func (h *LocationHandler) Municipios(w http.ResponseWriter, r *http.Request) {
	sigla := r.PathValue("sigla")

	municipalities, err := h.svc.Municipalities(r.Context(), sigla)
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}

	resp := make([]municipalityResponse, 0, len(municipalities))
	for _, m := range municipalities {
		resp = append(resp, municipalityResponse{ID: m.ID, Nome: m.Nome})
	}
	writeJSON(w, http.StatusOK, resp)
}

// upstreamError answers 502: the only failure mode here is the reference API
// being unreachable or returning garbage.
func (h *LocationHandler) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "reference data unavailable", slog.String("error", err.Error()))
	writeError(w, http.StatusBadGateway, "reference data unavailable")
}
