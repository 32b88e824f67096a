package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

// reportService defines the minimal interface needed by DashboardHandler.
type reportService interface {
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
	ByState(ctx context.Context) ([]domain.StateCount, error)
	TopRecipientsRanking(ctx context.Context) ([]domain.TopRecipient, error)
	SevenDayTrend(ctx context.Context) ([]domain.TrendPoint, error)
}

// DashboardHandler serves the dashboard aggregation endpoints.
type DashboardHandler struct {
	svc reportService
	log *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(svc reportService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: logger.With("handler", "dashboard")}
}

type statsResponse struct {
	Total         int `json:"total"`
	Classificados int `json:"classificados"`
	Pendentes     int `json:"pendentes"`
}

type stateCountResponse struct {
	Estado string `json:"estado"`
	Count  int    `json:"count"`
}

type topRecipientResponse struct {
	Destinatario string `json:"destinatario"`
	Count        int    `json:"count"`
}

type trendPointResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.DashboardStats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Total:         stats.Total,
		Classificados: stats.Classificados,
		Pendentes:     stats.Pendentes,
	})
}

// ByState handles GET /api/dashboard/by-state.
func (h *DashboardHandler) ByState(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.ByState(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]stateCountResponse, 0, len(counts))
	for _, c := range counts {
		resp = append(resp, stateCountResponse{Estado: c.Estado, Count: c.Count})
	}
	writeJSON(w, http.StatusOK, resp)
}

// TopRecipients handles GET /api/dashboard/top-recipients.
func (h *DashboardHandler) TopRecipients(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.svc.TopRecipientsRanking(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]topRecipientResponse, 0, len(ranking))
	for _, t := range ranking {
		resp = append(resp, topRecipientResponse{Destinatario: t.Destinatario, Count: t.Count})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Trend handles GET /api/dashboard/trend.
func (h *DashboardHandler) Trend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.svc.SevenDayTrend(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]trendPointResponse, 0, len(trend))
	for _, p := range trend {
		resp = append(resp, trendPointResponse{Date: p.Date, Count: p.Count})
	}
	writeJSON(w, http.StatusOK, resp)
}
