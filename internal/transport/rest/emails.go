package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mailtriage/triagem-backend/internal/domain"
	"github.com/mailtriage/triagem-backend/internal/service/email"
)

// emailService defines the minimal interface needed by EmailHandler.
type emailService interface {
	List(ctx context.Context, f domain.EmailFilter) ([]domain.EmailRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.EmailRecord, error)
	Create(ctx context.Context, input email.CreateInput) (*domain.EmailRecord, error)
	Update(ctx context.Context, id uuid.UUID, input email.UpdateInput) (*domain.EmailRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BatchClassify(ctx context.Context, items []email.ClassifyItem) (*email.ClassifyResult, error)
	ExportCSV(ctx context.Context, w io.Writer, f domain.EmailFilter) error
}

// EmailHandler serves the email record REST endpoints.
type EmailHandler struct {
	svc emailService
	log *slog.Logger
}

// NewEmailHandler creates an EmailHandler.
func NewEmailHandler(svc emailService, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{svc: svc, log: logger.With("handler", "emails")}
}

type createEmailRequest struct {
	Remetente    string  `json:"remetente"`
	Destinatario string  `json:"destinatario"`
	Assunto      string  `json:"assunto"`
	Corpo        *string `json:"corpo"`
	DataEnvio    string  `json:"data_envio"`
	Estado       string  `json:"estado"`
	Municipio    string  `json:"municipio"`
}

// updateEmailRequest distinguishes "field absent" from "field set to null"
// for estado and municipio, so a PATCH can clear a location.
type updateEmailRequest struct {
	Remetente    *string `json:"remetente"`
	Destinatario *string `json:"destinatario"`
	Assunto      *string `json:"assunto"`
	Corpo        *string `json:"corpo"`
	DataEnvio    *string `json:"data_envio"`
	Estado       *string `json:"estado"`
	Municipio    *string `json:"municipio"`

	hasEstado    bool
	hasMunicipio bool
}

func (req *updateEmailRequest) UnmarshalJSON(data []byte) error {
	type alias updateEmailRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*req = updateEmailRequest(a)
	_, req.hasEstado = keys["estado"]
	_, req.hasMunicipio = keys["municipio"]
	return nil
}

type classifyItemRequest struct {
	ID        string `json:"id"`
	Estado    string `json:"estado"`
	Municipio string `json:"municipio"`
}

type classifyRequest struct {
	Items []classifyItemRequest `json:"items"`
}

type classifyFailureResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type classifyResponse struct {
	Updated int                       `json:"updated"`
	Failed  []classifyFailureResponse `json:"failed"`
}

type emailResponse struct {
	ID            string    `json:"id"`
	Remetente     string    `json:"remetente"`
	Destinatario  string    `json:"destinatario"`
	Assunto       string    `json:"assunto"`
	Corpo         *string   `json:"corpo"`
	DataEnvio     time.Time `json:"data_envio"`
	Estado        *string   `json:"estado"`
	Municipio     *string   `json:"municipio"`
	Classificado  bool      `json:"classificado"`
	ColaboradorID *string   `json:"colaborador_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// List handles GET /api/emails.
// Query parameters: classificado (true/false), search, date (YYYY-MM-DD).
func (h *EmailHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseEmailFilter(w, r)
	if !ok {
		return
	}

	records, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]emailResponse, 0, len(records))
	for i := range records {
		resp = append(resp, toEmailResponse(&records[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/emails/{id}.
func (h *EmailHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEmailResponse(rec))
}

// Create handles POST /api/emails (manual classified entry).
func (h *EmailHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Create(r.Context(), email.CreateInput{
		Remetente:    req.Remetente,
		Destinatario: req.Destinatario,
		Assunto:      req.Assunto,
		Corpo:        req.Corpo,
		DataEnvio:    req.DataEnvio,
		Estado:       req.Estado,
		Municipio:    req.Municipio,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmailResponse(rec))
}

// Update handles PATCH /api/emails/{id}.
func (h *EmailHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Update(r.Context(), id, email.UpdateInput{
		Remetente:    req.Remetente,
		Destinatario: req.Destinatario,
		Assunto:      req.Assunto,
		Corpo:        req.Corpo,
		DataEnvio:    req.DataEnvio,
		Estado:       req.Estado,
		Municipio:    req.Municipio,
		SetEstado:    req.hasEstado,
		SetMunicipio: req.hasMunicipio,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEmailResponse(rec))
}

// Delete handles DELETE /api/emails/{id}.
func (h *EmailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Classify handles POST /api/emails/classify (batch classification).
// Partial failure is a 200: the response reports per-item outcomes.
func (h *EmailHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]email.ClassifyItem, 0, len(req.Items))
	for _, item := range req.Items {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid item id: "+item.ID)
			return
		}
		items = append(items, email.ClassifyItem{
			ID:        id,
			Estado:    item.Estado,
			Municipio: item.Municipio,
		})
	}

	result, err := h.svc.BatchClassify(r.Context(), items)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := classifyResponse{
		Updated: result.Updated,
		Failed:  make([]classifyFailureResponse, 0, len(result.Failed)),
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, classifyFailureResponse{
			ID:    f.ID.String(),
			Error: f.Error,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export handles GET /api/emails/export. The same filters as List apply;
// the response is a CSV attachment.
func (h *EmailHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseEmailFilter(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="emails.csv"`)

	if err := h.svc.ExportCSV(r.Context(), w, filter); err != nil {
		// Headers are already out; all we can do is log.
		h.log.ErrorContext(r.Context(), "csv export failed", slog.String("error", err.Error()))
	}
}

func parseEmailFilter(w http.ResponseWriter, r *http.Request) (domain.EmailFilter, bool) {
	var filter domain.EmailFilter

	if v := r.URL.Query().Get("classificado"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "classificado must be true or false")
			return filter, false
		}
		filter.Classificado = &b
	}
	filter.Search = r.URL.Query().Get("search")
	filter.Date = r.URL.Query().Get("date")

	return filter, true
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func toEmailResponse(rec *domain.EmailRecord) emailResponse {
	resp := emailResponse{
		ID:           rec.ID.String(),
		Remetente:    rec.Remetente,
		Destinatario: rec.Destinatario,
		Assunto:      rec.Assunto,
		Corpo:        rec.Corpo,
		DataEnvio:    rec.DataEnvio,
		Estado:       rec.Estado,
		Municipio:    rec.Municipio,
		Classificado: rec.Classificado,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if rec.ColaboradorID != nil {
		s := rec.ColaboradorID.String()
		resp.ColaboradorID = &s
	}
	return resp
}
