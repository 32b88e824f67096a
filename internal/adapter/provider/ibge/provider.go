// Package ibge fetches Brazilian states and municipalities from the IBGE
// localidades API.
package ibge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

const defaultBaseURL = "https://servicodados.ibge.gov.br/api/v1/localidades"

// Provider fetches reference location data from the IBGE localidades API.
// Requests are single-shot: the API is a public reference service and callers
// cache results for the process lifetime, so a failed call simply surfaces.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default IBGE API URL.
func NewProvider(logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, 10*time.Second, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL and timeout
// (for configuration and testing).
func NewProviderWithURL(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "ibge"),
	}
}

// FetchStates fetches all federative units ordered by sigla.
func (p *Provider) FetchStates(ctx context.Context) ([]domain.State, error) {
	reqURL := p.baseURL + "/estados?orderBy=sigla"

	p.log.DebugContext(ctx, "ibge request", slog.String("url", reqURL))

	body, err := p.get(ctx, reqURL)
	if err != nil {
		p.log.ErrorContext(ctx, "ibge fetch estados failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("ibge: fetch estados: %w", err)
	}

	var ufs []apiUF
	if err := json.Unmarshal(body, &ufs); err != nil {
		return nil, fmt.Errorf("ibge: fetch estados: decode json: %w", err)
	}

	states := make([]domain.State, 0, len(ufs))
	for _, uf := range ufs {
		states = append(states, domain.State{ID: uf.ID, Sigla: uf.Sigla, Nome: uf.Nome})
	}

	p.log.DebugContext(ctx, "ibge response", slog.Int("estados", len(states)))

	return states, nil
}

// FetchMunicipalities fetches the municipalities of one state, ordered by nome.
// An empty sigla returns an empty list without touching the network.
func (p *Provider) FetchMunicipalities(ctx context.Context, sigla string) ([]domain.Municipality, error) {
	if sigla == "" {
		return []domain.Municipality{}, nil
	}

	reqURL := p.baseURL + "/estados/" + url.PathEscape(sigla) + "/municipios?orderBy=nome"

	p.log.DebugContext(ctx, "ibge request", slog.String("url", reqURL))

	body, err := p.get(ctx, reqURL)
	if err != nil {
		p.log.ErrorContext(ctx, "ibge fetch municipios failed",
			slog.String("sigla", sigla), slog.String("error", err.Error()))
		return nil, fmt.Errorf("ibge: fetch municipios: %w", err)
	}

	var raw []apiMunicipio
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("ibge: fetch municipios: decode json: %w", err)
	}

	municipalities := make([]domain.Municipality, 0, len(raw))
	for _, m := range raw {
		municipalities = append(municipalities, domain.Municipality{
			ID:          m.ID,
			Nome:        m.Nome,
			EstadoSigla: sigla,
		})
	}

	p.log.DebugContext(ctx, "ibge response",
		slog.String("sigla", sigla), slog.Int("municipios", len(municipalities)))

	return municipalities, nil
}

// get executes one GET request with no retry and returns the response body.
func (p *Provider) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
