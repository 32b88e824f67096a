package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

type locationServiceMock struct {
	StatesFunc         func(ctx context.Context) ([]domain.State, error)
	MunicipalitiesFunc func(ctx context.Context, sigla string) ([]domain.Municipality, error)
}

func (m *locationServiceMock) States(ctx context.Context) ([]domain.State, error) {
	return m.StatesFunc(ctx)
}

func (m *locationServiceMock) Municipalities(ctx context.Context, sigla string) ([]domain.Municipality, error) {
	return m.MunicipalitiesFunc(ctx, sigla)
}

func TestEstados_Success(t *testing.T) {
	t.Parallel()

	svc := &locationServiceMock{
		StatesFunc: func(ctx context.Context) ([]domain.State, error) {
			return []domain.State{
				{ID: 22, Sigla: "PI", Nome: "Piauí"},
				{ID: 35, Sigla: "SP", Nome: "São Paulo"},
			}, nil
		},
	}
	h := NewLocationHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/estados", nil)
	rec := httptest.NewRecorder()

	h.Estados(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp []stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].Sigla != "PI" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestEstados_UpstreamFailureIs502(t *testing.T) {
	t.Parallel()

	svc := &locationServiceMock{
		StatesFunc: func(ctx context.Context) ([]domain.State, error) {
			return nil, errors.New("ibge: fetch estados: status 500")
		},
	}
	h := NewLocationHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/estados", nil)
	rec := httptest.NewRecorder()

	h.Estados(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", rec.Code)
	}
}

func TestMunicipios_PassesSigla(t *testing.T) {
	t.Parallel()

	svc := &locationServiceMock{
		MunicipalitiesFunc: func(ctx context.Context, sigla string) ([]domain.Municipality, error) {
			if sigla != "PI" {
				t.Errorf("expected sigla PI, got %q", sigla)
			}
			return []domain.Municipality{{ID: 2211001, Nome: "Teresina", EstadoSigla: "PI"}}, nil
		},
	}
	h := NewLocationHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/estados/PI/municipios", nil)
	req.SetPathValue("sigla", "PI")
	rec := httptest.NewRecorder()

	h.Municipios(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp []municipalityResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Nome != "Teresina" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestMunicipios_UpstreamFailureIs502(t *testing.T) {
	t.Parallel()

	svc := &locationServiceMock{
		MunicipalitiesFunc: func(ctx context.Context, sigla string) ([]domain.Municipality, error) {
			return nil, errors.New("ibge: fetch municipios: context deadline exceeded")
		},
	}
	h := NewLocationHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/estados/PI/municipios", nil)
	req.SetPathValue("sigla", "PI")
	rec := httptest.NewRecorder()

	h.Municipios(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", rec.Code)
	}
}
