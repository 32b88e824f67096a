// Package location serves Brazilian states and municipalities from a
// process-lifetime cache over the IBGE provider.
package location

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

// provider defines the IBGE client interface needed by the location service.
type provider interface {
	FetchStates(ctx context.Context) ([]domain.State, error)
	FetchMunicipalities(ctx context.Context, sigla string) ([]domain.Municipality, error)
}

// Service caches reference location data for the process lifetime.
// Both caches are read-through: populated on first miss, never invalidated.
// A failed fetch leaves the cache empty so the next call retries.
type Service struct {
	log      *slog.Logger
	provider provider

	mu             sync.Mutex
	states         []domain.State
	municipalities map[string][]domain.Municipality
}

// NewService creates a new location service.
func NewService(logger *slog.Logger, p provider) *Service {
	return &Service{
		log:            logger.With("service", "location"),
		provider:       p,
		municipalities: make(map[string][]domain.Municipality),
	}
}

// States returns all federative units, fetching them on the first call.
func (s *Service) States(ctx context.Context) ([]domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.states != nil {
		return s.states, nil
	}

	states, err := s.provider.FetchStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("location.States: %w", err)
	}

	s.states = states
	s.log.InfoContext(ctx, "states cached", slog.Int("count", len(states)))

	return states, nil
}

// Municipalities returns the municipalities of one state, fetching them on
// the first call for that sigla. An empty sigla yields an empty list without
// a provider call and without touching the cache.
func (s *Service) Municipalities(ctx context.Context, sigla string) ([]domain.Municipality, error) {
	if sigla == "" {
		return []domain.Municipality{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.municipalities[sigla]; ok {
		return cached, nil
	}

	municipalities, err := s.provider.FetchMunicipalities(ctx, sigla)
	if err != nil {
		return nil, fmt.Errorf("location.Municipalities: %w", err)
	}

	s.municipalities[sigla] = municipalities
	s.log.InfoContext(ctx, "municipalities cached",
		slog.String("sigla", sigla), slog.Int("count", len(municipalities)))

	return municipalities, nil
}

// Reset clears both caches. Exists for tests only.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states = nil
	s.municipalities = make(map[string][]domain.Municipality)
}
