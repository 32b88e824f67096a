package email

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mailtriage/triagem-backend/internal/domain"
	"github.com/mailtriage/triagem-backend/pkg/ctxutil"
)

// Classify assigns a location to one record and stamps the acting
// collaborator. Both fields are required: single-record classification
// always produces a classified record.
func (s *Service) Classify(ctx context.Context, id uuid.UUID, estado, municipio string) (*domain.EmailRecord, error) {
	estado = strings.TrimSpace(estado)
	municipio = strings.TrimSpace(municipio)

	if estado == "" {
		return nil, domain.NewValidationError("estado", "required")
	}
	if municipio == "" {
		return nil, domain.NewValidationError("municipio", "required")
	}

	updated, err := s.emails.UpdateLocation(ctx, id, estado, municipio, colaboradorFromCtx(ctx))
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "record classified",
		slog.String("email_id", id.String()),
		slog.String("estado", estado),
		slog.String("municipio", municipio))

	return updated, nil
}

// BatchClassify fans out independent location updates, one per item.
// The batch is deliberately non-atomic: each update stands alone, partial
// failure is tolerated, and the outcome reports which IDs failed. Items with
// a blank estado or municipio never reach the store.
func (s *Service) BatchClassify(ctx context.Context, items []ClassifyItem) (*ClassifyResult, error) {
	result := &ClassifyResult{Failed: []ClassifyFailure{}}
	colaboradorID := colaboradorFromCtx(ctx)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, item := range items {
		estado := strings.TrimSpace(item.Estado)
		municipio := strings.TrimSpace(item.Municipio)

		if estado == "" || municipio == "" {
			result.Failed = append(result.Failed, ClassifyFailure{
				ID:    item.ID,
				Error: "estado and municipio are required",
			})
			continue
		}

		wg.Add(1)
		go func(id uuid.UUID, estado, municipio string) {
			defer wg.Done()

			_, err := s.emails.UpdateLocation(ctx, id, estado, municipio, colaboradorID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, ClassifyFailure{ID: id, Error: err.Error()})
				return
			}
			result.Updated++
		}(item.ID, estado, municipio)
	}

	wg.Wait()

	// Stable report order for clients and logs.
	sort.Slice(result.Failed, func(i, j int) bool {
		return result.Failed[i].ID.String() < result.Failed[j].ID.String()
	})

	s.log.InfoContext(ctx, "batch classification finished",
		slog.Int("requested", len(items)),
		slog.Int("updated", result.Updated),
		slog.Int("failed", len(result.Failed)))

	return result, nil
}

func colaboradorFromCtx(ctx context.Context) *uuid.UUID {
	if id, ok := ctxutil.UserIDFromCtx(ctx); ok {
		return &id
	}
	return nil
}
