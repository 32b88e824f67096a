package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mailtriage/triagem-backend/internal/domain"
	"github.com/mailtriage/triagem-backend/pkg/ctxutil"
)

// List returns records matching the filter, newest first.
func (s *Service) List(ctx context.Context, f domain.EmailFilter) ([]domain.EmailRecord, error) {
	records, err := s.emails.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("email.List: %w", err)
	}
	return records, nil
}

// Get returns one record by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.EmailRecord, error) {
	rec, err := s.emails.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("email.Get: %w", err)
	}
	return rec, nil
}

// Create registers a manual record entry. Manual entries arrive classified:
// estado and municipio are required and classificado is forced true. The
// authenticated collaborator is recorded as the classifier.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.EmailRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	dataEnvio, err := domain.ParseSendTimestamp(input.DataEnvio)
	if err != nil {
		return nil, domain.NewValidationError("data_envio", "invalid timestamp")
	}

	estado := strings.TrimSpace(input.Estado)
	municipio := strings.TrimSpace(input.Municipio)

	rec := &domain.EmailRecord{
		ID:           uuid.New(),
		Remetente:    strings.TrimSpace(input.Remetente),
		Destinatario: strings.TrimSpace(input.Destinatario),
		Assunto:      strings.TrimSpace(input.Assunto),
		Corpo:        input.Corpo,
		DataEnvio:    dataEnvio,
		Estado:       &estado,
		Municipio:    &municipio,
		Classificado: true,
	}

	if colaboradorID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		rec.ColaboradorID = &colaboradorID
	}

	created, err := s.emails.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("email.Create: %w", err)
	}

	s.log.InfoContext(ctx, "record created manually",
		slog.String("email_id", created.ID.String()))

	return created, nil
}

// Update applies a partial update. The repository re-derives classificado
// whenever either location field is touched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.EmailRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.emails.Update(ctx, id, input.toDomain())
	if err != nil {
		return nil, fmt.Errorf("email.Update: %w", err)
	}

	s.log.InfoContext(ctx, "record updated",
		slog.String("email_id", id.String()))

	return updated, nil
}

// Delete removes a record immediately. There is no soft delete or undo.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.emails.Delete(ctx, id); err != nil {
		return fmt.Errorf("email.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "record deleted",
		slog.String("email_id", id.String()))

	return nil
}
