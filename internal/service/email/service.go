// Package email implements triage operations over email records.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

// emailRepo defines the record repository interface needed by the email service.
type emailRepo interface {
	List(ctx context.Context, f domain.EmailFilter) ([]domain.EmailRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EmailRecord, error)
	Create(ctx context.Context, rec *domain.EmailRecord) (*domain.EmailRecord, error)
	Update(ctx context.Context, id uuid.UUID, u domain.EmailUpdate) (*domain.EmailRecord, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, estado, municipio string, colaboradorID *uuid.UUID) (*domain.EmailRecord, error)
	ListSentSince(ctx context.Context, t time.Time) ([]domain.EmailRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service implements email record triage operations.
type Service struct {
	log    *slog.Logger
	emails emailRepo
}

// NewService creates a new email service instance.
func NewService(logger *slog.Logger, emails emailRepo) *Service {
	return &Service{
		log:    logger.With("service", "email"),
		emails: emails,
	}
}
