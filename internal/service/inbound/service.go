// Package inbound turns raw webhook deliveries into pending email records.
package inbound

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

// emailRepo defines the record repository interface needed by the inbound service.
type emailRepo interface {
	Create(ctx context.Context, rec *domain.EmailRecord) (*domain.EmailRecord, error)
}

// Service converts inbound deliveries into pending records. Rejections are
// validation errors: the handler answers 400 and nothing is inserted.
type Service struct {
	log           *slog.Logger
	emails        emailRepo
	systemAddress string
}

// NewService creates a new inbound service. systemAddress is the triage
// inbox's own address, excluded from consolidated recipient lists.
func NewService(logger *slog.Logger, emails emailRepo, systemAddress string) *Service {
	return &Service{
		log:           logger.With("service", "inbound"),
		emails:        emails,
		systemAddress: systemAddress,
	}
}

// Receive validates a delivery and stores it as an unclassified record.
// Sender, subject, a parseable date and at least one surviving recipient are
// mandatory; a delivery failing any of these is rejected whole.
func (s *Service) Receive(ctx context.Context, p Payload) (*domain.EmailRecord, error) {
	from := strings.TrimSpace(p.From)
	if from == "" {
		return nil, domain.NewValidationError("from", "required")
	}

	subject := strings.TrimSpace(p.Subject)
	if subject == "" {
		return nil, domain.NewValidationError("subject", "required")
	}

	if strings.TrimSpace(p.Date) == "" {
		return nil, domain.NewValidationError("date", "required")
	}
	dataEnvio, err := domain.ParseSendTimestamp(p.Date)
	if err != nil {
		return nil, domain.NewValidationError("date", "unparseable date")
	}

	destinatario := consolidateRecipients(p, s.systemAddress)
	if destinatario == "" {
		return nil, domain.NewValidationError("to", "no recipients")
	}

	rec := &domain.EmailRecord{
		ID:           uuid.New(),
		Remetente:    from,
		Destinatario: destinatario,
		Assunto:      subject,
		Corpo:        extractBody(p),
		DataEnvio:    dataEnvio,
	}

	created, err := s.emails.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("inbound.Receive: %w", err)
	}

	s.log.InfoContext(ctx, "inbound record stored",
		slog.String("email_id", created.ID.String()),
		slog.String("remetente", created.Remetente))

	return created, nil
}
