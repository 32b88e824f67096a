package email

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mailtriage/triagem-backend/internal/domain"
	"github.com/mailtriage/triagem-backend/internal/service/report"
)

// ExportCSV streams the records matching the filter as CSV. The row set is
// exactly what List would return for the same filter, newest first.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, f domain.EmailFilter) error {
	records, err := s.emails.List(ctx, f)
	if err != nil {
		return fmt.Errorf("email.ExportCSV: %w", err)
	}

	if err := report.WriteCSV(w, records); err != nil {
		return fmt.Errorf("email.ExportCSV: %w", err)
	}

	s.log.InfoContext(ctx, "records exported", slog.Int("count", len(records)))

	return nil
}
