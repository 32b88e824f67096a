package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

// emailRepo defines the record repository interface needed by the report service.
type emailRepo interface {
	List(ctx context.Context, f domain.EmailFilter) ([]domain.EmailRecord, error)
	ListSentSince(ctx context.Context, t time.Time) ([]domain.EmailRecord, error)
}

// Service computes dashboard reports on demand. Aggregation happens in
// memory over the full record set; the triage inbox is small enough that
// this beats maintaining materialized counts.
type Service struct {
	log    *slog.Logger
	emails emailRepo
	topN   int
	loc    *time.Location

	// now is replaceable in tests.
	now func() time.Time
}

// NewService creates a new report service. loc is the zone used to bucket
// the trend by local calendar date; topN is the recipient ranking size.
func NewService(logger *slog.Logger, emails emailRepo, topN int, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		log:    logger.With("service", "report"),
		emails: emails,
		topN:   topN,
		loc:    loc,
		now:    time.Now,
	}
}

// DashboardStats returns the headline counters over all records.
func (s *Service) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	rows, err := s.emails.List(ctx, domain.EmailFilter{})
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("report.DashboardStats: %w", err)
	}
	return Stats(rows), nil
}

// ByState returns the per-state distribution of records, most frequent first.
func (s *Service) ByState(ctx context.Context) ([]domain.StateCount, error) {
	rows, err := s.emails.List(ctx, domain.EmailFilter{})
	if err != nil {
		return nil, fmt.Errorf("report.ByState: %w", err)
	}
	return CountsByState(rows), nil
}

// TopRecipientsRanking returns the most frequent recipient addresses.
func (s *Service) TopRecipientsRanking(ctx context.Context) ([]domain.TopRecipient, error) {
	rows, err := s.emails.List(ctx, domain.EmailFilter{})
	if err != nil {
		return nil, fmt.Errorf("report.TopRecipientsRanking: %w", err)
	}
	return TopRecipients(rows, s.topN), nil
}

// SevenDayTrend returns daily record counts for the last 7 local calendar
// days, oldest first. The repository fetch uses a loose lower bound one day
// wider than the window; Trend drops anything that falls outside.
func (s *Service) SevenDayTrend(ctx context.Context) ([]domain.TrendPoint, error) {
	now := s.now().In(s.loc)
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -trendDays)

	rows, err := s.emails.ListSentSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("report.SevenDayTrend: %w", err)
	}

	s.log.DebugContext(ctx, "trend computed", slog.Int("rows", len(rows)))

	return Trend(rows, now), nil
}
