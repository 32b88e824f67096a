// Package report derives dashboard statistics from already-fetched email
// records. Every function here is pure and synchronous: input slices are
// never mutated, empty input yields zero-valued output, and malformed
// individual fields are skipped rather than reported as errors.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

// DefaultTopRecipients is the ranking size used when the caller passes a
// non-positive limit.
const DefaultTopRecipients = 3

// trendDays is the fixed size of the trend window, today included.
const trendDays = 7

// Stats counts total, classified and pending records.
func Stats(rows []domain.EmailRecord) domain.DashboardStats {
	var classified int
	for _, r := range rows {
		if r.Classificado {
			classified++
		}
	}
	return domain.DashboardStats{
		Total:         len(rows),
		Classificados: classified,
		Pendentes:     len(rows) - classified,
	}
}

// CountsByState groups records by their exact state code, most frequent
// first. Records without a state are excluded; municipio is never consulted.
// Ties keep the order in which the codes were first seen. The full result
// set is returned, without truncation.
func CountsByState(rows []domain.EmailRecord) []domain.StateCount {
	counts := make(map[string]int)
	var order []string

	for _, r := range rows {
		if r.Estado == nil || *r.Estado == "" {
			continue
		}
		if _, seen := counts[*r.Estado]; !seen {
			order = append(order, *r.Estado)
		}
		counts[*r.Estado]++
	}

	result := make([]domain.StateCount, 0, len(order))
	for _, estado := range order {
		result = append(result, domain.StateCount{Estado: estado, Count: counts[estado]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result
}

// TopRecipients ranks individual recipient addresses by frequency and
// truncates to limit (DefaultTopRecipients when limit <= 0).
//
// The destinatario field may carry several comma-separated addresses; each
// is counted separately, so one record with two recipients feeds two keys.
// Tokens without an "@" are dropped silently. Grouping is case-insensitive,
// but the reported address keeps the casing of the first occurrence.
// Ties keep first-seen order.
func TopRecipients(rows []domain.EmailRecord, limit int) []domain.TopRecipient {
	if limit <= 0 {
		limit = DefaultTopRecipients
	}

	counts := make(map[string]int)
	display := make(map[string]string)
	var order []string

	for _, r := range rows {
		if r.Destinatario == "" {
			continue
		}
		for _, token := range strings.Split(r.Destinatario, ",") {
			token = strings.TrimSpace(token)
			if token == "" || !strings.Contains(token, "@") {
				continue
			}
			key := strings.ToLower(token)
			if _, seen := counts[key]; !seen {
				order = append(order, key)
				display[key] = token
			}
			counts[key]++
		}
	}

	result := make([]domain.TopRecipient, 0, len(order))
	for _, key := range order {
		result = append(result, domain.TopRecipient{
			Destinatario: display[key],
			Count:        counts[key],
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Trend buckets records by local calendar date over the last 7 days, oldest
// first. "Local" is the time.Location attached to now; the same location is
// applied to every record's send timestamp before bucketing. The result is
// always exactly 7 entries: today and the 6 preceding dates, pre-seeded to
// zero. Records outside the window, or with a zero send timestamp, are
// skipped silently.
func Trend(rows []domain.EmailRecord, now time.Time) []domain.TrendPoint {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	points := make([]domain.TrendPoint, 0, trendDays)
	index := make(map[string]int, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format("2006-01-02")
		index[key] = len(points)
		points = append(points, domain.TrendPoint{Date: key})
	}

	for _, r := range rows {
		if r.DataEnvio.IsZero() {
			continue
		}
		key := r.DataEnvio.In(loc).Format("2006-01-02")
		if i, ok := index[key]; ok {
			points[i].Count++
		}
	}

	return points
}
