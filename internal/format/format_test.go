package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestDate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "05/12/2025", Date(time.Date(2025, 12, 5, 17, 0, 0, 0, time.UTC)))
}

func TestDateTime(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "05/12/2025 17:30", DateTime(time.Date(2025, 12, 5, 17, 30, 0, 0, time.UTC)))
}

func TestChartDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-04", "4/3"},
		{"2024-12-25", "25/12"},
		{"2024-01-01", "1/1"},
		{"not-a-date", "not-a-date"},
		{"2024-xx-01", "2024-xx-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChartDate(tt.in), "ChartDate(%q)", tt.in)
	}
}

func TestLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PI - Piripiri", Location(strPtr("PI"), strPtr("Piripiri")))
	assert.Equal(t, "PI", Location(strPtr("PI"), nil))
	assert.Equal(t, "PI", Location(strPtr("PI"), strPtr("")))
	assert.Equal(t, "Não classificado", Location(nil, nil))
	assert.Equal(t, "Não classificado", Location(strPtr(""), strPtr("Piripiri")))
}

func TestLocationShort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PI / Piripiri", LocationShort(strPtr("PI"), strPtr("Piripiri")))
	assert.Equal(t, "-", LocationShort(strPtr("PI"), nil))
	assert.Equal(t, "-", LocationShort(nil, nil))
}
