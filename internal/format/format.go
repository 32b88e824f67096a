// Package format holds pure display-formatting helpers shared by the CSV
// export and the dashboard payloads. All dates are rendered the Brazilian
// way (dd/mm/yyyy).
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date renders a timestamp as dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateTime renders a timestamp as dd/mm/yyyy hh:mm.
func DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// ChartDate shortens a YYYY-MM-DD bucket key to the d/m label used on the
// trend chart axis. Keys that do not look like dates are returned unchanged.
func ChartDate(key string) string {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return key
	}
	day, err1 := strconv.Atoi(parts[2])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return key
	}
	return fmt.Sprintf("%d/%d", day, month)
}

// Location renders "UF - Município", a bare state code, or the unclassified
// placeholder.
func Location(estado, municipio *string) string {
	switch {
	case deref(estado) != "" && deref(municipio) != "":
		return deref(estado) + " - " + deref(municipio)
	case deref(estado) != "":
		return deref(estado)
	default:
		return "Não classificado"
	}
}

// LocationShort renders "UF / Município" or a dash when incomplete.
func LocationShort(estado, municipio *string) string {
	if deref(estado) != "" && deref(municipio) != "" {
		return deref(estado) + " / " + deref(municipio)
	}
	return "-"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
