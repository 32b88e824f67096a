package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mailtriage/triagem-backend/internal/domain"
	"github.com/mailtriage/triagem-backend/internal/format"
)

// csvHeader matches the column layout the dashboard has always exported.
var csvHeader = []string{"Remetente", "Destinatário", "Data", "Estado", "Município"}

// WriteCSV renders the given records as a CSV document, one row per record,
// dates formatted dd/mm/yyyy. Fields are quoted per RFC 4180 by the encoder,
// so subjects and recipient lists with embedded commas survive a round trip.
func WriteCSV(w io.Writer, rows []domain.EmailRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export csv: write header: %w", err)
	}

	for _, r := range rows {
		var estado, municipio string
		if r.Estado != nil {
			estado = *r.Estado
		}
		if r.Municipio != nil {
			municipio = *r.Municipio
		}
		row := []string{r.Remetente, r.Destinatario, format.Date(r.DataEnvio), estado, municipio}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export csv: write row %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: flush: %w", err)
	}
	return nil
}
