package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmailRecord is one inbound or manually entered message awaiting (or past)
// classification. Field names follow the Go convention; the wire and storage
// formats keep the original Portuguese column names (remetente, destinatario,
// assunto, corpo, data_envio, estado, municipio, classificado).
type EmailRecord struct {
	ID            uuid.UUID
	Remetente     string
	Destinatario  string // one or more addresses, comma-separated
	Assunto       string
	Corpo         *string
	DataEnvio     time.Time
	Estado        *string
	Municipio     *string
	Classificado  bool
	ColaboradorID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DeriveClassificado reports whether a record with the given location fields
// counts as classified: both estado and municipio must be non-empty.
// Callers must apply this at every update site; it is not a DB constraint.
func DeriveClassificado(estado, municipio *string) bool {
	return estado != nil && *estado != "" && municipio != nil && *municipio != ""
}

// EmailFilter restricts List results. Nil/empty fields mean "no filter".
type EmailFilter struct {
	// Classificado filters by processing state when non-nil.
	Classificado *bool

	// Search matches remetente, destinatario or assunto, case-insensitively.
	Search string

	// Date matches records whose data_envio falls on the given YYYY-MM-DD day.
	Date string
}

// EmailUpdate holds the mutable fields of an EmailRecord for partial updates.
// Nil pointers mean "leave unchanged". SetEstado/SetMunicipio distinguish
// "not provided" from "set to null".
type EmailUpdate struct {
	Remetente    *string
	Destinatario *string
	Assunto      *string
	Corpo        *string
	DataEnvio    *time.Time
	Estado       *string
	Municipio    *string
	SetEstado    bool
	SetMunicipio bool
}

// DashboardStats are the headline dashboard counters.
type DashboardStats struct {
	Total         int
	Classificados int
	Pendentes     int
}

// StateCount is the number of classified records for one state code.
type StateCount struct {
	Estado string
	Count  int
}

// TopRecipient is one entry of the recipient frequency ranking. Destinatario
// carries the first-seen original casing of the address.
type TopRecipient struct {
	Destinatario string
	Count        int
}

// TrendPoint is one day of the 7-day trend. Date is a local calendar date
// formatted YYYY-MM-DD.
type TrendPoint struct {
	Date  string
	Count int
}
