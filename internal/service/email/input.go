package email

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

// CreateInput holds parameters for manual record entry. Manual entries are
// classified on arrival: estado and municipio are mandatory.
type CreateInput struct {
	Remetente    string
	Destinatario string
	Assunto      string
	Corpo        *string
	DataEnvio    string // raw timestamp, parsed with domain.ParseSendTimestamp
	Estado       string
	Municipio    string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if remetente := strings.TrimSpace(i.Remetente); remetente == "" {
		errs = append(errs, domain.FieldError{Field: "remetente", Message: "required"})
	} else if !strings.Contains(remetente, "@") {
		errs = append(errs, domain.FieldError{Field: "remetente", Message: "invalid email"})
	}
	if destinatario := strings.TrimSpace(i.Destinatario); destinatario == "" {
		errs = append(errs, domain.FieldError{Field: "destinatario", Message: "required"})
	} else if !strings.Contains(destinatario, "@") {
		errs = append(errs, domain.FieldError{Field: "destinatario", Message: "invalid email"})
	}
	if strings.TrimSpace(i.Assunto) == "" {
		errs = append(errs, domain.FieldError{Field: "assunto", Message: "required"})
	}
	if i.DataEnvio == "" {
		errs = append(errs, domain.FieldError{Field: "data_envio", Message: "required"})
	} else if _, err := domain.ParseSendTimestamp(i.DataEnvio); err != nil {
		errs = append(errs, domain.FieldError{Field: "data_envio", Message: "invalid timestamp"})
	}
	if strings.TrimSpace(i.Estado) == "" {
		errs = append(errs, domain.FieldError{Field: "estado", Message: "required"})
	}
	if strings.TrimSpace(i.Municipio) == "" {
		errs = append(errs, domain.FieldError{Field: "municipio", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for partial record updates. Nil pointers mean
// "leave unchanged"; SetEstado/SetMunicipio distinguish "not provided" from
// "set to null".
type UpdateInput struct {
	Remetente    *string
	Destinatario *string
	Assunto      *string
	Corpo        *string
	DataEnvio    *string
	Estado       *string
	Municipio    *string
	SetEstado    bool
	SetMunicipio bool
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Remetente != nil && strings.TrimSpace(*i.Remetente) == "" {
		errs = append(errs, domain.FieldError{Field: "remetente", Message: "cannot be empty"})
	}
	if i.Destinatario != nil && strings.TrimSpace(*i.Destinatario) == "" {
		errs = append(errs, domain.FieldError{Field: "destinatario", Message: "cannot be empty"})
	}
	if i.Assunto != nil && strings.TrimSpace(*i.Assunto) == "" {
		errs = append(errs, domain.FieldError{Field: "assunto", Message: "cannot be empty"})
	}
	if i.DataEnvio != nil {
		if _, err := domain.ParseSendTimestamp(*i.DataEnvio); err != nil {
			errs = append(errs, domain.FieldError{Field: "data_envio", Message: "invalid timestamp"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// toDomain converts the update input to a domain.EmailUpdate, parsing the
// timestamp when present. Validate must have been called first.
func (i UpdateInput) toDomain() domain.EmailUpdate {
	u := domain.EmailUpdate{
		Remetente:    i.Remetente,
		Destinatario: i.Destinatario,
		Assunto:      i.Assunto,
		Corpo:        i.Corpo,
		Estado:       i.Estado,
		Municipio:    i.Municipio,
		SetEstado:    i.SetEstado,
		SetMunicipio: i.SetMunicipio,
	}
	if i.DataEnvio != nil {
		if ts, err := domain.ParseSendTimestamp(*i.DataEnvio); err == nil {
			u.DataEnvio = &ts
		}
	}
	return u
}

// ClassifyItem is one entry of a batch classification request.
type ClassifyItem struct {
	ID        uuid.UUID
	Estado    string
	Municipio string
}

// ClassifyFailure reports one item that could not be classified.
type ClassifyFailure struct {
	ID    uuid.UUID
	Error string
}

// ClassifyResult aggregates the outcome of a batch classification.
type ClassifyResult struct {
	Updated int
	Failed  []ClassifyFailure
}
