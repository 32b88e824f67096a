package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProfile creates a collaborator profile with a throwaway password hash.
// Returns a filled domain.Profile.
func SeedProfile(t *testing.T, pool *pgxpool.Pool) domain.Profile {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	profile := domain.Profile{
		ID:          uuid.New(),
		Email:       "colab-" + suffix + "@example.com",
		Nome:        "Colaborador " + suffix,
		TipoUsuario: domain.RoleColaborador,
		SenhaHash:   "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtesth",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO profiles (id, email, nome, tipo_usuario, senha_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		profile.ID, profile.Email, profile.Nome, string(profile.TipoUsuario), profile.SenhaHash,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile insert: %v", err)
	}

	return profile
}

// EmailOpt mutates a seeded email record before insert.
type EmailOpt func(*domain.EmailRecord)

// WithLocation sets estado/municipio and derives classificado.
func WithLocation(estado, municipio string) EmailOpt {
	return func(r *domain.EmailRecord) {
		r.Estado = &estado
		r.Municipio = &municipio
		r.Classificado = domain.DeriveClassificado(r.Estado, r.Municipio)
	}
}

// WithDataEnvio sets the send timestamp.
func WithDataEnvio(ts time.Time) EmailOpt {
	return func(r *domain.EmailRecord) { r.DataEnvio = ts }
}

// WithDestinatario sets the recipient list.
func WithDestinatario(d string) EmailOpt {
	return func(r *domain.EmailRecord) { r.Destinatario = d }
}

// SeedEmail creates an unclassified email record sent "now" and returns it.
// Opts run in order and may override any field.
func SeedEmail(t *testing.T, pool *pgxpool.Pool, opts ...EmailOpt) domain.EmailRecord {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := domain.EmailRecord{
		ID:           uuid.New(),
		Remetente:    "sender-" + suffix + "@example.com",
		Destinatario: "dest-" + suffix + "@example.com",
		Assunto:      "Assunto " + suffix,
		DataEnvio:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(&rec)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO emails (id, remetente, destinatario, assunto, corpo, data_envio,
		                     estado, municipio, classificado, colaborador_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.Remetente, rec.Destinatario, rec.Assunto, rec.Corpo, rec.DataEnvio,
		rec.Estado, rec.Municipio, rec.Classificado, rec.ColaboradorID, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEmail insert: %v", err)
	}

	return rec
}
