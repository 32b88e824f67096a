// Package profile implements the collaborator profile repository using PostgreSQL.
package profile

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mailtriage/triagem-backend/internal/adapter/postgres"
	"github.com/mailtriage/triagem-backend/internal/domain"
)

const table = "profiles"

var columns = []string{
	"id", "email", "nome", "tipo_usuario", "senha_hash", "created_at", "updated_at",
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a profile by primary key.
// Returns domain.ErrNotFound if the profile does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	q := builder.Select(columns...).From(table).Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...)
	p, err := scanProfile(row)
	if err != nil {
		return nil, postgres.MapError(err, "profile", id.String())
	}
	return p, nil
}

// GetByEmail returns a profile by its unique email, matched case-insensitively.
// Returns domain.ErrNotFound if no profile has that email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	q := builder.Select(columns...).From(table).
		Where(sq.Expr("lower(email) = lower(?)", email))

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...)
	p, err := scanProfile(row)
	if err != nil {
		return nil, postgres.MapError(err, "profile", email)
	}
	return p, nil
}

// Create inserts a new profile and returns the persisted row.
// Returns domain.ErrAlreadyExists if the email is already taken.
func (r *Repo) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	q := builder.Insert(table).
		Columns("id", "email", "nome", "tipo_usuario", "senha_hash").
		Values(p.ID, p.Email, p.Nome, p.TipoUsuario, p.SenhaHash).
		Suffix("RETURNING " + selectList())

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...)
	created, err := scanProfile(row)
	if err != nil {
		return nil, postgres.MapError(err, "profile", p.Email)
	}
	return created, nil
}

// Update applies a partial update to a profile and returns the updated row.
// Only nome and tipo_usuario are mutable; email and password change through
// dedicated flows.
// Returns domain.ErrNotFound if the profile does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, u domain.ProfileUpdate) (*domain.Profile, error) {
	q := builder.Update(table).Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("now()")).
		Suffix("RETURNING " + selectList())

	if u.Nome != nil {
		q = q.Set("nome", *u.Nome)
	}
	if u.TipoUsuario != nil {
		q = q.Set("tipo_usuario", *u.TipoUsuario)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...)
	updated, err := scanProfile(row)
	if err != nil {
		return nil, postgres.MapError(err, "profile", id.String())
	}
	return updated, nil
}

func selectList() string {
	list := columns[0]
	for _, c := range columns[1:] {
		list += ", " + c
	}
	return list
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.Nome, &p.TipoUsuario, &p.SenhaHash,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
