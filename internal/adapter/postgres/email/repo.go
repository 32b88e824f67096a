// Package email implements the EmailRecord repository using PostgreSQL.
package email

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mailtriage/triagem-backend/internal/adapter/postgres"
	"github.com/mailtriage/triagem-backend/internal/domain"
)

const table = "emails"

// columns is the select list shared by every query, in scan order.
var columns = []string{
	"id", "remetente", "destinatario", "assunto", "corpo", "data_envio",
	"estado", "municipio", "classificado", "colaborador_id",
	"created_at", "updated_at",
}

// builder is the shared statement builder with PostgreSQL placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides email record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new email repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns records matching the filter, newest data_envio first.
func (r *Repo) List(ctx context.Context, f domain.EmailFilter) ([]domain.EmailRecord, error) {
	q := builder.Select(columns...).From(table).OrderBy("data_envio DESC")

	if f.Classificado != nil {
		q = q.Where(sq.Eq{"classificado": *f.Classificado})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(sq.Or{
			sq.ILike{"remetente": pattern},
			sq.ILike{"destinatario": pattern},
			sq.ILike{"assunto": pattern},
		})
	}
	if f.Date != "" {
		q = q.Where(sq.Expr("data_envio::date = ?::date", f.Date))
	}

	return r.queryMany(ctx, q)
}

// ListSentSince returns every record with data_envio at or after t, oldest
// constraint only: this is the loose lower-bound fetch feeding the trend.
func (r *Repo) ListSentSince(ctx context.Context, t time.Time) ([]domain.EmailRecord, error) {
	q := builder.Select(columns...).From(table).
		Where(sq.GtOrEq{"data_envio": t}).
		OrderBy("data_envio DESC")

	return r.queryMany(ctx, q)
}

// GetByID returns a record by primary key.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.EmailRecord, error) {
	q := builder.Select(columns...).From(table).Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "email", id.String())
	}
	return rec, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new record and returns the persisted row. The caller
// provides the ID; created_at/updated_at default to now() in the database.
func (r *Repo) Create(ctx context.Context, rec *domain.EmailRecord) (*domain.EmailRecord, error) {
	q := builder.Insert(table).
		Columns("id", "remetente", "destinatario", "assunto", "corpo",
			"data_envio", "estado", "municipio", "classificado", "colaborador_id").
		Values(rec.ID, rec.Remetente, rec.Destinatario, rec.Assunto, rec.Corpo,
			rec.DataEnvio, rec.Estado, rec.Municipio, rec.Classificado, rec.ColaboradorID).
		Suffix("RETURNING " + selectList())

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...)
	created, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "email", rec.ID.String())
	}
	return created, nil
}

// Update applies a partial update and returns the updated row.
// classificado is re-derived whenever either location field is touched.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, u domain.EmailUpdate) (*domain.EmailRecord, error) {
	q := builder.Update(table).Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("now()")).
		Suffix("RETURNING " + selectList())

	if u.Remetente != nil {
		q = q.Set("remetente", *u.Remetente)
	}
	if u.Destinatario != nil {
		q = q.Set("destinatario", *u.Destinatario)
	}
	if u.Assunto != nil {
		q = q.Set("assunto", *u.Assunto)
	}
	if u.Corpo != nil {
		q = q.Set("corpo", *u.Corpo)
	}
	if u.DataEnvio != nil {
		q = q.Set("data_envio", *u.DataEnvio)
	}
	if u.SetEstado {
		q = q.Set("estado", u.Estado)
	}
	if u.SetMunicipio {
		q = q.Set("municipio", u.Municipio)
	}
	if u.SetEstado || u.SetMunicipio {
		q = q.Set("classificado", sq.Expr(
			"(COALESCE(estado, '') <> '' AND COALESCE(municipio, '') <> '')"))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...)
	updated, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "email", id.String())
	}
	return updated, nil
}

// UpdateLocation assigns estado and municipio to one record, derives the
// classificado flag from the two values, and stamps the acting collaborator
// when one is given. It is the unit of the batch classify fan-out: each call
// is an independent statement with no shared transaction.
func (r *Repo) UpdateLocation(ctx context.Context, id uuid.UUID, estado, municipio string, colaboradorID *uuid.UUID) (*domain.EmailRecord, error) {
	classificado := domain.DeriveClassificado(&estado, &municipio)

	q := builder.Update(table).
		Set("estado", estado).
		Set("municipio", municipio).
		Set("classificado", classificado).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + selectList())

	if colaboradorID != nil {
		q = q.Set("colaborador_id", *colaboradorID)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...)
	updated, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "email", id.String())
	}
	return updated, nil
}

// Delete removes a record immediately and unconditionally (no soft delete).
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := builder.Delete(table).Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sqlStr, args...)
	if err != nil {
		return postgres.MapError(err, "email", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("email %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func selectList() string {
	list := columns[0]
	for _, c := range columns[1:] {
		list += ", " + c
	}
	return list
}

func (r *Repo) queryMany(ctx context.Context, q sq.SelectBuilder) ([]domain.EmailRecord, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	defer rows.Close()

	records := []domain.EmailRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.Row) (*domain.EmailRecord, error) {
	var rec domain.EmailRecord
	err := row.Scan(
		&rec.ID, &rec.Remetente, &rec.Destinatario, &rec.Assunto, &rec.Corpo,
		&rec.DataEnvio, &rec.Estado, &rec.Municipio, &rec.Classificado,
		&rec.ColaboradorID, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
