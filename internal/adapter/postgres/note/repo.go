// Package note implements the notes repository using PostgreSQL.
// Every statement is scoped by owner: a row is only read, updated or deleted
// when both its id and username match.
package note

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/notes-app/internal/adapter/postgres"
	"github.com/heartmarshall/notes-app/internal/domain"
)

const (
	table  = "notes"
	entity = "note"
)

// content is nullable for rows written by older clients; it is always read as text.
var columns = []string{"id", "username", "title", "COALESCE(content, '')", "created_at", "updated_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides note persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new note repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListByUsername returns all notes owned by username, newest first.
// Returns an empty (non-nil) slice when the user has no notes.
func (r *Repo) ListByUsername(ctx context.Context, username string) ([]domain.Note, error) {
	query, args, err := psql.
		Select(columns...).
		From(table).
		Where(sq.Eq{"username": username}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notes query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}

	notes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Note, error) {
		return scanNote(row)
	})
	if err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}
	if notes == nil {
		notes = []domain.Note{}
	}

	return notes, nil
}

// Create inserts a note and returns it with its server-assigned id and timestamps.
func (r *Repo) Create(ctx context.Context, n domain.Note) (domain.Note, error) {
	query, args, err := psql.
		Insert(table).
		Columns("username", "title", "content").
		Values(n.Username, n.Title, n.Content).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return domain.Note{}, fmt.Errorf("build create note query: %w", err)
	}

	created, err := scanNote(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Note{}, postgres.MapError(err, entity, 0)
	}

	return created, nil
}

// Update replaces title and content of the note identified by n.ID and owned
// by n.Username, refreshing updated_at. Returns domain.ErrNotFound if no row
// matches both.
func (r *Repo) Update(ctx context.Context, n domain.Note) (domain.Note, error) {
	query, args, err := psql.
		Update(table).
		Set("title", n.Title).
		Set("content", n.Content).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": n.ID, "username": n.Username}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return domain.Note{}, fmt.Errorf("build update note query: %w", err)
	}

	updated, err := scanNote(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Note{}, postgres.MapError(err, entity, n.ID)
	}

	return updated, nil
}

// Delete removes the note identified by id and owned by username.
// Returns domain.ErrNotFound if no row matches both.
func (r *Repo) Delete(ctx context.Context, id int64, username string) error {
	query, args, err := psql.
		Delete(table).
		Where(sq.Eq{"id": id, "username": username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete note query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.Username, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}
