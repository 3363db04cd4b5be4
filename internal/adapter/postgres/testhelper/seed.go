package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/notes-app/internal/domain"
)

// UniqueUsername returns a username that no other test uses, so tests sharing
// the container never see each other's notes.
func UniqueUsername(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedNote inserts a note for username with an explicit created_at and
// returns it as stored.
func SeedNote(t *testing.T, pool *pgxpool.Pool, username, title string, createdAt time.Time) domain.Note {
	t.Helper()

	n := domain.Note{Username: username, Title: title, Content: "seeded " + title}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO notes (username, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 RETURNING id, created_at, updated_at`,
		username, title, n.Content, createdAt,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed note: %v", err)
	}

	return n
}

// CountNotes returns how many notes username owns.
func CountNotes(t *testing.T, pool *pgxpool.Pool, username string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM notes WHERE username = $1`, username,
	).Scan(&n); err != nil {
		t.Fatalf("testhelper: count notes: %v", err)
	}
	return n
}
