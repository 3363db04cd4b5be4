package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/notes-app/internal/domain"
)

// CreateNote persists a new note for the username.
func (s *Service) CreateNote(ctx context.Context, input CreateNoteInput) (n domain.Note, err error) {
	defer func() { s.metrics.observe("create", err) }()

	if err := input.Validate(); err != nil {
		return domain.Note{}, err
	}

	n, err = s.notes.Create(ctx, domain.Note{
		Username: domain.NormalizeUsername(input.Username),
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
	})
	if err != nil {
		return domain.Note{}, fmt.Errorf("create note: %w", err)
	}

	s.log.InfoContext(ctx, "note created",
		slog.String("username", n.Username),
		slog.Int64("note_id", n.ID),
	)
	s.publish(ctx, domain.NoteCreated, n)

	return n, nil
}
