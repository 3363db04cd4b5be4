package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/notes-app/internal/domain"
)

// UpdateNote replaces the title and content of a note the username owns.
// A note owned by someone else is reported as domain.ErrNotFound.
func (s *Service) UpdateNote(ctx context.Context, input UpdateNoteInput) (n domain.Note, err error) {
	defer func() { s.metrics.observe("update", err) }()

	if err := input.Validate(); err != nil {
		return domain.Note{}, err
	}

	n, err = s.notes.Update(ctx, domain.Note{
		ID:       input.ID,
		Username: domain.NormalizeUsername(input.Username),
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
	})
	if err != nil {
		return domain.Note{}, fmt.Errorf("update note: %w", err)
	}

	s.log.InfoContext(ctx, "note updated",
		slog.String("username", n.Username),
		slog.Int64("note_id", n.ID),
	)
	s.publish(ctx, domain.NoteUpdated, n)

	return n, nil
}
