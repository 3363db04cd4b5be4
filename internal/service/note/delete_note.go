package note

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/notes-app/internal/domain"
)

// DeleteNote removes a note the username owns.
func (s *Service) DeleteNote(ctx context.Context, input DeleteNoteInput) (err error) {
	defer func() { s.metrics.observe("delete", err) }()

	if err := input.Validate(); err != nil {
		return err
	}

	username := domain.NormalizeUsername(input.Username)
	if err := s.notes.Delete(ctx, input.ID, username); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.log.InfoContext(ctx, "note deleted",
		slog.String("username", username),
		slog.Int64("note_id", input.ID),
	)
	s.publish(ctx, domain.NoteDeleted, domain.Note{ID: input.ID, Username: username})

	return nil
}
