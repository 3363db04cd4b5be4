package note

import (
	"context"
	"fmt"

	"github.com/heartmarshall/notes-app/internal/domain"
)

// ListNotes returns all notes owned by the username, newest first.
// An unknown username yields an empty slice.
func (s *Service) ListNotes(ctx context.Context, input ListNotesInput) (notes []domain.Note, err error) {
	defer func() { s.metrics.observe("list", err) }()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	notes, err = s.notes.ListByUsername(ctx, domain.NormalizeUsername(input.Username))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}

	return notes, nil
}
