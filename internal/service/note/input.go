package note

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/notes-app/internal/domain"
)

// ListNotesInput holds the parameters for listing a user's notes.
type ListNotesInput struct {
	Username string
}

// Validate checks all fields and collects all errors.
func (i ListNotesInput) Validate() error {
	if errs := requireUsername(nil, i.Username); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateNoteInput holds the parameters for creating a note.
type CreateNoteInput struct {
	Username string
	Title    string
	Content  string
}

// Validate checks all fields and collects all errors.
func (i CreateNoteInput) Validate() error {
	var errs []domain.FieldError
	errs = validateNewUsername(errs, i.Username)
	errs = validateTitle(errs, i.Title)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateNoteInput holds the parameters for replacing a note's title and content.
type UpdateNoteInput struct {
	ID       int64
	Username string
	Title    string
	Content  string
}

// Validate checks all fields and collects all errors.
func (i UpdateNoteInput) Validate() error {
	var errs []domain.FieldError
	errs = validateID(errs, i.ID)
	errs = requireUsername(errs, i.Username)
	errs = validateTitle(errs, i.Title)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DeleteNoteInput holds the parameters for deleting a note.
type DeleteNoteInput struct {
	ID       int64
	Username string
}

// Validate checks all fields and collects all errors.
func (i DeleteNoteInput) Validate() error {
	var errs []domain.FieldError
	errs = validateID(errs, i.ID)
	errs = requireUsername(errs, i.Username)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateID(errs []domain.FieldError, id int64) []domain.FieldError {
	if id <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "must be positive"})
	}
	return errs
}

// requireUsername only rejects a blank username. Lookups with a name that
// could never be stored simply match no rows.
func requireUsername(errs []domain.FieldError, username string) []domain.FieldError {
	if domain.NormalizeUsername(username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	return errs
}

// validateNewUsername applies the column limit to the owner of a new note.
func validateNewUsername(errs []domain.FieldError, username string) []domain.FieldError {
	username = domain.NormalizeUsername(username)
	if username == "" {
		return append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if utf8.RuneCountInString(username) > domain.MaxUsernameLength {
		errs = append(errs, domain.FieldError{Field: "username", Message: "max 50 characters"})
	}
	return errs
}

func validateTitle(errs []domain.FieldError, title string) []domain.FieldError {
	title = strings.TrimSpace(title)
	if title == "" {
		return append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 255 characters"})
	}
	return errs
}
