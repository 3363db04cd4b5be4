package domain

import (
	"strings"
	"time"
)

// Column limits of the notes table.
const (
	MaxUsernameLength = 50
	MaxTitleLength    = 255
)

// Note is a short text note owned by exactly one username.
// Ownership is fixed at creation and never transferred.
type Note struct {
	ID        int64
	Username  string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the note belongs to username.
func (n Note) OwnedBy(username string) bool {
	return n.Username == username
}

// NormalizeUsername trims surrounding whitespace. Usernames are otherwise
// stored and compared exactly as entered.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
