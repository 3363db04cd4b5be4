package domain

import "time"

// NoteEventType identifies a note mutation.
type NoteEventType string

const (
	NoteCreated NoteEventType = "note.created"
	NoteUpdated NoteEventType = "note.updated"
	NoteDeleted NoteEventType = "note.deleted"
)

// NoteEvent is emitted after a note mutation has been committed.
type NoteEvent struct {
	Type       NoteEventType `json:"type"`
	NoteID     int64         `json:"note_id"`
	Username   string        `json:"username"`
	Title      string        `json:"title,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
