package webui

import (
	"html/template"
	"time"
)

// viewState is the UI state; exactly one of loggedOut or loggedIn.
type viewState interface {
	isViewState()
}

// loggedOut is shown when no username is stored.
type loggedOut struct {
	Error string
}

// loggedIn is shown for an active username. EditingID refers to a note in
// Notes; it is nil when the form creates a new note.
type loggedIn struct {
	Username  string
	Notes     []noteView
	EditingID *int64
	Form      noteForm
	Error     string
}

func (loggedOut) isViewState() {}
func (loggedIn) isViewState()  {}

// noteForm holds the create/edit form fields.
type noteForm struct {
	Title   string
	Content string
}

type noteView struct {
	ID        int64
	Title     string
	Content   string
	HTML      template.HTML
	CreatedAt time.Time
}

// Editing reports whether the form updates an existing note.
func (s loggedIn) Editing() bool { return s.EditingID != nil }

// EditingNote returns the selected note, if it is still listed.
func (s loggedIn) EditingNote() (noteView, bool) {
	if s.EditingID == nil {
		return noteView{}, false
	}
	for _, n := range s.Notes {
		if n.ID == *s.EditingID {
			return n, true
		}
	}
	return noteView{}, false
}

// resolveEditing drops a selection that no longer matches a listed note and
// pre-fills an empty form from the selected note.
func (s loggedIn) resolveEditing() loggedIn {
	n, ok := s.EditingNote()
	if !ok {
		s.EditingID = nil
		return s
	}
	if s.Form == (noteForm{}) {
		s.Form = noteForm{Title: n.Title, Content: n.Content}
	}
	return s
}

// EditID returns the selected note id, or 0 when creating.
func (s loggedIn) EditID() int64 {
	if s.EditingID == nil {
		return 0
	}
	return *s.EditingID
}
