package webui

import (
	"context"
	"sync"

	"github.com/heartmarshall/notes-app/internal/domain"
)

var _ notesAPI = &notesAPIMock{}

type notesAPIMock struct {
	ListNotesFunc  func(ctx context.Context, username string) ([]domain.Note, error)
	CreateNoteFunc func(ctx context.Context, username, title, content string) (domain.Note, error)
	UpdateNoteFunc func(ctx context.Context, id int64, username, title, content string) (domain.Note, error)
	DeleteNoteFunc func(ctx context.Context, id int64, username string) error

	calls struct {
		ListNotes []struct {
			Username string
		}
		CreateNote []struct {
			Username, Title, Content string
		}
		UpdateNote []struct {
			ID                       int64
			Username, Title, Content string
		}
		DeleteNote []struct {
			ID       int64
			Username string
		}
	}
	lockListNotes  sync.RWMutex
	lockCreateNote sync.RWMutex
	lockUpdateNote sync.RWMutex
	lockDeleteNote sync.RWMutex
}

func (m *notesAPIMock) ListNotes(ctx context.Context, username string) ([]domain.Note, error) {
	if m.ListNotesFunc == nil {
		panic("notesAPIMock.ListNotesFunc: method is nil but notesAPI.ListNotes was just called")
	}
	m.lockListNotes.Lock()
	m.calls.ListNotes = append(m.calls.ListNotes, struct{ Username string }{username})
	m.lockListNotes.Unlock()
	return m.ListNotesFunc(ctx, username)
}

func (m *notesAPIMock) ListNotesCalls() []struct{ Username string } {
	m.lockListNotes.RLock()
	defer m.lockListNotes.RUnlock()
	return m.calls.ListNotes
}

func (m *notesAPIMock) CreateNote(ctx context.Context, username, title, content string) (domain.Note, error) {
	if m.CreateNoteFunc == nil {
		panic("notesAPIMock.CreateNoteFunc: method is nil but notesAPI.CreateNote was just called")
	}
	m.lockCreateNote.Lock()
	m.calls.CreateNote = append(m.calls.CreateNote, struct{ Username, Title, Content string }{username, title, content})
	m.lockCreateNote.Unlock()
	return m.CreateNoteFunc(ctx, username, title, content)
}

func (m *notesAPIMock) CreateNoteCalls() []struct{ Username, Title, Content string } {
	m.lockCreateNote.RLock()
	defer m.lockCreateNote.RUnlock()
	return m.calls.CreateNote
}

func (m *notesAPIMock) UpdateNote(ctx context.Context, id int64, username, title, content string) (domain.Note, error) {
	if m.UpdateNoteFunc == nil {
		panic("notesAPIMock.UpdateNoteFunc: method is nil but notesAPI.UpdateNote was just called")
	}
	m.lockUpdateNote.Lock()
	m.calls.UpdateNote = append(m.calls.UpdateNote, struct {
		ID                       int64
		Username, Title, Content string
	}{id, username, title, content})
	m.lockUpdateNote.Unlock()
	return m.UpdateNoteFunc(ctx, id, username, title, content)
}

func (m *notesAPIMock) UpdateNoteCalls() []struct {
	ID                       int64
	Username, Title, Content string
} {
	m.lockUpdateNote.RLock()
	defer m.lockUpdateNote.RUnlock()
	return m.calls.UpdateNote
}

func (m *notesAPIMock) DeleteNote(ctx context.Context, id int64, username string) error {
	if m.DeleteNoteFunc == nil {
		panic("notesAPIMock.DeleteNoteFunc: method is nil but notesAPI.DeleteNote was just called")
	}
	m.lockDeleteNote.Lock()
	m.calls.DeleteNote = append(m.calls.DeleteNote, struct {
		ID       int64
		Username string
	}{id, username})
	m.lockDeleteNote.Unlock()
	return m.DeleteNoteFunc(ctx, id, username)
}

func (m *notesAPIMock) DeleteNoteCalls() []struct {
	ID       int64
	Username string
} {
	m.lockDeleteNote.RLock()
	defer m.lockDeleteNote.RUnlock()
	return m.calls.DeleteNote
}
