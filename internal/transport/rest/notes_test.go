package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/notes-app/internal/domain"
	"github.com/heartmarshall/notes-app/internal/service/note"
)

type noteServiceMock struct {
	ListNotesFunc  func(ctx context.Context, input note.ListNotesInput) ([]domain.Note, error)
	CreateNoteFunc func(ctx context.Context, input note.CreateNoteInput) (domain.Note, error)
	UpdateNoteFunc func(ctx context.Context, input note.UpdateNoteInput) (domain.Note, error)
	DeleteNoteFunc func(ctx context.Context, input note.DeleteNoteInput) error
}

func (m *noteServiceMock) ListNotes(ctx context.Context, input note.ListNotesInput) ([]domain.Note, error) {
	return m.ListNotesFunc(ctx, input)
}

func (m *noteServiceMock) CreateNote(ctx context.Context, input note.CreateNoteInput) (domain.Note, error) {
	return m.CreateNoteFunc(ctx, input)
}

func (m *noteServiceMock) UpdateNote(ctx context.Context, input note.UpdateNoteInput) (domain.Note, error) {
	return m.UpdateNoteFunc(ctx, input)
}

func (m *noteServiceMock) DeleteNote(ctx context.Context, input note.DeleteNoteInput) error {
	return m.DeleteNoteFunc(ctx, input)
}

var testTime = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

func newNotesHandler(svc *noteServiceMock) *NotesHandler {
	return NewNotesHandler(svc, slog.New(slog.DiscardHandler))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestNotesHandler_List(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		ListNotesFunc: func(_ context.Context, input note.ListNotesInput) ([]domain.Note, error) {
			assert.Equal(t, "alice", input.Username)
			return []domain.Note{{
				ID: 1, Username: "alice", Title: "Groceries", Content: "Milk",
				CreatedAt: testTime, UpdatedAt: testTime,
			}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/notes/alice", nil)
	req.SetPathValue("username", "alice")
	rec := httptest.NewRecorder()

	newNotesHandler(svc).List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, float64(1), body[0]["id"])
	assert.Equal(t, "alice", body[0]["username"])
	assert.Equal(t, "Groceries", body[0]["title"])
	assert.Equal(t, "Milk", body[0]["content"])
	assert.Equal(t, "2026-05-01T09:30:00Z", body[0]["created_at"])
	assert.Equal(t, "2026-05-01T09:30:00Z", body[0]["updated_at"])
}

func TestNotesHandler_List_EmptyIsArray(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		ListNotesFunc: func(context.Context, note.ListNotesInput) ([]domain.Note, error) {
			return []domain.Note{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/notes/bob", nil)
	req.SetPathValue("username", "bob")
	rec := httptest.NewRecorder()

	newNotesHandler(svc).List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestNotesHandler_List_StorageError(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		ListNotesFunc: func(context.Context, note.ListNotesInput) ([]domain.Note, error) {
			return nil, fmt.Errorf("list notes: %w: dial tcp: refused", domain.ErrStorage)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/notes/alice", nil)
	req.SetPathValue("username", "alice")
	rec := httptest.NewRecorder()

	newNotesHandler(svc).List(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch notes", decodeError(t, rec))
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestNotesHandler_Create(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		CreateNoteFunc: func(_ context.Context, input note.CreateNoteInput) (domain.Note, error) {
			assert.Equal(t, note.CreateNoteInput{Username: "alice", Title: "T", Content: "C"}, input)
			return domain.Note{ID: 10, Username: "alice", Title: "T", Content: "C", CreatedAt: testTime, UpdatedAt: testTime}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/notes",
		strings.NewReader(`{"username":"alice","title":"T","content":"C"}`))
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got NoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, "T", got.Title)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestNotesHandler_Create_NullContent(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		CreateNoteFunc: func(_ context.Context, input note.CreateNoteInput) (domain.Note, error) {
			assert.Empty(t, input.Content)
			return domain.Note{ID: 1, Username: input.Username, Title: input.Title}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/notes",
		strings.NewReader(`{"username":"alice","title":"T","content":null}`))
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"content":""`)
}

func TestNotesHandler_Create_InvalidBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	newNotesHandler(&noteServiceMock{}).Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeError(t, rec))
}

func TestNotesHandler_Create_BodyTooLarge(t *testing.T) {
	t.Parallel()

	body := `{"username":"alice","title":"T","content":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newNotesHandler(&noteServiceMock{}).Create(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body too large", decodeError(t, rec))
}

func TestNotesHandler_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		CreateNoteFunc: func(context.Context, note.CreateNoteInput) (domain.Note, error) {
			return domain.Note{}, domain.NewValidationError("title", "required")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"username":"alice"}`))
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title: required", decodeError(t, rec))
}

func TestNotesHandler_Create_StoreConstraintIsBadRequest(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		CreateNoteFunc: func(context.Context, note.CreateNoteInput) (domain.Note, error) {
			return domain.Note{}, fmt.Errorf("create note: note 0: %w", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"username":"a","title":"t"}`))
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid note", decodeError(t, rec))
}

func TestNotesHandler_Create_StorageError(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		CreateNoteFunc: func(context.Context, note.CreateNoteInput) (domain.Note, error) {
			return domain.Note{}, errors.New("pool closed")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"username":"a","title":"t"}`))
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Create(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to create note", decodeError(t, rec))
	assert.NotContains(t, rec.Body.String(), "pool closed")
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestNotesHandler_Update(t *testing.T) {
	t.Parallel()

	later := testTime.Add(time.Minute)
	svc := &noteServiceMock{
		UpdateNoteFunc: func(_ context.Context, input note.UpdateNoteInput) (domain.Note, error) {
			assert.Equal(t, note.UpdateNoteInput{ID: 5, Username: "alice", Title: "T2", Content: "C2"}, input)
			return domain.Note{ID: 5, Username: "alice", Title: "T2", Content: "C2", CreatedAt: testTime, UpdatedAt: later}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/notes/5",
		strings.NewReader(`{"username":"alice","title":"T2","content":"C2"}`))
	req.SetPathValue("id", "5")
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got NoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "T2", got.Title)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestNotesHandler_Update_NotFound(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		UpdateNoteFunc: func(context.Context, note.UpdateNoteInput) (domain.Note, error) {
			return domain.Note{}, fmt.Errorf("update note: note 5: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/notes/5",
		strings.NewReader(`{"username":"mallory","title":"x"}`))
	req.SetPathValue("id", "5")
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Update(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Note not found", decodeError(t, rec))
}

func TestNotesHandler_Update_InvalidID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPut, "/notes/abc", strings.NewReader(`{}`))
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()

	newNotesHandler(&noteServiceMock{}).Update(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid note id", decodeError(t, rec))
}

func TestNotesHandler_Update_BodyTooLarge(t *testing.T) {
	t.Parallel()

	body := `{"username":"alice","title":"T","content":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPut, "/notes/1", strings.NewReader(body))
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	newNotesHandler(&noteServiceMock{}).Update(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestNotesHandler_Update_StorageError(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		UpdateNoteFunc: func(context.Context, note.UpdateNoteInput) (domain.Note, error) {
			return domain.Note{}, domain.ErrStorage
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/notes/5", strings.NewReader(`{"username":"a","title":"t"}`))
	req.SetPathValue("id", "5")
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Update(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to update note", decodeError(t, rec))
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestNotesHandler_Delete(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		DeleteNoteFunc: func(_ context.Context, input note.DeleteNoteInput) error {
			assert.Equal(t, note.DeleteNoteInput{ID: 7, Username: "alice"}, input)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/notes/7?username=alice", nil)
	req.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Note deleted"}`, rec.Body.String())
}

func TestNotesHandler_Delete_NotFound(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		DeleteNoteFunc: func(context.Context, note.DeleteNoteInput) error {
			return domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/notes/7?username=bob", nil)
	req.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Delete(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Note not found", decodeError(t, rec))
}

func TestNotesHandler_Delete_StorageError(t *testing.T) {
	t.Parallel()

	svc := &noteServiceMock{
		DeleteNoteFunc: func(context.Context, note.DeleteNoteInput) error {
			return context.DeadlineExceeded
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/notes/7?username=bob", nil)
	req.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	newNotesHandler(svc).Delete(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to delete note", decodeError(t, rec))
}
