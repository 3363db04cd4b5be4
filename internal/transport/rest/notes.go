package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/notes-app/internal/domain"
	"github.com/heartmarshall/notes-app/internal/service/note"
)

// Error messages returned to clients.
const (
	msgInvalidBody  = "invalid request body"
	msgBodyTooLarge = "request body too large"
	msgInvalidID    = "invalid note id"
	msgNoteNotFound = "Note not found"
	msgFetchFailed  = "Failed to fetch notes"
	msgCreateFailed = "Failed to create note"
	msgUpdateFailed = "Failed to update note"
	msgDeleteFailed = "Failed to delete note"
	msgNoteDeleted  = "Note deleted"
)

// maxBodyBytes caps note request bodies.
const maxBodyBytes = 1 << 20

// noteService defines the minimal interface needed by NotesHandler.
type noteService interface {
	ListNotes(ctx context.Context, input note.ListNotesInput) ([]domain.Note, error)
	CreateNote(ctx context.Context, input note.CreateNoteInput) (domain.Note, error)
	UpdateNote(ctx context.Context, input note.UpdateNoteInput) (domain.Note, error)
	DeleteNote(ctx context.Context, input note.DeleteNoteInput) error
}

// NotesHandler serves the notes REST endpoints.
type NotesHandler struct {
	svc noteService
	log *slog.Logger
}

// NewNotesHandler creates a NotesHandler.
func NewNotesHandler(svc noteService, logger *slog.Logger) *NotesHandler {
	return &NotesHandler{svc: svc, log: logger.With("handler", "notes")}
}

type noteRequest struct {
	Username string `json:"username"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// NoteResponse is the wire form of a note.
type NoteResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// List handles GET /notes/{username}.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.ListNotes(r.Context(), note.ListNotesInput{
		Username: r.PathValue("username"),
	})
	if err != nil {
		h.handleError(w, r, err, msgFetchFailed)
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, toNoteResponse(n))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /notes.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeNoteRequest(w, r)
	if !ok {
		return
	}

	n, err := h.svc.CreateNote(r.Context(), note.CreateNoteInput{
		Username: req.Username,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		h.handleError(w, r, err, msgCreateFailed)
		return
	}

	writeJSON(w, http.StatusCreated, toNoteResponse(n))
}

// Update handles PUT /notes/{id}.
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseNoteID(w, r)
	if !ok {
		return
	}

	req, ok := decodeNoteRequest(w, r)
	if !ok {
		return
	}

	n, err := h.svc.UpdateNote(r.Context(), note.UpdateNoteInput{
		ID:       id,
		Username: req.Username,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		h.handleError(w, r, err, msgUpdateFailed)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(n))
}

// Delete handles DELETE /notes/{id}?username=.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseNoteID(w, r)
	if !ok {
		return
	}

	err := h.svc.DeleteNote(r.Context(), note.DeleteNoteInput{
		ID:       id,
		Username: r.URL.Query().Get("username"),
	})
	if err != nil {
		h.handleError(w, r, err, msgDeleteFailed)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msgNoteDeleted})
}

// handleError maps service errors to responses. Storage failures are logged
// with their cause and answered with the per-operation message only.
func (h *NotesHandler) handleError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNoteNotFound)
	default:
		h.log.ErrorContext(r.Context(), "internal error",
			slog.String("operation", internalMsg),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, internalMsg)
	}
}

// validationMessage returns the field-level message without operation
// prefixes added while the error travelled up. Store-level constraint
// violations carry no field detail and are reported generically.
func validationMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return "invalid note"
}

func decodeNoteRequest(w http.ResponseWriter, r *http.Request) (noteRequest, bool) {
	var req noteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		} else {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
		}
		return noteRequest{}, false
	}
	return req, true
}

func parseNoteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

func toNoteResponse(n domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Username:  n.Username,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
