// Package webui is the server-rendered notes client. It keeps no state of its
// own beyond the session cookie: every page is rebuilt from the notes API.
package webui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/notes-app/internal/domain"
	"github.com/heartmarshall/notes-app/internal/webui/session"
	"github.com/heartmarshall/notes-app/pkg/ctxutil"
)

// Messages shown when a notes API call fails.
const (
	msgFetchFailed  = "Failed to fetch notes"
	msgSaveFailed   = "Failed to save note"
	msgDeleteFailed = "Failed to delete note"
)

//go:embed templates/*.html
var templateFS embed.FS

type notesAPI interface {
	ListNotes(ctx context.Context, username string) ([]domain.Note, error)
	CreateNote(ctx context.Context, username, title, content string) (domain.Note, error)
	UpdateNote(ctx context.Context, id int64, username, title, content string) (domain.Note, error)
	DeleteNote(ctx context.Context, id int64, username string) error
}

// Handler serves the UI pages and form posts.
type Handler struct {
	api      notesAPI
	sessions *session.Manager
	tmpl     *template.Template
	md       *markdown
	log      *slog.Logger
}

// NewHandler parses the embedded templates and creates a Handler.
func NewHandler(api notesAPI, sessions *session.Manager, logger *slog.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{
		api:      api,
		sessions: sessions,
		tmpl:     tmpl,
		md:       newMarkdown(),
		log:      logger.With("handler", "webui"),
	}, nil
}

// Routes returns the UI mux. It expects the username to be loaded into the
// request context by session.Manager.Load.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("POST /notes", h.Save)
	mux.HandleFunc("POST /notes/{id}/delete", h.Delete)
	return mux
}

// Index renders the login form or the user's notes. ?edit={id} selects a
// note for editing; ids that are not listed are ignored.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	username, ok := ctxutil.UsernameFromCtx(r.Context())
	if !ok {
		h.render(w, r, loggedOut{})
		return
	}

	state := h.load(r.Context(), username)
	if id, err := strconv.ParseInt(r.URL.Query().Get("edit"), 10, 64); err == nil {
		state.EditingID = &id
	}
	h.render(w, r, state.resolveEditing())
}

// Login stores the trimmed username. A blank name changes nothing.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if username := strings.TrimSpace(r.PostFormValue("username")); username != "" {
		h.sessions.Set(w, username)
	}
	redirectHome(w, r)
}

// Logout forgets the username; nothing else is held client side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	redirectHome(w, r)
}

// Save creates a note, or updates the selected one when the form carries an id.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	username, ok := ctxutil.UsernameFromCtx(r.Context())
	if !ok {
		redirectHome(w, r)
		return
	}

	form := noteForm{
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}

	var (
		editingID *int64
		err       error
	)
	if raw := r.PostFormValue("id"); raw != "" {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			err = parseErr
		} else {
			editingID = &id
			_, err = h.api.UpdateNote(r.Context(), id, username, form.Title, form.Content)
		}
	} else {
		_, err = h.api.CreateNote(r.Context(), username, form.Title, form.Content)
	}

	if err != nil {
		h.log.WarnContext(r.Context(), "save note", slog.String("error", err.Error()))
		state := h.load(r.Context(), username)
		state.Form = form
		state.EditingID = editingID
		state = state.resolveEditing()
		state.Error = msgSaveFailed
		h.render(w, r, state)
		return
	}

	redirectHome(w, r)
}

// Delete removes a note and shows the refreshed list.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := ctxutil.UsernameFromCtx(r.Context())
	if !ok {
		redirectHome(w, r)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err == nil {
		err = h.api.DeleteNote(r.Context(), id, username)
	}
	if err != nil {
		h.log.WarnContext(r.Context(), "delete note", slog.String("error", err.Error()))
		state := h.load(r.Context(), username)
		state.Error = msgDeleteFailed
		h.render(w, r, state)
		return
	}

	redirectHome(w, r)
}

// load lists the user's notes. A failed call yields an empty list and the
// fetch error message.
func (h *Handler) load(ctx context.Context, username string) loggedIn {
	state := loggedIn{Username: username}

	notes, err := h.api.ListNotes(ctx, username)
	if err != nil {
		h.log.WarnContext(ctx, "list notes", slog.String("error", err.Error()))
		state.Error = msgFetchFailed
		return state
	}

	state.Notes = make([]noteView, len(notes))
	for i, n := range notes {
		state.Notes[i] = noteView{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			HTML:      h.md.render(n.Content),
			CreatedAt: n.CreatedAt,
		}
	}
	return state
}

type page struct {
	LoggedOut *loggedOut
	LoggedIn  *loggedIn
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, state viewState) {
	var p page
	switch s := state.(type) {
	case loggedOut:
		p.LoggedOut = &s
	case loggedIn:
		p.LoggedIn = &s
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", p); err != nil {
		h.log.ErrorContext(r.Context(), "render page", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
