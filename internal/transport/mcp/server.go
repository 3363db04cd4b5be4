// Package mcp exposes the notes service as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/heartmarshall/notes-app/internal/domain"
	"github.com/heartmarshall/notes-app/internal/service/note"
)

type noteService interface {
	ListNotes(ctx context.Context, input note.ListNotesInput) ([]domain.Note, error)
	CreateNote(ctx context.Context, input note.CreateNoteInput) (domain.Note, error)
	UpdateNote(ctx context.Context, input note.UpdateNoteInput) (domain.Note, error)
	DeleteNote(ctx context.Context, input note.DeleteNoteInput) error
}

// NewServer creates an MCP server with tools for note operations.
// Every tool takes the acting username explicitly, as the REST API does.
func NewServer(name, version string, svc noteService) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("list_notes",
			mcp.WithDescription("List all notes of a user, newest first."),
			mcp.WithString("username",
				mcp.Required(),
				mcp.Description("Owner of the notes"),
			),
		),
		handleListNotes(svc),
	)

	s.AddTool(
		mcp.NewTool("create_note",
			mcp.WithDescription("Create a note for a user and return it with its id."),
			mcp.WithString("username",
				mcp.Required(),
				mcp.Description("Owner of the new note (max 50 characters)"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Non-empty title (max 255 characters)"),
			),
			mcp.WithString("content",
				mcp.Description("Optional note body"),
			),
		),
		handleCreateNote(svc),
	)

	s.AddTool(
		mcp.NewTool("update_note",
			mcp.WithDescription("Replace the title and content of a note the user owns."),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Note id"),
			),
			mcp.WithString("username",
				mcp.Required(),
				mcp.Description("Owner of the note"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("New title"),
			),
			mcp.WithString("content",
				mcp.Description("New body; omitted means empty"),
			),
		),
		handleUpdateNote(svc),
	)

	s.AddTool(
		mcp.NewTool("delete_note",
			mcp.WithDescription("Delete a note the user owns."),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Note id"),
			),
			mcp.WithString("username",
				mcp.Required(),
				mcp.Description("Owner of the note"),
			),
		),
		handleDeleteNote(svc),
	)

	return s
}

// NoteResult represents a note in tool responses.
type NoteResult struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func handleListNotes(svc noteService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		username, err := req.RequireString("username")
		if err != nil {
			return mcp.NewToolResultError("username is required"), nil
		}

		notes, err := svc.ListNotes(ctx, note.ListNotesInput{Username: username})
		if err != nil {
			return toolError(err, "Failed to fetch notes"), nil
		}

		results := make([]NoteResult, len(notes))
		for i, n := range notes {
			results[i] = toResult(n)
		}
		return jsonResult(results), nil
	}
}

func handleCreateNote(svc noteService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		username, err := req.RequireString("username")
		if err != nil {
			return mcp.NewToolResultError("username is required"), nil
		}
		title, err := req.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError("title is required"), nil
		}

		n, err := svc.CreateNote(ctx, note.CreateNoteInput{
			Username: username,
			Title:    title,
			Content:  req.GetString("content", ""),
		})
		if err != nil {
			return toolError(err, "Failed to create note"), nil
		}
		return jsonResult(toResult(n)), nil
	}
}

func handleUpdateNote(svc noteService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, errMsg := noteID(req)
		if errMsg != "" {
			return mcp.NewToolResultError(errMsg), nil
		}
		username, err := req.RequireString("username")
		if err != nil {
			return mcp.NewToolResultError("username is required"), nil
		}
		title, err := req.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError("title is required"), nil
		}

		n, err := svc.UpdateNote(ctx, note.UpdateNoteInput{
			ID:       id,
			Username: username,
			Title:    title,
			Content:  req.GetString("content", ""),
		})
		if err != nil {
			return toolError(err, "Failed to update note"), nil
		}
		return jsonResult(toResult(n)), nil
	}
}

func handleDeleteNote(svc noteService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, errMsg := noteID(req)
		if errMsg != "" {
			return mcp.NewToolResultError(errMsg), nil
		}
		username, err := req.RequireString("username")
		if err != nil {
			return mcp.NewToolResultError("username is required"), nil
		}

		if err := svc.DeleteNote(ctx, note.DeleteNoteInput{ID: id, Username: username}); err != nil {
			return toolError(err, "Failed to delete note"), nil
		}
		return mcp.NewToolResultText("Note deleted"), nil
	}
}

// noteID reads the "id" argument. JSON numbers arrive as floats, so a
// fractional value is rejected rather than truncated.
func noteID(req mcp.CallToolRequest) (int64, string) {
	v, err := req.RequireFloat("id")
	if err != nil {
		return 0, "id is required"
	}
	if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, "id must be an integer"
	}
	return int64(v), ""
}

// toolError reports failures as tool results using the same messages as the
// REST API, so storage details never reach the caller.
func toolError(err error, internalMsg string) *mcp.CallToolResult {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return mcp.NewToolResultError(ve.Error())
	case errors.Is(err, domain.ErrValidation):
		return mcp.NewToolResultError("invalid note")
	case errors.Is(err, domain.ErrNotFound):
		return mcp.NewToolResultError("Note not found")
	default:
		return mcp.NewToolResultError(internalMsg)
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(data))
}

func toResult(n domain.Note) NoteResult {
	return NoteResult{
		ID:        n.ID,
		Username:  n.Username,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
