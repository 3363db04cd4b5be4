// Package notesapi is an HTTP client for the notes REST API.
package notesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/notes-app/internal/domain"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notes api: %d %s", e.Status, e.Message)
}

// Unwrap maps the status to the matching domain sentinel so callers can use
// errors.Is without knowing about HTTP.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return domain.ErrValidation
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return domain.ErrStorage
	}
}

// Client talks to the notes API rooted at a base URL.
type Client struct {
	base *url.URL
	http *http.Client
}

// New creates a Client for baseURL with a per-request timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse notes api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("notes api url %q must be absolute", baseURL)
	}
	return &Client{base: u, http: &http.Client{Timeout: timeout}}, nil
}

type noteBody struct {
	Username string `json:"username"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

type noteJSON struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n noteJSON) toDomain() domain.Note {
	out := domain.Note{
		ID:        n.ID,
		Username:  n.Username,
		Title:     n.Title,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.Content != nil {
		out.Content = *n.Content
	}
	return out
}

// ListNotes returns the notes of username, newest first.
func (c *Client) ListNotes(ctx context.Context, username string) ([]domain.Note, error) {
	var raw []noteJSON
	if err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(username), nil, nil, &raw); err != nil {
		return nil, err
	}
	notes := make([]domain.Note, len(raw))
	for i, n := range raw {
		notes[i] = n.toDomain()
	}
	return notes, nil
}

// CreateNote creates a note owned by username.
func (c *Client) CreateNote(ctx context.Context, username, title, content string) (domain.Note, error) {
	var out noteJSON
	body := noteBody{Username: username, Title: title, Content: content}
	if err := c.do(ctx, http.MethodPost, "/notes", nil, body, &out); err != nil {
		return domain.Note{}, err
	}
	return out.toDomain(), nil
}

// UpdateNote replaces title and content of note id owned by username.
func (c *Client) UpdateNote(ctx context.Context, id int64, username, title, content string) (domain.Note, error) {
	var out noteJSON
	body := noteBody{Username: username, Title: title, Content: content}
	if err := c.do(ctx, http.MethodPut, "/notes/"+strconv.FormatInt(id, 10), nil, body, &out); err != nil {
		return domain.Note{}, err
	}
	return out.toDomain(), nil
}

// DeleteNote deletes note id owned by username.
func (c *Client) DeleteNote(ctx context.Context, id int64, username string) error {
	query := url.Values{"username": {username}}
	return c.do(ctx, http.MethodDelete, "/notes/"+strconv.FormatInt(id, 10), query, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u, err := url.Parse(c.base.String() + path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	u.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
