// Package note implements the notes use cases: listing, creating, updating
// and deleting notes on behalf of a username.
package note

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/notes-app/internal/domain"
)

type noteRepo interface {
	ListByUsername(ctx context.Context, username string) ([]domain.Note, error)
	Create(ctx context.Context, n domain.Note) (domain.Note, error)
	Update(ctx context.Context, n domain.Note) (domain.Note, error)
	Delete(ctx context.Context, id int64, username string) error
}

// EventPublisher delivers note events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.NoteEvent) error
}

// Service provides note management operations.
type Service struct {
	notes   noteRepo
	events  EventPublisher
	metrics *Metrics
	log     *slog.Logger
	now     func() time.Time
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithPublisher sets the publisher used after successful mutations.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = p
		}
	}
}

// WithMetrics enables operation counters.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a new Note service.
func NewService(
	log *slog.Logger,
	notes noteRepo,
	opts ...Option,
) *Service {
	s := &Service{
		notes:  notes,
		events: noopPublisher{},
		log:    log.With("service", "note"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish sends ev and only logs on failure: the mutation is already committed.
func (s *Service) publish(ctx context.Context, typ domain.NoteEventType, n domain.Note) {
	ev := domain.NoteEvent{
		Type:       typ,
		NoteID:     n.ID,
		Username:   n.Username,
		Title:      n.Title,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "publish note event",
			slog.String("event", string(typ)),
			slog.Int64("note_id", n.ID),
			slog.String("error", err.Error()),
		)
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.NoteEvent) error { return nil }
