package note

import (
	"context"
	"sync"

	"github.com/heartmarshall/notes-app/internal/domain"
)

var _ EventPublisher = &eventPublisherMock{}

type eventPublisherMock struct {
	PublishFunc func(ctx context.Context, ev domain.NoteEvent) error

	calls struct {
		Publish []struct {
			Ctx   context.Context
			Event domain.NoteEvent
		}
	}
	lockPublish sync.RWMutex
}

func (mock *eventPublisherMock) Publish(ctx context.Context, ev domain.NoteEvent) error {
	if mock.PublishFunc == nil {
		panic("eventPublisherMock.PublishFunc: method is nil but EventPublisher.Publish was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Event domain.NoteEvent
	}{Ctx: ctx, Event: ev}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, ev)
}

func (mock *eventPublisherMock) PublishCalls() []struct {
	Ctx   context.Context
	Event domain.NoteEvent
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
