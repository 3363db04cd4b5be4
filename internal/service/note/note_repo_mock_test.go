package note

import (
	"context"
	"sync"

	"github.com/heartmarshall/notes-app/internal/domain"
)

var _ noteRepo = &noteRepoMock{}

type noteRepoMock struct {
	ListByUsernameFunc func(ctx context.Context, username string) ([]domain.Note, error)
	CreateFunc         func(ctx context.Context, n domain.Note) (domain.Note, error)
	UpdateFunc         func(ctx context.Context, n domain.Note) (domain.Note, error)
	DeleteFunc         func(ctx context.Context, id int64, username string) error

	calls struct {
		ListByUsername []struct {
			Ctx      context.Context
			Username string
		}
		Create []struct {
			Ctx  context.Context
			Note domain.Note
		}
		Update []struct {
			Ctx  context.Context
			Note domain.Note
		}
		Delete []struct {
			Ctx      context.Context
			ID       int64
			Username string
		}
	}
	lockListByUsername sync.RWMutex
	lockCreate         sync.RWMutex
	lockUpdate         sync.RWMutex
	lockDelete         sync.RWMutex
}

func (mock *noteRepoMock) ListByUsername(ctx context.Context, username string) ([]domain.Note, error) {
	if mock.ListByUsernameFunc == nil {
		panic("noteRepoMock.ListByUsernameFunc: method is nil but noteRepo.ListByUsername was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Username string
	}{Ctx: ctx, Username: username}
	mock.lockListByUsername.Lock()
	mock.calls.ListByUsername = append(mock.calls.ListByUsername, callInfo)
	mock.lockListByUsername.Unlock()
	return mock.ListByUsernameFunc(ctx, username)
}

func (mock *noteRepoMock) ListByUsernameCalls() []struct {
	Ctx      context.Context
	Username string
} {
	mock.lockListByUsername.RLock()
	calls := mock.calls.ListByUsername
	mock.lockListByUsername.RUnlock()
	return calls
}

func (mock *noteRepoMock) Create(ctx context.Context, n domain.Note) (domain.Note, error) {
	if mock.CreateFunc == nil {
		panic("noteRepoMock.CreateFunc: method is nil but noteRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Note domain.Note
	}{Ctx: ctx, Note: n}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, n)
}

func (mock *noteRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Note domain.Note
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *noteRepoMock) Update(ctx context.Context, n domain.Note) (domain.Note, error) {
	if mock.UpdateFunc == nil {
		panic("noteRepoMock.UpdateFunc: method is nil but noteRepo.Update was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Note domain.Note
	}{Ctx: ctx, Note: n}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, n)
}

func (mock *noteRepoMock) UpdateCalls() []struct {
	Ctx  context.Context
	Note domain.Note
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *noteRepoMock) Delete(ctx context.Context, id int64, username string) error {
	if mock.DeleteFunc == nil {
		panic("noteRepoMock.DeleteFunc: method is nil but noteRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       int64
		Username string
	}{Ctx: ctx, ID: id, Username: username}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id, username)
}

func (mock *noteRepoMock) DeleteCalls() []struct {
	Ctx      context.Context
	ID       int64
	Username string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
