package dispatch

import (
	"context"
	"sync"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

var _ tokenSource = &tokenSourceMock{}

type tokenSourceMock struct {
	TokenFunc func(ctx context.Context, role domain.Role) (string, error)

	calls struct {
		Token []struct {
			Ctx  context.Context
			Role domain.Role
		}
	}
	lockToken sync.RWMutex
}

func (mock *tokenSourceMock) Token(ctx context.Context, role domain.Role) (string, error) {
	if mock.TokenFunc == nil {
		panic("tokenSourceMock.TokenFunc: method is nil but tokenSource.Token was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Role domain.Role
	}{Ctx: ctx, Role: role}
	mock.lockToken.Lock()
	mock.calls.Token = append(mock.calls.Token, callInfo)
	mock.lockToken.Unlock()
	return mock.TokenFunc(ctx, role)
}

func (mock *tokenSourceMock) TokenCalls() []struct {
	Ctx  context.Context
	Role domain.Role
} {
	mock.lockToken.RLock()
	calls := mock.calls.Token
	mock.lockToken.RUnlock()
	return calls
}
