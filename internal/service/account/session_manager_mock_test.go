package account

import (
	"context"
	"sync"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

var _ sessionManager = &sessionManagerMock{}

type sessionManagerMock struct {
	LoginFunc   func(token string, role domain.Role)
	SignupFunc  func(role domain.Role)
	LogoutFunc  func(ctx context.Context) error
	PersistFunc func(ctx context.Context, role domain.Role, token string) error

	calls struct {
		Login []struct {
			Token string
			Role  domain.Role
		}
		Signup []struct {
			Role domain.Role
		}
		Logout  []struct{}
		Persist []struct {
			Role  domain.Role
			Token string
		}
	}
	lockLogin   sync.RWMutex
	lockSignup  sync.RWMutex
	lockLogout  sync.RWMutex
	lockPersist sync.RWMutex
}

func (mock *sessionManagerMock) Login(token string, role domain.Role) {
	mock.lockLogin.Lock()
	mock.calls.Login = append(mock.calls.Login, struct {
		Token string
		Role  domain.Role
	}{Token: token, Role: role})
	mock.lockLogin.Unlock()
	if mock.LoginFunc != nil {
		mock.LoginFunc(token, role)
	}
}

func (mock *sessionManagerMock) LoginCalls() []struct {
	Token string
	Role  domain.Role
} {
	mock.lockLogin.RLock()
	defer mock.lockLogin.RUnlock()
	return mock.calls.Login
}

func (mock *sessionManagerMock) Signup(role domain.Role) {
	mock.lockSignup.Lock()
	mock.calls.Signup = append(mock.calls.Signup, struct{ Role domain.Role }{Role: role})
	mock.lockSignup.Unlock()
	if mock.SignupFunc != nil {
		mock.SignupFunc(role)
	}
}

func (mock *sessionManagerMock) SignupCalls() []struct{ Role domain.Role } {
	mock.lockSignup.RLock()
	defer mock.lockSignup.RUnlock()
	return mock.calls.Signup
}

func (mock *sessionManagerMock) Logout(ctx context.Context) error {
	mock.lockLogout.Lock()
	mock.calls.Logout = append(mock.calls.Logout, struct{}{})
	mock.lockLogout.Unlock()
	if mock.LogoutFunc == nil {
		return nil
	}
	return mock.LogoutFunc(ctx)
}

func (mock *sessionManagerMock) LogoutCalls() []struct{} {
	mock.lockLogout.RLock()
	defer mock.lockLogout.RUnlock()
	return mock.calls.Logout
}

func (mock *sessionManagerMock) Persist(ctx context.Context, role domain.Role, token string) error {
	mock.lockPersist.Lock()
	mock.calls.Persist = append(mock.calls.Persist, struct {
		Role  domain.Role
		Token string
	}{Role: role, Token: token})
	mock.lockPersist.Unlock()
	if mock.PersistFunc == nil {
		return nil
	}
	return mock.PersistFunc(ctx, role, token)
}

func (mock *sessionManagerMock) PersistCalls() []struct {
	Role  domain.Role
	Token string
} {
	mock.lockPersist.RLock()
	defer mock.lockPersist.RUnlock()
	return mock.calls.Persist
}
