package rest

import (
	"context"
	"sync"

	"auth-service/internal/auth"
	"auth-service/internal/domain"
	authsvc "auth-service/internal/service/auth"
)

var _ authService = &authServiceMock{}

type authServiceMock struct {
	RegisterFunc          func(ctx context.Context, input authsvc.RegisterInput) (*domain.User, error)
	LoginFunc             func(ctx context.Context, input authsvc.LoginInput) (*domain.User, error)
	LoginWithGitHubFunc   func(ctx context.Context, code string) (*domain.User, error)
	UserExistsFunc        func(ctx context.Context, email string) error
	CreateAccessTokenFunc func(ctx context.Context, user *domain.User) (*auth.AccessToken, error)
	AuthorizationURLFunc  func(state string) string

	calls struct {
		Register []struct {
			Ctx   context.Context
			Input authsvc.RegisterInput
		}
		Login []struct {
			Ctx   context.Context
			Input authsvc.LoginInput
		}
		LoginWithGitHub []struct {
			Ctx  context.Context
			Code string
		}
		UserExists []struct {
			Ctx   context.Context
			Email string
		}
		CreateAccessToken []struct {
			Ctx  context.Context
			User *domain.User
		}
		AuthorizationURL []struct {
			State string
		}
	}
	lock sync.RWMutex
}

func (mock *authServiceMock) Register(ctx context.Context, input authsvc.RegisterInput) (*domain.User, error) {
	if mock.RegisterFunc == nil {
		panic("authServiceMock.RegisterFunc: method is nil but authService.Register was just called")
	}
	mock.lock.Lock()
	mock.calls.Register = append(mock.calls.Register, struct {
		Ctx   context.Context
		Input authsvc.RegisterInput
	}{ctx, input})
	mock.lock.Unlock()
	return mock.RegisterFunc(ctx, input)
}

func (mock *authServiceMock) Login(ctx context.Context, input authsvc.LoginInput) (*domain.User, error) {
	if mock.LoginFunc == nil {
		panic("authServiceMock.LoginFunc: method is nil but authService.Login was just called")
	}
	mock.lock.Lock()
	mock.calls.Login = append(mock.calls.Login, struct {
		Ctx   context.Context
		Input authsvc.LoginInput
	}{ctx, input})
	mock.lock.Unlock()
	return mock.LoginFunc(ctx, input)
}

func (mock *authServiceMock) LoginWithGitHub(ctx context.Context, code string) (*domain.User, error) {
	if mock.LoginWithGitHubFunc == nil {
		panic("authServiceMock.LoginWithGitHubFunc: method is nil but authService.LoginWithGitHub was just called")
	}
	mock.lock.Lock()
	mock.calls.LoginWithGitHub = append(mock.calls.LoginWithGitHub, struct {
		Ctx  context.Context
		Code string
	}{ctx, code})
	mock.lock.Unlock()
	return mock.LoginWithGitHubFunc(ctx, code)
}

func (mock *authServiceMock) UserExists(ctx context.Context, email string) error {
	if mock.UserExistsFunc == nil {
		panic("authServiceMock.UserExistsFunc: method is nil but authService.UserExists was just called")
	}
	mock.lock.Lock()
	mock.calls.UserExists = append(mock.calls.UserExists, struct {
		Ctx   context.Context
		Email string
	}{ctx, email})
	mock.lock.Unlock()
	return mock.UserExistsFunc(ctx, email)
}

func (mock *authServiceMock) CreateAccessToken(ctx context.Context, user *domain.User) (*auth.AccessToken, error) {
	if mock.CreateAccessTokenFunc == nil {
		panic("authServiceMock.CreateAccessTokenFunc: method is nil but authService.CreateAccessToken was just called")
	}
	mock.lock.Lock()
	mock.calls.CreateAccessToken = append(mock.calls.CreateAccessToken, struct {
		Ctx  context.Context
		User *domain.User
	}{ctx, user})
	mock.lock.Unlock()
	return mock.CreateAccessTokenFunc(ctx, user)
}

func (mock *authServiceMock) AuthorizationURL(state string) string {
	if mock.AuthorizationURLFunc == nil {
		panic("authServiceMock.AuthorizationURLFunc: method is nil but authService.AuthorizationURL was just called")
	}
	mock.lock.Lock()
	mock.calls.AuthorizationURL = append(mock.calls.AuthorizationURL, struct {
		State string
	}{state})
	mock.lock.Unlock()
	return mock.AuthorizationURLFunc(state)
}

func (mock *authServiceMock) RegisterCalls() []struct {
	Ctx   context.Context
	Input authsvc.RegisterInput
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Register
}

func (mock *authServiceMock) LoginWithGitHubCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.LoginWithGitHub
}
