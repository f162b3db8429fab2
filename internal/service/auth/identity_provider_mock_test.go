package auth

import (
	"context"
	"sync"

	"auth-service/internal/auth"
)

var _ identityProvider = &identityProviderMock{}

type identityProviderMock struct {
	AuthorizationURLFunc func(state string) string
	ResolveIdentityFunc  func(ctx context.Context, code string) (*auth.ProviderIdentity, error)

	calls struct {
		AuthorizationURL []struct {
			State string
		}
		ResolveIdentity []struct {
			Code string
		}
	}
	lockAuthorizationURL sync.RWMutex
	lockResolveIdentity  sync.RWMutex
}

func (mock *identityProviderMock) AuthorizationURL(state string) string {
	if mock.AuthorizationURLFunc == nil {
		panic("identityProviderMock.AuthorizationURLFunc: method is nil but identityProvider.AuthorizationURL was just called")
	}
	callInfo := struct{ State string }{State: state}
	mock.lockAuthorizationURL.Lock()
	mock.calls.AuthorizationURL = append(mock.calls.AuthorizationURL, callInfo)
	mock.lockAuthorizationURL.Unlock()
	return mock.AuthorizationURLFunc(state)
}

func (mock *identityProviderMock) AuthorizationURLCalls() []struct{ State string } {
	mock.lockAuthorizationURL.RLock()
	calls := mock.calls.AuthorizationURL
	mock.lockAuthorizationURL.RUnlock()
	return calls
}

func (mock *identityProviderMock) ResolveIdentity(ctx context.Context, code string) (*auth.ProviderIdentity, error) {
	if mock.ResolveIdentityFunc == nil {
		panic("identityProviderMock.ResolveIdentityFunc: method is nil but identityProvider.ResolveIdentity was just called")
	}
	callInfo := struct{ Code string }{Code: code}
	mock.lockResolveIdentity.Lock()
	mock.calls.ResolveIdentity = append(mock.calls.ResolveIdentity, callInfo)
	mock.lockResolveIdentity.Unlock()
	return mock.ResolveIdentityFunc(ctx, code)
}

func (mock *identityProviderMock) ResolveIdentityCalls() []struct{ Code string } {
	mock.lockResolveIdentity.RLock()
	calls := mock.calls.ResolveIdentity
	mock.lockResolveIdentity.RUnlock()
	return calls
}
