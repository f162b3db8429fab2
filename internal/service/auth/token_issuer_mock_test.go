package auth

import (
	"sync"

	"auth-service/internal/auth"
	"auth-service/internal/domain"
)

var _ tokenIssuer = &tokenIssuerMock{}

type tokenIssuerMock struct {
	IssueTokenFunc func(user *domain.User, claims []domain.Claim) (*auth.AccessToken, error)

	calls struct {
		IssueToken []struct {
			User   *domain.User
			Claims []domain.Claim
		}
	}
	lockIssueToken sync.RWMutex
}

func (mock *tokenIssuerMock) IssueToken(user *domain.User, claims []domain.Claim) (*auth.AccessToken, error) {
	if mock.IssueTokenFunc == nil {
		panic("tokenIssuerMock.IssueTokenFunc: method is nil but tokenIssuer.IssueToken was just called")
	}
	callInfo := struct {
		User   *domain.User
		Claims []domain.Claim
	}{User: user, Claims: claims}
	mock.lockIssueToken.Lock()
	mock.calls.IssueToken = append(mock.calls.IssueToken, callInfo)
	mock.lockIssueToken.Unlock()
	return mock.IssueTokenFunc(user, claims)
}

func (mock *tokenIssuerMock) IssueTokenCalls() []struct {
	User   *domain.User
	Claims []domain.Claim
} {
	mock.lockIssueToken.RLock()
	calls := mock.calls.IssueToken
	mock.lockIssueToken.RUnlock()
	return calls
}
