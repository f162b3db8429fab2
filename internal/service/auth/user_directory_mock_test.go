package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"auth-service/internal/domain"
)

var _ userDirectory = &userDirectoryMock{}

type userDirectoryMock struct {
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc      func(ctx context.Context, user *domain.User) (*domain.User, error)
	ClaimsForFunc   func(ctx context.Context, userID uuid.UUID) ([]domain.Claim, error)
	GrantClaimFunc  func(ctx context.Context, userID uuid.UUID, claimName string) error

	calls struct {
		FindByEmail []struct {
			Email string
		}
		Create []struct {
			User *domain.User
		}
		ClaimsFor []struct {
			UserID uuid.UUID
		}
		GrantClaim []struct {
			UserID    uuid.UUID
			ClaimName string
		}
	}
	lockFindByEmail sync.RWMutex
	lockCreate      sync.RWMutex
	lockClaimsFor   sync.RWMutex
	lockGrantClaim  sync.RWMutex
}

func (mock *userDirectoryMock) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if mock.FindByEmailFunc == nil {
		panic("userDirectoryMock.FindByEmailFunc: method is nil but userDirectory.FindByEmail was just called")
	}
	callInfo := struct{ Email string }{Email: email}
	mock.lockFindByEmail.Lock()
	mock.calls.FindByEmail = append(mock.calls.FindByEmail, callInfo)
	mock.lockFindByEmail.Unlock()
	return mock.FindByEmailFunc(ctx, email)
}

func (mock *userDirectoryMock) FindByEmailCalls() []struct{ Email string } {
	mock.lockFindByEmail.RLock()
	calls := mock.calls.FindByEmail
	mock.lockFindByEmail.RUnlock()
	return calls
}

func (mock *userDirectoryMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userDirectoryMock.CreateFunc: method is nil but userDirectory.Create was just called")
	}
	callInfo := struct{ User *domain.User }{User: user}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, user)
}

func (mock *userDirectoryMock) CreateCalls() []struct{ User *domain.User } {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *userDirectoryMock) ClaimsFor(ctx context.Context, userID uuid.UUID) ([]domain.Claim, error) {
	if mock.ClaimsForFunc == nil {
		panic("userDirectoryMock.ClaimsForFunc: method is nil but userDirectory.ClaimsFor was just called")
	}
	callInfo := struct{ UserID uuid.UUID }{UserID: userID}
	mock.lockClaimsFor.Lock()
	mock.calls.ClaimsFor = append(mock.calls.ClaimsFor, callInfo)
	mock.lockClaimsFor.Unlock()
	return mock.ClaimsForFunc(ctx, userID)
}

func (mock *userDirectoryMock) ClaimsForCalls() []struct{ UserID uuid.UUID } {
	mock.lockClaimsFor.RLock()
	calls := mock.calls.ClaimsFor
	mock.lockClaimsFor.RUnlock()
	return calls
}

func (mock *userDirectoryMock) GrantClaim(ctx context.Context, userID uuid.UUID, claimName string) error {
	if mock.GrantClaimFunc == nil {
		panic("userDirectoryMock.GrantClaimFunc: method is nil but userDirectory.GrantClaim was just called")
	}
	callInfo := struct {
		UserID    uuid.UUID
		ClaimName string
	}{UserID: userID, ClaimName: claimName}
	mock.lockGrantClaim.Lock()
	mock.calls.GrantClaim = append(mock.calls.GrantClaim, callInfo)
	mock.lockGrantClaim.Unlock()
	return mock.GrantClaimFunc(ctx, userID, claimName)
}

func (mock *userDirectoryMock) GrantClaimCalls() []struct {
	UserID    uuid.UUID
	ClaimName string
} {
	mock.lockGrantClaim.RLock()
	calls := mock.calls.GrantClaim
	mock.lockGrantClaim.RUnlock()
	return calls
}
