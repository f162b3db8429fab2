// Package auth orchestrates account registration, password login, external
// login through GitHub and access token issuance.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"auth-service/internal/auth"
	"auth-service/internal/domain"
)

// defaultClaim is granted to every newly registered user.
const defaultClaim = "user"

// userDirectory defines the user persistence interface needed by the service.
type userDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	ClaimsFor(ctx context.Context, userID uuid.UUID) ([]domain.Claim, error)
	GrantClaim(ctx context.Context, userID uuid.UUID, claimName string) error
}

// tokenIssuer defines the access token interface needed by the service.
type tokenIssuer interface {
	IssueToken(user *domain.User, claims []domain.Claim) (*auth.AccessToken, error)
}

// identityProvider defines the external identity interface needed by the service.
type identityProvider interface {
	AuthorizationURL(state string) string
	ResolveIdentity(ctx context.Context, code string) (*auth.ProviderIdentity, error)
}

// txManager defines the transaction manager interface needed by the service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the auth operations.
type Service struct {
	log      *slog.Logger
	users    userDirectory
	issuer   tokenIssuer
	provider identityProvider
	tx       txManager
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userDirectory,
	issuer tokenIssuer,
	provider identityProvider,
	tx txManager,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		issuer:   issuer,
		provider: provider,
		tx:       tx,
	}
}

// UserExists reports whether an account with the given email already exists.
// It returns nil when the email is free and domain.ErrAlreadyExists when it
// is taken. Register does not depend on this check; the database index is
// the authority under concurrency.
func (s *Service) UserExists(ctx context.Context, email string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("auth.UserExists: %w", err)
	}
	return domain.ErrAlreadyExists
}

// CreateAccessToken loads the user's operation claims and issues a signed
// access token carrying them as roles.
func (s *Service) CreateAccessToken(ctx context.Context, user *domain.User) (*auth.AccessToken, error) {
	claims, err := s.users.ClaimsFor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.CreateAccessToken load claims: %w", err)
	}

	token, err := s.issuer.IssueToken(user, claims)
	if err != nil {
		return nil, fmt.Errorf("auth.CreateAccessToken issue: %w", err)
	}

	return token, nil
}

// AuthorizationURL returns the provider redirect URL for starting an
// external login. Pure delegation, no failure path.
func (s *Service) AuthorizationURL(state string) string {
	return s.provider.AuthorizationURL(state)
}

// createUser inserts the user and grants the default claim in one
// transaction. Duplicate emails surface as domain.ErrAlreadyExists from
// the insert itself.
func (s *Service) createUser(ctx context.Context, newUser *domain.User) (*domain.User, error) {
	var created *domain.User

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		user, err := s.users.Create(txCtx, newUser)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		if err := s.users.GrantClaim(txCtx, user.ID, defaultClaim); err != nil {
			return fmt.Errorf("grant default claim: %w", err)
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
