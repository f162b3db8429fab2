package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"auth-service/internal/auth"
	"auth-service/internal/domain"
)

// LoginWithGitHub exchanges an authorization code for a user account. An
// account matching the resolved email is reused as-is, so repeated logins
// are idempotent; otherwise a new active account is created with an
// unusable random password pair.
//
// Every provider-side failure is converted to domain.ErrExternalLogin at
// this boundary; callers never see provider specifics.
func (s *Service) LoginWithGitHub(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, domain.NewValidationError("code", "required")
	}

	identity, err := s.provider.ResolveIdentity(ctx, code)
	if err != nil {
		s.log.WarnContext(ctx, "external identity resolution failed",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalLogin, err)
	}

	email := domain.NormalizeEmail(identity.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		s.log.InfoContext(ctx, "external login matched existing account",
			slog.String("user_id", user.ID.String()))
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.LoginWithGitHub find user: %w", err)
	}

	user, err = s.registerExternalUser(ctx, identity, email)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user registered via external login",
		slog.String("user_id", user.ID.String()))

	return user, nil
}

// registerExternalUser creates an account from a provider identity. The
// display name is split into first/last; an account with no display name
// falls back to the login handle.
func (s *Service) registerExternalUser(ctx context.Context, identity *auth.ProviderIdentity, email string) (*domain.User, error) {
	first, last := domain.SplitDisplayName(identity.Name)
	if first == "" {
		first = identity.Login
	}

	// The account can never be used for password login, but it carries a
	// digest/salt pair with the same shape as every other record.
	secret, err := auth.UnusablePassword()
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithGitHub unusable password: %w", err)
	}
	digest, salt, err := auth.CreateDigest(secret)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithGitHub hash password: %w", err)
	}

	now := time.Now().UTC()
	newUser := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		FirstName:      first,
		LastName:       last,
		PasswordDigest: digest,
		PasswordSalt:   salt,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	user, err := s.createUser(ctx, newUser)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost a race against a concurrent login with the same email.
			// The winner's account is the right answer.
			existing, findErr := s.users.FindByEmail(ctx, email)
			if findErr == nil {
				return existing, nil
			}
			return nil, fmt.Errorf("auth.LoginWithGitHub: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.LoginWithGitHub: %w", err)
	}

	return user, nil
}
