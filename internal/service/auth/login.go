package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"auth-service/internal/auth"
	"auth-service/internal/domain"
)

// Login authenticates a user with email + password. An unknown email fails
// with domain.ErrNotFound and a wrong password with
// domain.ErrInvalidCredentials; the two cases stay distinguishable so the
// transport layer decides how much to reveal.
func (s *Service) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("auth.Login find user: %w", err)
	}

	if !auth.VerifyDigest(input.Password, user.PasswordDigest, user.PasswordSalt) {
		return nil, domain.ErrInvalidCredentials
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return user, nil
}
