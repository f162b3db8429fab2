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

// Register creates a new password account. Email uniqueness is enforced by
// the database, not a pre-check, so two concurrent registrations of the
// same address resolve to exactly one account and one ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	digest, salt, err := auth.CreateDigest(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	now := time.Now().UTC()
	newUser := &domain.User{
		ID:             uuid.New(),
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PasswordDigest: digest,
		PasswordSalt:   salt,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	user, err := s.createUser(ctx, newUser)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()))

	return user, nil
}
