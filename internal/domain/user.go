package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an application user account. The password digest and salt
// are always set together: accounts created through the external identity
// provider get a random pair that can never be used for password login, so
// every record has the same shape.
type User struct {
	ID             uuid.UUID
	Email          string
	FirstName      string
	LastName       string
	PasswordDigest []byte
	PasswordSalt   []byte
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName returns the display name composed from first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Claim is a named permission granted to a user, consumed by the token
// issuer when building access tokens.
type Claim struct {
	ID   int32
	Name string
}

// ClaimNames extracts the claim names in order.
func ClaimNames(claims []Claim) []string {
	names := make([]string, len(claims))
	for i, c := range claims {
		names[i] = c.Name
	}
	return names
}

// NormalizeEmail prepares an email address for storage and comparison.
// Email matching is case-insensitive throughout the service.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SplitDisplayName splits a provider display name into first and last name:
// the first token becomes the first name, the remainder the last name.
// An empty display name yields two empty strings.
func SplitDisplayName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.Fields(name)
	return parts[0], strings.Join(parts[1:], " ")
}
