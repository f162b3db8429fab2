// Package user implements the user directory using PostgreSQL.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"auth-service/internal/adapter/postgres"
	"auth-service/internal/domain"
)

// psql builds queries with PostgreSQL-style positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"id", "email", "first_name", "last_name",
	"password_digest", "password_salt", "active",
	"created_at", "updated_at",
}

// Repo provides user and operation-claim persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// FindByEmail returns the user with the given email, matched
// case-insensitively. The email is normalized before comparison so
// "A@B.com" and "a@b.com" resolve to the same account.
func (r *Repo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"LOWER(email)": domain.NormalizeEmail(email)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u domain.User
	err = q.QueryRow(ctx, sql, args...).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName,
		&u.PasswordDigest, &u.PasswordSalt, &u.Active,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "user")
	}

	return &u, nil
}

// Create inserts a new user. Uniqueness of the email is enforced by the
// database: a concurrent insert of the same normalized email loses the
// race and surfaces as domain.ErrAlreadyExists, there is no pre-check.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.
		Insert("users").
		Columns(userColumns...).
		Values(
			u.ID, u.Email, u.FirstName, u.LastName,
			u.PasswordDigest, u.PasswordSalt, u.Active,
			u.CreatedAt, u.UpdatedAt,
		).
		Suffix("RETURNING " + returningList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out domain.User
	err = q.QueryRow(ctx, sql, args...).Scan(
		&out.ID, &out.Email, &out.FirstName, &out.LastName,
		&out.PasswordDigest, &out.PasswordSalt, &out.Active,
		&out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "user")
	}

	return &out, nil
}

// ClaimsFor returns the operation claims granted to the given user,
// ordered by name. A user with no grants gets an empty slice, not an
// error.
func (r *Repo) ClaimsFor(ctx context.Context, userID uuid.UUID) ([]domain.Claim, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.
		Select("oc.id", "oc.name").
		From("operation_claims oc").
		Join("user_operation_claims uoc ON uoc.operation_claim_id = oc.id").
		Where(sq.Eq{"uoc.user_id": userID}).
		OrderBy("oc.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "operation_claim")
	}
	defer rows.Close()

	claims := make([]domain.Claim, 0)
	for rows.Next() {
		var c domain.Claim
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, postgres.MapError(err, "operation_claim")
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "operation_claim")
	}

	return claims, nil
}

// GrantClaim grants the named operation claim to the user. Granting an
// already-granted claim is a no-op, and granting an unknown claim name
// fails with domain.ErrNotFound.
func (r *Repo) GrantClaim(ctx context.Context, userID uuid.UUID, claimName string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	// Placeholders from the subquery are renumbered by the outer builder.
	sub := sq.Select().
		Column(sq.Expr("?", userID)).
		Column("id").
		From("operation_claims").
		Where(sq.Eq{"name": claimName})

	sql, args, err := psql.
		Insert("user_operation_claims").
		Columns("user_id", "operation_claim_id").
		Select(sub).
		Suffix("ON CONFLICT (user_id, operation_claim_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "user_operation_claim")
	}
	if tag.RowsAffected() == 0 {
		// Either the claim name does not exist or the grant already
		// existed. Distinguish by looking the claim up.
		exists, err := r.claimExists(ctx, claimName)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("operation claim %q: %w", claimName, domain.ErrNotFound)
		}
	}

	return nil
}

func (r *Repo) claimExists(ctx context.Context, name string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.
		Select("1").
		From("operation_claims").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	if err := q.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		mapped := postgres.MapError(err, "operation_claim")
		if errors.Is(mapped, domain.ErrNotFound) {
			return false, nil
		}
		return false, mapped
	}
	return true, nil
}

func returningList() string {
	return strings.Join(userColumns, ", ")
}
