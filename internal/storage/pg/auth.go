package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// SaveUser creates the identity and its profile in one transaction, checking
// the username allow-list first. Any failure past the identity insert rolls
// the identity back too; there is no partially registered state.
func (s *Storage) SaveUser(reg domain.RegistrationData, passHash string) (domain.UserId, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.UserId{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var allowed string
	err = tx.QueryRow(
		"SELECT username FROM allowed_usernames WHERE username = $1",
		reg.Username,
	).Scan(&allowed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserId{}, internal_errors.NewValidation("This username is not allowed to register")
		}
		return domain.UserId{}, fmt.Errorf("failed to check allow-list: %w", err)
	}

	var id domain.UserId
	err = tx.QueryRow(
		"INSERT INTO users (email, pass_hash) VALUES ($1, $2) RETURNING id",
		reg.Email, passHash,
	).Scan(&id)
	if err != nil {
		if isPqCode(err, pqUniqueViolation) {
			return domain.UserId{}, internal_errors.NewConflict("Email already registered")
		}
		return domain.UserId{}, fmt.Errorf("failed to insert user: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO profiles (id, username) VALUES ($1, $2)",
		id, reg.Username,
	)
	if err != nil {
		if isPqCode(err, pqUniqueViolation) {
			return domain.UserId{}, internal_errors.NewConflict("Username already taken")
		}
		return domain.UserId{}, fmt.Errorf("failed to insert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.UserId{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// User fetches an identity with its profile by email.
func (s *Storage) User(email domain.Email) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
        SELECT u.id, u.email, u.pass_hash, u.created_at, p.username, p.is_admin
        FROM users u
        JOIN profiles p ON p.id = u.id
        WHERE u.email = $1
    `, email).Scan(&user.Id, &user.Email, &user.PassHash, &user.CreatedAt, &user.Username, &user.Admin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NewNotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// IsUsernameAllowed checks membership in the registration allow-list.
func (s *Storage) IsUsernameAllowed(username domain.Username) (bool, error) {
	var found string
	err := s.db.QueryRow(
		"SELECT username FROM allowed_usernames WHERE username = $1",
		username,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check allow-list: %w", err)
	}
	return true, nil
}

// AllowUsername adds a username to the allow-list. Idempotent.
func (s *Storage) AllowUsername(username domain.Username) error {
	_, err := s.db.Exec(
		"INSERT INTO allowed_usernames (username) VALUES ($1) ON CONFLICT DO NOTHING",
		username,
	)
	if err != nil {
		return fmt.Errorf("failed to insert allowed username: %w", err)
	}
	return nil
}

func isPqCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
