package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/lleukocyte/travel-guide/internal/errors"
	"github.com/lleukocyte/travel-guide/model"
)

const userColumns = `id, email, username, password_hash, is_active, COALESCE(verification_code, ''), created_at`

// CreateUser inserts a user and fills in its ID and creation time.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	now := s.now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, username, password_hash, is_active, verification_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.Email, user.Username, user.PasswordHash, user.IsActive, user.VerificationCode, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewEmailTakenError(user.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get user id: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	return nil
}

// GetUserByEmail looks a user up by e-mail.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewUserNotFoundError(email)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUserByID looks a user up by ID.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewUserIDNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ActivateUser marks the user active and clears the verification code when
// code matches. An already active user is left untouched.
func (s *Store) ActivateUser(ctx context.Context, email, code string) error {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsActive {
		return nil
	}
	if code == "" || user.VerificationCode != code {
		return apperrors.ErrInvalidCode
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET is_active = 1, verification_code = NULL WHERE id = ?`, user.ID)
	if err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	return nil
}

// DeleteStaleUnverified removes inactive users created before the cutoff and
// returns how many were deleted.
func (s *Store) DeleteStaleUnverified(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM users WHERE is_active = 0 AND created_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete unverified users: %w", err)
	}
	return res.RowsAffected()
}

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsActive, &u.VerificationCode, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
