package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/notewell/ms-notes-auth/app/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (user_name, normalized_user_name, email, normalized_email, password_hash, email_confirmed, security_stamp, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		user.UserName,
		user.NormalizedUserName,
		user.Email,
		user.NormalizedEmail,
		user.PasswordHash,
		user.EmailConfirmed,
		user.SecurityStamp,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = uint64(id)
	return nil
}

// FindByNormalizedEmail returns (nil, nil) when no user matches. Not-found is
// a result, not an error.
func (r *UserRepository) FindByNormalizedEmail(ctx context.Context, normalizedEmail string) (*entity.User, error) {
	query := `
		SELECT id, user_name, normalized_user_name, email, normalized_email, password_hash, email_confirmed,
		       access_failed_count, lockout_enabled, lockout_end, security_stamp, created_at, updated_at
		FROM users WHERE normalized_email = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, normalizedEmail))
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	query := `
		SELECT id, user_name, normalized_user_name, email, normalized_email, password_hash, email_confirmed,
		       access_failed_count, lockout_enabled, lockout_end, security_stamp, created_at, updated_at
		FROM users WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET
			user_name = ?,
			normalized_user_name = ?,
			email = ?,
			normalized_email = ?,
			password_hash = ?,
			email_confirmed = ?,
			access_failed_count = ?,
			lockout_enabled = ?,
			lockout_end = ?,
			security_stamp = ?,
			updated_at = ?
		WHERE id = ?
	`
	user.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.UserName,
		user.NormalizedUserName,
		user.Email,
		user.NormalizedEmail,
		user.PasswordHash,
		user.EmailConfirmed,
		user.AccessFailedCount,
		user.LockoutEnabled,
		user.LockoutEnd,
		user.SecurityStamp,
		user.UpdatedAt,
		user.ID,
	)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM users WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *UserRepository) scanUser(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	err := row.Scan(
		&user.ID,
		&user.UserName,
		&user.NormalizedUserName,
		&user.Email,
		&user.NormalizedEmail,
		&user.PasswordHash,
		&user.EmailConfirmed,
		&user.AccessFailedCount,
		&user.LockoutEnabled,
		&user.LockoutEnd,
		&user.SecurityStamp,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
