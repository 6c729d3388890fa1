package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/dbx"
)

type SQLiteLocalRepository struct {
	streakTable
}

func NewSQLiteLocalRepository(db dbx.DBTX) *SQLiteLocalRepository {
	return &SQLiteLocalRepository{streakTable{db: db, table: "local_users", key: "email"}}
}

func (r *SQLiteLocalRepository) Get(ctx context.Context, email string) (*models.StreakRecord, error) {
	return r.get(ctx, email)
}

// Save fails with ErrNotFound for an unregistered email.
func (r *SQLiteLocalRepository) Save(ctx context.Context, rec *models.StreakRecord) error {
	return r.update(ctx, rec)
}

func (r *SQLiteLocalRepository) Create(ctx context.Context, u models.LocalUser) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO local_users (email, user_name, password_hash) VALUES (?, ?, ?)
		ON CONFLICT(email) DO NOTHING
	`, u.Email, u.UserName, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to create local_users[%s]: %w", u.Email, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create local_users[%s]: %w", u.Email, err)
	}
	if n == 0 {
		return fmt.Errorf("local_users[%s]: %w", u.Email, ErrDuplicate)
	}
	return nil
}

func (r *SQLiteLocalRepository) GetCredentials(ctx context.Context, email string) (*models.LocalUser, error) {
	var u models.LocalUser
	err := r.db.QueryRowContext(ctx,
		`SELECT email, user_name, password_hash FROM local_users WHERE email = ?`, email,
	).Scan(&u.Email, &u.UserName, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get local_users[%s]: %w", email, err)
	}
	return &u, nil
}
