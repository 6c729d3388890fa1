package users

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

// StreakStore reads and writes streak records of one user table.
type StreakStore interface {
	// Get returns (nil, nil) when no row matches.
	Get(ctx context.Context, id string) (*models.StreakRecord, error)
	// Save writes every streak column of rec.
	Save(ctx context.Context, rec *models.StreakRecord) error
}

type AccountRepository interface {
	StreakStore
	// Ensure inserts a zeroed record unless one exists and reports whether it did.
	Ensure(ctx context.Context, id, userName string) (bool, error)
}

type LocalRepository interface {
	StreakStore
	Create(ctx context.Context, u models.LocalUser) error
	// GetCredentials returns (nil, nil) when the email is unknown.
	GetCredentials(ctx context.Context, email string) (*models.LocalUser, error)
}
