// Package session remembers who is signed in on this device.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/client/repositories/prefs"
)

const (
	KeyUserID   = "user_id"
	KeyUserKind = "user_kind"
)

type Store struct {
	prefs prefs.Repository
}

func NewStore(p prefs.Repository) *Store {
	return &Store{prefs: p}
}

// Current returns (nil, nil) when nobody is signed in. A stored id without a
// kind is treated as an account id.
func (s *Store) Current(ctx context.Context) (*models.Identity, error) {
	id, ok, err := s.prefs.Get(ctx, KeyUserID)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok || id == "" {
		return nil, nil
	}

	kind, ok, err := s.prefs.Get(ctx, KeyUserKind)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok || kind == "" {
		kind = string(models.IdentityAccount)
	}

	switch k := models.IdentityKind(kind); k {
	case models.IdentityAccount, models.IdentityLocal:
		return &models.Identity{Kind: k, ID: id}, nil
	default:
		return nil, fmt.Errorf("read session: unknown identity kind %q", kind)
	}
}

func (s *Store) Set(ctx context.Context, id models.Identity) error {
	if err := s.prefs.Set(ctx, KeyUserID, id.ID); err != nil {
		return err
	}
	return s.prefs.Set(ctx, KeyUserKind, string(id.Kind))
}

func (s *Store) Clear(ctx context.Context) error {
	return s.prefs.Delete(ctx, KeyUserID, KeyUserKind)
}
