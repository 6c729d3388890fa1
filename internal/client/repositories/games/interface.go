package games

import (
	"context"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
)

type Repository interface {
	// Upsert inserts g or replaces the row with the same ID.
	Upsert(ctx context.Context, g *models.Game) error

	// UpsertMany upserts every game atomically.
	UpsertMany(ctx context.Context, gs []models.Game) error

	// GetByID returns (nil, nil) when no row matches.
	GetByID(ctx context.Context, id string) (*models.Game, error)

	// GetAll returns every cached game in insertion order.
	GetAll(ctx context.Context) ([]models.Game, error)

	Count(ctx context.Context) (int, error)
}
