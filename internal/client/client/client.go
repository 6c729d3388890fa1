package client

import (
	"context"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	RandomGame(ctx context.Context) (*models.RawGame, error)
	GameByID(ctx context.Context, id string) (*models.RawGame, error)
	// FullCatalog may return records together with an error when only part
	// of the catalog could be decoded.
	FullCatalog(ctx context.Context) ([]models.RawGame, error)
	SubmitGuess(ctx context.Context, gameID, guess string) (*models.GuessResult, error)
	Compare(ctx context.Context, req models.CompareRequest) (*models.Comparison, error)
}
