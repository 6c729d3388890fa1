package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dmitrijs2005/gameguesser/internal/client/client"
	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/client/repositories/games"
	"github.com/dmitrijs2005/gameguesser/internal/logging"
)

// Reachability is the "is the network up" probe.
type Reachability interface {
	Online() bool
}

type Manager struct {
	api    client.Client
	repo   games.Repository
	net    Reachability
	logger logging.Logger
	intn   func(n int) int
}

type Option func(*Manager)

// WithRand makes random picks come from r. r is used without locking.
func WithRand(r *rand.Rand) Option {
	return func(m *Manager) { m.intn = r.IntN }
}

func NewManager(api client.Client, repo games.Repository, net Reachability, logger logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		api:    api,
		repo:   repo,
		net:    net,
		logger: logger,
		intn:   rand.IntN,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// RandomGame fetches a random game when online and caches it. Otherwise, or
// when the fetch fails, it picks one uniformly from the cache.
func (m *Manager) RandomGame(ctx context.Context) Result[*models.Game] {
	reason := ErrOffline
	if m.net.Online() {
		raw, err := m.api.RandomGame(ctx)
		if err == nil {
			g := Normalize(*raw)
			return Result[*models.Game]{Value: &g, Source: SourceRemote, Err: m.persist(ctx, &g)}
		}
		reason = err
		m.logger.Warn(ctx, "random game fetch failed, using cache", "error", err)
	}

	all, err := m.repo.GetAll(ctx)
	if err != nil {
		return Result[*models.Game]{Source: SourceNone, Err: errors.Join(reason, err)}
	}
	if len(all) == 0 {
		return Result[*models.Game]{Source: SourceNone, Err: reason}
	}
	g := all[m.intn(len(all))]
	return Result[*models.Game]{Value: &g, Source: SourceCache, Err: reason}
}

// GameByID is cache-first. On a miss it asks the remote API; when the by-id
// endpoint is missing it accepts a random game instead.
func (m *Manager) GameByID(ctx context.Context, id string) Result[*models.Game] {
	cached, err := m.repo.GetByID(ctx, id)
	if err == nil && cached != nil {
		return Result[*models.Game]{Value: cached, Source: SourceCache}
	}
	storeErr := err
	if storeErr != nil {
		m.logger.Warn(ctx, "cache lookup failed", "id", id, "error", storeErr)
	}

	if !m.net.Online() {
		return Result[*models.Game]{Source: SourceNone, Err: errors.Join(ErrOffline, storeErr)}
	}

	raw, err := m.api.GameByID(ctx, id)
	if errors.Is(err, client.ErrNotFound) {
		m.logger.Warn(ctx, "game by id unavailable, substituting random game", "id", id)
		raw, err = m.api.RandomGame(ctx)
	}
	if err != nil {
		m.logger.Warn(ctx, "game fetch failed", "id", id, "error", err)
		return Result[*models.Game]{Source: SourceNone, Err: errors.Join(err, storeErr)}
	}

	g := Normalize(*raw)
	return Result[*models.Game]{Value: &g, Source: SourceRemote, Err: m.persist(ctx, &g)}
}

// SyncAll refreshes the cache from the full remote catalog in one
// transaction. Value is the number of records written. Records the API could
// not decode are left out and reported in Err.
func (m *Manager) SyncAll(ctx context.Context) Result[int] {
	if !m.net.Online() {
		return Result[int]{Source: SourceNone, Err: ErrOffline}
	}

	gs, err := m.fetchAll(ctx)
	if err != nil && (len(gs) == 0 || errors.Is(err, ErrCacheWrite)) {
		m.logger.Warn(ctx, "catalog sync failed", "error", err)
		return Result[int]{Source: SourceNone, Err: err}
	}
	if err != nil {
		m.logger.Warn(ctx, "catalog synced partially", "games", len(gs), "error", err)
		return Result[int]{Value: len(gs), Source: SourceRemote, Err: err}
	}

	m.logger.Info(ctx, "catalog synced", "games", len(gs))
	return Result[int]{Value: len(gs), Source: SourceRemote}
}

// AllGames returns the cache, populating it from the remote catalog once if
// it is empty.
func (m *Manager) AllGames(ctx context.Context) Result[[]models.Game] {
	all, err := m.repo.GetAll(ctx)
	if err == nil && len(all) > 0 {
		return Result[[]models.Game]{Value: all, Source: SourceCache}
	}
	storeErr := err

	if !m.net.Online() {
		return Result[[]models.Game]{Value: []models.Game{}, Source: SourceNone, Err: errors.Join(ErrOffline, storeErr)}
	}

	gs, err := m.fetchAll(ctx)
	if err != nil && len(gs) == 0 {
		m.logger.Warn(ctx, "catalog fetch failed", "error", err)
		return Result[[]models.Game]{Value: []models.Game{}, Source: SourceNone, Err: errors.Join(err, storeErr)}
	}
	if err != nil {
		return Result[[]models.Game]{Value: gs, Source: SourceRemote, Err: err}
	}
	if len(gs) == 0 {
		return Result[[]models.Game]{Value: []models.Game{}, Source: SourceNone, Err: storeErr}
	}

	if stored, err := m.repo.GetAll(ctx); err == nil && len(stored) > 0 {
		gs = stored
	}
	return Result[[]models.Game]{Value: gs, Source: SourceRemote, Err: storeErr}
}

// FindByKeyword matches text against names and keywords ignoring case. A
// blank query returns the whole cache in its natural order.
func (m *Manager) FindByKeyword(ctx context.Context, text string) Result[[]models.Game] {
	all, err := m.repo.GetAll(ctx)
	if err != nil {
		m.logger.Warn(ctx, "cache read failed", "error", err)
		return Result[[]models.Game]{Value: []models.Game{}, Source: SourceNone, Err: err}
	}

	q := fold(text)
	if q == "" {
		return Result[[]models.Game]{Value: all, Source: SourceCache}
	}

	found := make([]models.Game, 0)
	for _, g := range all {
		if matchesQuery(g, q) {
			found = append(found, g)
		}
	}
	return Result[[]models.Game]{Value: found, Source: SourceCache}
}

// Names lists cached display names containing query, for guess suggestions.
func (m *Manager) Names(ctx context.Context, query string) Result[[]string] {
	all, err := m.repo.GetAll(ctx)
	if err != nil {
		return Result[[]string]{Value: []string{}, Source: SourceNone, Err: err}
	}

	q := fold(query)
	names := make([]string, 0, len(all))
	for _, g := range all {
		if q == "" || strings.Contains(fold(g.Name), q) {
			names = append(names, g.Name)
		}
	}
	return Result[[]string]{Value: names, Source: SourceCache}
}

// SubmitGuess scores a keyword-game guess remotely when possible and on the
// device otherwise.
func (m *Manager) SubmitGuess(ctx context.Context, gameID, guess string) Result[models.GuessResult] {
	reason := ErrOffline
	if m.net.Online() {
		res, err := m.api.SubmitGuess(ctx, gameID, guess)
		if err == nil {
			return Result[models.GuessResult]{Value: *res, Source: SourceRemote}
		}
		reason = err
		m.logger.Warn(ctx, "remote guess scoring failed, scoring locally", "game", gameID, "error", err)
	}

	g, err := m.localGame(ctx, gameID)
	if err != nil {
		return Result[models.GuessResult]{Source: SourceNone, Err: errors.Join(reason, err)}
	}
	return Result[models.GuessResult]{Value: ScoreGuess(*g, guess, m.intn), Source: SourceLocal, Err: reason}
}

// CompareGame compares guessName with the game remotely when possible and
// falls back to CompareOffline.
func (m *Manager) CompareGame(ctx context.Context, req models.CompareRequest) Result[models.Comparison] {
	reason := ErrOffline
	if m.net.Online() {
		res, err := m.api.Compare(ctx, req)
		if err == nil {
			return Result[models.Comparison]{Value: *res, Source: SourceRemote}
		}
		reason = err
		m.logger.Warn(ctx, "remote compare failed, comparing locally", "game", req.GameID, "error", err)
	}

	g, err := m.localGame(ctx, req.GameID)
	if err != nil {
		empty := models.Comparison{Matches: map[string]models.MatchKind{}}
		return Result[models.Comparison]{Value: empty, Source: SourceNone, Err: errors.Join(reason, err)}
	}
	return Result[models.Comparison]{Value: CompareOffline(*g, req.GuessName), Source: SourceLocal, Err: reason}
}

func (m *Manager) localGame(ctx context.Context, id string) (*models.Game, error) {
	g, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("game %q: %w", id, client.ErrNotFound)
	}
	return g, nil
}

// fetchAll returns the normalized catalog even when caching it failed.
func (m *Manager) fetchAll(ctx context.Context) ([]models.Game, error) {
	raws, fetchErr := m.api.FullCatalog(ctx)
	if len(raws) == 0 {
		return nil, fetchErr
	}
	gs := NormalizeAll(raws)
	if err := m.repo.UpsertMany(ctx, gs); err != nil {
		return gs, errors.Join(fmt.Errorf("%w: %w", ErrCacheWrite, err), fetchErr)
	}
	return gs, fetchErr
}

func (m *Manager) persist(ctx context.Context, g *models.Game) error {
	if err := m.repo.Upsert(ctx, g); err != nil {
		m.logger.Warn(ctx, "failed to cache game", "id", g.ID, "error", err)
		return err
	}
	return nil
}
