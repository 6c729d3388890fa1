package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gameguesser/internal/client/catalog"
	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/client/streaks"
)

// Sync downloads the whole catalog into the local cache.
func (a *App) Sync(ctx context.Context) error {
	res := a.syncer.RunOnce(ctx)
	if res.Empty() {
		if errors.Is(res.Err, catalog.ErrOffline) {
			printlnFn("You are offline, the cached catalog is used")
			a.printLastSync(ctx)
			return nil
		}
		return fmt.Errorf("sync failed: %w", res.Err)
	}
	printlnFn(fmt.Sprintf("Synced %d games", res.Value))
	if res.Degraded() {
		printlnFn("Some records could not be read:", res.Err)
	}
	return nil
}

func (a *App) printLastSync(ctx context.Context) {
	at, ok, err := a.syncer.LastSync(ctx)
	switch {
	case err != nil:
		a.logger.Warn(ctx, "failed to read last sync time", "err", err)
	case ok:
		printlnFn("Last sync:", at.Local().Format(time.DateTime))
	default:
		printlnFn("The catalog has never been synced")
	}
}

// Games lists cached games whose name or keywords contain the query. Without
// a query the whole catalog is listed, downloading it first if the cache is
// empty.
func (a *App) Games(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")

	var res catalog.Result[[]models.Game]
	if query == "" {
		res = a.catalog.AllGames(ctx)
	} else {
		res = a.catalog.FindByKeyword(ctx, query)
	}
	if len(res.Value) == 0 && res.Err != nil && !errors.Is(res.Err, catalog.ErrOffline) {
		return res.Err
	}
	if len(res.Value) > 0 && res.Degraded() {
		a.logger.Warn(ctx, "catalog listing incomplete", "error", res.Err)
	}
	if len(res.Value) == 0 {
		if query == "" {
			printlnFn("No games cached yet, run 'sync' while online")
		} else {
			printlnFn("No games match", query)
		}
		return nil
	}

	for _, g := range res.Value {
		printlnFn(formatGame(g))
	}
	printlnFn(fmt.Sprintf("%d game(s)", len(res.Value)))
	return nil
}

// Show prints one game by id, from the cache when possible.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: show <id>")
		return nil
	}
	res := a.catalog.GameByID(ctx, args[0])
	if res.Value == nil {
		if errors.Is(res.Err, catalog.ErrOffline) {
			printlnFn("Game not cached and you are offline")
			return nil
		}
		return res.Err
	}

	g := res.Value
	if g.ID != args[0] {
		printlnFn("Game", args[0], "is not available, showing another one")
	}
	printlnFn(formatGame(*g))
	for _, f := range []struct{ label, value string }{
		{"Developer", g.Developer},
		{"Publisher", g.Publisher},
		{"Platforms", strings.Join(g.Platforms, ", ")},
		{"Saga", g.Saga},
		{"Point of view", g.POV},
		{"Budget", g.Budget},
		{"Description", g.Description},
	} {
		if f.value != "" {
			printlnFn(fmt.Sprintf("  %s: %s", f.label, f.value))
		}
	}
	return nil
}

func (a *App) Streaks(ctx context.Context) error {
	out := a.ledger.Snapshot(ctx)
	if errors.Is(out.Err, streaks.ErrNoUser) {
		printlnFn("Sign in to keep streaks")
		return nil
	}
	if out.Err != nil {
		return out.Err
	}

	for _, mode := range models.Modes {
		printlnFn(formatTrack(mode, *out.Record.Track(mode)))
	}
	return nil
}

func formatGame(g models.Game) string {
	s := g.Name
	if g.ReleaseYear != 0 {
		s += fmt.Sprintf(" (%d)", g.ReleaseYear)
	}
	if g.Genre != "" {
		s += " [" + g.Genre + "]"
	}
	return s
}

func formatTrack(mode models.Mode, t models.Track) string {
	return fmt.Sprintf("%-8s daily streak %d, best %d, wins in a row %d", mode, t.Current, t.Best, t.Consecutive)
}
