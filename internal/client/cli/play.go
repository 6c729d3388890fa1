package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gameguesser/internal/client/catalog"
	"github.com/dmitrijs2005/gameguesser/internal/client/game"
	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/client/streaks"
)

// Play runs one round of mode. An empty guess abandons the round without
// touching the streaks.
func (a *App) Play(ctx context.Context, mode models.Mode) error {
	r, err := a.engine.Start(ctx, mode)
	if err != nil {
		if errors.Is(err, game.ErrNoGame) {
			printlnFn("No game available. Connect once and run 'sync' to play offline.")
			return nil
		}
		return err
	}

	switch mode {
	case models.ModeKeyword:
		printlnFn("Guess the game from its keywords:", strings.Join(r.Game.Keywords, ", "))
	case models.ModeCompare:
		printlnFn("Guess the game by naming others; shared keywords are revealed.")
		printlnFn("Type ?text to list cached game names containing text.")
	}

	for r.State == game.StatePlaying {
		guess, err := getSimpleText(a.reader, fmt.Sprintf("Lives: %d. Your guess (empty to give up)", r.Lives), a.out)
		if err != nil {
			return err
		}
		if guess == "" {
			printlnFn("Round abandoned. The game was", r.Game.Name)
			return nil
		}

		if rest, ok := strings.CutPrefix(guess, "?"); ok {
			a.suggest(ctx, rest)
			continue
		}

		turn, err := a.engine.Guess(ctx, r, guess)
		if errors.Is(err, game.ErrNotScorable) {
			printlnFn("That guess could not be checked, try again")
			continue
		}
		if err != nil {
			return err
		}
		a.printTurn(turn)
	}

	if r.State == game.StateLost {
		printlnFn("Out of lives. The game was", r.Game.Name)
	}
	return nil
}

func (a *App) suggest(ctx context.Context, query string) {
	res := a.catalog.Names(ctx, query)
	if len(res.Value) == 0 {
		printlnFn("No suggestions")
		return
	}
	const limit = 10
	names := res.Value
	if len(names) > limit {
		names = names[:limit]
	}
	printlnFn("Suggestions:", strings.Join(names, ", "))
}

func (a *App) printTurn(t game.Turn) {
	if t.Source == catalog.SourceLocal {
		printlnFn("(checked offline)")
	}

	switch {
	case t.Correct:
		printlnFn("Correct!")
	case t.Hint != "":
		printlnFn("Wrong. Hint:", t.Hint)
	default:
		printlnFn("Wrong.")
	}

	if len(t.Matches) > 0 {
		keys := make([]string, 0, len(t.Matches))
		for k := range t.Matches {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			printlnFn(fmt.Sprintf("  %s: %s", k, t.Matches[k]))
		}
	}

	if t.Streak != nil {
		printStreak(t.Streak)
	}
}

func printStreak(out *streaks.Outcome) {
	switch {
	case errors.Is(out.Err, streaks.ErrNoUser):
		printlnFn("Sign in to keep streaks")
	case out.Err != nil:
		printlnFn("Streak not saved:", out.Err)
	case out.Record != nil:
		for _, mode := range models.Modes {
			printlnFn(formatTrack(mode, *out.Record.Track(mode)))
		}
	}
}
