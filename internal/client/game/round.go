// Package game runs guessing rounds on top of the catalog and records their
// outcome in the streak ledger.
package game

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gameguesser/internal/client/catalog"
	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/client/streaks"
	"github.com/dmitrijs2005/gameguesser/internal/logging"
	"github.com/google/uuid"
)

const MaxLives = 5

var (
	ErrNoGame      = errors.New("no game available")
	ErrRoundOver   = errors.New("round is over")
	ErrBlankGuess  = errors.New("guess is empty")
	ErrNotScorable = errors.New("guess could not be scored")
)

type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

type Catalog interface {
	RandomGame(ctx context.Context) catalog.Result[*models.Game]
	SubmitGuess(ctx context.Context, gameID, guess string) catalog.Result[models.GuessResult]
	CompareGame(ctx context.Context, req models.CompareRequest) catalog.Result[models.Comparison]
}

type Recorder interface {
	RecordWin(ctx context.Context, mode models.Mode) streaks.Outcome
	RecordLoss(ctx context.Context, mode models.Mode) streaks.Outcome
}

// Round is one game to guess. In keyword mode the player sees keywords and
// earns a hint per wrong guess; in compare mode each guess is a game name and
// the reply lists which keywords it shares with the target.
type Round struct {
	ID      string
	Mode    models.Mode
	Game    models.Game
	Lives   int
	Hints   []string
	Guesses []string
	State   State
}

// Turn is the reply to one guess.
type Turn struct {
	Correct bool
	Hint    string
	Matches map[string]models.MatchKind
	Source  catalog.Source
	Lives   int
	State   State
	// Streak is set once the round has ended.
	Streak *streaks.Outcome
}

type Engine struct {
	catalog Catalog
	ledger  Recorder
	logger  logging.Logger
}

func NewEngine(c Catalog, r Recorder, logger logging.Logger) *Engine {
	return &Engine{catalog: c, ledger: r, logger: logger}
}

// Start draws a random game for a new round of mode.
func (e *Engine) Start(ctx context.Context, mode models.Mode) (*Round, error) {
	if _, err := models.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	res := e.catalog.RandomGame(ctx)
	if res.Value == nil {
		if res.Err != nil {
			return nil, errors.Join(ErrNoGame, res.Err)
		}
		return nil, ErrNoGame
	}

	r := &Round{
		ID:    uuid.NewString(),
		Mode:  mode,
		Game:  *res.Value,
		Lives: MaxLives,
		Hints: []string{},
		State: StatePlaying,
	}
	e.logger.Debug(ctx, "round started", "round", r.ID, "mode", mode, "game", r.Game.ID, "source", res.Source)
	return r, nil
}

// Guess scores guess against the round's game. A wrong guess costs a life;
// the round ends on a correct guess or when no lives are left, and the
// result goes to the ledger.
func (e *Engine) Guess(ctx context.Context, r *Round, guess string) (Turn, error) {
	if r.State != StatePlaying {
		return Turn{State: r.State, Lives: r.Lives}, ErrRoundOver
	}
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return Turn{State: r.State, Lives: r.Lives}, ErrBlankGuess
	}

	var turn Turn
	switch r.Mode {
	case models.ModeCompare:
		res := e.catalog.CompareGame(ctx, models.CompareRequest{GameID: r.Game.ID, GuessName: guess})
		if res.Empty() {
			return Turn{State: r.State, Lives: r.Lives}, errors.Join(ErrNotScorable, res.Err)
		}
		turn = Turn{Correct: res.Value.Correct, Matches: res.Value.Matches, Source: res.Source}
	default:
		res := e.catalog.SubmitGuess(ctx, r.Game.ID, guess)
		if res.Empty() {
			return Turn{State: r.State, Lives: r.Lives}, errors.Join(ErrNotScorable, res.Err)
		}
		turn = Turn{Correct: res.Value.Correct, Hint: res.Value.Hint, Source: res.Source}
	}

	r.Guesses = append(r.Guesses, guess)
	switch {
	case turn.Correct:
		r.State = StateWon
	default:
		r.Lives--
		if turn.Hint != "" {
			r.Hints = append(r.Hints, turn.Hint)
		}
		if r.Lives <= 0 {
			r.State = StateLost
		}
	}

	turn.Lives = r.Lives
	turn.State = r.State

	switch r.State {
	case StateWon:
		out := e.ledger.RecordWin(ctx, r.Mode)
		turn.Streak = &out
	case StateLost:
		out := e.ledger.RecordLoss(ctx, r.Mode)
		turn.Streak = &out
	}
	if r.State != StatePlaying {
		e.logger.Info(ctx, "round finished", "round", r.ID, "mode", r.Mode, "state", r.State, "guesses", len(r.Guesses))
	}
	return turn, nil
}
