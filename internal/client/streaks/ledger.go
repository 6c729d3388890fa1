package streaks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/logging"
)

var (
	ErrNoUser       = errors.New("no signed-in user")
	ErrUserNotFound = errors.New("user record not found")
)

type Store interface {
	Get(ctx context.Context, id string) (*models.StreakRecord, error)
	Save(ctx context.Context, rec *models.StreakRecord) error
}

// AccountStore can create account records on demand.
type AccountStore interface {
	Store
	Ensure(ctx context.Context, id, userName string) (bool, error)
}

type IdentitySource interface {
	Current(ctx context.Context) (*models.Identity, error)
}

// Outcome reports what a ledger operation did. Record is the state after the
// operation, or nil when it was skipped.
type Outcome struct {
	Identity *models.Identity
	Record   *models.StreakRecord
	// Reset lists the modes whose daily streak a resume check cleared.
	Reset   []models.Mode
	Saved   bool
	Skipped bool
	Err     error
}

type Ledger struct {
	accounts AccountStore
	locals   Store
	sessions IdentitySource
	logger   logging.Logger
	now      func() time.Time
	loc      *time.Location
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the zone in which calendar days are compared.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

func NewLedger(accounts AccountStore, locals Store, sessions IdentitySource, logger logging.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		accounts: accounts,
		locals:   locals,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		loc:      time.Local,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// ResumeCheck clears the daily streak of every mode whose last win was
// before yesterday. Best and consecutive counters are left alone.
func (l *Ledger) ResumeCheck(ctx context.Context) Outcome {
	out := l.load(ctx)
	if out.Skipped {
		return out
	}

	now := l.now()
	for _, mode := range models.Modes {
		t := out.Record.Track(mode)
		if t.LastPlayed == 0 || t.Current == 0 {
			continue
		}
		if Relation(FromMillis(t.LastPlayed), now, l.loc) == OlderOrNever {
			t.Current = 0
			out.Reset = append(out.Reset, mode)
		}
	}

	if len(out.Reset) == 0 {
		return out
	}
	l.logger.Info(ctx, "daily streaks reset", "user", out.Identity.String(), "modes", out.Reset)
	return l.save(ctx, out)
}

// RecordWin counts a win for mode. The daily streak grows only on the first
// win of a calendar day; the consecutive counter grows on every win.
func (l *Ledger) RecordWin(ctx context.Context, mode models.Mode) Outcome {
	if _, err := models.ParseMode(string(mode)); err != nil {
		return Outcome{Skipped: true, Err: err}
	}

	out := l.load(ctx)
	if out.Skipped {
		return out
	}

	now := l.now()
	t := out.Record.Track(mode)
	if Relation(FromMillis(t.LastPlayed), now, l.loc) != Today {
		t.Current++
	}
	t.Best = max(t.Best, t.Current)
	t.Consecutive++
	t.LastPlayed = now.UnixMilli()

	return l.save(ctx, out)
}

// RecordLoss clears the consecutive counter for mode. The daily streak and
// the last-played time are not touched, so a later win on the same day still
// counts as that day's first.
func (l *Ledger) RecordLoss(ctx context.Context, mode models.Mode) Outcome {
	if _, err := models.ParseMode(string(mode)); err != nil {
		return Outcome{Skipped: true, Err: err}
	}

	out := l.load(ctx)
	if out.Skipped {
		return out
	}

	t := out.Record.Track(mode)
	if t.Consecutive == 0 {
		return out
	}
	t.Consecutive = 0
	return l.save(ctx, out)
}

// Snapshot reads the signed-in user's record without changing it.
func (l *Ledger) Snapshot(ctx context.Context) Outcome {
	return l.load(ctx)
}

// EnsureUser creates a zeroed account record when none exists. Local users
// are created at registration, so for them it only checks existence.
func (l *Ledger) EnsureUser(ctx context.Context, id models.Identity, userName string) error {
	switch id.Kind {
	case models.IdentityAccount:
		created, err := l.accounts.Ensure(ctx, id.ID, userName)
		if err != nil {
			return err
		}
		if created {
			l.logger.Info(ctx, "account record created", "user", id.String())
		}
		return nil
	case models.IdentityLocal:
		rec, err := l.locals.Get(ctx, id.ID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%s: %w", id, ErrUserNotFound)
		}
		return nil
	default:
		return fmt.Errorf("unknown identity kind %q", id.Kind)
	}
}

func (l *Ledger) storeFor(kind models.IdentityKind) (Store, error) {
	switch kind {
	case models.IdentityAccount:
		return l.accounts, nil
	case models.IdentityLocal:
		return l.locals, nil
	default:
		return nil, fmt.Errorf("unknown identity kind %q", kind)
	}
}

func (l *Ledger) load(ctx context.Context) Outcome {
	id, err := l.sessions.Current(ctx)
	if err != nil {
		l.logger.Warn(ctx, "streak update skipped", "error", err)
		return Outcome{Skipped: true, Err: err}
	}
	if id == nil {
		l.logger.Debug(ctx, "streak update skipped", "reason", ErrNoUser)
		return Outcome{Skipped: true, Err: ErrNoUser}
	}

	s, err := l.storeFor(id.Kind)
	if err != nil {
		return Outcome{Identity: id, Skipped: true, Err: err}
	}

	rec, err := s.Get(ctx, id.ID)
	if err != nil {
		l.logger.Warn(ctx, "streak update skipped", "user", id.String(), "error", err)
		return Outcome{Identity: id, Skipped: true, Err: err}
	}
	if rec == nil {
		l.logger.Warn(ctx, "streak update skipped", "user", id.String(), "reason", ErrUserNotFound)
		return Outcome{Identity: id, Skipped: true, Err: ErrUserNotFound}
	}
	return Outcome{Identity: id, Record: rec}
}

func (l *Ledger) save(ctx context.Context, out Outcome) Outcome {
	s, err := l.storeFor(out.Identity.Kind)
	if err == nil {
		err = s.Save(ctx, out.Record)
	}
	if err != nil {
		l.logger.Warn(ctx, "failed to save streaks", "user", out.Identity.String(), "error", err)
		out.Err = err
		return out
	}
	out.Saved = true
	return out
}
