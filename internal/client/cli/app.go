package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gameguesser/internal/client/catalog"
	"github.com/dmitrijs2005/gameguesser/internal/client/client"
	"github.com/dmitrijs2005/gameguesser/internal/client/config"
	"github.com/dmitrijs2005/gameguesser/internal/client/game"
	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/client/repositories/games"
	"github.com/dmitrijs2005/gameguesser/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/gameguesser/internal/client/repositories/users"
	"github.com/dmitrijs2005/gameguesser/internal/client/services"
	"github.com/dmitrijs2005/gameguesser/internal/client/session"
	"github.com/dmitrijs2005/gameguesser/internal/client/store"
	"github.com/dmitrijs2005/gameguesser/internal/client/streaks"
	"github.com/dmitrijs2005/gameguesser/internal/client/worker"
	"github.com/dmitrijs2005/gameguesser/internal/logging"
	"github.com/dmitrijs2005/gameguesser/internal/netx"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	api     client.Client
	catalog *catalog.Manager
	ledger  *streaks.Ledger
	auth    services.AuthService
	engine  *game.Engine
	syncer  *worker.SyncScheduler
	monitor *netx.Monitor
	bg      sync.WaitGroup

	identity *models.Identity
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the local store and the API client described by c and wires
// every service on top of them.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	db, err := store.Open(ctx, c.DatabasePath, logger)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "err", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app, err := newApp(c, logger, db, api, bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		_ = api.Close()
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, api client.Client, reader *bufio.Reader, out io.Writer) (*App, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	prefsRepo := prefs.NewSQLiteRepository(db)
	accounts := users.NewSQLiteAccountRepository(db)
	locals := users.NewSQLiteLocalRepository(db)
	sessions := session.NewStore(prefsRepo)

	monitor := netx.NewMonitor(api, c.OnlineCheckInterval, logger)
	manager := catalog.NewManager(api, games.NewSQLiteRepository(db), monitor, logger)
	ledger := streaks.NewLedger(accounts, locals, sessions, logger, streaks.WithLocation(loc))

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		api:     api,
		catalog: manager,
		ledger:  ledger,
		auth:    services.NewAuthService(accounts, locals, sessions, logger),
		engine:  game.NewEngine(manager, ledger, logger),
		syncer:  worker.NewSyncScheduler(manager, prefsRepo, c.SyncInterval, logger),
		monitor: monitor,
		reader:  reader,
		out:     out,
	}, nil
}

// Run restores the previous session, starts the background workers and
// blocks in the REPL until the user exits. Everything is shut down on return.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer a.close(ctx)
	defer cancel()

	a.restoreSession(ctx)
	a.startBackground(ctx)

	printlnFn("Welcome to GameGuesser (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// startBackground settles reachability before the scheduled sync makes its
// first run, and queues another sync whenever the server comes back.
func (a *App) startBackground(ctx context.Context) {
	a.monitor.Check(ctx)
	a.monitor.OnChange(func(online bool) {
		if online {
			a.syncer.Trigger(ctx)
		}
	})

	a.bg.Add(1)
	go func() {
		defer a.bg.Done()
		a.monitor.Run(ctx)
	}()

	if err := a.syncer.Start(ctx); err != nil {
		a.logger.Warn(ctx, "background sync disabled", "err", err)
	}
}

func (a *App) close(ctx context.Context) {
	a.bg.Wait()
	if err := a.syncer.Stop(); err != nil {
		a.logger.Warn(ctx, "failed to stop sync scheduler", "err", err)
	}
	if err := a.api.Close(); err != nil {
		a.logger.Warn(ctx, "failed to close api client", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(ctx, "failed to close database", "err", err)
	}
}

// restoreSession picks up the identity saved by a previous run and clears
// daily streaks that lapsed while the app was closed.
func (a *App) restoreSession(ctx context.Context) {
	id, err := a.auth.Current(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to restore session", "err", err)
		return
	}
	if id == nil {
		return
	}

	if err := a.ledger.EnsureUser(ctx, *id, ""); err != nil {
		a.logger.Warn(ctx, "stored session is stale", "user", id.String(), "err", err)
		if errors.Is(err, streaks.ErrUserNotFound) {
			_ = a.auth.Logout(ctx)
		}
		return
	}

	a.identity = id
	a.resumeStreaks(ctx)
}

func (a *App) resumeStreaks(ctx context.Context) {
	out := a.ledger.ResumeCheck(ctx)
	for _, mode := range out.Reset {
		printlnFn(fmt.Sprintf("Your %s streak has ended. Win a round today to start a new one.", mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.identity != nil
}

func (a *App) getStatus() string {
	s := ""
	if a.identity != nil {
		s = a.identity.ID + " "
	}
	if a.monitor.Online() {
		s += "online"
	} else {
		s += "offline"
	}
	return fmt.Sprintf("(%s)", s)
}
