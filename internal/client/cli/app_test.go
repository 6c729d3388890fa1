package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gameguesser/internal/client/client"
	"github.com/dmitrijs2005/gameguesser/internal/client/config"
	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/client/repositories/games"
	"github.com/dmitrijs2005/gameguesser/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/gameguesser/internal/client/repositories/users"
	"github.com/dmitrijs2005/gameguesser/internal/client/session"
	"github.com/dmitrijs2005/gameguesser/internal/client/store"
	"github.com/dmitrijs2005/gameguesser/internal/client/worker"
	"github.com/dmitrijs2005/gameguesser/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	client.Client

	mu         sync.Mutex
	pingErr    error
	games      []models.RawGame
	catalogErr error
	closed     bool
}

func (f *fakeAPI) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeAPI) setPingErr(err error) {
	f.mu.Lock()
	f.pingErr = err
	f.mu.Unlock()
}

func (f *fakeAPI) Close() error { f.closed = true; return nil }

func (f *fakeAPI) RandomGame(context.Context) (*models.RawGame, error) {
	if len(f.games) == 0 {
		return nil, client.ErrUnavailable
	}
	g := f.games[0]
	return &g, nil
}

func (f *fakeAPI) GameByID(_ context.Context, id string) (*models.RawGame, error) {
	for _, g := range f.games {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeAPI) FullCatalog(context.Context) ([]models.RawGame, error) {
	return f.games, f.catalogErr
}

func (f *fakeAPI) SubmitGuess(context.Context, string, string) (*models.GuessResult, error) {
	return nil, client.ErrUnavailable
}

func (f *fakeAPI) Compare(context.Context, models.CompareRequest) (*models.Comparison, error) {
	return nil, client.ErrUnavailable
}

func celeste() models.RawGame {
	return models.RawGame{
		ID:          "g1",
		Name:        "Celeste",
		Genre:       "Platformer",
		ReleaseYear: 2018,
		Developer:   "Maddy Makes Games",
		Platforms:   []string{"PC", "Switch"},
		Keywords:    []string{"climbing", "strawberry"},
	}
}

type testApp struct {
	*App
	api   *fakeAPI
	lines *[]string
}

// newTestApp builds an App over a private in-memory store. input feeds every
// interactive prompt.
func newTestApp(t *testing.T, api *fakeAPI, input string, online bool) *testApp {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open(ctx, store.MemoryPath, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SyncInterval = 0
	cfg.OnlineCheckInterval = 0

	a, err := newApp(cfg, logging.NewNop(), db, api, rdr(input), io.Discard)
	require.NoError(t, err)

	if online {
		require.True(t, a.monitor.Check(ctx))
	}
	return &testApp{App: a, api: api, lines: capturePrintln(t)}
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func (a *testApp) printed(s string) bool {
	for _, l := range *a.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

func TestApp_GetStatus(t *testing.T) {
	a := newTestApp(t, &fakeAPI{}, "", false)
	require.Equal(t, "(offline)", a.getStatus())

	require.True(t, a.monitor.Check(context.Background()))
	require.NoError(t, a.SignIn(context.Background(), []string{"acc-1"}))
	require.Equal(t, "(acc-1 online)", a.getStatus())
}

func TestApp_SignIn_PromptsForID(t *testing.T) {
	a := newTestApp(t, &fakeAPI{}, "acc-7\n", false)

	require.NoError(t, a.SignIn(context.Background(), nil))
	require.True(t, a.isLoggedIn())
	require.Equal(t, models.Identity{Kind: models.IdentityAccount, ID: "acc-7"}, *a.identity)
}

func TestApp_SignIn_WithName(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{}, "", false)

	require.NoError(t, a.SignIn(ctx, []string{"acc-1", "Jane", "Doe"}))
	require.NoError(t, a.WhoAmI(ctx))
	assert.True(t, a.printed("Jane Doe (acc-1, account)"))
}

func TestApp_RegisterLoginLogout(t *testing.T) {
	ctx := context.Background()
	stubPassword(t, "hunter2")
	a := newTestApp(t, &fakeAPI{}, "Jane@Example.com\nJane\njane@example.com\nJane@Example.com\nJ\n", false)

	require.NoError(t, a.Register(ctx))
	require.Equal(t, models.Identity{Kind: models.IdentityLocal, ID: "jane@example.com"}, *a.identity)
	assert.True(t, a.printed("Success!"))

	require.NoError(t, a.Logout(ctx))
	require.False(t, a.isLoggedIn())
	require.NoError(t, a.WhoAmI(ctx))
	assert.True(t, a.printed("Not signed in"))

	require.NoError(t, a.Login(ctx))
	require.True(t, a.isLoggedIn())

	require.NoError(t, a.Register(ctx))
	assert.True(t, a.printed("already registered"))
}

func TestApp_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	stubPassword(t, "right")
	a := newTestApp(t, &fakeAPI{}, "bob@example.com\nBob\nbob@example.com\n", false)

	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.Logout(ctx))

	stubPassword(t, "wrong")
	require.NoError(t, a.Login(ctx))
	require.False(t, a.isLoggedIn())
	assert.True(t, a.printed("Login unsuccessful"))
}

func TestApp_Register_InvalidEmail(t *testing.T) {
	stubPassword(t, "pw")
	a := newTestApp(t, &fakeAPI{}, "not-an-email\nX\n", false)

	err := a.Register(context.Background())
	require.Error(t, err)
	require.False(t, a.isLoggedIn())
}

func TestApp_PlayKeyword_WinThenLoss(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{games: []models.RawGame{celeste()}}, "CELESTE\na\nb\nc\nd\ne\n", true)
	require.NoError(t, a.SignIn(ctx, []string{"acc-1"}))

	require.NoError(t, a.Play(ctx, models.ModeKeyword))
	assert.True(t, a.printed("climbing, strawberry"))
	assert.True(t, a.printed("Correct!"))
	assert.True(t, a.printed("(checked offline)"))

	rec := a.ledger.Snapshot(ctx).Record
	require.NotNil(t, rec)
	require.Equal(t, 1, rec.Keyword.Current)
	require.Equal(t, 1, rec.Keyword.Best)
	require.Equal(t, 1, rec.Keyword.Consecutive)

	require.NoError(t, a.Play(ctx, models.ModeKeyword))
	assert.True(t, a.printed("Out of lives. The game was Celeste"))
	assert.True(t, a.printed("Wrong. Hint:"))

	rec = a.ledger.Snapshot(ctx).Record
	require.Equal(t, 1, rec.Keyword.Current)
	require.Equal(t, 1, rec.Keyword.Best)
	require.Equal(t, 0, rec.Keyword.Consecutive)
	require.Equal(t, models.Track{}, rec.Compare)
}

func TestApp_PlayCompare_SuggestAndWin(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{games: []models.RawGame{celeste()}}, "?cel\nceleste\n", true)
	require.NoError(t, a.SignIn(ctx, []string{"acc-1"}))

	require.NoError(t, a.Play(ctx, models.ModeCompare))
	assert.True(t, a.printed("Suggestions: Celeste"))
	assert.True(t, a.printed("Correct!"))

	rec := a.ledger.Snapshot(ctx).Record
	require.Equal(t, 1, rec.Compare.Current)
	require.Equal(t, models.Track{}, rec.Keyword)
}

func TestApp_Play_AbandonLeavesStreaks(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{games: []models.RawGame{celeste()}}, "\n", true)
	require.NoError(t, a.SignIn(ctx, []string{"acc-1"}))

	require.NoError(t, a.Play(ctx, models.ModeKeyword))
	assert.True(t, a.printed("Round abandoned. The game was Celeste"))
	require.Equal(t, models.Track{}, a.ledger.Snapshot(ctx).Record.Keyword)
}

func TestApp_Play_SignedOut(t *testing.T) {
	a := newTestApp(t, &fakeAPI{games: []models.RawGame{celeste()}}, "celeste\n", true)

	require.NoError(t, a.Play(context.Background(), models.ModeKeyword))
	assert.True(t, a.printed("Correct!"))
	assert.True(t, a.printed("Sign in to keep streaks"))
}

func TestApp_Play_NoGameOffline(t *testing.T) {
	a := newTestApp(t, &fakeAPI{}, "", false)

	require.NoError(t, a.Play(context.Background(), models.ModeKeyword))
	assert.True(t, a.printed("No game available"))
}

func TestApp_Play_OfflineFromCache(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{games: []models.RawGame{celeste()}}, "strawberry\n", true)
	require.NoError(t, a.Sync(ctx))

	a.api.setPingErr(client.ErrUnavailable)
	require.False(t, a.monitor.Check(ctx))

	require.NoError(t, a.Play(ctx, models.ModeKeyword))
	assert.True(t, a.printed("Correct!"))
}

func TestApp_SyncAndGames(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{games: []models.RawGame{celeste()}}, "", true)

	require.NoError(t, a.Sync(ctx))
	assert.True(t, a.printed("Synced 1 games"))

	_, ok, err := a.syncer.LastSync(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, a.Games(ctx, nil))
	assert.True(t, a.printed("Celeste (2018) [Platformer]"))
	assert.True(t, a.printed("1 game(s)"))

	require.NoError(t, a.Games(ctx, []string{"STRAW"}))
	require.NoError(t, a.Games(ctx, []string{"zelda"}))
	assert.True(t, a.printed("No games match zelda"))
}

func TestApp_Games_PopulatesEmptyCache(t *testing.T) {
	a := newTestApp(t, &fakeAPI{games: []models.RawGame{celeste()}}, "", true)

	require.NoError(t, a.Games(context.Background(), nil))
	assert.True(t, a.printed("Celeste (2018)"))
}

func TestApp_Sync_PartialCatalog(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{
		games:      []models.RawGame{celeste()},
		catalogErr: fmt.Errorf("%w: skipped 1 of 2 records", client.ErrMalformedPayload),
	}
	a := newTestApp(t, api, "", true)

	require.NoError(t, a.Sync(ctx))
	assert.True(t, a.printed("Synced 1 games"))
	assert.True(t, a.printed("Some records could not be read: malformed"))

	_, ok, err := a.syncer.LastSync(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, a.Games(ctx, nil))
	assert.True(t, a.printed("1 game(s)"))
}

func TestApp_Sync_Failure(t *testing.T) {
	api := &fakeAPI{catalogErr: client.ErrUnavailable}
	a := newTestApp(t, api, "", true)

	err := a.Sync(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.False(t, a.printed("Synced"))
}

func TestApp_Sync_Offline(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{}, "", false)

	require.NoError(t, a.Sync(ctx))
	assert.True(t, a.printed("You are offline"))
	assert.True(t, a.printed("never been synced"))

	require.NoError(t, a.Games(ctx, nil))
	assert.True(t, a.printed("No games cached yet"))
}

func TestApp_Show(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{games: []models.RawGame{celeste()}}, "", true)

	require.NoError(t, a.Show(ctx, []string{"g1"}))
	assert.True(t, a.printed("Celeste (2018) [Platformer]"))
	assert.True(t, a.printed("Developer: Maddy Makes Games"))
	assert.True(t, a.printed("Platforms: PC, Switch"))

	require.NoError(t, a.Show(ctx, []string{"missing"}))
	assert.True(t, a.printed("Game missing is not available"))

	require.NoError(t, a.Show(ctx, nil))
	assert.True(t, a.printed("Usage: show <id>"))
}

func TestApp_Show_OfflineMiss(t *testing.T) {
	a := newTestApp(t, &fakeAPI{}, "", false)

	require.NoError(t, a.Show(context.Background(), []string{"g1"}))
	assert.True(t, a.printed("not cached and you are offline"))
}

func TestApp_Streaks(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{}, "", false)

	require.NoError(t, a.Streaks(ctx))
	assert.True(t, a.printed("Sign in to keep streaks"))

	require.NoError(t, a.SignIn(ctx, []string{"acc-1"}))
	require.NoError(t, a.Streaks(ctx))
	assert.True(t, a.printed("keyword  daily streak 0, best 0, wins in a row 0"))
	assert.True(t, a.printed("compare  daily streak 0, best 0, wins in a row 0"))
}

func TestApp_RestoreSession_ResetsStaleStreak(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{}, "", false)
	require.NoError(t, a.SignIn(ctx, []string{"acc-1"}))

	accounts := users.NewSQLiteAccountRepository(a.db)
	stale := time.Now().AddDate(0, 0, -3).UnixMilli()
	require.NoError(t, accounts.Save(ctx, &models.StreakRecord{
		ID:      "acc-1",
		Keyword: models.Track{Current: 4, Best: 6, Consecutive: 2, LastPlayed: stale},
		Compare: models.Track{Current: 2, Best: 2, Consecutive: 1, LastPlayed: time.Now().UnixMilli()},
	}))

	// a fresh process over the same database
	b, err := newApp(a.config, logging.NewNop(), a.db, a.api, rdr(""), io.Discard)
	require.NoError(t, err)
	b.restoreSession(ctx)

	require.True(t, b.isLoggedIn())
	assert.True(t, a.printed("Your keyword streak has ended"))
	assert.False(t, a.printed("Your compare streak has ended"))

	rec := b.ledger.Snapshot(ctx).Record
	require.Equal(t, models.Track{Current: 0, Best: 6, Consecutive: 2, LastPlayed: stale}, rec.Keyword)
	require.Equal(t, 2, rec.Compare.Current)
}

func TestApp_RestoreSession_DropsUnknownLocalUser(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeAPI{}, "", false)

	sessions := session.NewStore(prefs.NewSQLiteRepository(a.db))
	require.NoError(t, sessions.Set(ctx, models.Identity{Kind: models.IdentityLocal, ID: "ghost@example.com"}))

	a.restoreSession(ctx)
	require.False(t, a.isLoggedIn())

	id, err := sessions.Current(ctx)
	require.NoError(t, err)
	require.Nil(t, id)
}

func TestApp_Run_ShutsDown(t *testing.T) {
	api := &fakeAPI{}
	a := newTestApp(t, api, "whoami\nexit\n", false)

	a.Run(context.Background())

	assert.True(t, a.printed("Welcome to GameGuesser"))
	assert.True(t, a.printed("Not signed in"))
	assert.True(t, a.printed("Bye!"))
	require.True(t, api.closed)
	require.Error(t, a.db.PingContext(context.Background()))
}

// withScheduledSync replaces the disabled scheduler of a test app with an
// hourly one.
func withScheduledSync(a *testApp) {
	a.syncer = worker.NewSyncScheduler(a.catalog, prefs.NewSQLiteRepository(a.db), time.Hour, logging.NewNop())
}

func oneGameCached(a *testApp) func() bool {
	repo := games.NewSQLiteRepository(a.db)
	return func() bool {
		n, err := repo.Count(context.Background())
		return err == nil && n == 1
	}
}

func TestApp_Run_SyncsOnStartup(t *testing.T) {
	pr, pw := io.Pipe()
	api := &fakeAPI{games: []models.RawGame{celeste()}}
	a := newTestApp(t, api, "", false)
	withScheduledSync(a)
	a.reader = bufio.NewReader(pr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Run(context.Background())
	}()

	require.Eventually(t, oneGameCached(a), 5*time.Second, 10*time.Millisecond)

	_, err := io.WriteString(pw, "exit\n")
	require.NoError(t, err)
	<-done
	assert.True(t, a.printed("Bye!"))
}

func TestApp_ReconnectSyncs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	api := &fakeAPI{games: []models.RawGame{celeste()}, pingErr: client.ErrUnavailable}
	a := newTestApp(t, api, "", false)
	withScheduledSync(a)

	a.startBackground(ctx)
	defer func() {
		cancel()
		a.bg.Wait()
		require.NoError(t, a.syncer.Stop())
	}()
	require.False(t, a.monitor.Online())

	api.setPingErr(nil)
	require.True(t, a.monitor.Check(ctx))

	require.Eventually(t, oneGameCached(a), 5*time.Second, 10*time.Millisecond)
	_, ok, err := a.syncer.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewApp_BadServerURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = store.MemoryPath
	cfg.ServerBaseURL = "ftp://example.com"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewApp_BadTimezone(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = store.MemoryPath
	cfg.Timezone = "Nowhere/Special"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewApp_OK(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = store.MemoryPath
	cfg.LogLevel = "error"

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, a.catalog)
	a.close(context.Background())
}
