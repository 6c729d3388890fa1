package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/client/store"
	"github.com/dmitrijs2005/gameguesser/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(context.Background(), store.MemoryPath, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAccounts_EnsureCreatesZeroedRecordOnce(t *testing.T) {
	r := NewSQLiteAccountRepository(setupDB(t))
	ctx := context.Background()

	created, err := r.Ensure(ctx, "acc-1", "Ann")
	require.NoError(t, err)
	assert.True(t, created)

	rec, err := r.Get(ctx, "acc-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, models.StreakRecord{ID: "acc-1", UserName: "Ann"}, *rec)

	rec.Keyword.Current = 4
	require.NoError(t, r.Save(ctx, rec))

	created, err = r.Ensure(ctx, "acc-1", "Someone Else")
	require.NoError(t, err)
	assert.False(t, created)

	rec, err = r.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", rec.UserName)
	assert.Equal(t, 4, rec.Keyword.Current)
}

func TestAccounts_GetMissing(t *testing.T) {
	r := NewSQLiteAccountRepository(setupDB(t))

	rec, err := r.Get(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestAccounts_SaveRoundTripsBothTracks(t *testing.T) {
	r := NewSQLiteAccountRepository(setupDB(t))
	ctx := context.Background()

	want := models.StreakRecord{
		ID:       "acc-2",
		UserName: "Bo",
		Keyword:  models.Track{Current: 3, Best: 7, Consecutive: 2, LastPlayed: 1700000000000},
		Compare:  models.Track{Current: 1, Best: 1, Consecutive: 5, LastPlayed: 1700000100000},
	}
	require.NoError(t, r.Save(ctx, &want))

	got, err := r.Get(ctx, "acc-2")
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestLocal_CreateAndCredentials(t *testing.T) {
	r := NewSQLiteLocalRepository(setupDB(t))
	ctx := context.Background()

	u := models.LocalUser{Email: "a@b.c", UserName: "Ann", PasswordHash: "argon2id$x$y"}
	require.NoError(t, r.Create(ctx, u))

	got, err := r.GetCredentials(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, u, *got)

	err = r.Create(ctx, u)
	require.ErrorIs(t, err, ErrDuplicate)

	missing, err := r.GetCredentials(ctx, "x@y.z")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLocal_SaveUpdatesStreaks(t *testing.T) {
	r := NewSQLiteLocalRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, models.LocalUser{Email: "a@b.c", UserName: "Ann", PasswordHash: "h"}))

	rec, err := r.Get(ctx, "a@b.c")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Zero(t, rec.Keyword)
	assert.Zero(t, rec.Compare)

	rec.Compare = models.Track{Current: 2, Best: 2, Consecutive: 2, LastPlayed: 42}
	require.NoError(t, r.Save(ctx, rec))

	got, err := r.Get(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, rec.Compare, got.Compare)
	assert.Zero(t, got.Keyword)
}

func TestLocal_SaveUnknownEmail(t *testing.T) {
	r := NewSQLiteLocalRepository(setupDB(t))

	err := r.Save(context.Background(), &models.StreakRecord{ID: "nobody@x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAccounts_GetQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE user_id = ?")).
		WithArgs("acc").
		WillReturnError(errors.New("boom"))

	_, err = NewSQLiteAccountRepository(db).Get(context.Background(), "acc")
	require.ErrorContains(t, err, "failed to get accounts[acc]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccounts_EnsureExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts")).
		WithArgs("acc", "Ann").
		WillReturnError(errors.New("readonly"))

	_, err = NewSQLiteAccountRepository(db).Ensure(context.Background(), "acc", "Ann")
	require.ErrorContains(t, err, "failed to ensure accounts[acc]")
}
