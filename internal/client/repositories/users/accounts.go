package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/dbx"
)

type SQLiteAccountRepository struct {
	streakTable
}

func NewSQLiteAccountRepository(db dbx.DBTX) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{streakTable{db: db, table: "accounts", key: "user_id"}}
}

func (r *SQLiteAccountRepository) Get(ctx context.Context, id string) (*models.StreakRecord, error) {
	return r.get(ctx, id)
}

// Save upserts the record, so a row removed underneath a running session
// comes back instead of failing the write.
func (r *SQLiteAccountRepository) Save(ctx context.Context, rec *models.StreakRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (user_id, `+streakColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			streak_kw = excluded.streak_kw,
			best_streak_kw = excluded.best_streak_kw,
			consec_streak_kw = excluded.consec_streak_kw,
			last_played_kw = excluded.last_played_kw,
			streak_cg = excluded.streak_cg,
			best_streak_cg = excluded.best_streak_cg,
			consec_streak_cg = excluded.consec_streak_cg,
			last_played_cg = excluded.last_played_cg
	`, rec.ID, rec.UserName,
		rec.Keyword.Current, rec.Keyword.Best, rec.Keyword.Consecutive, rec.Keyword.LastPlayed,
		rec.Compare.Current, rec.Compare.Best, rec.Compare.Consecutive, rec.Compare.LastPlayed,
	)
	if err != nil {
		return fmt.Errorf("failed to save accounts[%s]: %w", rec.ID, err)
	}
	return nil
}

func (r *SQLiteAccountRepository) Ensure(ctx context.Context, id, userName string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (user_id, user_name) VALUES (?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, id, userName)
	if err != nil {
		return false, fmt.Errorf("failed to ensure accounts[%s]: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to ensure accounts[%s]: %w", id, err)
	}
	return n > 0, nil
}
