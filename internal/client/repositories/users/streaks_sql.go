package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/dbx"
)

const streakColumns = `user_name,
	streak_kw, best_streak_kw, consec_streak_kw, last_played_kw,
	streak_cg, best_streak_cg, consec_streak_cg, last_played_cg`

// streakTable holds the queries shared by both user tables.
type streakTable struct {
	db    dbx.DBTX
	table string
	key   string
}

func (t streakTable) get(ctx context.Context, id string) (*models.StreakRecord, error) {
	q := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ?`, t.key, streakColumns, t.table, t.key)

	var rec models.StreakRecord
	err := t.db.QueryRowContext(ctx, q, id).Scan(
		&rec.ID, &rec.UserName,
		&rec.Keyword.Current, &rec.Keyword.Best, &rec.Keyword.Consecutive, &rec.Keyword.LastPlayed,
		&rec.Compare.Current, &rec.Compare.Best, &rec.Compare.Consecutive, &rec.Compare.LastPlayed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s[%s]: %w", t.table, id, err)
	}
	return &rec, nil
}

// update rewrites the streak columns of an existing row.
func (t streakTable) update(ctx context.Context, rec *models.StreakRecord) error {
	q := fmt.Sprintf(`UPDATE %s SET
		streak_kw = ?, best_streak_kw = ?, consec_streak_kw = ?, last_played_kw = ?,
		streak_cg = ?, best_streak_cg = ?, consec_streak_cg = ?, last_played_cg = ?
		WHERE %s = ?`, t.table, t.key)

	res, err := t.db.ExecContext(ctx, q,
		rec.Keyword.Current, rec.Keyword.Best, rec.Keyword.Consecutive, rec.Keyword.LastPlayed,
		rec.Compare.Current, rec.Compare.Best, rec.Compare.Consecutive, rec.Compare.LastPlayed,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s[%s]: %w", t.table, rec.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save %s[%s]: %w", t.table, rec.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("%s[%s]: %w", t.table, rec.ID, ErrNotFound)
	}
	return nil
}
