package games

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/dbx"
)

const selectColumns = `id, oid, name, genre, platforms, release_year, developer, publisher,
	description, cover_image_url, budget, saga, pov, clues, keywords`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, g *models.Game) error {
	if g.ID == "" {
		return errors.New("game without primary key")
	}

	platforms, err := encodeList(g.Platforms)
	if err != nil {
		return err
	}
	clues, err := encodeList(g.Clues)
	if err != nil {
		return err
	}
	keywords, err := encodeList(g.Keywords)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO games (`+selectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			oid = excluded.oid,
			name = excluded.name,
			genre = excluded.genre,
			platforms = excluded.platforms,
			release_year = excluded.release_year,
			developer = excluded.developer,
			publisher = excluded.publisher,
			description = excluded.description,
			cover_image_url = excluded.cover_image_url,
			budget = excluded.budget,
			saga = excluded.saga,
			pov = excluded.pov,
			clues = excluded.clues,
			keywords = excluded.keywords
	`, g.ID, g.OID, g.Name, g.Genre, platforms, g.ReleaseYear, g.Developer, g.Publisher,
		g.Description, g.CoverImageURL, g.Budget, g.Saga, g.POV, clues, keywords)
	if err != nil {
		return fmt.Errorf("failed to upsert game[%s]: %w", g.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertMany(ctx context.Context, gs []models.Game) error {
	if len(gs) == 0 {
		return nil
	}

	write := func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for i := range gs {
			if err := repo.Upsert(ctx, &gs[i]); err != nil {
				return err
			}
		}
		return nil
	}

	if b, ok := r.db.(dbx.TxBeginner); ok {
		return dbx.WithTx(ctx, b, write)
	}
	return write(ctx, r.db)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM games WHERE id = ?`, id)

	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game[%s]: %w", id, err)
	}
	return g, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Game, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM games ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	result := make([]models.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		result = append(result, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(s scanner) (*models.Game, error) {
	var (
		g                          models.Game
		platforms, clues, keywords string
	)
	err := s.Scan(&g.ID, &g.OID, &g.Name, &g.Genre, &platforms, &g.ReleaseYear, &g.Developer,
		&g.Publisher, &g.Description, &g.CoverImageURL, &g.Budget, &g.Saga, &g.POV, &clues, &keywords)
	if err != nil {
		return nil, err
	}
	g.Platforms = decodeList(platforms)
	g.Clues = decodeList(clues)
	g.Keywords = decodeList(keywords)
	return &g, nil
}

// encodeList stores nil as "[]" so no row ever holds a JSON null.
func encodeList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(b), nil
}

// decodeList tolerates empty or unreadable columns by returning an empty list.
func decodeList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
