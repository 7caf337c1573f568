package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/store"
)

type arenasRepo struct {
	db dbtx
}

func (r *arenasRepo) CreateArena(ctx context.Context, a domain.Arena) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO arenas (id, name, youtube_link, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.YoutubeLink, a.CategoryID, now, now,
	)
	return mapConstraint(err)
}

func (r *arenasRepo) GetArenaByID(ctx context.Context, id string) (domain.Arena, error) {
	var a domain.Arena
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, youtube_link, category_id, created_at, updated_at
		FROM arenas WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &a.YoutubeLink, &a.CategoryID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Arena{}, mapNotFound(err)
	}
	return a, nil
}

func (r *arenasRepo) ListArenas(ctx context.Context) ([]domain.Arena, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, youtube_link, category_id, created_at, updated_at
		FROM arenas ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var arenas []domain.Arena
	for rows.Next() {
		var a domain.Arena
		if err := rows.Scan(&a.ID, &a.Name, &a.YoutubeLink, &a.CategoryID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		arenas = append(arenas, a)
	}
	return arenas, rows.Err()
}

func (r *arenasRepo) UpdateArena(ctx context.Context, a domain.Arena) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE arenas SET name = ?, youtube_link = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		a.Name, a.YoutubeLink, a.CategoryID, time.Now().UTC(), a.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *arenasRepo) DeleteArena(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM arenas WHERE id = ?`, id)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *arenasRepo) CountArenasByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM arenas WHERE category_id = ?`, categoryID,
	).Scan(&n)
	return n, err
}

// requireRow converts a zero-row UPDATE/DELETE into store.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
