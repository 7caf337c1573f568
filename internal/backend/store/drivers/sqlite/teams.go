package sqlite

import (
	"context"
	"time"

	"github.com/robochamp/backend/internal/backend/domain"
)

type teamsRepo struct {
	db dbtx
}

func (r *teamsRepo) CreateTeam(ctx context.Context, t domain.Team) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, robot_name, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.RobotName, t.CategoryID, now, now,
	)
	return mapConstraint(err)
}

func (r *teamsRepo) GetTeamByID(ctx context.Context, id string) (domain.Team, error) {
	var t domain.Team
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, robot_name, category_id, created_at, updated_at
		FROM teams WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.RobotName, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Team{}, mapNotFound(err)
	}
	return t, nil
}

func (r *teamsRepo) ListTeams(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, robot_name, category_id, created_at, updated_at
		FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.RobotName, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *teamsRepo) UpdateTeam(ctx context.Context, t domain.Team) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE teams SET name = ?, robot_name = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		t.Name, t.RobotName, t.CategoryID, time.Now().UTC(), t.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *teamsRepo) DeleteTeam(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *teamsRepo) CountTeamsByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM teams WHERE category_id = ?`, categoryID,
	).Scan(&n)
	return n, err
}
