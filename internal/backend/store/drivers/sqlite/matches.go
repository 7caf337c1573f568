package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/robochamp/backend/internal/backend/domain"
)

type matchesRepo struct {
	db dbtx
}

const matchColumns = `id, team_a_id, team_b_id, arena_id, date, status,
	start_time, end_time, observation, result, created_at, updated_at`

func scanMatch(row rowScanner) (domain.Match, error) {
	var (
		m         domain.Match
		status    string
		startTime sql.NullTime
		endTime   sql.NullTime
		result    sql.NullString
	)

	err := row.Scan(
		&m.ID, &m.TeamAID, &m.TeamBID, &m.ArenaID, &m.Date, &status,
		&startTime, &endTime, &m.Observation, &result, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return domain.Match{}, err
	}

	m.Status = domain.MatchStatus(status)
	m.StartTime = mapNullTimePtr(startTime)
	m.EndTime = mapNullTimePtr(endTime)
	m.Result = domain.MatchResult(mapNullString(result))
	return m, nil
}

func (r *matchesRepo) CreateMatch(ctx context.Context, m domain.Match) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO matches (id, team_a_id, team_b_id, arena_id, date, status,
			start_time, end_time, observation, result, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.TeamAID, m.TeamBID, m.ArenaID, m.Date.UTC(), string(m.Status),
		mapTimeNull(m.StartTime), mapTimeNull(m.EndTime), m.Observation,
		mapStringNull(string(m.Result)), now, now,
	)
	return mapConstraint(err)
}

func (r *matchesRepo) GetMatchByID(ctx context.Context, id string) (domain.Match, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)

	m, err := scanMatch(row)
	if err != nil {
		return domain.Match{}, mapNotFound(err)
	}
	return m, nil
}

func (r *matchesRepo) ListMatches(ctx context.Context) ([]domain.Match, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *matchesRepo) UpdateMatch(ctx context.Context, m domain.Match) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE matches
		SET team_a_id = ?, team_b_id = ?, arena_id = ?, date = ?, status = ?,
			start_time = ?, end_time = ?, observation = ?, result = ?, updated_at = ?
		WHERE id = ?`,
		m.TeamAID, m.TeamBID, m.ArenaID, m.Date.UTC(), string(m.Status),
		mapTimeNull(m.StartTime), mapTimeNull(m.EndTime), m.Observation,
		mapStringNull(string(m.Result)), time.Now().UTC(), m.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *matchesRepo) DeleteMatch(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}
