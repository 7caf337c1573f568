package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, name, password_hash, role, email_verified,
	verification_token_hash, verification_token_expires_at, refresh_token_hash,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u              domain.User
		role           string
		verifTokenHash sql.NullString
		verifExpiresAt sql.NullTime
		refreshHash    sql.NullString
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.EmailVerified,
		&verifTokenHash, &verifExpiresAt, &refreshHash,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.Role = domain.Role(role)
	u.VerificationTokenHash = mapNullString(verifTokenHash)
	u.VerificationTokenExpiresAt = mapNullTimePtr(verifExpiresAt)
	u.RefreshTokenHash = mapNullString(refreshHash)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByVerificationTokenHash(ctx context.Context, hash string, now time.Time) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE verification_token_hash = ?`, hash)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	// Expiry is checked here rather than in SQL so the comparison is exact
	// regardless of how the driver encodes timestamps. An expired token is
	// indistinguishable from an unknown one.
	if u.VerificationTokenExpiresAt == nil || !u.VerificationTokenExpiresAt.After(now) {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, email_verified,
			verification_token_hash, verification_token_expires_at, refresh_token_hash,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.EmailVerified,
		mapStringNull(u.VerificationTokenHash), mapTimeNull(u.VerificationTokenExpiresAt),
		mapStringNull(u.RefreshTokenHash), now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return r.exec(ctx, `
		UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
}

func (r *usersRepo) UpdatePasswordAndClearVerification(ctx context.Context, userID, newHash string) error {
	return r.exec(ctx, `
		UPDATE users
		SET password_hash = ?,
			verification_token_hash = NULL,
			verification_token_expires_at = NULL,
			updated_at = ?
		WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
}

func (r *usersRepo) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	return r.exec(ctx, `
		UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), time.Now().UTC(), userID)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return r.exec(ctx, `DELETE FROM users WHERE id = ?`, userID)
}

func (r *usersRepo) SetRefreshTokenHash(ctx context.Context, userID, hash string) error {
	return r.exec(ctx, `
		UPDATE users SET refresh_token_hash = ?, updated_at = ? WHERE id = ?`,
		hash, time.Now().UTC(), userID)
}

func (r *usersRepo) ClearRefreshTokenHash(ctx context.Context, userID string) error {
	// Only touches rows that actually hold a hash, so a double logout does
	// not bump updated_at a second time.
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET refresh_token_hash = NULL, updated_at = ?
		WHERE id = ? AND refresh_token_hash IS NOT NULL`,
		time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) SetVerificationToken(ctx context.Context, userID, hash string, expiresAt time.Time) error {
	return r.exec(ctx, `
		UPDATE users
		SET verification_token_hash = ?,
			verification_token_expires_at = ?,
			updated_at = ?
		WHERE id = ?`,
		hash, expiresAt.UTC(), time.Now().UTC(), userID)
}

func (r *usersRepo) MarkEmailVerified(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET email_verified = 1,
			verification_token_hash = NULL,
			verification_token_expires_at = NULL,
			updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), userID)
}

func (r *usersRepo) ClearExpiredVerificationTokens(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET verification_token_hash = NULL,
			verification_token_expires_at = NULL,
			updated_at = ?
		WHERE verification_token_hash IS NOT NULL
		  AND verification_token_expires_at < ?`,
		time.Now().UTC(), now.UTC())
	return err
}

// exec runs an UPDATE that must touch exactly one existing row.
func (r *usersRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
