package store

import (
	"context"
	"errors"
	"time"

	"github.com/robochamp/backend/internal/backend/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement it. Sub-repositories keep concerns tidy and let services
// depend on the slice they actually use.
type Store interface {
	Users() Users
	Arenas() Arenas
	Categories() Categories
	Teams() Teams
	Matches() Matches

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database handle.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the credential store consumed by the auth core plus the user
// admin surface. Password and token hashes never leave this boundary except
// inside domain.User.
type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is the signin lookup. Email matching is exact,
	// case-sensitive as stored.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByVerificationTokenHash returns the unique user whose pending
	// verification token fingerprint matches and has not expired at `now`.
	GetUserByVerificationTokenHash(ctx context.Context, hash string, now time.Time) (domain.User, error)

	// CreateUser inserts a new user. Returns ErrAlreadyExists when the
	// email is taken (unique index).
	CreateUser(ctx context.Context, u domain.User) error

	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdatePasswordHash replaces the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// UpdatePasswordAndClearVerification replaces the password hash and
	// clears both pending verification fields in a single update
	// (password-reset consumption).
	UpdatePasswordAndClearVerification(ctx context.Context, userID, newHash string) error

	UpdateRole(ctx context.Context, userID string, role domain.Role) error

	DeleteUser(ctx context.Context, userID string) error

	// SetRefreshTokenHash rotates the stored refresh token fingerprint.
	SetRefreshTokenHash(ctx context.Context, userID, hash string) error

	// ClearRefreshTokenHash drops the active session fingerprint. Clearing
	// an already-clear hash is a no-op, not an error.
	ClearRefreshTokenHash(ctx context.Context, userID string) error

	// SetVerificationToken overwrites the pending verification token
	// fingerprint and expiry. Last writer wins.
	SetVerificationToken(ctx context.Context, userID, hash string, expiresAt time.Time) error

	// MarkEmailVerified sets the verified flag and clears both pending
	// verification fields in a single update.
	MarkEmailVerified(ctx context.Context, userID string) error

	// ClearExpiredVerificationTokens clears pending verification fields on
	// every user whose token expired before `now`. Housekeeping.
	ClearExpiredVerificationTokens(ctx context.Context, now time.Time) error
}

type Arenas interface {
	CreateArena(ctx context.Context, a domain.Arena) error
	GetArenaByID(ctx context.Context, id string) (domain.Arena, error)
	ListArenas(ctx context.Context) ([]domain.Arena, error)
	UpdateArena(ctx context.Context, a domain.Arena) error
	DeleteArena(ctx context.Context, id string) error

	// CountArenasByCategory backs the category deletion guard.
	CountArenasByCategory(ctx context.Context, categoryID string) (int, error)
}

type Categories interface {
	CreateCategory(ctx context.Context, c domain.Category) error
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, c domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type Teams interface {
	CreateTeam(ctx context.Context, t domain.Team) error
	GetTeamByID(ctx context.Context, id string) (domain.Team, error)
	ListTeams(ctx context.Context) ([]domain.Team, error)
	UpdateTeam(ctx context.Context, t domain.Team) error
	DeleteTeam(ctx context.Context, id string) error

	// CountTeamsByCategory backs the category deletion guard.
	CountTeamsByCategory(ctx context.Context, categoryID string) (int, error)
}

type Matches interface {
	CreateMatch(ctx context.Context, m domain.Match) error
	GetMatchByID(ctx context.Context, id string) (domain.Match, error)
	ListMatches(ctx context.Context) ([]domain.Match, error)

	// UpdateMatch persists every mutable field (date, teams, arena, status,
	// times, observation, result).
	UpdateMatch(ctx context.Context, m domain.Match) error

	DeleteMatch(ctx context.Context, id string) error
}
