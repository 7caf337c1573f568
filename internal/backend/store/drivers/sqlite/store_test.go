package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/store"
	"github.com/robochamp/backend/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser() domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Email:        idx.New().String() + "@example.com",
		Name:         "Test User",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Role:         domain.RoleUser,
	}
}

func TestUsersCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, domain.RoleUser, got.Role)
	assert.False(t, got.EmailVerified)
	assert.Empty(t, got.RefreshTokenHash)

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	dup := newTestUser()
	dup.Email = u.Email
	err := s.Users().CreateUser(ctx, dup)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsersVerificationTokenLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	u := newTestUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	const hash = "token-fingerprint"
	require.NoError(t, s.Users().SetVerificationToken(ctx, u.ID, hash, now.Add(time.Hour)))

	got, err := s.Users().GetUserByVerificationTokenHash(ctx, hash, now)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// Expired token looks like an unknown one.
	_, err = s.Users().GetUserByVerificationTokenHash(ctx, hash, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().MarkEmailVerified(ctx, u.ID))

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
	assert.Empty(t, got.VerificationTokenHash)
	assert.Nil(t, got.VerificationTokenExpiresAt)

	_, err = s.Users().GetUserByVerificationTokenHash(ctx, hash, now)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersClearExpiredVerificationTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	expired := newTestUser()
	require.NoError(t, s.Users().CreateUser(ctx, expired))
	require.NoError(t, s.Users().SetVerificationToken(ctx, expired.ID, "old", now.Add(-time.Hour)))

	pending := newTestUser()
	require.NoError(t, s.Users().CreateUser(ctx, pending))
	require.NoError(t, s.Users().SetVerificationToken(ctx, pending.ID, "fresh", now.Add(time.Hour)))

	require.NoError(t, s.Users().ClearExpiredVerificationTokens(ctx, now))

	got, err := s.Users().GetUserByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Empty(t, got.VerificationTokenHash)

	got, err = s.Users().GetUserByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.VerificationTokenHash)
}

func TestUsersRefreshTokenHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().SetRefreshTokenHash(ctx, u.ID, "fp-1"))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "fp-1", got.RefreshTokenHash)
	assert.True(t, got.HasActiveSession())

	require.NoError(t, s.Users().ClearRefreshTokenHash(ctx, u.ID))
	// Clearing twice is fine.
	require.NoError(t, s.Users().ClearRefreshTokenHash(ctx, u.ID))

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RefreshTokenHash)

	err = s.Users().SetRefreshTokenHash(ctx, "missing-user", "fp-2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCategoriesCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := domain.Category{ID: idx.New().String(), Name: "Sumo", Description: "Robot sumo", ScoreRules: "best of 3"}
	require.NoError(t, s.Categories().CreateCategory(ctx, c))

	got, err := s.Categories().GetCategoryByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sumo", got.Name)

	got.Description = "Autonomous robot sumo"
	require.NoError(t, s.Categories().UpdateCategory(ctx, got))

	list, err := s.Categories().ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Autonomous robot sumo", list[0].Description)

	require.NoError(t, s.Categories().DeleteCategory(ctx, c.ID))
	_, err = s.Categories().GetCategoryByID(ctx, c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestArenasForeignKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := domain.Arena{ID: idx.New().String(), Name: "Arena 1", CategoryID: "no-such-category"}
	err := s.Arenas().CreateArena(ctx, a)
	assert.ErrorIs(t, err, store.ErrNotFound)

	c := domain.Category{ID: idx.New().String(), Name: "Line Follower"}
	require.NoError(t, s.Categories().CreateCategory(ctx, c))

	a.CategoryID = c.ID
	require.NoError(t, s.Arenas().CreateArena(ctx, a))

	n, err := s.Arenas().CountArenasByCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMatchesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := domain.Category{ID: idx.New().String(), Name: "Sumo"}
	require.NoError(t, s.Categories().CreateCategory(ctx, c))

	arena := domain.Arena{ID: idx.New().String(), Name: "Main", CategoryID: c.ID}
	require.NoError(t, s.Arenas().CreateArena(ctx, arena))

	teamA := domain.Team{ID: idx.New().String(), Name: "Alpha", RobotName: "Crusher", CategoryID: c.ID}
	teamB := domain.Team{ID: idx.New().String(), Name: "Beta", RobotName: "Pusher", CategoryID: c.ID}
	require.NoError(t, s.Teams().CreateTeam(ctx, teamA))
	require.NoError(t, s.Teams().CreateTeam(ctx, teamB))

	m := domain.Match{
		ID:      idx.New().String(),
		TeamAID: teamA.ID,
		TeamBID: teamB.ID,
		ArenaID: arena.ID,
		Date:    time.Now().UTC().Add(24 * time.Hour),
		Status:  domain.MatchScheduled,
	}
	require.NoError(t, s.Matches().CreateMatch(ctx, m))

	got, err := s.Matches().GetMatchByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchScheduled, got.Status)
	assert.Nil(t, got.StartTime)
	assert.Empty(t, got.Result)

	start := time.Now().UTC()
	got.Status = domain.MatchInProgress
	got.StartTime = &start
	require.NoError(t, s.Matches().UpdateMatch(ctx, got))

	end := start.Add(3 * time.Minute)
	got.Status = domain.MatchFinished
	got.EndTime = &end
	got.Result = domain.ResultTeamA
	require.NoError(t, s.Matches().UpdateMatch(ctx, got))

	final, err := s.Matches().GetMatchByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchFinished, final.Status)
	assert.Equal(t, domain.ResultTeamA, final.Result)
	require.NotNil(t, final.StartTime)
	require.NotNil(t, final.EndTime)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = s.Users().GetUserByID(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
