package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/store/drivers/sqlite"
)

type champFixture struct {
	categories *CategoryService
	arenas     *ArenaService
	teams      *TeamService
	matches    *MatchService

	category domain.Category
	arena    domain.Arena
	teamA    domain.Team
	teamB    domain.Team
}

func newChampFixture(t *testing.T) *champFixture {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	f := &champFixture{
		categories: NewCategoryService(st),
		arenas:     NewArenaService(st),
		teams:      NewTeamService(st),
		matches:    NewMatchService(st),
	}

	f.category, err = f.categories.Create(ctx, CategoryInput{Name: "Sumo", ScoreRules: "best of 3"})
	require.NoError(t, err)

	f.arena, err = f.arenas.Create(ctx, ArenaInput{Name: "Main", CategoryID: f.category.ID})
	require.NoError(t, err)

	f.teamA, err = f.teams.Create(ctx, TeamInput{Name: "Alpha", RobotName: "Crusher", CategoryID: f.category.ID})
	require.NoError(t, err)
	f.teamB, err = f.teams.Create(ctx, TeamInput{Name: "Beta", RobotName: "Pusher", CategoryID: f.category.ID})
	require.NoError(t, err)

	return f
}

func (f *champFixture) scheduleMatch(t *testing.T) domain.Match {
	t.Helper()
	m, err := f.matches.Create(context.Background(), MatchInput{
		TeamAID: f.teamA.ID,
		TeamBID: f.teamB.ID,
		ArenaID: f.arena.ID,
		Date:    time.Now().UTC().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return m
}

func TestMatchLifecycle(t *testing.T) {
	f := newChampFixture(t)
	ctx := context.Background()

	m := f.scheduleMatch(t)
	assert.Equal(t, domain.MatchScheduled, m.Status)

	m, err := f.matches.Start(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchInProgress, m.Status)
	require.NotNil(t, m.StartTime)

	// No double start.
	_, err = f.matches.Start(ctx, m.ID)
	assert.ErrorIs(t, err, ErrBadTransition)

	m, err = f.matches.SetResult(ctx, m.ID, domain.ResultTeamA, "clean push-out")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultTeamA, m.Result)

	m, err = f.matches.End(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchFinished, m.Status)
	require.NotNil(t, m.EndTime)

	// Finished matches are immutable.
	_, err = f.matches.Cancel(ctx, m.ID)
	assert.ErrorIs(t, err, ErrBadTransition)
	_, err = f.matches.SetResult(ctx, m.ID, domain.ResultTeamB, "")
	assert.ErrorIs(t, err, ErrBadTransition)
	_, err = f.matches.End(ctx, m.ID)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestMatchPause(t *testing.T) {
	f := newChampFixture(t)
	ctx := context.Background()

	m := f.scheduleMatch(t)

	_, err := f.matches.Pause(ctx, m.ID)
	assert.ErrorIs(t, err, ErrBadTransition)

	_, err = f.matches.Start(ctx, m.ID)
	require.NoError(t, err)

	m, err = f.matches.Pause(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchScheduled, m.Status)
	assert.Nil(t, m.StartTime)

	// A paused match can go again.
	m, err = f.matches.Start(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchInProgress, m.Status)
}

func TestMatchCancel(t *testing.T) {
	f := newChampFixture(t)
	ctx := context.Background()

	m := f.scheduleMatch(t)

	m, err := f.matches.Cancel(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchCancelled, m.Status)

	_, err = f.matches.Start(ctx, m.ID)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestMatchValidation(t *testing.T) {
	f := newChampFixture(t)
	ctx := context.Background()

	_, err := f.matches.Create(ctx, MatchInput{
		TeamAID: f.teamA.ID,
		TeamBID: f.teamA.ID,
		ArenaID: f.arena.ID,
		Date:    time.Now().UTC(),
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = f.matches.Create(ctx, MatchInput{
		TeamAID: f.teamA.ID,
		TeamBID: f.teamB.ID,
		ArenaID: "no-such-arena",
		Date:    time.Now().UTC(),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	m := f.scheduleMatch(t)
	_, err = f.matches.SetResult(ctx, m.ID, "SOMEONE", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestMatchRescheduleOnlyWhileScheduled(t *testing.T) {
	f := newChampFixture(t)
	ctx := context.Background()

	m := f.scheduleMatch(t)

	newDate := time.Now().UTC().Add(48 * time.Hour)
	m, err := f.matches.Update(ctx, m.ID, MatchInput{
		TeamAID: f.teamA.ID,
		TeamBID: f.teamB.ID,
		ArenaID: f.arena.ID,
		Date:    newDate,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, newDate, m.Date, time.Second)

	_, err = f.matches.Start(ctx, m.ID)
	require.NoError(t, err)

	_, err = f.matches.Update(ctx, m.ID, MatchInput{
		TeamAID: f.teamA.ID,
		TeamBID: f.teamB.ID,
		ArenaID: f.arena.ID,
		Date:    newDate,
	})
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestCategoryDeleteGuard(t *testing.T) {
	f := newChampFixture(t)
	ctx := context.Background()

	err := f.categories.Delete(ctx, f.category.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	empty, err := f.categories.Create(ctx, CategoryInput{Name: "Line Follower"})
	require.NoError(t, err)
	require.NoError(t, f.categories.Delete(ctx, empty.ID))

	err = f.categories.Delete(ctx, "no-such-category")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryValidation(t *testing.T) {
	f := newChampFixture(t)

	_, err := f.categories.Create(context.Background(), CategoryInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
