package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/store"
	"github.com/robochamp/backend/pkg/idx"
)

// MatchService manages the match schedule and the referee-driven lifecycle:
//
//	SCHEDULED <-> IN_PROGRESS -> FINISHED
//	SCHEDULED / IN_PROGRESS -> CANCELLED or FINISHED
//
// Pause puts an in-progress match back on the schedule. A result may only
// be recorded on a match that is in play.
type MatchService struct {
	store store.Store
}

func NewMatchService(st store.Store) *MatchService {
	return &MatchService{store: st}
}

type MatchInput struct {
	TeamAID     string
	TeamBID     string
	ArenaID     string
	Date        time.Time
	Observation string
}

func (in MatchInput) validate() error {
	if in.TeamAID == "" || in.TeamBID == "" {
		return fmt.Errorf("%w: both teams are required", ErrInvalidRequest)
	}
	if in.TeamAID == in.TeamBID {
		return fmt.Errorf("%w: a team cannot play itself", ErrInvalidRequest)
	}
	if in.ArenaID == "" {
		return fmt.Errorf("%w: arena_id is required", ErrInvalidRequest)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	return nil
}

func (s *MatchService) Create(ctx context.Context, in MatchInput) (domain.Match, error) {
	if err := in.validate(); err != nil {
		return domain.Match{}, err
	}

	m := domain.Match{
		ID:          idx.New().String(),
		TeamAID:     in.TeamAID,
		TeamBID:     in.TeamBID,
		ArenaID:     in.ArenaID,
		Date:        in.Date,
		Status:      domain.MatchScheduled,
		Observation: in.Observation,
	}
	if err := s.store.Matches().CreateMatch(ctx, m); err != nil {
		return domain.Match{}, mapStoreErr(err)
	}
	return s.store.Matches().GetMatchByID(ctx, m.ID)
}

func (s *MatchService) Get(ctx context.Context, id string) (domain.Match, error) {
	m, err := s.store.Matches().GetMatchByID(ctx, id)
	if err != nil {
		return domain.Match{}, mapStoreErr(err)
	}
	return m, nil
}

func (s *MatchService) List(ctx context.Context) ([]domain.Match, error) {
	return s.store.Matches().ListMatches(ctx)
}

// Update reschedules a match. Only SCHEDULED matches may be rescheduled.
func (s *MatchService) Update(ctx context.Context, id string, in MatchInput) (domain.Match, error) {
	if err := in.validate(); err != nil {
		return domain.Match{}, err
	}

	var out domain.Match
	err := s.mutate(ctx, id, func(m *domain.Match) error {
		if m.Status != domain.MatchScheduled {
			return fmt.Errorf("%w: only scheduled matches can be edited", ErrBadTransition)
		}
		m.TeamAID = in.TeamAID
		m.TeamBID = in.TeamBID
		m.ArenaID = in.ArenaID
		m.Date = in.Date
		m.Observation = in.Observation
		out = *m
		return nil
	})
	return out, err
}

// Start moves a scheduled match into play and stamps the start time.
func (s *MatchService) Start(ctx context.Context, id string) (domain.Match, error) {
	var out domain.Match
	err := s.mutate(ctx, id, func(m *domain.Match) error {
		if m.Status != domain.MatchScheduled {
			return fmt.Errorf("%w: cannot start a %s match", ErrBadTransition, m.Status)
		}
		now := time.Now().UTC()
		m.Status = domain.MatchInProgress
		m.StartTime = &now
		out = *m
		return nil
	})
	return out, err
}

// Pause puts an in-progress match back on the schedule, e.g. for a robot
// repair break.
func (s *MatchService) Pause(ctx context.Context, id string) (domain.Match, error) {
	var out domain.Match
	err := s.mutate(ctx, id, func(m *domain.Match) error {
		if m.Status != domain.MatchInProgress {
			return fmt.Errorf("%w: cannot pause a %s match", ErrBadTransition, m.Status)
		}
		m.Status = domain.MatchScheduled
		m.StartTime = nil
		out = *m
		return nil
	})
	return out, err
}

// End finishes a match that has not already reached a terminal state and
// stamps the end time.
func (s *MatchService) End(ctx context.Context, id string) (domain.Match, error) {
	var out domain.Match
	err := s.mutate(ctx, id, func(m *domain.Match) error {
		if m.Status == domain.MatchFinished || m.Status == domain.MatchCancelled {
			return fmt.Errorf("%w: cannot end a %s match", ErrBadTransition, m.Status)
		}
		now := time.Now().UTC()
		m.Status = domain.MatchFinished
		m.EndTime = &now
		out = *m
		return nil
	})
	return out, err
}

// Cancel aborts a match that has not finished.
func (s *MatchService) Cancel(ctx context.Context, id string) (domain.Match, error) {
	var out domain.Match
	err := s.mutate(ctx, id, func(m *domain.Match) error {
		if m.Status == domain.MatchFinished || m.Status == domain.MatchCancelled {
			return fmt.Errorf("%w: cannot cancel a %s match", ErrBadTransition, m.Status)
		}
		m.Status = domain.MatchCancelled
		out = *m
		return nil
	})
	return out, err
}

// SetResult records the outcome of a match in play.
func (s *MatchService) SetResult(ctx context.Context, id string, result domain.MatchResult, observation string) (domain.Match, error) {
	if !result.Valid() {
		return domain.Match{}, fmt.Errorf("%w: unknown result %q", ErrInvalidRequest, result)
	}

	var out domain.Match
	err := s.mutate(ctx, id, func(m *domain.Match) error {
		if m.Status != domain.MatchInProgress {
			return fmt.Errorf("%w: results can only be recorded in play", ErrBadTransition)
		}
		m.Result = result
		if observation != "" {
			m.Observation = observation
		}
		out = *m
		return nil
	})
	return out, err
}

func (s *MatchService) Delete(ctx context.Context, id string) error {
	return mapStoreErr(s.store.Matches().DeleteMatch(ctx, id))
}

// mutate loads, transforms and persists a match inside one transaction so
// concurrent lifecycle calls cannot interleave.
func (s *MatchService) mutate(ctx context.Context, id string, fn func(m *domain.Match) error) error {
	return s.store.WithTx(ctx, func(tx store.Tx) error {
		m, err := tx.Matches().GetMatchByID(ctx, id)
		if err != nil {
			return mapStoreErr(err)
		}
		if err := fn(&m); err != nil {
			return err
		}
		return mapStoreErr(tx.Matches().UpdateMatch(ctx, m))
	})
}
