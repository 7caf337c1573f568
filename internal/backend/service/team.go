package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/store"
	"github.com/robochamp/backend/pkg/idx"
)

// TeamService manages registered teams and their robots.
type TeamService struct {
	store store.Store
}

func NewTeamService(st store.Store) *TeamService {
	return &TeamService{store: st}
}

type TeamInput struct {
	Name       string
	RobotName  string
	CategoryID string
}

func (in *TeamInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.RobotName = strings.TrimSpace(in.RobotName)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if in.RobotName == "" {
		return fmt.Errorf("%w: robot_name is required", ErrInvalidRequest)
	}
	if in.CategoryID == "" {
		return fmt.Errorf("%w: category_id is required", ErrInvalidRequest)
	}
	return nil
}

func (s *TeamService) Create(ctx context.Context, in TeamInput) (domain.Team, error) {
	if err := in.validate(); err != nil {
		return domain.Team{}, err
	}

	t := domain.Team{
		ID:         idx.New().String(),
		Name:       in.Name,
		RobotName:  in.RobotName,
		CategoryID: in.CategoryID,
	}
	if err := s.store.Teams().CreateTeam(ctx, t); err != nil {
		return domain.Team{}, mapStoreErr(err)
	}
	return s.store.Teams().GetTeamByID(ctx, t.ID)
}

func (s *TeamService) Get(ctx context.Context, id string) (domain.Team, error) {
	t, err := s.store.Teams().GetTeamByID(ctx, id)
	if err != nil {
		return domain.Team{}, mapStoreErr(err)
	}
	return t, nil
}

func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	return s.store.Teams().ListTeams(ctx)
}

func (s *TeamService) Update(ctx context.Context, id string, in TeamInput) (domain.Team, error) {
	if err := in.validate(); err != nil {
		return domain.Team{}, err
	}

	t := domain.Team{
		ID:         id,
		Name:       in.Name,
		RobotName:  in.RobotName,
		CategoryID: in.CategoryID,
	}
	if err := s.store.Teams().UpdateTeam(ctx, t); err != nil {
		return domain.Team{}, mapStoreErr(err)
	}
	return s.store.Teams().GetTeamByID(ctx, id)
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	return mapStoreErr(s.store.Teams().DeleteTeam(ctx, id))
}
