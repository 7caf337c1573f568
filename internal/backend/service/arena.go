package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/store"
	"github.com/robochamp/backend/pkg/idx"
)

// ArenaService manages competition arenas. Every arena belongs to exactly
// one category.
type ArenaService struct {
	store store.Store
}

func NewArenaService(st store.Store) *ArenaService {
	return &ArenaService{store: st}
}

type ArenaInput struct {
	Name        string
	YoutubeLink string
	CategoryID  string
}

func (in *ArenaInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if in.CategoryID == "" {
		return fmt.Errorf("%w: category_id is required", ErrInvalidRequest)
	}
	return nil
}

func (s *ArenaService) Create(ctx context.Context, in ArenaInput) (domain.Arena, error) {
	if err := in.validate(); err != nil {
		return domain.Arena{}, err
	}

	a := domain.Arena{
		ID:          idx.New().String(),
		Name:        in.Name,
		YoutubeLink: in.YoutubeLink,
		CategoryID:  in.CategoryID,
	}
	if err := s.store.Arenas().CreateArena(ctx, a); err != nil {
		return domain.Arena{}, mapStoreErr(err)
	}
	return s.store.Arenas().GetArenaByID(ctx, a.ID)
}

func (s *ArenaService) Get(ctx context.Context, id string) (domain.Arena, error) {
	a, err := s.store.Arenas().GetArenaByID(ctx, id)
	if err != nil {
		return domain.Arena{}, mapStoreErr(err)
	}
	return a, nil
}

func (s *ArenaService) List(ctx context.Context) ([]domain.Arena, error) {
	return s.store.Arenas().ListArenas(ctx)
}

func (s *ArenaService) Update(ctx context.Context, id string, in ArenaInput) (domain.Arena, error) {
	if err := in.validate(); err != nil {
		return domain.Arena{}, err
	}

	a := domain.Arena{
		ID:          id,
		Name:        in.Name,
		YoutubeLink: in.YoutubeLink,
		CategoryID:  in.CategoryID,
	}
	if err := s.store.Arenas().UpdateArena(ctx, a); err != nil {
		return domain.Arena{}, mapStoreErr(err)
	}
	return s.store.Arenas().GetArenaByID(ctx, id)
}

func (s *ArenaService) Delete(ctx context.Context, id string) error {
	return mapStoreErr(s.store.Arenas().DeleteArena(ctx, id))
}
