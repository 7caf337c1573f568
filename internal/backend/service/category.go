package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/store"
	"github.com/robochamp/backend/pkg/idx"
)

// CategoryService manages competition categories. A category cannot be
// deleted while arenas or teams still reference it.
type CategoryService struct {
	store store.Store
}

func NewCategoryService(st store.Store) *CategoryService {
	return &CategoryService{store: st}
}

type CategoryInput struct {
	Name        string
	Description string
	ScoreRules  string
}

func (in *CategoryInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (domain.Category, error) {
	if err := in.validate(); err != nil {
		return domain.Category{}, err
	}

	c := domain.Category{
		ID:          idx.New().String(),
		Name:        in.Name,
		Description: in.Description,
		ScoreRules:  in.ScoreRules,
	}
	if err := s.store.Categories().CreateCategory(ctx, c); err != nil {
		return domain.Category{}, mapStoreErr(err)
	}
	return s.store.Categories().GetCategoryByID(ctx, c.ID)
}

func (s *CategoryService) Get(ctx context.Context, id string) (domain.Category, error) {
	c, err := s.store.Categories().GetCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, mapStoreErr(err)
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.store.Categories().ListCategories(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (domain.Category, error) {
	if err := in.validate(); err != nil {
		return domain.Category{}, err
	}

	c := domain.Category{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		ScoreRules:  in.ScoreRules,
	}
	if err := s.store.Categories().UpdateCategory(ctx, c); err != nil {
		return domain.Category{}, mapStoreErr(err)
	}
	return s.store.Categories().GetCategoryByID(ctx, id)
}

// Delete removes a category, refusing while any arena or team still belongs
// to it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(tx store.Tx) error {
		arenas, err := tx.Arenas().CountArenasByCategory(ctx, id)
		if err != nil {
			return err
		}
		teams, err := tx.Teams().CountTeamsByCategory(ctx, id)
		if err != nil {
			return err
		}
		if arenas > 0 || teams > 0 {
			return ErrCategoryInUse
		}
		return mapStoreErr(tx.Categories().DeleteCategory(ctx, id))
	})
}

// mapStoreErr lifts store sentinels into service sentinels so handlers only
// ever match on the service package.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrAlreadyExists
	default:
		return err
	}
}
