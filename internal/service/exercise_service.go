package service

import (
	"alcyxob/fitness-catalog/internal/catalog"
	"alcyxob/fitness-catalog/internal/domain"
	"alcyxob/fitness-catalog/internal/repository"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("an exercise with this name already exists")
	ErrValidationFailed = errors.New("exercise validation failed")
)

// ExerciseWriter is the authoring side of the catalog gateway.
type ExerciseWriter interface {
	Create(ctx context.Context, ex domain.Exercise, createdBy string) (domain.Exercise, error)
	Update(ctx context.Context, id string, patch catalog.ExercisePatch) (domain.Exercise, error)
	Delete(ctx context.Context, id string) error
}

// CatalogStore is the read side served from the in-memory catalog.
type CatalogStore interface {
	GetAll() []domain.Exercise
	GetByCategory(category domain.Category) []domain.Exercise
	GetByID(id string) (domain.Exercise, bool)
	GetCategories() []domain.Category
	Refresh(ctx context.Context) error
}

type ExerciseService interface {
	ListExercises(category string) ([]domain.Exercise, error)
	ListCategories() []domain.Category
	GetExerciseByID(id string) (domain.Exercise, error)
	CreateExercise(ctx context.Context, ex domain.Exercise, createdBy string) (domain.Exercise, error)
	UpdateExercise(ctx context.Context, id string, patch catalog.ExercisePatch) (domain.Exercise, error)
	DeleteExercise(ctx context.Context, id string) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	writer ExerciseWriter
	store  CatalogStore
	logger *slog.Logger
}

// NewExerciseService creates the catalog service. Writes go to the remote store and
// are followed by a forced cache refresh so reads observe them.
func NewExerciseService(writer ExerciseWriter, store CatalogStore, logger *slog.Logger) ExerciseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &exerciseService{writer: writer, store: store, logger: logger}
}

// ListExercises returns the whole catalog, or one category of it when category is set.
func (s *exerciseService) ListExercises(category string) ([]domain.Exercise, error) {
	if category == "" {
		return s.store.GetAll(), nil
	}
	c, ok := domain.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidationFailed, category)
	}
	return s.store.GetByCategory(c), nil
}

func (s *exerciseService) ListCategories() []domain.Category {
	return s.store.GetCategories()
}

func (s *exerciseService) GetExerciseByID(id string) (domain.Exercise, error) {
	ex, ok := s.store.GetByID(id)
	if !ok {
		return domain.Exercise{}, ErrExerciseNotFound
	}
	return ex, nil
}

// CreateExercise validates and stores a new exercise. The id is derived from the name.
func (s *exerciseService) CreateExercise(ctx context.Context, ex domain.Exercise, createdBy string) (domain.Exercise, error) {
	ex.Name = strings.TrimSpace(ex.Name)
	if err := validateExercise(ex); err != nil {
		return domain.Exercise{}, err
	}

	created, err := s.writer.Create(ctx, ex, createdBy)
	if err != nil {
		return domain.Exercise{}, mapWriteError(err)
	}
	s.refresh(ctx, "create", created.ID)
	return created, nil
}

// UpdateExercise applies a partial update. An empty patch is rejected.
func (s *exerciseService) UpdateExercise(ctx context.Context, id string, patch catalog.ExercisePatch) (domain.Exercise, error) {
	if patch.Empty() {
		return domain.Exercise{}, fmt.Errorf("%w: nothing to update", ErrValidationFailed)
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if domain.DeriveID(trimmed) == "" {
			return domain.Exercise{}, fmt.Errorf("%w: name is required", ErrValidationFailed)
		}
		patch.Name = &trimmed
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return domain.Exercise{}, fmt.Errorf("%w: unknown category %q", ErrValidationFailed, *patch.Category)
	}
	if patch.SelectionPools != nil {
		if err := validatePools(*patch.SelectionPools); err != nil {
			return domain.Exercise{}, err
		}
	}

	updated, err := s.writer.Update(ctx, id, patch)
	if err != nil {
		return domain.Exercise{}, mapWriteError(err)
	}
	s.refresh(ctx, "update", id)
	return updated, nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, id string) error {
	if err := s.writer.Delete(ctx, id); err != nil {
		return mapWriteError(err)
	}
	s.refresh(ctx, "delete", id)
	return nil
}

// refresh reloads the cache after a write. The write already succeeded, so a failed
// reload is only logged; the next staleness check retries it.
func (s *exerciseService) refresh(ctx context.Context, op, id string) {
	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Warn("catalog refresh after write failed", "op", op, "id", id, "error", err)
	}
}

func validateExercise(ex domain.Exercise) error {
	if domain.DeriveID(ex.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if !ex.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidationFailed, ex.Category)
	}
	return validatePools(ex.SelectionPools)
}

func validatePools(pools []domain.CategorySlot) error {
	for _, p := range pools {
		if _, ok := domain.ParseCategorySlot(string(p)); !ok {
			return fmt.Errorf("%w: unknown selection pool %q", ErrValidationFailed, p)
		}
	}
	return nil
}

func mapWriteError(err error) error {
	var de *catalog.DataError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrExerciseNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		return ErrExerciseExists
	case errors.As(err, &de):
		return fmt.Errorf("%w: %v", ErrValidationFailed, de)
	}
	return err
}
