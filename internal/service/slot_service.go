package service

import (
	"alcyxob/fitness-catalog/internal/domain"
	"alcyxob/fitness-catalog/internal/repository"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// SelectionSource says where a slot's selected exercise came from.
type SelectionSource string

const (
	SelectionNone     SelectionSource = "none"
	SelectionOverride SelectionSource = "override"
	SelectionDefault  SelectionSource = "default"
)

// ValidationError rejects a selection that the slot cannot hold.
// errors.Is(err, ErrValidationFailed) is true for it.
type ValidationError struct {
	Key        domain.SlotKey
	ExerciseID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid selection %q for %s/%s/%s: %s",
		e.ExerciseID, e.Key.ProgramID, e.Key.ExerciseSlot, e.Key.CategorySlot, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// CatalogReader is the part of the catalog the resolver reads.
type CatalogReader interface {
	GetAll() []domain.Exercise
}

// SlotResolution is a slot's candidate exercises and its current pick.
// SelectedExerciseID is empty when nothing is chosen yet.
type SlotResolution struct {
	Key                domain.SlotKey    `json:"slot"`
	Categories         []domain.Category `json:"categories"`
	Available          []domain.Exercise `json:"availableExercises"`
	SelectedExerciseID string            `json:"selectedExerciseId,omitempty"`
	Source             SelectionSource   `json:"selectionSource"`
}

// SlotProgress counts the resolved slots of a day.
type SlotProgress struct {
	Selected int  `json:"selected"`
	Total    int  `json:"total"`
	Complete bool `json:"complete"`
}

type SlotService interface {
	ResolveSlot(ctx context.Context, programID, exerciseSlot string, categorySlot domain.CategorySlot) SlotResolution
	SetSelection(ctx context.Context, programID, exerciseSlot string, categorySlot domain.CategorySlot, exerciseID string) error
	CountSelected(ctx context.Context, day domain.WorkoutDay) int
	IsSlotComplete(ctx context.Context, day domain.WorkoutDay) bool
	Progress(ctx context.Context, day domain.WorkoutDay) SlotProgress
}

// slotService implements the SlotService interface.
type slotService struct {
	catalog    CatalogReader
	selections repository.SelectionRepository
	logger     *slog.Logger
}

// NewSlotService creates the slot resolver over the shared catalog and the selection store.
func NewSlotService(catalog CatalogReader, selections repository.SelectionRepository, logger *slog.Logger) SlotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &slotService{catalog: catalog, selections: selections, logger: logger}
}

// CategoriesForSlot returns the exercise categories that can fill slot, and false
// when the tag is unknown and the default categories were used instead.
func CategoriesForSlot(slot domain.CategorySlot) ([]domain.Category, bool) {
	if cats, ok := domain.SlotCategories[slot]; ok {
		return cats, true
	}
	return domain.DefaultSlotCategories, false
}

// Candidates filters exercises to those that can fill slot: the category is one of
// the slot's categories or the exercise lists the slot in its selection pools.
func Candidates(exercises []domain.Exercise, slot domain.CategorySlot, categories []domain.Category) []domain.Exercise {
	out := []domain.Exercise{}
	for _, ex := range exercises {
		if slices.Contains(categories, ex.Category) || ex.InPool(slot) {
			out = append(out, ex)
		}
	}
	return out
}

// ResolveSlot lists a slot's candidates and picks the selected one: the stored
// override, else the suggested default, else nothing. A pick that is not among the
// candidates is ignored. A failing selection store degrades to the default.
func (s *slotService) ResolveSlot(ctx context.Context, programID, exerciseSlot string, categorySlot domain.CategorySlot) SlotResolution {
	key := domain.SlotKey{ProgramID: programID, ExerciseSlot: exerciseSlot, CategorySlot: categorySlot}
	categories, known := CategoriesForSlot(categorySlot)
	if !known {
		s.logger.Warn("unknown category slot, using default categories", "categorySlot", categorySlot, "categories", categories)
	}

	res := SlotResolution{
		Key:        key,
		Categories: slices.Clone(categories),
		Available:  Candidates(s.catalog.GetAll(), categorySlot, categories),
		Source:     SelectionNone,
	}
	if len(res.Available) == 0 {
		return res
	}

	if id, ok := s.override(ctx, key); ok && containsID(res.Available, id) {
		res.SelectedExerciseID, res.Source = id, SelectionOverride
		return res
	}
	if id, ok := domain.SuggestedExercises[categorySlot]; ok && containsID(res.Available, id) {
		res.SelectedExerciseID, res.Source = id, SelectionDefault
	}
	return res
}

func (s *slotService) override(ctx context.Context, key domain.SlotKey) (string, bool) {
	id, err := s.selections.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("failed to read slot selection", "slot", key, "error", err)
		}
		return "", false
	}
	return id, id != ""
}

// SetSelection stores exerciseID as the slot's override. The exercise must be one of
// the slot's current candidates; otherwise nothing is written.
func (s *slotService) SetSelection(ctx context.Context, programID, exerciseSlot string, categorySlot domain.CategorySlot, exerciseID string) error {
	key := domain.SlotKey{ProgramID: programID, ExerciseSlot: exerciseSlot, CategorySlot: categorySlot}
	switch {
	case programID == "" || exerciseSlot == "":
		return &ValidationError{Key: key, ExerciseID: exerciseID, Reason: "program and exercise slot are required"}
	case exerciseID == "":
		return &ValidationError{Key: key, ExerciseID: exerciseID, Reason: "exercise id is required"}
	}

	categories, _ := CategoriesForSlot(categorySlot)
	if !containsID(Candidates(s.catalog.GetAll(), categorySlot, categories), exerciseID) {
		return &ValidationError{Key: key, ExerciseID: exerciseID, Reason: "exercise is not available for this slot"}
	}

	if err := s.selections.Set(ctx, key, exerciseID); err != nil {
		return fmt.Errorf("store slot selection: %w", err)
	}
	s.logger.Info("slot selection stored", "slot", key, "exerciseId", exerciseID)
	return nil
}

// CountSelected returns how many of the day's slots resolve to an exercise.
func (s *slotService) CountSelected(ctx context.Context, day domain.WorkoutDay) int {
	n := 0
	for _, slot := range day.Slots {
		if s.ResolveSlot(ctx, day.ProgramID, slot.ExerciseSlot, slot.CategorySlot).SelectedExerciseID != "" {
			n++
		}
	}
	return n
}

// IsSlotComplete reports whether every slot of a non-empty day has an exercise.
func (s *slotService) IsSlotComplete(ctx context.Context, day domain.WorkoutDay) bool {
	return s.Progress(ctx, day).Complete
}

func (s *slotService) Progress(ctx context.Context, day domain.WorkoutDay) SlotProgress {
	selected := s.CountSelected(ctx, day)
	return SlotProgress{
		Selected: selected,
		Total:    len(day.Slots),
		Complete: len(day.Slots) > 0 && selected == len(day.Slots),
	}
}

func containsID(exercises []domain.Exercise, id string) bool {
	return slices.ContainsFunc(exercises, func(ex domain.Exercise) bool { return ex.ID == id })
}
