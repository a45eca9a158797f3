package service

import (
	"alcyxob/fitness-catalog/internal/catalog"
	"alcyxob/fitness-catalog/internal/domain"
	"alcyxob/fitness-catalog/internal/repository"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	created   []domain.Exercise
	patches   []catalog.ExercisePatch
	deleted   []string
	createErr error
	updateErr error
	deleteErr error
}

func (w *fakeWriter) Create(_ context.Context, ex domain.Exercise, _ string) (domain.Exercise, error) {
	if w.createErr != nil {
		return domain.Exercise{}, w.createErr
	}
	ex.ID = domain.DeriveID(ex.Name)
	w.created = append(w.created, ex)
	return ex, nil
}

func (w *fakeWriter) Update(_ context.Context, id string, patch catalog.ExercisePatch) (domain.Exercise, error) {
	if w.updateErr != nil {
		return domain.Exercise{}, w.updateErr
	}
	w.patches = append(w.patches, patch)
	return domain.Exercise{ID: id, Name: *patch.Name}, nil
}

func (w *fakeWriter) Delete(_ context.Context, id string) error {
	if w.deleteErr != nil {
		return w.deleteErr
	}
	w.deleted = append(w.deleted, id)
	return nil
}

type fakeStore struct {
	staticCatalog
	refreshes  int
	refreshErr error
}

func (s *fakeStore) GetByCategory(c domain.Category) []domain.Exercise {
	var out []domain.Exercise
	for _, ex := range s.staticCatalog {
		if ex.Category == c {
			out = append(out, ex)
		}
	}
	return out
}

func (s *fakeStore) GetByID(id string) (domain.Exercise, bool) {
	for _, ex := range s.staticCatalog {
		if ex.ID == id {
			return ex, true
		}
	}
	return domain.Exercise{}, false
}

func (s *fakeStore) GetCategories() []domain.Category {
	return []domain.Category{domain.CategorySquat}
}

func (s *fakeStore) Refresh(context.Context) error {
	s.refreshes++
	return s.refreshErr
}

func TestExerciseServiceReads(t *testing.T) {
	store := &fakeStore{staticCatalog: slotCatalog}
	svc := NewExerciseService(&fakeWriter{}, store, discardLogger)

	all, err := svc.ListExercises("")
	require.NoError(t, err)
	assert.Len(t, all, len(slotCatalog))

	squats, err := svc.ListExercises("squat")
	require.NoError(t, err)
	assert.Equal(t, []string{"back-squat", "goblet-squat"}, ids(squats))

	_, err = svc.ListExercises("yoga")
	assert.ErrorIs(t, err, ErrValidationFailed)

	ex, err := svc.GetExerciseByID("bench-press")
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", ex.Name)

	_, err = svc.GetExerciseByID("nope")
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	assert.Equal(t, []domain.Category{domain.CategorySquat}, svc.ListCategories())
}

func TestExerciseServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid create refreshes the catalog", func(t *testing.T) {
		w, store := &fakeWriter{}, &fakeStore{}
		svc := NewExerciseService(w, store, discardLogger)

		got, err := svc.CreateExercise(ctx, domain.Exercise{Name: "  Pallof Press ", Category: domain.CategoryCore}, "coach-1")
		require.NoError(t, err)
		assert.Equal(t, "pallof-press", got.ID)
		assert.Equal(t, "Pallof Press", w.created[0].Name)
		assert.Equal(t, 1, store.refreshes)
	})

	t.Run("refresh failure does not fail the write", func(t *testing.T) {
		store := &fakeStore{refreshErr: errors.New("down")}
		svc := NewExerciseService(&fakeWriter{}, store, discardLogger)
		_, err := svc.CreateExercise(ctx, domain.Exercise{Name: "Dead Bug", Category: domain.CategoryCore}, "")
		assert.NoError(t, err)
	})

	invalid := []struct {
		name string
		ex   domain.Exercise
	}{
		{"no name", domain.Exercise{Name: "  ", Category: domain.CategoryCore}},
		{"bad category", domain.Exercise{Name: "Plank", Category: "yoga"}},
		{"bad pool", domain.Exercise{Name: "Plank", Category: domain.CategoryCore, SelectionPools: []domain.CategorySlot{"ABS"}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			w, store := &fakeWriter{}, &fakeStore{}
			svc := NewExerciseService(w, store, discardLogger)
			_, err := svc.CreateExercise(ctx, tt.ex, "")
			assert.ErrorIs(t, err, ErrValidationFailed)
			assert.Empty(t, w.created)
			assert.Zero(t, store.refreshes)
		})
	}

	t.Run("duplicate", func(t *testing.T) {
		w := &fakeWriter{createErr: &catalog.TransportError{Op: "create", Err: fmt.Errorf("insert: %w", repository.ErrAlreadyExists)}}
		svc := NewExerciseService(w, &fakeStore{}, discardLogger)
		_, err := svc.CreateExercise(ctx, domain.Exercise{Name: "Plank", Category: domain.CategoryCore}, "")
		assert.ErrorIs(t, err, ErrExerciseExists)
	})

	t.Run("transport failure passes through", func(t *testing.T) {
		te := &catalog.TransportError{Op: "create", Err: errors.New("timeout")}
		svc := NewExerciseService(&fakeWriter{createErr: te}, &fakeStore{}, discardLogger)
		_, err := svc.CreateExercise(ctx, domain.Exercise{Name: "Plank", Category: domain.CategoryCore}, "")
		var got *catalog.TransportError
		assert.ErrorAs(t, err, &got)
	})
}

func TestExerciseServiceUpdate(t *testing.T) {
	ctx := context.Background()
	name := " Barbell Back Squat "

	w, store := &fakeWriter{}, &fakeStore{}
	svc := NewExerciseService(w, store, discardLogger)
	got, err := svc.UpdateExercise(ctx, "back-squat", catalog.ExercisePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "back-squat", got.ID)
	assert.Equal(t, "Barbell Back Squat", *w.patches[0].Name)
	assert.Equal(t, 1, store.refreshes)

	_, err = svc.UpdateExercise(ctx, "back-squat", catalog.ExercisePatch{})
	assert.ErrorIs(t, err, ErrValidationFailed)

	bad := domain.Category("yoga")
	_, err = svc.UpdateExercise(ctx, "back-squat", catalog.ExercisePatch{Category: &bad})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Len(t, w.patches, 1)

	missing := &fakeWriter{updateErr: &catalog.TransportError{Op: "update", Err: repository.ErrNotFound}}
	svc = NewExerciseService(missing, store, discardLogger)
	_, err = svc.UpdateExercise(ctx, "nope", catalog.ExercisePatch{Name: &name})
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestExerciseServiceDelete(t *testing.T) {
	ctx := context.Background()
	w, store := &fakeWriter{}, &fakeStore{}
	svc := NewExerciseService(w, store, discardLogger)

	require.NoError(t, svc.DeleteExercise(ctx, "pull-up"))
	assert.Equal(t, []string{"pull-up"}, w.deleted)
	assert.Equal(t, 1, store.refreshes)

	w.deleteErr = &catalog.TransportError{Op: "delete", Err: repository.ErrNotFound}
	assert.ErrorIs(t, svc.DeleteExercise(ctx, "pull-up"), ErrExerciseNotFound)
	assert.Equal(t, 1, store.refreshes)
}
