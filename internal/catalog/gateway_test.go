package catalog

import (
	"alcyxob/fitness-catalog/internal/domain"
	"alcyxob/fitness-catalog/internal/repository"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeRows is an in-memory ExerciseRowRepository that records every call.
type fakeRows struct {
	mu        sync.Mutex
	rows      map[string]repository.ExerciseRow
	queries   []repository.ExerciseRowQuery
	updates   []map[string]any
	findErrAt int // Find call index (0-based) that fails; -1 for none
	findErr   error
	byIDErr   error
}

func newFakeRows(rows ...repository.ExerciseRow) *fakeRows {
	f := &fakeRows{rows: make(map[string]repository.ExerciseRow), findErrAt: -1}
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return f
}

func (f *fakeRows) sorted(category string) []repository.ExerciseRow {
	out := make([]repository.ExerciseRow, 0, len(f.rows))
	for _, r := range f.rows {
		if category == "" || r.Category == category {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeRows) Find(_ context.Context, q repository.ExerciseRowQuery) ([]repository.ExerciseRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := len(f.queries)
	f.queries = append(f.queries, q)
	if call == f.findErrAt {
		return nil, f.findErr
	}
	all := f.sorted(q.Category)
	if q.Offset >= len(all) {
		return []repository.ExerciseRow{}, nil
	}
	all = all[q.Offset:]
	if q.Limit > 0 && q.Limit < len(all) {
		all = all[:q.Limit]
	}
	return all, nil
}

func (f *fakeRows) FindByID(_ context.Context, id string) (*repository.ExerciseRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRows) Insert(_ context.Context, row *repository.ExerciseRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[row.ID]; ok {
		return fmt.Errorf("insert %q: %w", row.ID, repository.ErrAlreadyExists)
	}
	f.rows[row.ID] = *row
	return nil
}

func (f *fakeRows) Update(_ context.Context, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, fields)
	r, ok := f.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields[repository.FieldName]; ok {
		r.Name = v.(string)
	}
	if v, ok := fields[repository.FieldDescription]; ok {
		r.Description = v.(string)
	}
	if v, ok := fields[repository.FieldCategory]; ok {
		r.Category = v.(string)
	}
	f.rows[id] = r
	return nil
}

func (f *fakeRows) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func numberedRows(n int) []repository.ExerciseRow {
	rows := make([]repository.ExerciseRow, n)
	for i := range rows {
		name := fmt.Sprintf("Exercise %05d", i)
		rows[i] = repository.ExerciseRow{ID: domain.DeriveID(name), Name: name, Category: "squat"}
	}
	return rows
}

func TestGatewayFetchAllPaging(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		pageSize  int
		wantCalls int
	}{
		{"empty store", 0, 10, 1},
		{"short single page", 7, 10, 1},
		{"exact multiple needs a terminating empty page", 30, 10, 4},
		{"remainder page ends the scan", 34, 10, 4},
		{"default page size", 2500, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := newFakeRows(numberedRows(tt.rows)...)
			g := NewGateway(rows, GatewayConfig{PageSize: tt.pageSize, Logger: discardLogger})

			got, err := g.FetchAll(context.Background())
			require.NoError(t, err)
			assert.Len(t, got, tt.rows)
			assert.Len(t, rows.queries, tt.wantCalls)

			size := tt.pageSize
			if size == 0 {
				size = DefaultPageSize
			}
			for i, q := range rows.queries {
				assert.Equal(t, i*size, q.Offset)
				assert.Equal(t, size, q.Limit)
			}
			for i := 1; i < len(got); i++ {
				assert.Less(t, got[i-1].Name, got[i].Name)
			}
		})
	}
}

func TestGatewayFetchAllPageErrorAborts(t *testing.T) {
	rows := newFakeRows(numberedRows(25)...)
	rows.findErrAt = 1
	rows.findErr = errors.New("connection reset")
	g := NewGateway(rows, GatewayConfig{PageSize: 10, Logger: discardLogger})

	got, err := g.FetchAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "fetchAll", te.Op)
	assert.ErrorIs(t, err, rows.findErr)
	assert.Len(t, rows.queries, 2)
}

func TestGatewaySkipsRowsWithUnknownCategory(t *testing.T) {
	rows := newFakeRows(
		repository.ExerciseRow{ID: "back-squat", Name: "Back Squat", Category: "squat"},
		repository.ExerciseRow{ID: "mystery", Name: "Mystery", Category: "yoga"},
	)
	g := NewGateway(rows, GatewayConfig{Logger: discardLogger})

	got, err := g.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "back-squat", got[0].ID)

	_, _, err = g.FetchByID(context.Background(), "mystery")
	var de *DataError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "category", de.Field)
	assert.Equal(t, "yoga", de.Value)
}

func TestGatewayFetchByCategory(t *testing.T) {
	rows := newFakeRows(
		repository.ExerciseRow{ID: "goblet-squat", Name: "Goblet Squat", Category: "squat"},
		repository.ExerciseRow{ID: "back-squat", Name: "Back Squat", Category: "squat"},
		repository.ExerciseRow{ID: "pull-up", Name: "Pull Up", Category: "pull"},
	)
	g := NewGateway(rows, GatewayConfig{Logger: discardLogger})

	got, err := g.FetchByCategory(context.Background(), domain.CategorySquat)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "back-squat", got[0].ID)
	assert.Equal(t, "goblet-squat", got[1].ID)
	assert.Equal(t, "squat", rows.queries[0].Category)
}

func TestGatewayFetchByID(t *testing.T) {
	video := ""
	rows := newFakeRows(repository.ExerciseRow{
		ID: "pull-up", Name: "Pull Up", Category: "pull", VideoURL: &video, Tips: []string{},
		MusclesTargeted: &repository.MuscleTargetsRow{Primary: []string{"lats"}},
	})
	g := NewGateway(rows, GatewayConfig{Logger: discardLogger})

	t.Run("present", func(t *testing.T) {
		ex, found, err := g.FetchByID(context.Background(), "pull-up")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, domain.CategoryPull, ex.Category)
		assert.Nil(t, ex.VideoURL, "empty video url is absent")
		assert.Nil(t, ex.Tips, "empty list is absent")
		require.NotNil(t, ex.MusclesTargeted)
		assert.Equal(t, []string{"lats"}, ex.MusclesTargeted.Primary)
	})

	t.Run("absent is not an error", func(t *testing.T) {
		_, found, err := g.FetchByID(context.Background(), "nope")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("transport failure", func(t *testing.T) {
		rows.byIDErr = errors.New("timeout")
		defer func() { rows.byIDErr = nil }()
		_, found, err := g.FetchByID(context.Background(), "pull-up")
		assert.False(t, found)
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "fetchById", te.Op)
	})
}

func TestGatewayCreate(t *testing.T) {
	rows := newFakeRows()
	g := NewGateway(rows, GatewayConfig{Logger: discardLogger})

	created, err := g.Create(context.Background(), domain.Exercise{
		ID:       "ignored",
		Name:     "Trap Bar Deadlift",
		Category: domain.CategoryHinge,
		SelectionPools: []domain.CategorySlot{
			domain.SlotPrimaryHinge,
		},
	}, "coach-1")
	require.NoError(t, err)
	assert.Equal(t, "trap-bar-deadlift", created.ID)
	assert.Equal(t, []domain.CategorySlot{domain.SlotPrimaryHinge}, created.SelectionPools)

	stored := rows.rows["trap-bar-deadlift"]
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, "coach-1", *stored.CreatedBy)
	assert.Equal(t, []string{}, stored.Tips, "absent lists are stored empty")

	t.Run("duplicate", func(t *testing.T) {
		_, err := g.Create(context.Background(), domain.Exercise{Name: "trap bar  deadlift!", Category: domain.CategoryHinge}, "")
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	})

	t.Run("invalid category", func(t *testing.T) {
		_, err := g.Create(context.Background(), domain.Exercise{Name: "Plank", Category: "yoga"}, "")
		var de *DataError
		require.ErrorAs(t, err, &de)
		assert.NotContains(t, rows.rows, "plank")
	})

	t.Run("name without id characters", func(t *testing.T) {
		_, err := g.Create(context.Background(), domain.Exercise{Name: "!!!", Category: domain.CategoryCore}, "")
		assert.Error(t, err)
	})
}

func TestGatewayUpdateSendsOnlyPresentFields(t *testing.T) {
	rows := newFakeRows(repository.ExerciseRow{ID: "back-squat", Name: "Back Squat", Category: "squat", Description: "old"})
	g := NewGateway(rows, GatewayConfig{Logger: discardLogger})

	desc := "Bar on the upper back."
	name := "Barbell Back Squat"
	got, err := g.Update(context.Background(), "back-squat", ExercisePatch{Description: &desc, Name: &name})
	require.NoError(t, err)

	require.Len(t, rows.updates, 1)
	assert.Equal(t, map[string]any{
		repository.FieldDescription: desc,
		repository.FieldName:        name,
	}, rows.updates[0])
	assert.Equal(t, "back-squat", got.ID, "id is stable across renames")
	assert.Equal(t, name, got.Name)
	assert.Equal(t, desc, got.Description)

	t.Run("missing id", func(t *testing.T) {
		_, err := g.Update(context.Background(), "nope", ExercisePatch{Description: &desc})
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("invalid category is rejected before the store", func(t *testing.T) {
		bad := domain.Category("yoga")
		before := len(rows.updates)
		_, err := g.Update(context.Background(), "back-squat", ExercisePatch{Category: &bad})
		var de *DataError
		require.ErrorAs(t, err, &de)
		assert.Len(t, rows.updates, before)
	})
}

func TestGatewayDelete(t *testing.T) {
	rows := newFakeRows(repository.ExerciseRow{ID: "pull-up", Name: "Pull Up", Category: "pull"})
	g := NewGateway(rows, GatewayConfig{Logger: discardLogger})

	require.NoError(t, g.Delete(context.Background(), "pull-up"))
	assert.Empty(t, rows.rows)

	err := g.Delete(context.Background(), "pull-up")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "delete", te.Op)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPatchEmpty(t *testing.T) {
	assert.True(t, ExercisePatch{}.Empty())
	core := false
	assert.False(t, ExercisePatch{IsCore: &core}.Empty())
}

func TestGatewayDropsUnknownSelectionPools(t *testing.T) {
	rows := newFakeRows(repository.ExerciseRow{
		ID: "back-squat", Name: "Back Squat", Category: "squat",
		SelectionPools: []string{"PRIMARY_SQUAT", "BALANCE", "LOWER_BODY"},
	})
	g := NewGateway(rows, GatewayConfig{Logger: discardLogger})

	got, err := g.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []domain.CategorySlot{domain.SlotPrimarySquat, domain.SlotLowerBody}, got[0].SelectionPools)
}
