package catalog

import (
	"alcyxob/fitness-catalog/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledDataset(t *testing.T) {
	b, err := LoadBundled()
	require.NoError(t, err)
	require.NotZero(t, b.Len())

	all := b.All()
	ids := make(map[string]bool, len(all))
	present := make(map[domain.Category]bool)
	for _, ex := range all {
		ids[ex.ID] = true
		present[ex.Category] = true
	}

	t.Run("every category is represented", func(t *testing.T) {
		for _, c := range domain.Categories {
			assert.True(t, present[c], "no bundled exercise for %s", c)
		}
	})

	t.Run("every suggested default is bundled", func(t *testing.T) {
		for slot, id := range domain.SuggestedExercises {
			assert.True(t, ids[id], "default %q for %s missing", id, slot)
		}
	})

	t.Run("all returns a copy", func(t *testing.T) {
		first := b.All()
		first[0].Name = "changed"
		assert.NotEqual(t, "changed", b.All()[0].Name)
	})

	t.Run("implements source", func(t *testing.T) {
		got, err := b.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, all, got)
		assert.Equal(t, SourceBundled, b.Name())
	})
}

func TestParseBundledRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "- id: x\n  category: prep\n"},
		{"unknown category", "- id: plank\n  name: Plank\n  category: yoga\n"},
		{"id not derived from name", "- id: plank-hold\n  name: Plank\n  category: core\n"},
		{"unknown selection pool", "- id: plank\n  name: Plank\n  category: core\n  selectionPools: [CORE, BALANCE]\n"},
		{"duplicate", "- id: plank\n  name: Plank\n  category: core\n- id: plank\n  name: plank\n  category: core\n"},
		{"not yaml list", "name: Plank\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBundled([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecodeExercises(t *testing.T) {
	video := "https://example.com/pull-up"
	in := []domain.Exercise{{
		ID:              "pull-up",
		Name:            "Pull Up",
		Category:        domain.CategoryPull,
		VideoURL:        &video,
		MusclesTargeted: &domain.MuscleTargets{Primary: []string{"lats"}},
		SelectionPools:  []domain.CategorySlot{domain.SlotPrimaryPull},
		IsCore:          true,
	}}
	data, err := EncodeExercises(in)
	require.NoError(t, err)

	out, err := DecodeExercises(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	b, err := ParseBundled(data)
	require.NoError(t, err, "an encoded snapshot is valid bundled data")
	assert.Equal(t, 1, b.Len())
}

func TestEmptyBundledHasNoData(t *testing.T) {
	b, err := ParseBundled([]byte("[]"))
	require.NoError(t, err)
	_, err = b.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestDedupe(t *testing.T) {
	in := []domain.Exercise{
		{ID: "back-squat", Name: "Back Squat", Category: domain.CategorySquat},
		{ID: "pull-up", Name: "Pull Up", Category: domain.CategoryPull},
		{ID: "back-squat-2", Name: "back squat", Category: domain.CategorySquat},
		{ID: "pull-up-old", Name: "Pull-Up", Category: domain.CategoryPull},
	}
	kept, dropped := Dedupe(in)

	require.Len(t, kept, 2)
	assert.Equal(t, "back-squat", kept[0].ID)
	assert.Equal(t, "pull-up", kept[1].ID)

	require.Len(t, dropped, 2)
	assert.Equal(t, "back-squat", dropped[0].KeptID)
	assert.Equal(t, "back-squat-2", dropped[0].Dropped.ID)
	assert.Equal(t, "pull-up", dropped[1].KeptID)

	kept, dropped = Dedupe(nil)
	assert.Empty(t, kept)
	assert.Empty(t, dropped)
}

func TestValidateExercises(t *testing.T) {
	valid := []domain.Exercise{
		{ID: "back-squat-v2", Name: "Back Squat", Category: domain.CategorySquat, SelectionPools: []domain.CategorySlot{domain.SlotPrimarySquat}},
	}
	assert.NoError(t, ValidateExercises(valid), "ids need not be derived from names")
	assert.NoError(t, ValidateExercises(nil))

	tests := []struct {
		name string
		in   []domain.Exercise
	}{
		{"no id", []domain.Exercise{{Name: "Plank", Category: domain.CategoryCore}}},
		{"no name", []domain.Exercise{{ID: "plank", Category: domain.CategoryCore}}},
		{"unknown category", []domain.Exercise{{ID: "plank", Name: "Plank", Category: "yoga"}}},
		{"unknown pool", []domain.Exercise{{ID: "plank", Name: "Plank", Category: domain.CategoryCore, SelectionPools: []domain.CategorySlot{"BALANCE"}}}},
		{"duplicate id", []domain.Exercise{
			{ID: "plank", Name: "Plank", Category: domain.CategoryCore},
			{ID: "plank", Name: "Side Plank", Category: domain.CategoryCore},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateExercises(tt.in))
		})
	}
}
