package catalog

import (
	"alcyxob/fitness-catalog/internal/domain"
	"alcyxob/fitness-catalog/internal/repository"
	"slices"
)

// ExercisePatch carries a partial update. Nil fields are left untouched in the store.
type ExercisePatch struct {
	Name            *string                `json:"name,omitempty"`
	Category        *domain.Category       `json:"category,omitempty"`
	Description     *string                `json:"description,omitempty"`
	VideoURL        *string                `json:"videoUrl,omitempty"`
	Tips            *[]string              `json:"tips,omitempty"`
	MusclesTargeted *domain.MuscleTargets  `json:"musclesTargeted,omitempty"`
	Equipment       *[]string              `json:"equipment,omitempty"`
	SelectionPools  *[]domain.CategorySlot `json:"selectionPools,omitempty"`
	IsCore          *bool                  `json:"isCore,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ExercisePatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Description == nil && p.VideoURL == nil &&
		p.Tips == nil && p.MusclesTargeted == nil && p.Equipment == nil &&
		p.SelectionPools == nil && p.IsCore == nil
}

func optionalString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func optionalList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return slices.Clone(in)
}

func rowToExercise(row repository.ExerciseRow) (domain.Exercise, error) {
	category, ok := domain.ParseCategory(row.Category)
	if !ok {
		return domain.Exercise{}, &DataError{RowID: row.ID, Field: "category", Value: row.Category}
	}

	ex := domain.Exercise{
		ID:          row.ID,
		Name:        row.Name,
		Category:    category,
		Description: row.Description,
		VideoURL:    optionalString(row.VideoURL),
		Tips:        optionalList(row.Tips),
		Equipment:   optionalList(row.Equipment),
		IsCore:      row.IsCoreExercise,
	}
	if ex.ID == "" {
		ex.ID = domain.DeriveID(row.Name)
	}
	if row.MusclesTargeted != nil {
		ex.MusclesTargeted = &domain.MuscleTargets{
			Primary:   slices.Clone(row.MusclesTargeted.Primary),
			Secondary: optionalList(row.MusclesTargeted.Secondary),
		}
	}
	// Unknown pool tags are dropped; the rest of the row is still usable.
	for _, p := range row.SelectionPools {
		if slot, ok := domain.ParseCategorySlot(p); ok {
			ex.SelectionPools = append(ex.SelectionPools, slot)
		}
	}
	return ex, nil
}

func musclesToRow(m *domain.MuscleTargets) *repository.MuscleTargetsRow {
	if m == nil {
		return nil
	}
	return &repository.MuscleTargetsRow{
		Primary:   slices.Clone(m.Primary),
		Secondary: optionalList(m.Secondary),
	}
}

func poolsToRow(pools []domain.CategorySlot) []string {
	if len(pools) == 0 {
		return nil
	}
	out := make([]string, len(pools))
	for i, p := range pools {
		out[i] = string(p)
	}
	return out
}

func listOrEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}

func exerciseToRow(ex domain.Exercise) repository.ExerciseRow {
	return repository.ExerciseRow{
		ID:              ex.ID,
		Name:            ex.Name,
		Category:        string(ex.Category),
		Description:     ex.Description,
		VideoURL:        optionalString(ex.VideoURL),
		Tips:            listOrEmpty(ex.Tips),
		MusclesTargeted: musclesToRow(ex.MusclesTargeted),
		Equipment:       listOrEmpty(ex.Equipment),
		IsCoreExercise:  ex.IsCore,
		SelectionPools:  poolsToRow(ex.SelectionPools),
	}
}

// patchFields converts the present fields of p into row columns.
func patchFields(p ExercisePatch) map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields[repository.FieldName] = *p.Name
	}
	if p.Category != nil {
		fields[repository.FieldCategory] = string(*p.Category)
	}
	if p.Description != nil {
		fields[repository.FieldDescription] = *p.Description
	}
	if p.VideoURL != nil {
		fields[repository.FieldVideoURL] = optionalString(p.VideoURL)
	}
	if p.Tips != nil {
		fields[repository.FieldTips] = listOrEmpty(*p.Tips)
	}
	if p.MusclesTargeted != nil {
		fields[repository.FieldMusclesTargeted] = musclesToRow(p.MusclesTargeted)
	}
	if p.Equipment != nil {
		fields[repository.FieldEquipment] = listOrEmpty(*p.Equipment)
	}
	if p.SelectionPools != nil {
		fields[repository.FieldSelectionPools] = poolsToRow(*p.SelectionPools)
	}
	if p.IsCore != nil {
		fields[repository.FieldIsCoreExercise] = *p.IsCore
	}
	return fields
}
