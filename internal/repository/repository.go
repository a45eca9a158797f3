package repository

import (
	"alcyxob/fitness-catalog/internal/domain"
	"context"
	"time"
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrAlreadyExists = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// MuscleTargetsRow is the stored shape of muscles_targeted.
type MuscleTargetsRow struct {
	Primary   []string `bson:"primary" json:"primary"`
	Secondary []string `bson:"secondary,omitempty" json:"secondary,omitempty"`
}

// ExerciseRow is an exercise as the remote store keeps it. Nullable columns are pointers
// or nil slices.
type ExerciseRow struct {
	ID              string            `bson:"_id" json:"id"`
	Name            string            `bson:"name" json:"name"`
	Category        string            `bson:"category" json:"category"`
	Description     string            `bson:"description" json:"description"`
	VideoURL        *string           `bson:"video_url" json:"video_url"`
	Tips            []string          `bson:"tips" json:"tips"`
	MusclesTargeted *MuscleTargetsRow `bson:"muscles_targeted" json:"muscles_targeted"`
	Equipment       []string          `bson:"equipment" json:"equipment"`
	IsCoreExercise  bool              `bson:"is_core_exercise" json:"is_core_exercise"`
	SelectionPools  []string          `bson:"selection_pools" json:"selection_pools"`
	CreatedBy       *string           `bson:"created_by" json:"created_by"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `bson:"updated_at" json:"updated_at"`
}

// Row field names accepted by ExerciseRowRepository.Update.
const (
	FieldName            = "name"
	FieldCategory        = "category"
	FieldDescription     = "description"
	FieldVideoURL        = "video_url"
	FieldTips            = "tips"
	FieldMusclesTargeted = "muscles_targeted"
	FieldEquipment       = "equipment"
	FieldIsCoreExercise  = "is_core_exercise"
	FieldSelectionPools  = "selection_pools"
)

// ExerciseRowQuery selects a page of rows. Results are always ordered by name.
// A zero Limit means no limit; an empty Category means all categories.
type ExerciseRowQuery struct {
	Category string
	Offset   int
	Limit    int
}

// ExerciseRowRepository is the row-fetch contract of the remote exercise store.
type ExerciseRowRepository interface {
	Find(ctx context.Context, q ExerciseRowQuery) ([]ExerciseRow, error)
	FindByID(ctx context.Context, id string) (*ExerciseRow, error)
	Insert(ctx context.Context, row *ExerciseRow) error
	// Update sets only the given fields. Returns ErrNotFound if id does not exist.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete returns ErrNotFound if id does not exist.
	Delete(ctx context.Context, id string) error
}

// SelectionRepository persists which exercise a user picked for a program slot.
type SelectionRepository interface {
	// Get returns ErrNotFound when no selection was ever stored for key.
	Get(ctx context.Context, key domain.SlotKey) (string, error)
	Set(ctx context.Context, key domain.SlotKey, exerciseID string) error
}
