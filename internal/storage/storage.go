package storage

import (
	"alcyxob/fitness-catalog/internal/domain"
	"context"
)

// DefaultSnapshotKey is the object key used when none is configured.
const DefaultSnapshotKey = "catalog/snapshot.yaml"

// SnapshotStorage persists the catalog snapshot as a single object.
// It satisfies catalog.SnapshotStore.
type SnapshotStorage interface {
	// Save overwrites the stored snapshot.
	Save(ctx context.Context, exercises []domain.Exercise) error

	// Load returns the stored snapshot, or catalog.ErrNoData if none was ever saved.
	Load(ctx context.Context) ([]domain.Exercise, error)
}
