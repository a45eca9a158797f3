// Package catalog holds the exercise catalog: the gateway to the remote row store,
// the bundled fallback dataset, and the process-wide cache built on both.
package catalog

import (
	"alcyxob/fitness-catalog/internal/domain"
	"alcyxob/fitness-catalog/internal/repository"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// DefaultPageSize is the batch size used when paging through the full catalog.
const DefaultPageSize = 1000

// GatewayConfig tunes a Gateway. Zero values select the defaults.
type GatewayConfig struct {
	PageSize int
	Logger   *slog.Logger
}

// Gateway translates between remote exercise rows and domain exercises.
// It holds no state besides its row store handle.
type Gateway struct {
	rows     repository.ExerciseRowRepository
	pageSize int
	logger   *slog.Logger
}

// NewGateway creates a gateway over the given row store.
func NewGateway(rows repository.ExerciseRowRepository, cfg GatewayConfig) *Gateway {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Gateway{rows: rows, pageSize: cfg.PageSize, logger: cfg.Logger}
}

// FetchAll pages through the whole catalog in name order. Pages are requested one
// after another; a page shorter than the page size ends the scan. Any page error
// aborts the fetch and no partial catalog is returned.
func (g *Gateway) FetchAll(ctx context.Context) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	for offset := 0; ; offset += g.pageSize {
		rows, err := g.rows.Find(ctx, repository.ExerciseRowQuery{Offset: offset, Limit: g.pageSize})
		if err != nil {
			return nil, transportErr("fetchAll", fmt.Errorf("page at offset %d: %w", offset, err))
		}
		exercises = g.appendRows(exercises, rows)
		if len(rows) < g.pageSize {
			break
		}
	}
	return exercises, nil
}

// FetchByCategory returns every exercise of one category, ordered by name.
func (g *Gateway) FetchByCategory(ctx context.Context, category domain.Category) ([]domain.Exercise, error) {
	rows, err := g.rows.Find(ctx, repository.ExerciseRowQuery{Category: string(category)})
	if err != nil {
		return nil, transportErr("fetchByCategory", err)
	}
	return g.appendRows(nil, rows), nil
}

// FetchByID looks up one exercise. found is false when the row does not exist;
// that is not an error.
func (g *Gateway) FetchByID(ctx context.Context, id string) (ex domain.Exercise, found bool, err error) {
	row, err := g.rows.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Exercise{}, false, nil
		}
		return domain.Exercise{}, false, transportErr("fetchById", err)
	}
	ex, err = rowToExercise(*row)
	if err != nil {
		return domain.Exercise{}, false, err
	}
	return ex, true, nil
}

// Create stores a new exercise. Any ID on ex is ignored: the id is derived from the
// name. The returned exercise is read back from the store.
func (g *Gateway) Create(ctx context.Context, ex domain.Exercise, createdBy string) (domain.Exercise, error) {
	ex.ID = domain.DeriveID(ex.Name)
	if ex.ID == "" {
		return domain.Exercise{}, fmt.Errorf("catalog: cannot derive an id from name %q", ex.Name)
	}
	if !ex.Category.Valid() {
		return domain.Exercise{}, &DataError{RowID: ex.ID, Field: "category", Value: string(ex.Category)}
	}

	row := exerciseToRow(ex)
	if createdBy != "" {
		row.CreatedBy = &createdBy
	}
	if err := g.rows.Insert(ctx, &row); err != nil {
		return domain.Exercise{}, transportErr("create", err)
	}
	return g.readBack(ctx, "create", ex.ID)
}

// Update sends only the fields present in patch and returns the stored result.
// The id never changes, even when the name does.
func (g *Gateway) Update(ctx context.Context, id string, patch ExercisePatch) (domain.Exercise, error) {
	if patch.Category != nil && !patch.Category.Valid() {
		return domain.Exercise{}, &DataError{RowID: id, Field: "category", Value: string(*patch.Category)}
	}
	if err := g.rows.Update(ctx, id, patchFields(patch)); err != nil {
		return domain.Exercise{}, transportErr("update", err)
	}
	return g.readBack(ctx, "update", id)
}

// Delete removes an exercise. Deleting a missing id fails with a TransportError
// wrapping repository.ErrNotFound.
func (g *Gateway) Delete(ctx context.Context, id string) error {
	return transportErr("delete", g.rows.Delete(ctx, id))
}

func (g *Gateway) readBack(ctx context.Context, op, id string) (domain.Exercise, error) {
	row, err := g.rows.FindByID(ctx, id)
	if err != nil {
		return domain.Exercise{}, transportErr(op, fmt.Errorf("read back %q: %w", id, err))
	}
	return rowToExercise(*row)
}

// appendRows translates rows, skipping and logging the ones that are not valid data.
func (g *Gateway) appendRows(dst []domain.Exercise, rows []repository.ExerciseRow) []domain.Exercise {
	for _, row := range rows {
		ex, err := rowToExercise(row)
		if err != nil {
			g.logger.Warn("skipping exercise row", "error", err)
			continue
		}
		dst = append(dst, ex)
	}
	return dst
}
