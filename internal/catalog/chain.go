package catalog

import (
	"alcyxob/fitness-catalog/internal/domain"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Names of the built-in sources.
const (
	SourceRemote   = "remote"
	SourceStale    = "stale"
	SourceSnapshot = "snapshot"
	SourceBundled  = "bundled"
)

// Source is one tier of the fallback chain.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.Exercise, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc struct {
	SourceName string
	Fn         func(ctx context.Context) ([]domain.Exercise, error)
}

func (s SourceFunc) Name() string { return s.SourceName }

func (s SourceFunc) Load(ctx context.Context) ([]domain.Exercise, error) { return s.Fn(ctx) }

// Result is what a chain produced and which tier produced it.
type Result struct {
	Exercises []domain.Exercise
	Source    string
}

// Chain tries its sources in order and returns the first that yields data.
type Chain struct {
	sources []Source
	logger  *slog.Logger
}

// NewChain builds a chain; nil sources are skipped so optional tiers can be passed as-is.
func NewChain(logger *slog.Logger, sources ...Source) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Chain{logger: logger}
	for _, s := range sources {
		if s != nil {
			c.sources = append(c.sources, s)
		}
	}
	return c
}

// Load returns the result of the first source that succeeds with a non-empty list.
// When every source fails, the error joins all of their failures.
func (c *Chain) Load(ctx context.Context) (Result, error) {
	var errs []error
	for _, src := range c.sources {
		exercises, err := src.Load(ctx)
		if err == nil && len(exercises) == 0 {
			err = ErrNoData
		}
		if err != nil {
			if !errors.Is(err, ErrNoData) {
				c.logger.Warn("catalog source failed", "source", src.Name(), "error", err)
			}
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		return Result{Exercises: exercises, Source: src.Name()}, nil
	}
	return Result{}, errors.Join(errs...)
}
