package catalog

import (
	"alcyxob/fitness-catalog/internal/domain"
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fallback_exercises.yaml
var bundledYAML []byte

// Bundled is the read-only exercise list packaged with the binary.
type Bundled struct {
	exercises []domain.Exercise
}

// LoadBundled parses the embedded dataset.
func LoadBundled() (*Bundled, error) {
	return ParseBundled(bundledYAML)
}

// MustLoadBundled is LoadBundled for program start-up; the embedded file is
// covered by tests, so a failure here is a build defect.
func MustLoadBundled() *Bundled {
	b, err := LoadBundled()
	if err != nil {
		panic(err)
	}
	return b
}

// ParseBundled decodes a YAML exercise list and checks it has the catalog invariants:
// a known category per exercise, ids derived from names, no duplicate ids.
func ParseBundled(data []byte) (*Bundled, error) {
	exercises, err := DecodeExercises(data)
	if err != nil {
		return nil, fmt.Errorf("bundled catalog: %w", err)
	}
	if err := ValidateExercises(exercises); err != nil {
		return nil, fmt.Errorf("bundled catalog: %w", err)
	}
	for _, ex := range exercises {
		if derived := domain.DeriveID(ex.Name); ex.ID != derived {
			return nil, fmt.Errorf("bundled catalog: id %q does not match name %q (want %q)", ex.ID, ex.Name, derived)
		}
	}
	return &Bundled{exercises: exercises}, nil
}

// ValidateExercises checks a decoded exercise list: every entry has an id, a name and
// a known category, every selection pool is a known slot tag, and ids are unique.
func ValidateExercises(exercises []domain.Exercise) error {
	seen := make(map[string]bool, len(exercises))
	for i, ex := range exercises {
		if ex.Name == "" {
			return fmt.Errorf("entry %d has no name", i)
		}
		if ex.ID == "" {
			return fmt.Errorf("entry %d (%q) has no id", i, ex.Name)
		}
		if !ex.Category.Valid() {
			return &DataError{RowID: ex.ID, Field: "category", Value: string(ex.Category)}
		}
		for _, pool := range ex.SelectionPools {
			if _, ok := domain.ParseCategorySlot(string(pool)); !ok {
				return &DataError{RowID: ex.ID, Field: "selection pool", Value: string(pool)}
			}
		}
		if seen[ex.ID] {
			return fmt.Errorf("duplicate id %q", ex.ID)
		}
		seen[ex.ID] = true
	}
	return nil
}

// DecodeExercises reads a YAML list of exercises in the domain shape.
func DecodeExercises(data []byte) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	if err := yaml.Unmarshal(data, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// EncodeExercises writes exercises in the same YAML shape the bundled dataset uses.
func EncodeExercises(exercises []domain.Exercise) ([]byte, error) {
	return yaml.Marshal(exercises)
}

// All returns a copy of the bundled exercises.
func (b *Bundled) All() []domain.Exercise {
	return domain.CloneExercises(b.exercises)
}

// Len returns the number of bundled exercises.
func (b *Bundled) Len() int {
	return len(b.exercises)
}

// Name implements Source.
func (b *Bundled) Name() string { return SourceBundled }

// Load implements Source.
func (b *Bundled) Load(context.Context) ([]domain.Exercise, error) {
	if len(b.exercises) == 0 {
		return nil, ErrNoData
	}
	return b.All(), nil
}
