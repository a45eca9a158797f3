package catalog

import "alcyxob/fitness-catalog/internal/domain"

// Duplicate is an exercise dropped because an earlier one derives the same id.
type Duplicate struct {
	KeptID  string
	Dropped domain.Exercise
}

// Dedupe keeps the first exercise per id derived from its name, in input order.
func Dedupe(exercises []domain.Exercise) (kept []domain.Exercise, dropped []Duplicate) {
	seen := make(map[string]string, len(exercises))
	kept = make([]domain.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		key := domain.DeriveID(ex.Name)
		if keptID, ok := seen[key]; ok {
			dropped = append(dropped, Duplicate{KeptID: keptID, Dropped: ex})
			continue
		}
		seen[key] = ex.ID
		kept = append(kept, ex)
	}
	return kept, dropped
}
