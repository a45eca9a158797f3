// internal/domain/exercise.go
package domain

import (
	"regexp"
	"slices"
	"strings"
)

// Category is the single movement category an exercise belongs to.
type Category string

const (
	CategoryPrep         Category = "prep"
	CategoryHinge        Category = "hinge"
	CategorySquat        Category = "squat"
	CategoryLunge        Category = "lunge"
	CategoryPress        Category = "press"
	CategoryPull         Category = "pull"
	CategoryCore         Category = "core"
	CategorySprint       Category = "sprint"
	CategoryPrehab       Category = "prehab"
	CategoryEnergySystem Category = "energy_system"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryPrep,
	CategoryHinge,
	CategorySquat,
	CategoryLunge,
	CategoryPress,
	CategoryPull,
	CategoryCore,
	CategorySprint,
	CategoryPrehab,
	CategoryEnergySystem,
}

// ParseCategory returns the category for s, or false if s is not part of the closed set.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if slices.Contains(Categories, c) {
		return c, true
	}
	return "", false
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// MuscleTargets lists the muscles an exercise works.
type MuscleTargets struct {
	Primary   []string `json:"primary" yaml:"primary"`
	Secondary []string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// Exercise represents a single exercise definition in the catalog.
// Optional fields use nil to mean "absent".
type Exercise struct {
	ID              string         `json:"id" yaml:"id"`
	Name            string         `json:"name" yaml:"name"`
	Category        Category       `json:"category" yaml:"category"`
	Description     string         `json:"description" yaml:"description"`
	VideoURL        *string        `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"`
	Tips            []string       `json:"tips,omitempty" yaml:"tips,omitempty"`
	MusclesTargeted *MuscleTargets `json:"musclesTargeted,omitempty" yaml:"musclesTargeted,omitempty"`
	Equipment       []string       `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	SelectionPools  []CategorySlot `json:"selectionPools,omitempty" yaml:"selectionPools,omitempty"`
	IsCore          bool           `json:"isCore,omitempty" yaml:"isCore,omitempty"`
}

// Clone returns a deep copy so callers never share slices with the cache.
func (e Exercise) Clone() Exercise {
	out := e
	if e.VideoURL != nil {
		v := *e.VideoURL
		out.VideoURL = &v
	}
	out.Tips = slices.Clone(e.Tips)
	out.Equipment = slices.Clone(e.Equipment)
	out.SelectionPools = slices.Clone(e.SelectionPools)
	if e.MusclesTargeted != nil {
		out.MusclesTargeted = &MuscleTargets{
			Primary:   slices.Clone(e.MusclesTargeted.Primary),
			Secondary: slices.Clone(e.MusclesTargeted.Secondary),
		}
	}
	return out
}

// InPool reports whether the exercise was explicitly made eligible for slot.
func (e Exercise) InPool(slot CategorySlot) bool {
	return slices.Contains(e.SelectionPools, slot)
}

// CloneExercises deep-copies a list of exercises.
func CloneExercises(in []Exercise) []Exercise {
	if in == nil {
		return nil
	}
	out := make([]Exercise, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// DeriveID turns an exercise name into its catalog id: lowercased, every run of
// characters outside [a-z0-9] replaced by one hyphen, no leading or trailing hyphen.
func DeriveID(name string) string {
	id := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(id, "-")
}
