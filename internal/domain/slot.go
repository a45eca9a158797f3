// internal/domain/slot.go
package domain

import "slices"

// CategorySlot is the abstract tag a program attaches to a slot, e.g. PRIMARY_SQUAT.
type CategorySlot string

const (
	SlotPrep            CategorySlot = "PREP"
	SlotPrimaryHinge    CategorySlot = "PRIMARY_HINGE"
	SlotPrimarySquat    CategorySlot = "PRIMARY_SQUAT"
	SlotPrimaryLunge    CategorySlot = "PRIMARY_LUNGE"
	SlotPrimaryPress    CategorySlot = "PRIMARY_PRESS"
	SlotPrimaryPull     CategorySlot = "PRIMARY_PULL"
	SlotRotationalPress CategorySlot = "ROTATIONAL_PRESS"
	SlotSecondaryHinge  CategorySlot = "SECONDARY_HINGE"
	SlotSecondarySquat  CategorySlot = "SECONDARY_SQUAT"
	SlotSecondaryPress  CategorySlot = "SECONDARY_PRESS"
	SlotSecondaryPull   CategorySlot = "SECONDARY_PULL"
	SlotLowerBody       CategorySlot = "LOWER_BODY"
	SlotUpperBody       CategorySlot = "UPPER_BODY"
	SlotCore            CategorySlot = "CORE"
	SlotAntiRotation    CategorySlot = "ANTI_ROTATION"
	SlotSprint          CategorySlot = "SPRINT"
	SlotPrehab          CategorySlot = "PREHAB"
	SlotEnergySystem    CategorySlot = "ENERGY_SYSTEM"
	SlotConditioning    CategorySlot = "CONDITIONING"
)

// CategorySlots lists every slot tag the resolver knows about.
var CategorySlots = []CategorySlot{
	SlotPrep,
	SlotPrimaryHinge,
	SlotPrimarySquat,
	SlotPrimaryLunge,
	SlotPrimaryPress,
	SlotPrimaryPull,
	SlotRotationalPress,
	SlotSecondaryHinge,
	SlotSecondarySquat,
	SlotSecondaryPress,
	SlotSecondaryPull,
	SlotLowerBody,
	SlotUpperBody,
	SlotCore,
	SlotAntiRotation,
	SlotSprint,
	SlotPrehab,
	SlotEnergySystem,
	SlotConditioning,
}

// DefaultSlotCategories is used for slot tags the resolver does not recognize.
var DefaultSlotCategories = []Category{CategoryPrep}

// SlotCategories maps each slot tag to the exercise categories that can fill it.
// Every entry of CategorySlots must have a row here.
var SlotCategories = map[CategorySlot][]Category{
	SlotPrep:            {CategoryPrep},
	SlotPrimaryHinge:    {CategoryHinge},
	SlotPrimarySquat:    {CategorySquat},
	SlotPrimaryLunge:    {CategoryLunge},
	SlotPrimaryPress:    {CategoryPress},
	SlotPrimaryPull:     {CategoryPull},
	SlotRotationalPress: {CategoryPress},
	SlotSecondaryHinge:  {CategoryHinge},
	SlotSecondarySquat:  {CategorySquat},
	SlotSecondaryPress:  {CategoryPress},
	SlotSecondaryPull:   {CategoryPull},
	SlotLowerBody:       {CategoryHinge, CategorySquat, CategoryLunge},
	SlotUpperBody:       {CategoryPress, CategoryPull},
	SlotCore:            {CategoryCore},
	SlotAntiRotation:    {CategoryCore},
	SlotSprint:          {CategorySprint},
	SlotPrehab:          {CategoryPrehab},
	SlotEnergySystem:    {CategoryEnergySystem},
	SlotConditioning:    {CategoryEnergySystem, CategorySprint},
}

// SuggestedExercises holds the built-in default pick per slot tag.
// Slots without an entry have no suggestion.
var SuggestedExercises = map[CategorySlot]string{
	SlotPrep:            "worlds-greatest-stretch",
	SlotPrimaryHinge:    "trap-bar-deadlift",
	SlotPrimarySquat:    "back-squat",
	SlotPrimaryLunge:    "rear-foot-elevated-split-squat",
	SlotPrimaryPress:    "bench-press",
	SlotPrimaryPull:     "pull-up",
	SlotRotationalPress: "landmine-rotational-press",
	SlotSecondaryHinge:  "romanian-deadlift",
	SlotSecondarySquat:  "goblet-squat",
	SlotSecondaryPress:  "half-kneeling-landmine-press",
	SlotSecondaryPull:   "single-arm-dumbbell-row",
	SlotCore:            "dead-bug",
	SlotAntiRotation:    "pallof-press",
	SlotSprint:          "acceleration-sprint",
	SlotPrehab:          "band-pull-apart",
	SlotEnergySystem:    "assault-bike-intervals",
}

// ParseCategorySlot returns the slot for s, or false if it is not a known tag.
func ParseCategorySlot(s string) (CategorySlot, bool) {
	slot := CategorySlot(s)
	if slices.Contains(CategorySlots, slot) {
		return slot, true
	}
	return "", false
}

// SlotKey identifies one slot selection record.
type SlotKey struct {
	ProgramID    string       `json:"programId" bson:"programId"`
	ExerciseSlot string       `json:"exerciseSlot" bson:"exerciseSlot"`
	CategorySlot CategorySlot `json:"categorySlot" bson:"categorySlot"`
}
