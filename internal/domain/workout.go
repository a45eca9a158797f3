package domain

// WorkoutSlot is one placeholder position within a workout day, e.g. "1A" tagged PRIMARY_SQUAT.
type WorkoutSlot struct {
	ExerciseSlot string       `json:"exerciseSlot" binding:"required"`
	CategorySlot CategorySlot `json:"categorySlot" binding:"required"`
}

// WorkoutDay is the ordered slot structure of one day of a program.
type WorkoutDay struct {
	ProgramID string        `json:"programId"`
	Day       int           `json:"day,omitempty"`
	Slots     []WorkoutSlot `json:"slots"`
}

// Key returns the selection key for slot within this day's program.
func (d WorkoutDay) Key(slot WorkoutSlot) SlotKey {
	return SlotKey{
		ProgramID:    d.ProgramID,
		ExerciseSlot: slot.ExerciseSlot,
		CategorySlot: slot.CategorySlot,
	}
}
