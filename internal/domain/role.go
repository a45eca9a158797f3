package domain

// Role is the caller role carried in the access token.
type Role string

const (
	RoleCoach   Role = "coach"
	RoleAthlete Role = "athlete"
)
