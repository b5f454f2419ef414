package models

// TargetStatus is the liveness of a target.
type TargetStatus string

const (
	// TargetAlive indicates the target can still be hunted.
	TargetAlive TargetStatus = "Alive"
	// TargetEliminated indicates a mission against the target completed.
	TargetEliminated TargetStatus = "Eliminated"
)

// TargetModel represents a target on the grid.
type TargetModel struct {
	Name       string
	Role       string
	Status     TargetStatus
	Image      string
	ID         int64
	X          int
	Y          int
	IsDetected bool
}

// Location returns the target's current grid position.
func (t TargetModel) Location() LocationModel {
	return LocationModel{X: t.X, Y: t.Y}
}
