package models

import "strings"

// LocationModel is a single grid position.
type LocationModel struct {
	X int
	Y int
}

// Direction is a compass heading used to move an entity by one cell.
type Direction string

// Compass headings accepted by the move operations.
const (
	North     Direction = "n"
	South     Direction = "s"
	East      Direction = "e"
	West      Direction = "w"
	NorthEast Direction = "ne"
	NorthWest Direction = "nw"
	SouthEast Direction = "se"
	SouthWest Direction = "sw"
)

// North increases Y, east increases X.
var directionDeltas = map[Direction]LocationModel{
	North:     {X: 0, Y: 1},
	South:     {X: 0, Y: -1},
	East:      {X: 1, Y: 0},
	West:      {X: -1, Y: 0},
	NorthEast: {X: 1, Y: 1},
	NorthWest: {X: -1, Y: 1},
	SouthEast: {X: 1, Y: -1},
	SouthWest: {X: -1, Y: -1},
}

// ParseDirection normalizes a wire value such as "NE" or " n " into a Direction.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	_, ok := directionDeltas[d]
	return d, ok
}

// Delta returns the one-cell offset for the direction.
func (d Direction) Delta() (LocationModel, bool) {
	delta, ok := directionDeltas[d]
	return delta, ok
}

// Translate returns l moved by delta.
func (l LocationModel) Translate(delta LocationModel) LocationModel {
	return LocationModel{X: l.X + delta.X, Y: l.Y + delta.Y}
}

// Within reports whether l lies in the square grid [0, size] on both axes.
func (l LocationModel) Within(size int) bool {
	return l.X >= 0 && l.Y >= 0 && l.X <= size && l.Y <= size
}

// StepToward returns the one-cell step from l that brings it closest to dst,
// or the zero delta when l == dst.
func (l LocationModel) StepToward(dst LocationModel) LocationModel {
	return LocationModel{X: sign(dst.X - l.X), Y: sign(dst.Y - l.Y)}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
