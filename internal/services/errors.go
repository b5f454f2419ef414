package services

import (
	"context"
	"database/sql"
	"errors"
)

var (
	// ErrTargetNotFound indicates the requested target was not found.
	ErrTargetNotFound = errors.New("target not found")
	// ErrTargetEliminated indicates the target can no longer be relocated.
	ErrTargetEliminated = errors.New("target is eliminated")
	// ErrAgentNotFound indicates the requested agent was not found.
	ErrAgentNotFound = errors.New("agent not found")
	// ErrAgentOnMission indicates the agent is active and controlled by its mission.
	ErrAgentOnMission = errors.New("agent is on a mission")
	// ErrMissionNotFound indicates the requested mission was not found.
	ErrMissionNotFound = errors.New("mission not found")
	// ErrMissionNotProposed indicates the mission is past the proposal stage.
	ErrMissionNotProposed = errors.New("mission is not in proposed state")
	// ErrOutOfBounds indicates a location outside the grid.
	ErrOutOfBounds = errors.New("location is outside the grid")
	// ErrInvalidDirection indicates an unknown compass heading.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrInvalidInput wraps validation failures of caller supplied data.
	ErrInvalidInput = errors.New("invalid input")
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
