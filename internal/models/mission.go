package models

import "time"

// MissionStatus represents the lifecycle state of a mission.
type MissionStatus string

const (
	// MissionProposed indicates an agent is in range of a target but not yet assigned.
	MissionProposed MissionStatus = "Proposed"
	// MissionAssigned indicates the agent is travelling toward the target.
	MissionAssigned MissionStatus = "Assigned"
	// MissionCompleted indicates the target was eliminated.
	MissionCompleted MissionStatus = "Completed"
)

// MissionModel pairs an agent with a target.
//
// Distance is in grid units. EstimatedDuration and ExecutionTime are in hours.
type MissionModel struct {
	StartTime         *time.Time
	Status            MissionStatus
	ID                int64
	AgentID           int64
	TargetID          int64
	Distance          float64
	EstimatedDuration float64
	ExecutionTime     float64
}
