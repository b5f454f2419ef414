// Package models defines the internal representations of agents, targets,
// missions and locations used by the services and the persistence layer.
package models

// AgentStatus is the availability of an agent.
type AgentStatus string

const (
	// AgentInactive indicates the agent is free to take a mission.
	AgentInactive AgentStatus = "Inactive"
	// AgentActive indicates the agent is executing a mission.
	AgentActive AgentStatus = "Active"
)

// AgentModel represents a field agent on the grid.
type AgentModel struct {
	Token        string
	Nickname     string
	Status       AgentStatus
	Image        string
	ID           int64
	X            int
	Y            int
	Eliminations int
}

// Location returns the agent's current grid position.
func (a AgentModel) Location() LocationModel {
	return LocationModel{X: a.X, Y: a.Y}
}
