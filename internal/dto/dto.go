// Package dto defines the wire shapes exchanged with API clients.
//
// Field names follow the camelCase JSON convention of the game clients. Every
// DTO has a matching type in the models package; see the conversion package
// for the mapping between the two.
package dto

import "time"

// LocationDto is an absolute grid position.
type LocationDto struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DirectionDto carries a compass heading for a move request.
type DirectionDto struct {
	Direction string `json:"direction" binding:"required"`
}

// AgentDto is the wire shape of an agent.
type AgentDto struct {
	Token        string `json:"token,omitempty"`
	Nickname     string `json:"nickname"`
	Status       string `json:"status"`
	PhotoURL     string `json:"photoUrl"`
	ID           int64  `json:"id"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Eliminations int    `json:"eliminations"`
}

// TargetDto is the wire shape of a target.
type TargetDto struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Status     string `json:"status"`
	PhotoURL   string `json:"photoUrl"`
	ID         int64  `json:"id"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	IsDetected bool   `json:"isDetected"`
}

// MissionDto is the wire shape of a mission.
type MissionDto struct {
	StartTime         *time.Time `json:"startTime"`
	Status            string     `json:"status"`
	ID                int64      `json:"id"`
	AgentID           int64      `json:"agentId"`
	TargetID          int64      `json:"targetId"`
	Distance          float64    `json:"distance"`
	EstimatedDuration float64    `json:"estimatedDuration"`
	ExecutionTime     float64    `json:"executionTime"`
}

// LoginDto is the body of a login request.
type LoginDto struct {
	ID     string `json:"id" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

// TokenDto is returned by a successful login.
type TokenDto struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
