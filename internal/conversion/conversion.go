// Package conversion maps between wire DTOs and internal models.
//
// The mapping is explicit, field by field. Every field maps 1:1 by name
// except for these renames:
//
//	TargetDto.Position  <-> TargetModel.Role
//	TargetDto.PhotoURL  <-> TargetModel.Image
//	AgentDto.PhotoURL   <-> AgentModel.Image
//
// Functions take their input by value and never validate: out of range
// values pass through unchanged.
package conversion

import (
	"github.com/pandeptwidyaop/agents-rest/internal/dto"
	"github.com/pandeptwidyaop/agents-rest/internal/models"
)

// LocationDtoToModel converts a wire location.
func LocationDtoToModel(d dto.LocationDto) models.LocationModel {
	return models.LocationModel{
		X: d.X,
		Y: d.Y,
	}
}

// LocationModelToDto converts a location for the wire.
func LocationModelToDto(m models.LocationModel) dto.LocationDto {
	return dto.LocationDto{
		X: m.X,
		Y: m.Y,
	}
}

// AgentDtoToModel converts a wire agent.
func AgentDtoToModel(d dto.AgentDto) models.AgentModel {
	return models.AgentModel{
		ID:           d.ID,
		Nickname:     d.Nickname,
		Status:       models.AgentStatus(d.Status),
		X:            d.X,
		Y:            d.Y,
		Image:        d.PhotoURL,
		Eliminations: d.Eliminations,
		Token:        d.Token,
	}
}

// AgentModelToDto converts an agent for the wire.
func AgentModelToDto(m models.AgentModel) dto.AgentDto {
	return dto.AgentDto{
		ID:           m.ID,
		Nickname:     m.Nickname,
		Status:       string(m.Status),
		X:            m.X,
		Y:            m.Y,
		PhotoURL:     m.Image,
		Eliminations: m.Eliminations,
		Token:        m.Token,
	}
}

// TargetDtoToModel converts a wire target.
func TargetDtoToModel(d dto.TargetDto) models.TargetModel {
	return models.TargetModel{
		ID:         d.ID,
		Name:       d.Name,
		Role:       d.Position,
		Status:     models.TargetStatus(d.Status),
		X:          d.X,
		Y:          d.Y,
		Image:      d.PhotoURL,
		IsDetected: d.IsDetected,
	}
}

// TargetModelToDto converts a target for the wire.
func TargetModelToDto(m models.TargetModel) dto.TargetDto {
	return dto.TargetDto{
		ID:         m.ID,
		Name:       m.Name,
		Position:   m.Role,
		Status:     string(m.Status),
		X:          m.X,
		Y:          m.Y,
		PhotoURL:   m.Image,
		IsDetected: m.IsDetected,
	}
}

// MissionDtoToModel converts a wire mission.
func MissionDtoToModel(d dto.MissionDto) models.MissionModel {
	return models.MissionModel{
		ID:                d.ID,
		AgentID:           d.AgentID,
		TargetID:          d.TargetID,
		Distance:          d.Distance,
		StartTime:         d.StartTime,
		EstimatedDuration: d.EstimatedDuration,
		ExecutionTime:     d.ExecutionTime,
		Status:            models.MissionStatus(d.Status),
	}
}

// MissionModelToDto converts a mission for the wire.
func MissionModelToDto(m models.MissionModel) dto.MissionDto {
	return dto.MissionDto{
		ID:                m.ID,
		AgentID:           m.AgentID,
		TargetID:          m.TargetID,
		Distance:          m.Distance,
		StartTime:         m.StartTime,
		EstimatedDuration: m.EstimatedDuration,
		ExecutionTime:     m.ExecutionTime,
		Status:            string(m.Status),
	}
}

// TargetsToDtos converts a slice of targets, preserving order.
func TargetsToDtos(ms []models.TargetModel) []dto.TargetDto {
	out := make([]dto.TargetDto, 0, len(ms))
	for _, m := range ms {
		out = append(out, TargetModelToDto(m))
	}
	return out
}

// AgentsToDtos converts a slice of agents, preserving order.
func AgentsToDtos(ms []models.AgentModel) []dto.AgentDto {
	out := make([]dto.AgentDto, 0, len(ms))
	for _, m := range ms {
		out = append(out, AgentModelToDto(m))
	}
	return out
}

// MissionsToDtos converts a slice of missions, preserving order.
func MissionsToDtos(ms []models.MissionModel) []dto.MissionDto {
	out := make([]dto.MissionDto, 0, len(ms))
	for _, m := range ms {
		out = append(out, MissionModelToDto(m))
	}
	return out
}
