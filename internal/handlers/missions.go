package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/agents-rest/internal/conversion"
	"github.com/pandeptwidyaop/agents-rest/internal/models"
)

// MissionService drives the mission lifecycle.
type MissionService interface {
	GetAllMissions(ctx context.Context) ([]models.MissionModel, error)
	GetMissionByID(ctx context.Context, id int64) (*models.MissionModel, error)
	ProposeMissions(ctx context.Context) ([]models.MissionModel, error)
	AssignMission(ctx context.Context, id int64) (*models.MissionModel, error)
	UpdateMissions(ctx context.Context) ([]models.MissionModel, error)
}

// MissionsHandler handles mission endpoints.
type MissionsHandler struct {
	missions MissionService
}

// NewMissionsHandler creates a new MissionsHandler instance.
func NewMissionsHandler(missions MissionService) *MissionsHandler {
	return &MissionsHandler{missions: missions}
}

// List returns every mission, including completed ones.
// GET /missions
func (h *MissionsHandler) List(c *gin.Context) {
	missions, err := h.missions.GetAllMissions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.MissionsToDtos(missions))
}

// Get returns a single mission.
// GET /missions/:id
func (h *MissionsHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "mission")
	if !ok {
		return
	}

	mission, err := h.missions.GetMissionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.MissionModelToDto(*mission))
}

// Propose pairs idle agents with alive targets in range.
// POST /missions/propose
func (h *MissionsHandler) Propose(c *gin.Context) {
	missions, err := h.missions.ProposeMissions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.MissionsToDtos(missions))
}

// Assign starts a proposed mission and puts its agent on it.
// PUT /missions/:id/assign
func (h *MissionsHandler) Assign(c *gin.Context) {
	id, ok := parseID(c, "mission")
	if !ok {
		return
	}

	mission, err := h.missions.AssignMission(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.MissionModelToDto(*mission))
}

// Update advances every assigned mission by one tick.
// POST /missions/update
func (h *MissionsHandler) Update(c *gin.Context) {
	missions, err := h.missions.UpdateMissions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.MissionsToDtos(missions))
}
