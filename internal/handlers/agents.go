package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/agents-rest/internal/conversion"
	"github.com/pandeptwidyaop/agents-rest/internal/dto"
	"github.com/pandeptwidyaop/agents-rest/internal/models"
	"github.com/pandeptwidyaop/agents-rest/internal/validation"
)

// AgentService is the persistence the agents handler depends on.
type AgentService interface {
	GetAllAgents(ctx context.Context) ([]models.AgentModel, error)
	GetAgentByID(ctx context.Context, id int64) (*models.AgentModel, error)
	IsAgentExist(ctx context.Context, id int64) (bool, error)
	CreateAgent(ctx context.Context, desc dto.AgentDto) (*models.AgentModel, error)
	PlaceAgent(ctx context.Context, id int64, loc dto.LocationDto) (*models.AgentModel, error)
	MoveAgent(ctx context.Context, id int64, dir models.Direction) error
}

// AgentsHandler handles agent endpoints.
type AgentsHandler struct {
	agents AgentService
}

// NewAgentsHandler creates a new AgentsHandler instance.
func NewAgentsHandler(agents AgentService) *AgentsHandler {
	return &AgentsHandler{agents: agents}
}

// List returns every agent with its current location.
// GET /agents
func (h *AgentsHandler) List(c *gin.Context) {
	agents, err := h.agents.GetAllAgents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.AgentsToDtos(agents))
}

// Get returns a single agent.
// GET /agents/:id
func (h *AgentsHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "agent")
	if !ok {
		return
	}
	if !h.exists(c, id) {
		return
	}

	agent, err := h.agents.GetAgentByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.AgentModelToDto(*agent))
}

// Create registers an agent. New agents start inactive.
// POST /agents
func (h *AgentsHandler) Create(c *gin.Context) {
	var req dto.AgentDto
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.agents.CreateAgent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, conversion.AgentModelToDto(*agent))
}

// Pin places an agent at an absolute location.
// PUT /agents/:id/pin
func (h *AgentsHandler) Pin(c *gin.Context) {
	id, ok := parseID(c, "agent")
	if !ok {
		return
	}

	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location with x and y is required"})
		return
	}
	if !h.exists(c, id) {
		return
	}

	agent, err := h.agents.PlaceAgent(c.Request.Context(), id, dto.LocationDto{X: *req.X, Y: *req.Y})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.AgentModelToDto(*agent))
}

// Move shifts an agent one cell in a compass direction.
// PUT /agents/:id/move
func (h *AgentsHandler) Move(c *gin.Context) {
	id, ok := parseID(c, "agent")
	if !ok {
		return
	}

	var req dto.DirectionDto
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction is required"})
		return
	}
	dir, err := validation.ValidateDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.exists(c, id) {
		return
	}

	if err := h.agents.MoveAgent(c.Request.Context(), id, dir); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// exists writes the 404 or 500 response itself and reports whether the
// handler should continue.
func (h *AgentsHandler) exists(c *gin.Context, id int64) bool {
	found, err := h.agents.IsAgentExist(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return false
	}
	return true
}
