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

// TargetService is the persistence the targets handler depends on.
type TargetService interface {
	GetAllTargets(ctx context.Context) ([]models.TargetModel, error)
	GetTargetByID(ctx context.Context, id int64) (*models.TargetModel, error)
	IsTargetExist(ctx context.Context, id int64) (bool, error)
	CreateTarget(ctx context.Context, desc dto.TargetDto) (*models.TargetModel, error)
	PlaceTarget(ctx context.Context, id int64, loc dto.LocationDto) (*models.TargetModel, error)
	MoveTarget(ctx context.Context, id int64, dir models.Direction) error
}

// TargetsHandler handles target endpoints.
type TargetsHandler struct {
	targets TargetService
}

// NewTargetsHandler creates a new TargetsHandler instance.
func NewTargetsHandler(targets TargetService) *TargetsHandler {
	return &TargetsHandler{targets: targets}
}

// List returns every target.
// GET /targets
func (h *TargetsHandler) List(c *gin.Context) {
	targets, err := h.targets.GetAllTargets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.TargetsToDtos(targets))
}

// Get returns a single target.
// GET /targets/:id
func (h *TargetsHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "target")
	if !ok {
		return
	}
	if !h.exists(c, id) {
		return
	}

	target, err := h.targets.GetTargetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.TargetModelToDto(*target))
}

// Create adds a target.
// POST /targets
func (h *TargetsHandler) Create(c *gin.Context) {
	var req dto.TargetDto
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := h.targets.CreateTarget(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, conversion.TargetModelToDto(*target))
}

// Pin places a target at an absolute location.
// PUT /targets/:id/pin
func (h *TargetsHandler) Pin(c *gin.Context) {
	id, ok := parseID(c, "target")
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

	target, err := h.targets.PlaceTarget(c.Request.Context(), id, dto.LocationDto{X: *req.X, Y: *req.Y})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.TargetModelToDto(*target))
}

// Move shifts a target one cell in a compass direction.
// PUT /targets/:id/move
func (h *TargetsHandler) Move(c *gin.Context) {
	id, ok := parseID(c, "target")
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

	if err := h.targets.MoveTarget(c.Request.Context(), id, dir); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// exists writes the 404 or 500 response itself and reports whether the
// handler should continue.
func (h *TargetsHandler) exists(c *gin.Context, id int64) bool {
	found, err := h.targets.IsTargetExist(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "target not found"})
		return false
	}
	return true
}
