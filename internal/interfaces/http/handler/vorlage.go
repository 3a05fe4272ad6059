package handler

import (
	tourapp "github.com/fleischhandel/backend/internal/application/tour"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// VorlageHandler handles stop-order template API endpoints. Templates
// define the preferred customer visit order per region.
type VorlageHandler struct {
	BaseHandler
	vorlageService *tourapp.VorlageService
}

// NewVorlageHandler creates a new VorlageHandler
func NewVorlageHandler(vorlageService *tourapp.VorlageService) *VorlageHandler {
	return &VorlageHandler{
		vorlageService: vorlageService,
	}
}

// Set creates or replaces the template of a region
func (h *VorlageHandler) Set(c *gin.Context) {
	var req tourapp.SetVorlageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vorlage, err := h.vorlageService.Set(c.Request.Context(), c.Param("region"), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vorlage)
}

// List returns all templates
func (h *VorlageHandler) List(c *gin.Context) {
	vorlagen, err := h.vorlageService.List(c.Request.Context(), shared.DefaultFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vorlagen)
}

// GetByRegion returns the template of one region
func (h *VorlageHandler) GetByRegion(c *gin.Context) {
	vorlage, err := h.vorlageService.GetByRegion(c.Request.Context(), c.Param("region"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vorlage)
}

// Delete removes the template of a region
func (h *VorlageHandler) Delete(c *gin.Context) {
	if err := h.vorlageService.Delete(c.Request.Context(), c.Param("region")); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
