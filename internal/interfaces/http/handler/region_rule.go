package handler

import (
	tourapp "github.com/fleischhandel/backend/internal/application/tour"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegionRuleHandler handles delivery-day rule API endpoints
type RegionRuleHandler struct {
	BaseHandler
	regionRuleService *tourapp.RegionRuleService
}

// NewRegionRuleHandler creates a new RegionRuleHandler
func NewRegionRuleHandler(regionRuleService *tourapp.RegionRuleService) *RegionRuleHandler {
	return &RegionRuleHandler{
		regionRuleService: regionRuleService,
	}
}

// Set creates or replaces the delivery-day rule of a region
func (h *RegionRuleHandler) Set(c *gin.Context) {
	var req tourapp.SetRegionRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rule, err := h.regionRuleService.Set(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rule)
}

// List returns all region rules
func (h *RegionRuleHandler) List(c *gin.Context) {
	rules, err := h.regionRuleService.List(c.Request.Context(), shared.DefaultFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rules)
}

// GetByRegion returns the rule of one region
func (h *RegionRuleHandler) GetByRegion(c *gin.Context) {
	rule, err := h.regionRuleService.GetByRegion(c.Request.Context(), c.Param("region"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rule)
}

// Delete removes a region rule
func (h *RegionRuleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid RegionRule ID format")
		return
	}

	if err := h.regionRuleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
