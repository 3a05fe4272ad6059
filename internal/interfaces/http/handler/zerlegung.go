package handler

import (
	zerlegungapp "github.com/fleischhandel/backend/internal/application/zerlegung"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ZerlegungHandler handles cutting order API endpoints
type ZerlegungHandler struct {
	BaseHandler
	zerlegungService *zerlegungapp.ZerlegungService
}

// NewZerlegungHandler creates a new ZerlegungHandler
func NewZerlegungHandler(zerlegungService *zerlegungapp.ZerlegungService) *ZerlegungHandler {
	return &ZerlegungHandler{
		zerlegungService: zerlegungService,
	}
}

// Create creates a new Zerlegeauftrag
func (h *ZerlegungHandler) Create(c *gin.Context) {
	var req zerlegungapp.CreateZerlegeauftragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zerlegeauftrag, err := h.zerlegungService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, zerlegeauftrag)
}

// GetByID retrieves a Zerlegeauftrag with its cuts
func (h *ZerlegungHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Zerlegeauftrag ID format")
		return
	}

	zerlegeauftrag, err := h.zerlegungService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, zerlegeauftrag)
}

// List returns a paginated list of Zerlegeauftraege
func (h *ZerlegungHandler) List(c *gin.Context) {
	filter := zerlegungapp.ZerlegeauftragListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zerlegeauftraege, total, err := h.zerlegungService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, zerlegeauftraege, total, filter.Page, filter.PageSize)
}

// Start begins cutting; the acting Zerleger is taken from the JWT
func (h *ZerlegungHandler) Start(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Zerlegeauftrag ID format")
		return
	}

	zerlegerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	zerlegeauftrag, err := h.zerlegungService.Start(c.Request.Context(), id, zerlegerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, zerlegeauftrag)
}

// AddTeil records a cut produced from the source article
func (h *ZerlegungHandler) AddTeil(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Zerlegeauftrag ID format")
		return
	}

	var req zerlegungapp.AddTeilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zerlegeauftrag, err := h.zerlegungService.AddTeil(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, zerlegeauftrag)
}

// RemoveTeil deletes a recorded cut before completion
func (h *ZerlegungHandler) RemoveTeil(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Zerlegeauftrag ID format")
		return
	}

	teilID, err := uuid.Parse(c.Param("teilId"))
	if err != nil {
		h.BadRequest(c, "Invalid ZerlegeTeil ID format")
		return
	}

	zerlegeauftrag, err := h.zerlegungService.RemoveTeil(c.Request.Context(), id, teilID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, zerlegeauftrag)
}

// Complete finishes the Zerlegeauftrag and books the resulting stock
// movements. The acting Mitarbeiter is taken from the JWT.
func (h *ZerlegungHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Zerlegeauftrag ID format")
		return
	}

	mitarbeiterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	zerlegeauftrag, err := h.zerlegungService.Complete(c.Request.Context(), id, mitarbeiterID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, zerlegeauftrag)
}

// Delete removes a Zerlegeauftrag that has not been completed
func (h *ZerlegungHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Zerlegeauftrag ID format")
		return
	}

	if err := h.zerlegungService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
