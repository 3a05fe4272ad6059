package handler

import (
	"net/http"

	mitarbeiterapp "github.com/fleischhandel/backend/internal/application/mitarbeiter"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MitarbeiterHandler handles staff administration API endpoints
type MitarbeiterHandler struct {
	BaseHandler
	mitarbeiterService *mitarbeiterapp.MitarbeiterService
}

// NewMitarbeiterHandler creates a new MitarbeiterHandler
func NewMitarbeiterHandler(mitarbeiterService *mitarbeiterapp.MitarbeiterService) *MitarbeiterHandler {
	return &MitarbeiterHandler{
		mitarbeiterService: mitarbeiterService,
	}
}

// Create creates a new Mitarbeiter account
func (h *MitarbeiterHandler) Create(c *gin.Context) {
	var req mitarbeiterapp.CreateMitarbeiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	mitarbeiter, err := h.mitarbeiterService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, mitarbeiter)
}

// GetByID retrieves a Mitarbeiter by its ID
func (h *MitarbeiterHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Mitarbeiter ID format")
		return
	}

	mitarbeiter, err := h.mitarbeiterService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, mitarbeiter)
}

// List returns a paginated list of Mitarbeiter
func (h *MitarbeiterHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}

	mitarbeiterListe, total, err := h.mitarbeiterService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, mitarbeiterListe, total, filter.Page, filter.PageSize)
}

// Update updates a Mitarbeiter's master data
func (h *MitarbeiterHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Mitarbeiter ID format")
		return
	}

	var req mitarbeiterapp.UpdateMitarbeiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	mitarbeiter, err := h.mitarbeiterService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, mitarbeiter)
}

// SetRollen replaces the role set of a Mitarbeiter
func (h *MitarbeiterHandler) SetRollen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Mitarbeiter ID format")
		return
	}

	var req mitarbeiterapp.SetRollenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	mitarbeiter, err := h.mitarbeiterService.SetRollen(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, mitarbeiter)
}

// SetAktiv activates or deactivates a Mitarbeiter account
func (h *MitarbeiterHandler) SetAktiv(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Mitarbeiter ID format")
		return
	}

	var req SetAktivRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	mitarbeiter, err := h.mitarbeiterService.SetAktiv(c.Request.Context(), id, req.Aktiv)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, mitarbeiter)
}

// ResetPasswort sets a new password for a Mitarbeiter (admin action)
func (h *MitarbeiterHandler) ResetPasswort(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Mitarbeiter ID format")
		return
	}

	var req mitarbeiterapp.ResetPasswortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.mitarbeiterService.ResetPasswort(c.Request.Context(), id, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message": "Passwort reset successfully",
	}))
}

// Delete removes a Mitarbeiter account
func (h *MitarbeiterHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Mitarbeiter ID format")
		return
	}

	if err := h.mitarbeiterService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
