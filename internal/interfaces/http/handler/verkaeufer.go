package handler

import (
	kundeapp "github.com/fleischhandel/backend/internal/application/kunde"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VerkaeuferHandler handles sales representative API endpoints
type VerkaeuferHandler struct {
	BaseHandler
	verkaeuferService *kundeapp.VerkaeuferService
}

// NewVerkaeuferHandler creates a new VerkaeuferHandler
func NewVerkaeuferHandler(verkaeuferService *kundeapp.VerkaeuferService) *VerkaeuferHandler {
	return &VerkaeuferHandler{
		verkaeuferService: verkaeuferService,
	}
}

// Create creates a new Verkaeufer
func (h *VerkaeuferHandler) Create(c *gin.Context) {
	var req kundeapp.CreateVerkaeuferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	verkaeufer, err := h.verkaeuferService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, verkaeufer)
}

// GetByID retrieves a Verkaeufer by its ID
func (h *VerkaeuferHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Verkaeufer ID format")
		return
	}

	verkaeufer, err := h.verkaeuferService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, verkaeufer)
}

// List returns a paginated list of Verkaeufer
func (h *VerkaeuferHandler) List(c *gin.Context) {
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

	verkaeuferListe, total, err := h.verkaeuferService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, verkaeuferListe, total, filter.Page, filter.PageSize)
}

// Update updates a Verkaeufer
func (h *VerkaeuferHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Verkaeufer ID format")
		return
	}

	var req kundeapp.UpdateVerkaeuferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	verkaeufer, err := h.verkaeuferService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, verkaeufer)
}

// Delete removes a Verkaeufer
func (h *VerkaeuferHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Verkaeufer ID format")
		return
	}

	if err := h.verkaeuferService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
