package handler

import (
	"strconv"

	artikelapp "github.com/fleischhandel/backend/internal/application/artikel"
	"github.com/fleischhandel/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ArtikelHandler handles article-related API endpoints
type ArtikelHandler struct {
	BaseHandler
	artikelService *artikelapp.ArtikelService
}

// NewArtikelHandler creates a new ArtikelHandler
func NewArtikelHandler(artikelService *artikelapp.ArtikelService) *ArtikelHandler {
	return &ArtikelHandler{
		artikelService: artikelService,
	}
}

// SetAktivRequest toggles the active flag of a resource
type SetAktivRequest struct {
	Aktiv bool `json:"aktiv"`
}

// SetAusverkauftRequest toggles the sold-out flag of an article
type SetAusverkauftRequest struct {
	Ausverkauft bool `json:"ausverkauft"`
}

// Create creates a new Artikel
func (h *ArtikelHandler) Create(c *gin.Context) {
	var req artikelapp.CreateArtikelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	artikel, err := h.artikelService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, artikel)
}

// GetByID retrieves an Artikel by its ID
func (h *ArtikelHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Artikel ID format")
		return
	}

	artikel, err := h.artikelService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, artikel)
}

// List returns a paginated list of Artikel with optional filters
func (h *ArtikelHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := artikelapp.ArtikelListFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}
	if kategorie := c.Query("kategorie"); kategorie != "" {
		filter.Kategorie = &kategorie
	}
	if aktivStr := c.Query("aktiv"); aktivStr != "" {
		aktiv, err := strconv.ParseBool(aktivStr)
		if err != nil {
			h.BadRequest(c, "Invalid aktiv filter, expected true or false")
			return
		}
		filter.Aktiv = &aktiv
	}

	artikelListe, total, err := h.artikelService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, artikelListe, total, filter.Page, filter.PageSize)
}

// Update updates an Artikel's master data
func (h *ArtikelHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Artikel ID format")
		return
	}

	var req artikelapp.UpdateArtikelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	artikel, err := h.artikelService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, artikel)
}

// SetAusverkauft marks an Artikel sold out or back in stock
func (h *ArtikelHandler) SetAusverkauft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Artikel ID format")
		return
	}

	var req SetAusverkauftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	artikel, err := h.artikelService.SetAusverkauft(c.Request.Context(), id, req.Ausverkauft)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, artikel)
}

// SetAktiv activates or deactivates an Artikel
func (h *ArtikelHandler) SetAktiv(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Artikel ID format")
		return
	}

	var req SetAktivRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	artikel, err := h.artikelService.SetAktiv(c.Request.Context(), id, req.Aktiv)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, artikel)
}

// Delete removes an Artikel
func (h *ArtikelHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Artikel ID format")
		return
	}

	if err := h.artikelService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
