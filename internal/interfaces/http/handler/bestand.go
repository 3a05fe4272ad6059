package handler

import (
	bestandapp "github.com/fleischhandel/backend/internal/application/bestand"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BestandHandler handles stock-keeping API endpoints. All bookings are
// attributed to the authenticated Mitarbeiter.
type BestandHandler struct {
	BaseHandler
	bestandService *bestandapp.BestandService
}

// NewBestandHandler creates a new BestandHandler
func NewBestandHandler(bestandService *bestandapp.BestandService) *BestandHandler {
	return &BestandHandler{
		bestandService: bestandService,
	}
}

// BucheEingang books incoming goods into a new Charge
func (h *BestandHandler) BucheEingang(c *gin.Context) {
	mitarbeiterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req bestandapp.BucheEingangRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bewegung, err := h.bestandService.BucheEingang(c.Request.Context(), mitarbeiterID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bewegung)
}

// BucheAusgang books an outgoing movement against available stock
func (h *BestandHandler) BucheAusgang(c *gin.Context) {
	mitarbeiterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req bestandapp.BucheAusgangRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bewegung, err := h.bestandService.BucheAusgang(c.Request.Context(), mitarbeiterID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bewegung)
}

// BucheKorrektur books a signed stock correction
func (h *BestandHandler) BucheKorrektur(c *gin.Context) {
	mitarbeiterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req bestandapp.BucheKorrekturRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bewegung, err := h.bestandService.BucheKorrektur(c.Request.Context(), mitarbeiterID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bewegung)
}

// BucheMuell books spoiled goods as waste
func (h *BestandHandler) BucheMuell(c *gin.Context) {
	mitarbeiterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req bestandapp.BucheMuellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bewegung, err := h.bestandService.BucheMuell(c.Request.Context(), mitarbeiterID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bewegung)
}

// Uebersicht returns the stock overview of one Artikel
func (h *BestandHandler) Uebersicht(c *gin.Context) {
	artikelID, err := uuid.Parse(c.Param("artikelId"))
	if err != nil {
		h.BadRequest(c, "Invalid Artikel ID format")
		return
	}

	uebersicht, err := h.bestandService.Uebersicht(c.Request.Context(), artikelID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, uebersicht)
}

// UebersichtAlle returns the stock overview of all articles
func (h *BestandHandler) UebersichtAlle(c *gin.Context) {
	uebersichten, err := h.bestandService.UebersichtAlle(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, uebersichten)
}

// ListBewegungen returns a paginated movement journal
func (h *BestandHandler) ListBewegungen(c *gin.Context) {
	filter := bestandapp.BewegungListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bewegungen, total, err := h.bestandService.ListBewegungen(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, bewegungen, total, filter.Page, filter.PageSize)
}

// ListChargen returns the batches of an Artikel
func (h *BestandHandler) ListChargen(c *gin.Context) {
	artikelID, err := uuid.Parse(c.Param("artikelId"))
	if err != nil {
		h.BadRequest(c, "Invalid Artikel ID format")
		return
	}

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
	}

	chargen, err := h.bestandService.ListChargen(c.Request.Context(), artikelID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, chargen)
}
