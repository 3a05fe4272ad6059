package handler

import (
	"strconv"
	"time"

	kundeapp "github.com/fleischhandel/backend/internal/application/kunde"
	preisapp "github.com/fleischhandel/backend/internal/application/preis"
	"github.com/fleischhandel/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KundeHandler handles customer-related API endpoints, including the
// per-customer price overrides nested under /kunden/:id/preise.
type KundeHandler struct {
	BaseHandler
	kundeService *kundeapp.KundeService
	preisService *preisapp.PreisService
}

// NewKundeHandler creates a new KundeHandler
func NewKundeHandler(kundeService *kundeapp.KundeService, preisService *preisapp.PreisService) *KundeHandler {
	return &KundeHandler{
		kundeService: kundeService,
		preisService: preisService,
	}
}

// Create creates a new Kunde
func (h *KundeHandler) Create(c *gin.Context) {
	var req kundeapp.CreateKundeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	kunde, err := h.kundeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, kunde)
}

// GetByID retrieves a Kunde by its ID
func (h *KundeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Kunde ID format")
		return
	}

	kunde, err := h.kundeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, kunde)
}

// List returns a paginated list of Kunden with optional filters
func (h *KundeHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := kundeapp.KundeListFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}
	if region := c.Query("region"); region != "" {
		filter.Region = &region
	}
	if raw := c.Query("aktiv"); raw != "" {
		aktiv, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "Invalid aktiv filter, expected true or false")
			return
		}
		filter.Aktiv = &aktiv
	}
	if raw := c.Query("genehmigt"); raw != "" {
		genehmigt, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "Invalid genehmigt filter, expected true or false")
			return
		}
		filter.Genehmigt = &genehmigt
	}

	kunden, total, err := h.kundeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, kunden, total, filter.Page, filter.PageSize)
}

// Update updates a Kunde's master data
func (h *KundeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Kunde ID format")
		return
	}

	var req kundeapp.UpdateKundeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	kunde, err := h.kundeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, kunde)
}

// Genehmigen approves a customer for ordering
func (h *KundeHandler) Genehmigen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Kunde ID format")
		return
	}

	kunde, err := h.kundeService.Genehmigen(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, kunde)
}

// SetAktiv activates or deactivates a Kunde
func (h *KundeHandler) SetAktiv(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Kunde ID format")
		return
	}

	var req SetAktivRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	kunde, err := h.kundeService.SetAktiv(c.Request.Context(), id, req.Aktiv)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, kunde)
}

// Delete removes a Kunde
func (h *KundeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Kunde ID format")
		return
	}

	if err := h.kundeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// SetPreis creates or replaces a customer price override
func (h *KundeHandler) SetPreis(c *gin.Context) {
	kundeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Kunde ID format")
		return
	}

	var req preisapp.SetKundenPreisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	kundenPreis, err := h.preisService.Set(c.Request.Context(), kundeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, kundenPreis)
}

// ListPreise returns all price overrides of a Kunde
func (h *KundeHandler) ListPreise(c *gin.Context) {
	kundeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Kunde ID format")
		return
	}

	preise, err := h.preisService.ListByKunde(c.Request.Context(), kundeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, preise)
}

// DeletePreis removes a price override
func (h *KundeHandler) DeletePreis(c *gin.Context) {
	if _, err := uuid.Parse(c.Param("id")); err != nil {
		h.BadRequest(c, "Invalid Kunde ID format")
		return
	}

	preisID, err := uuid.Parse(c.Param("preisId"))
	if err != nil {
		h.BadRequest(c, "Invalid KundenPreis ID format")
		return
	}

	if err := h.preisService.Delete(c.Request.Context(), preisID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// GetEffektiverPreis resolves the effective kg price a Kunde pays for
// an Artikel on a given date. Defaults to today when datum is omitted.
func (h *KundeHandler) GetEffektiverPreis(c *gin.Context) {
	kundeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Kunde ID format")
		return
	}

	artikelID, err := uuid.Parse(c.Query("artikel_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing artikel_id")
		return
	}

	datum := time.Now()
	if raw := c.Query("datum"); raw != "" {
		datum, err = time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid datum, expected YYYY-MM-DD")
			return
		}
	}

	preis, err := h.preisService.ResolvePreis(c.Request.Context(), kundeID, artikelID, datum)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, preis)
}
