package handler

import (
	auftragapp "github.com/fleischhandel/backend/internal/application/auftrag"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuftragHandler handles order-related API endpoints, covering the full
// lifecycle from entry through Kommissionierung and Kontrolle.
type AuftragHandler struct {
	BaseHandler
	auftragService *auftragapp.AuftragService
}

// NewAuftragHandler creates a new AuftragHandler
func NewAuftragHandler(auftragService *auftragapp.AuftragService) *AuftragHandler {
	return &AuftragHandler{
		auftragService: auftragService,
	}
}

// Create creates a new Auftrag with its initial positions. The route is
// wrapped with the idempotency middleware so clients can retry safely
// with an Idempotency-Key header.
func (h *AuftragHandler) Create(c *gin.Context) {
	var req auftragapp.CreateAuftragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	auftrag, err := h.auftragService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, auftrag)
}

// GetByID retrieves an Auftrag by its ID
func (h *AuftragHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return
	}

	auftrag, err := h.auftragService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// List returns a paginated list of Auftraege with optional filters
func (h *AuftragHandler) List(c *gin.Context) {
	filter := auftragapp.AuftragListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	auftraege, total, err := h.auftragService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, auftraege, total, filter.Page, filter.PageSize)
}

// Update changes header fields of an open Auftrag
func (h *AuftragHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return
	}

	var req auftragapp.UpdateAuftragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	auftrag, err := h.auftragService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// AddPosition adds a line item to an open Auftrag
func (h *AuftragHandler) AddPosition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return
	}

	var req auftragapp.AddPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	auftrag, err := h.auftragService.AddPosition(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// UpdatePosition changes the ordered quantity of a line item
func (h *AuftragHandler) UpdatePosition(c *gin.Context) {
	id, positionID, ok := h.parsePositionIDs(c)
	if !ok {
		return
	}

	var req auftragapp.UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	auftrag, err := h.auftragService.UpdatePosition(c.Request.Context(), id, positionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// RemovePosition deletes a line item from an open Auftrag
func (h *AuftragHandler) RemovePosition(c *gin.Context) {
	id, positionID, ok := h.parsePositionIDs(c)
	if !ok {
		return
	}

	auftrag, err := h.auftragService.RemovePosition(c.Request.Context(), id, positionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// SetLieferdatum moves the delivery date of an open Auftrag
func (h *AuftragHandler) SetLieferdatum(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return
	}

	var req auftragapp.SetLieferdatumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	auftrag, err := h.auftragService.SetLieferdatum(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// StartKommissionierung moves the Auftrag into picking
func (h *AuftragHandler) StartKommissionierung(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return
	}

	auftrag, err := h.auftragService.StartKommissionierung(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// KommissionierePosition records the actual picked weight of a line item
func (h *AuftragHandler) KommissionierePosition(c *gin.Context) {
	id, positionID, ok := h.parsePositionIDs(c)
	if !ok {
		return
	}

	var req auftragapp.KommissionierePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	auftrag, err := h.auftragService.KommissionierePosition(c.Request.Context(), id, positionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// FinishKommissionierung completes picking; the acting Mitarbeiter is
// taken from the JWT.
func (h *AuftragHandler) FinishKommissionierung(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return
	}

	mitarbeiterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	auftrag, err := h.auftragService.FinishKommissionierung(c.Request.Context(), id, mitarbeiterID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// StartKontrolle moves the Auftrag into quality control
func (h *AuftragHandler) StartKontrolle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return
	}

	auftrag, err := h.auftragService.StartKontrolle(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// FinishKontrolle completes quality control; the acting Mitarbeiter is
// taken from the JWT.
func (h *AuftragHandler) FinishKontrolle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return
	}

	mitarbeiterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	auftrag, err := h.auftragService.FinishKontrolle(c.Request.Context(), id, mitarbeiterID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// Stornieren cancels an Auftrag with a reason
func (h *AuftragHandler) Stornieren(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return
	}

	var req auftragapp.StornoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	auftrag, err := h.auftragService.Stornieren(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, auftrag)
}

// Delete removes an Auftrag that never reached fulfillment
func (h *AuftragHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return
	}

	if err := h.auftragService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// parsePositionIDs extracts the order and position IDs from the path
func (h *AuftragHandler) parsePositionIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Auftrag ID format")
		return uuid.Nil, uuid.Nil, false
	}

	positionID, err := uuid.Parse(c.Param("positionId"))
	if err != nil {
		h.BadRequest(c, "Invalid Position ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return id, positionID, true
}
