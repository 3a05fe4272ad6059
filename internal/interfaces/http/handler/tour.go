package handler

import (
	"time"

	tourapp "github.com/fleischhandel/backend/internal/application/tour"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TourHandler handles delivery tour API endpoints
type TourHandler struct {
	BaseHandler
	tourService *tourapp.TourService
}

// NewTourHandler creates a new TourHandler
func NewTourHandler(tourService *tourapp.TourService) *TourHandler {
	return &TourHandler{
		tourService: tourService,
	}
}

// Create creates a new Tour for a date and region
func (h *TourHandler) Create(c *gin.Context) {
	var req tourapp.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tour, err := h.tourService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, tour)
}

// GetByID retrieves a Tour with its stops
func (h *TourHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Tour ID format")
		return
	}

	tour, err := h.tourService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tour)
}

// List returns a paginated list of Touren with optional filters
func (h *TourHandler) List(c *gin.Context) {
	filter := tourapp.TourListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	touren, total, err := h.tourService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, touren, total, filter.Page, filter.PageSize)
}

// ListByDatum returns all tours of a delivery date, optionally narrowed
// to one region. This is the dispatcher's day view.
func (h *TourHandler) ListByDatum(c *gin.Context) {
	datum, err := time.Parse("2006-01-02", c.Param("datum"))
	if err != nil {
		h.BadRequest(c, "Invalid datum, expected YYYY-MM-DD")
		return
	}

	touren, err := h.tourService.ListByDatum(c.Request.Context(), datum, c.Query("region"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, touren)
}

// Update changes vehicle, driver or capacity of a Tour
func (h *TourHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Tour ID format")
		return
	}

	var req tourapp.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tour, err := h.tourService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tour)
}

// SetStatus transitions a Tour through its lifecycle
func (h *TourHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Tour ID format")
		return
	}

	var req tourapp.SetTourStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tour, err := h.tourService.SetStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tour)
}

// ReorderStops applies a full permutation of the tour's stop IDs
func (h *TourHandler) ReorderStops(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Tour ID format")
		return
	}

	var req tourapp.ReorderStopsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tour, err := h.tourService.ReorderStops(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tour)
}

// MoveStop moves a stop to another tour of the same date
func (h *TourHandler) MoveStop(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Tour ID format")
		return
	}

	stopID, err := uuid.Parse(c.Param("stopId"))
	if err != nil {
		h.BadRequest(c, "Invalid TourStop ID format")
		return
	}

	var req tourapp.MoveStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tour, err := h.tourService.MoveStop(c.Request.Context(), tourID, stopID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tour)
}

// Delete removes a Tour that has not departed yet
func (h *TourHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid Tour ID format")
		return
	}

	if err := h.tourService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
