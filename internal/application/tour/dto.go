package tour

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/tour"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTourRequest represents a request to create a tour manually
type CreateTourRequest struct {
	Datum      time.Time        `json:"datum" binding:"required"`
	Region     string           `json:"region" binding:"required,min=1,max=100"`
	Fahrzeug   string           `json:"fahrzeug" binding:"max=100"`
	MaxGewicht *decimal.Decimal `json:"max_gewicht"`
	FahrerID   *uuid.UUID       `json:"fahrer_id"`
}

// UpdateTourRequest updates vehicle, driver and capacity
type UpdateTourRequest struct {
	Fahrzeug   *string          `json:"fahrzeug"`
	MaxGewicht *decimal.Decimal `json:"max_gewicht"`
	FahrerID   *uuid.UUID       `json:"fahrer_id"`
}

// SetTourStatusRequest transitions the tour status
type SetTourStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReorderStopsRequest applies a full permutation of stop IDs
type ReorderStopsRequest struct {
	StopIDs []uuid.UUID `json:"stop_ids" binding:"required,min=1"`
}

// MoveStopRequest moves a stop to another tour of the same date
type MoveStopRequest struct {
	ZielTourID uuid.UUID `json:"ziel_tour_id" binding:"required"`
	Position   int       `json:"position"`
}

// TourListFilter contains filtering options for tour lists
type TourListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
	Datum    *time.Time `form:"datum" time_format:"2006-01-02"`
	Region   *string    `form:"region"`
	Status   *string    `form:"status"`
	FahrerID *uuid.UUID `form:"fahrer_id"`
}

// TourStopResponse represents a stop in API responses
type TourStopResponse struct {
	ID         uuid.UUID       `json:"id"`
	AuftragID  uuid.UUID       `json:"auftrag_id"`
	KundeID    uuid.UUID       `json:"kunde_id"`
	KundeFirma string          `json:"kunde_firma"`
	Gewicht    decimal.Decimal `json:"gewicht"`
	Position   int             `json:"position"`
}

// TourResponse represents a tour in API responses
type TourResponse struct {
	ID            uuid.UUID          `json:"id"`
	Datum         time.Time          `json:"datum"`
	Region        string             `json:"region"`
	Fahrzeug      string             `json:"fahrzeug,omitempty"`
	MaxGewicht    decimal.Decimal    `json:"max_gewicht"`
	Gesamtgewicht decimal.Decimal    `json:"gesamtgewicht"`
	FahrerID      *uuid.UUID         `json:"fahrer_id,omitempty"`
	Status        string             `json:"status"`
	Laufnummer    int                `json:"laufnummer"`
	Stops         []TourStopResponse `json:"stops"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToTourResponse converts a domain tour to a response DTO
func ToTourResponse(t *tour.Tour) TourResponse {
	stops := make([]TourStopResponse, len(t.Stops))
	for i, s := range t.Stops {
		stops[i] = TourStopResponse{
			ID:         s.ID,
			AuftragID:  s.AuftragID,
			KundeID:    s.KundeID,
			KundeFirma: s.KundeFirma,
			Gewicht:    s.Gewicht,
			Position:   s.Position,
		}
	}
	return TourResponse{
		ID:            t.ID,
		Datum:         t.Datum,
		Region:        t.Region,
		Fahrzeug:      t.Fahrzeug,
		MaxGewicht:    t.MaxGewicht,
		Gesamtgewicht: t.Gesamtgewicht(),
		FahrerID:      t.FahrerID,
		Status:        string(t.Status),
		Laufnummer:    t.Laufnummer,
		Stops:         stops,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToTourResponses converts a slice of domain tours
func ToTourResponses(touren []tour.Tour) []TourResponse {
	responses := make([]TourResponse, len(touren))
	for i := range touren {
		responses[i] = ToTourResponse(&touren[i])
	}
	return responses
}

// RegionRule DTOs

// SetRegionRuleRequest creates or replaces the delivery-day rule of a region
type SetRegionRuleRequest struct {
	Region     string `json:"region" binding:"required,min=1,max=100"`
	Wochentage []int  `json:"wochentage" binding:"required,min=1"`
	Aktiv      *bool  `json:"aktiv"`
}

// RegionRuleResponse represents a region rule in API responses
type RegionRuleResponse struct {
	ID         uuid.UUID `json:"id"`
	Region     string    `json:"region"`
	Wochentage []int     `json:"wochentage"`
	Aktiv      bool      `json:"aktiv"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToRegionRuleResponse converts a domain region rule to a response DTO
func ToRegionRuleResponse(r *tour.RegionRule) RegionRuleResponse {
	return RegionRuleResponse{
		ID:         r.ID,
		Region:     r.Region,
		Wochentage: r.Wochentage,
		Aktiv:      r.Aktiv,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ReihenfolgeVorlage DTOs

// SetVorlageRequest replaces the stop-order template of a region
type SetVorlageRequest struct {
	KundenIDs []uuid.UUID `json:"kunden_ids" binding:"required"`
}

// VorlageResponse represents a stop-order template in API responses
type VorlageResponse struct {
	ID        uuid.UUID   `json:"id"`
	Region    string      `json:"region"`
	KundenIDs []uuid.UUID `json:"kunden_ids"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ToVorlageResponse converts a domain template to a response DTO
func ToVorlageResponse(v *tour.ReihenfolgeVorlage) VorlageResponse {
	return VorlageResponse{
		ID:        v.ID,
		Region:    v.Region,
		KundenIDs: v.KundenIDs,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
