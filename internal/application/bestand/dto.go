package bestand

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/bestand"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BucheEingangRequest books a goods receipt, creating a batch
type BucheEingangRequest struct {
	ArtikelID uuid.UUID       `json:"artikel_id" binding:"required"`
	Menge     decimal.Decimal `json:"menge" binding:"required"`
	MHD       *time.Time      `json:"mhd"`
	Lieferant string          `json:"lieferant" binding:"max=200"`
	Referenz  string          `json:"referenz" binding:"max=200"`
}

// BucheAusgangRequest books a stock issue
type BucheAusgangRequest struct {
	ArtikelID uuid.UUID       `json:"artikel_id" binding:"required"`
	ChargeID  *uuid.UUID      `json:"charge_id"`
	Menge     decimal.Decimal `json:"menge" binding:"required"`
	Referenz  string          `json:"referenz" binding:"max=200"`
}

// BucheKorrekturRequest books a signed stock adjustment
type BucheKorrekturRequest struct {
	ArtikelID uuid.UUID       `json:"artikel_id" binding:"required"`
	Menge     decimal.Decimal `json:"menge" binding:"required"`
	Grund     string          `json:"grund" binding:"required,min=1,max=500"`
}

// BucheMuellRequest books waste disposal; the reason is mandatory
type BucheMuellRequest struct {
	ArtikelID uuid.UUID       `json:"artikel_id" binding:"required"`
	ChargeID  *uuid.UUID      `json:"charge_id"`
	Menge     decimal.Decimal `json:"menge" binding:"required"`
	Grund     string          `json:"grund" binding:"required,min=1,max=500"`
}

// BewegungListFilter contains filtering options for movement lists
type BewegungListFilter struct {
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir"`
	ArtikelID *uuid.UUID `form:"artikel_id"`
	Typ       *string    `form:"typ"`
}

// BewegungResponse represents a stock movement in API responses
type BewegungResponse struct {
	ID          uuid.UUID       `json:"id"`
	ArtikelID   uuid.UUID       `json:"artikel_id"`
	ChargeID    *uuid.UUID      `json:"charge_id,omitempty"`
	Typ         string          `json:"typ"`
	Menge       decimal.Decimal `json:"menge"`
	Referenz    string          `json:"referenz,omitempty"`
	Grund       string          `json:"grund,omitempty"`
	ErstelltVon uuid.UUID       `json:"erstellt_von"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ChargeResponse represents a batch in API responses
type ChargeResponse struct {
	ID            uuid.UUID       `json:"id"`
	ArtikelID     uuid.UUID       `json:"artikel_id"`
	Menge         decimal.Decimal `json:"menge"`
	MHD           *time.Time      `json:"mhd,omitempty"`
	Lieferant     string          `json:"lieferant,omitempty"`
	EingangsDatum time.Time       `json:"eingangs_datum"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToBewegungResponse converts a domain movement to a response DTO
func ToBewegungResponse(b *bestand.Bewegung) BewegungResponse {
	return BewegungResponse{
		ID:          b.ID,
		ArtikelID:   b.ArtikelID,
		ChargeID:    b.ChargeID,
		Typ:         string(b.Typ),
		Menge:       b.Menge,
		Referenz:    b.Referenz,
		Grund:       b.Grund,
		ErstelltVon: b.ErstelltVon,
		CreatedAt:   b.CreatedAt,
	}
}

// ToBewegungResponses converts a slice of domain movements
func ToBewegungResponses(bewegungen []bestand.Bewegung) []BewegungResponse {
	responses := make([]BewegungResponse, len(bewegungen))
	for i := range bewegungen {
		responses[i] = ToBewegungResponse(&bewegungen[i])
	}
	return responses
}

// ToChargeResponse converts a domain batch to a response DTO
func ToChargeResponse(c *bestand.Charge) ChargeResponse {
	return ChargeResponse{
		ID:            c.ID,
		ArtikelID:     c.ArtikelID,
		Menge:         c.Menge,
		MHD:           c.MHD,
		Lieferant:     c.Lieferant,
		EingangsDatum: c.EingangsDatum,
		CreatedAt:     c.CreatedAt,
	}
}

// ToChargeResponses converts a slice of domain batches
func ToChargeResponses(chargen []bestand.Charge) []ChargeResponse {
	responses := make([]ChargeResponse, len(chargen))
	for i := range chargen {
		responses[i] = ToChargeResponse(&chargen[i])
	}
	return responses
}
