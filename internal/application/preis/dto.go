package preis

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/preis"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SetKundenPreisRequest represents a request to create a price override
type SetKundenPreisRequest struct {
	ArtikelID  uuid.UUID       `json:"artikel_id" binding:"required"`
	Preis      decimal.Decimal `json:"preis" binding:"required"`
	GueltigAb  time.Time       `json:"gueltig_ab" binding:"required"`
	GueltigBis *time.Time      `json:"gueltig_bis"`
}

// KundenPreisResponse represents a price override in API responses
type KundenPreisResponse struct {
	ID         uuid.UUID       `json:"id"`
	KundeID    uuid.UUID       `json:"kunde_id"`
	ArtikelID  uuid.UUID       `json:"artikel_id"`
	Preis      decimal.Decimal `json:"preis"`
	GueltigAb  time.Time       `json:"gueltig_ab"`
	GueltigBis *time.Time      `json:"gueltig_bis,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// EffektiverPreisResponse answers "what does this Kunde pay for this
// Artikel on this date"
type EffektiverPreisResponse struct {
	KundeID     uuid.UUID       `json:"kunde_id"`
	ArtikelID   uuid.UUID       `json:"artikel_id"`
	Datum       time.Time       `json:"datum"`
	PreisProKg  decimal.Decimal `json:"preis_pro_kg"`
	Kundenpreis bool            `json:"kundenpreis"`
}

// ToKundenPreisResponse converts a domain KundenPreis to a response DTO
func ToKundenPreisResponse(p *preis.KundenPreis) KundenPreisResponse {
	return KundenPreisResponse{
		ID:         p.ID,
		KundeID:    p.KundeID,
		ArtikelID:  p.ArtikelID,
		Preis:      p.Preis,
		GueltigAb:  p.GueltigAb,
		GueltigBis: p.GueltigBis,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToKundenPreisResponses converts a slice of domain price overrides
func ToKundenPreisResponses(preise []preis.KundenPreis) []KundenPreisResponse {
	responses := make([]KundenPreisResponse, len(preise))
	for i := range preise {
		responses[i] = ToKundenPreisResponse(&preise[i])
	}
	return responses
}
