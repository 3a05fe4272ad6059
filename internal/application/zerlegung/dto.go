package zerlegung

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/zerlegung"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateZerlegeauftragRequest represents a request to create a cutting order
type CreateZerlegeauftragRequest struct {
	Datum     time.Time       `json:"datum" binding:"required"`
	ArtikelID uuid.UUID       `json:"artikel_id" binding:"required"`
	Menge     decimal.Decimal `json:"menge" binding:"required"`
}

// AddTeilRequest records one produced cut
type AddTeilRequest struct {
	ArtikelID uuid.UUID       `json:"artikel_id" binding:"required"`
	Menge     decimal.Decimal `json:"menge" binding:"required"`
}

// ZerlegeauftragListFilter contains filtering options for cutting orders
type ZerlegeauftragListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
	Datum    *time.Time `form:"datum" time_format:"2006-01-02"`
	Status   *string    `form:"status"`
}

// ZerlegeTeilResponse represents a cut in API responses
type ZerlegeTeilResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ArtikelID          uuid.UUID       `json:"artikel_id"`
	ArtikelBezeichnung string          `json:"artikel_bezeichnung"`
	Menge              decimal.Decimal `json:"menge"`
}

// ZerlegeauftragResponse represents a cutting order in API responses
type ZerlegeauftragResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Datum              time.Time             `json:"datum"`
	ArtikelID          uuid.UUID             `json:"artikel_id"`
	ArtikelBezeichnung string                `json:"artikel_bezeichnung"`
	Menge              decimal.Decimal       `json:"menge"`
	Status             string                `json:"status"`
	Teile              []ZerlegeTeilResponse `json:"teile"`
	GesamtmengeTeile   decimal.Decimal       `json:"gesamtmenge_teile"`
	ZerlegerID         *uuid.UUID            `json:"zerleger_id,omitempty"`
	FertigAm           *time.Time            `json:"fertig_am,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// ToZerlegeauftragResponse converts a domain cutting order to a response DTO
func ToZerlegeauftragResponse(z *zerlegung.Zerlegeauftrag) ZerlegeauftragResponse {
	teile := make([]ZerlegeTeilResponse, len(z.Teile))
	for i, teil := range z.Teile {
		teile[i] = ZerlegeTeilResponse{
			ID:                 teil.ID,
			ArtikelID:          teil.ArtikelID,
			ArtikelBezeichnung: teil.ArtikelBezeichnung,
			Menge:              teil.Menge,
		}
	}
	return ZerlegeauftragResponse{
		ID:                 z.ID,
		Datum:              z.Datum,
		ArtikelID:          z.ArtikelID,
		ArtikelBezeichnung: z.ArtikelBezeichnung,
		Menge:              z.Menge,
		Status:             string(z.Status),
		Teile:              teile,
		GesamtmengeTeile:   z.GesamtmengeTeile(),
		ZerlegerID:         z.ZerlegerID,
		FertigAm:           z.FertigAm,
		CreatedAt:          z.CreatedAt,
		UpdatedAt:          z.UpdatedAt,
	}
}

// ToZerlegeauftragResponses converts a slice of domain cutting orders
func ToZerlegeauftragResponses(auftraege []zerlegung.Zerlegeauftrag) []ZerlegeauftragResponse {
	responses := make([]ZerlegeauftragResponse, len(auftraege))
	for i := range auftraege {
		responses[i] = ToZerlegeauftragResponse(&auftraege[i])
	}
	return responses
}
