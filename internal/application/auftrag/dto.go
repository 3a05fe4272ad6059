package auftrag

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/auftrag"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAuftragRequest represents a request to create an order
type CreateAuftragRequest struct {
	KundeID     uuid.UUID             `json:"kunde_id" binding:"required"`
	Lieferdatum time.Time             `json:"lieferdatum" binding:"required"`
	Bemerkung   string                `json:"bemerkung" binding:"max=1000"`
	Positionen  []CreatePositionInput `json:"positionen" binding:"dive"`
}

// CreatePositionInput is a line item in a create request
type CreatePositionInput struct {
	ArtikelID uuid.UUID       `json:"artikel_id" binding:"required"`
	Menge     decimal.Decimal `json:"menge" binding:"required"`
	Bemerkung string          `json:"bemerkung" binding:"max=500"`
}

// AddPositionRequest represents adding a line item to an order
type AddPositionRequest struct {
	ArtikelID uuid.UUID       `json:"artikel_id" binding:"required"`
	Menge     decimal.Decimal `json:"menge" binding:"required"`
	Bemerkung string          `json:"bemerkung" binding:"max=500"`
}

// UpdatePositionRequest represents a quantity change on a line item
type UpdatePositionRequest struct {
	Menge decimal.Decimal `json:"menge" binding:"required"`
}

// UpdateAuftragRequest changes header fields of an open order
type UpdateAuftragRequest struct {
	Bemerkung *string `json:"bemerkung" binding:"omitempty,max=1000"`
}

// SetLieferdatumRequest moves the order to another delivery date
type SetLieferdatumRequest struct {
	Lieferdatum time.Time `json:"lieferdatum" binding:"required"`
}

// KommissionierePositionRequest records the scale weight for a position
type KommissionierePositionRequest struct {
	IstGewicht decimal.Decimal `json:"ist_gewicht" binding:"required"`
}

// StornoRequest cancels an order
type StornoRequest struct {
	Grund string `json:"grund" binding:"required,min=1,max=500"`
}

// AuftragListFilter contains filtering options for order lists
type AuftragListFilter struct {
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir"`
	Search         string     `form:"search"`
	KundeID        *uuid.UUID `form:"kunde_id"`
	Region         *string    `form:"region"`
	Status         *string    `form:"status"`
	Kommissioniert *string    `form:"kommissioniert"`
	Kontrolliert   *string    `form:"kontrolliert"`
	Lieferdatum    *time.Time `form:"lieferdatum" time_format:"2006-01-02"`
}

// PositionResponse represents a line item in API responses
type PositionResponse struct {
	ID                 uuid.UUID        `json:"id"`
	ArtikelID          uuid.UUID        `json:"artikel_id"`
	ArtikelNummer      string           `json:"artikel_nummer"`
	ArtikelBezeichnung string           `json:"artikel_bezeichnung"`
	Menge              decimal.Decimal  `json:"menge"`
	Einheit            string           `json:"einheit"`
	Einzelpreis        decimal.Decimal  `json:"einzelpreis"`
	Gesamtpreis        decimal.Decimal  `json:"gesamtpreis"`
	SollGewicht        decimal.Decimal  `json:"soll_gewicht"`
	IstGewicht         *decimal.Decimal `json:"ist_gewicht,omitempty"`
	Kommissioniert     bool             `json:"kommissioniert"`
	Bemerkung          string           `json:"bemerkung,omitempty"`
}

// AuftragResponse represents an order in API responses
type AuftragResponse struct {
	ID                uuid.UUID          `json:"id"`
	Auftragsnummer    string             `json:"auftragsnummer"`
	KundeID           uuid.UUID          `json:"kunde_id"`
	KundeFirma        string             `json:"kunde_firma"`
	Region            string             `json:"region"`
	Lieferdatum       time.Time          `json:"lieferdatum"`
	Status            string             `json:"status"`
	Kommissioniert    string             `json:"kommissioniert"`
	Kontrolliert      string             `json:"kontrolliert"`
	Positionen        []PositionResponse `json:"positionen"`
	Gesamtgewicht     decimal.Decimal    `json:"gesamtgewicht"`
	Gesamtpreis       decimal.Decimal    `json:"gesamtpreis"`
	Bemerkung         string             `json:"bemerkung,omitempty"`
	KommissioniertVon *uuid.UUID         `json:"kommissioniert_von,omitempty"`
	KommissioniertAm  *time.Time         `json:"kommissioniert_am,omitempty"`
	KontrolliertVon   *uuid.UUID         `json:"kontrolliert_von,omitempty"`
	KontrolliertAm    *time.Time         `json:"kontrolliert_am,omitempty"`
	StorniertAm       *time.Time         `json:"storniert_am,omitempty"`
	StornoGrund       string             `json:"storno_grund,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// ToPositionResponse converts a domain position to a response DTO
func ToPositionResponse(p *auftrag.ArtikelPosition) PositionResponse {
	return PositionResponse{
		ID:                 p.ID,
		ArtikelID:          p.ArtikelID,
		ArtikelNummer:      p.ArtikelNummer,
		ArtikelBezeichnung: p.ArtikelBezeichnung,
		Menge:              p.Menge,
		Einheit:            string(p.Einheit),
		Einzelpreis:        p.Einzelpreis,
		Gesamtpreis:        p.Gesamtpreis,
		SollGewicht:        p.SollGewicht,
		IstGewicht:         p.IstGewicht,
		Kommissioniert:     p.Kommissioniert,
		Bemerkung:          p.Bemerkung,
	}
}

// ToAuftragResponse converts a domain order to a response DTO
func ToAuftragResponse(a *auftrag.Auftrag) AuftragResponse {
	positionen := make([]PositionResponse, len(a.Positionen))
	for i := range a.Positionen {
		positionen[i] = ToPositionResponse(&a.Positionen[i])
	}
	return AuftragResponse{
		ID:                a.ID,
		Auftragsnummer:    a.Auftragsnummer,
		KundeID:           a.KundeID,
		KundeFirma:        a.KundeFirma,
		Region:            a.Region,
		Lieferdatum:       a.Lieferdatum,
		Status:            string(a.Status),
		Kommissioniert:    string(a.Kommissioniert),
		Kontrolliert:      string(a.Kontrolliert),
		Positionen:        positionen,
		Gesamtgewicht:     a.Gesamtgewicht,
		Gesamtpreis:       a.Gesamtpreis,
		Bemerkung:         a.Bemerkung,
		KommissioniertVon: a.KommissioniertVon,
		KommissioniertAm:  a.KommissioniertAm,
		KontrolliertVon:   a.KontrolliertVon,
		KontrolliertAm:    a.KontrolliertAm,
		StorniertAm:       a.StorniertAm,
		StornoGrund:       a.StornoGrund,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// ToAuftragResponses converts a slice of domain orders
func ToAuftragResponses(auftraege []auftrag.Auftrag) []AuftragResponse {
	responses := make([]AuftragResponse, len(auftraege))
	for i := range auftraege {
		responses[i] = ToAuftragResponse(&auftraege[i])
	}
	return responses
}
