package artikel

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateArtikelRequest represents a request to create an article
type CreateArtikelRequest struct {
	ArtikelNummer     string          `json:"artikel_nummer" binding:"required,min=1,max=50"`
	Bezeichnung       string          `json:"bezeichnung" binding:"required,min=1,max=200"`
	Kategorie         string          `json:"kategorie" binding:"required"`
	Einheit           string          `json:"einheit" binding:"required"`
	BasispreisProKg   decimal.Decimal `json:"basispreis_pro_kg" binding:"required"`
	GewichtProEinheit decimal.Decimal `json:"gewicht_pro_einheit" binding:"required"`
}

// UpdateArtikelRequest represents a request to update an article.
// Artikelnummer and Einheit are immutable.
type UpdateArtikelRequest struct {
	Bezeichnung       string          `json:"bezeichnung" binding:"required,min=1,max=200"`
	Kategorie         string          `json:"kategorie" binding:"required"`
	BasispreisProKg   decimal.Decimal `json:"basispreis_pro_kg" binding:"required"`
	GewichtProEinheit decimal.Decimal `json:"gewicht_pro_einheit" binding:"required"`
}

// ArtikelListFilter contains filters for listing articles
type ArtikelListFilter struct {
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
	Search    string
	Kategorie *string
	Aktiv     *bool
}

// ArtikelResponse represents an article in API responses
type ArtikelResponse struct {
	ID                uuid.UUID       `json:"id"`
	ArtikelNummer     string          `json:"artikel_nummer"`
	Bezeichnung       string          `json:"bezeichnung"`
	Kategorie         string          `json:"kategorie"`
	Einheit           string          `json:"einheit"`
	BasispreisProKg   decimal.Decimal `json:"basispreis_pro_kg"`
	GewichtProEinheit decimal.Decimal `json:"gewicht_pro_einheit"`
	Aktiv             bool            `json:"aktiv"`
	Ausverkauft       bool            `json:"ausverkauft"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToArtikelResponse converts a domain Artikel to a response DTO
func ToArtikelResponse(a *artikel.Artikel) ArtikelResponse {
	return ArtikelResponse{
		ID:                a.ID,
		ArtikelNummer:     a.ArtikelNummer,
		Bezeichnung:       a.Bezeichnung,
		Kategorie:         string(a.Kategorie),
		Einheit:           string(a.Einheit),
		BasispreisProKg:   a.BasispreisProKg,
		GewichtProEinheit: a.GewichtProEinheit,
		Aktiv:             a.Aktiv,
		Ausverkauft:       a.Ausverkauft,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// ToArtikelResponses converts a slice of domain articles
func ToArtikelResponses(artikelListe []artikel.Artikel) []ArtikelResponse {
	responses := make([]ArtikelResponse, len(artikelListe))
	for i := range artikelListe {
		responses[i] = ToArtikelResponse(&artikelListe[i])
	}
	return responses
}
