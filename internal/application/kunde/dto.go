package kunde

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/kunde"
	"github.com/google/uuid"
)

// AdresseInput is the address part of customer requests
type AdresseInput struct {
	Strasse string `json:"strasse" binding:"required,min=1,max=200"`
	PLZ     string `json:"plz" binding:"required,min=1,max=10"`
	Ort     string `json:"ort" binding:"required,min=1,max=100"`
}

// CreateKundeRequest represents a request to create a customer
type CreateKundeRequest struct {
	Kundennummer     string       `json:"kundennummer" binding:"required,min=1,max=50"`
	Firma            string       `json:"firma" binding:"required,min=1,max=200"`
	Ansprechpartner  string       `json:"ansprechpartner" binding:"max=200"`
	Adresse          AdresseInput `json:"adresse" binding:"required"`
	Region           string       `json:"region" binding:"required,min=1,max=100"`
	Telefon          string       `json:"telefon" binding:"max=50"`
	Email            string       `json:"email" binding:"omitempty,email"`
	UstID            string       `json:"ust_id" binding:"max=50"`
	ZahlungszielTage int          `json:"zahlungsziel_tage" binding:"gte=0,lte=90"`
}

// UpdateKundeRequest represents a request to update a customer
type UpdateKundeRequest struct {
	Firma            string       `json:"firma" binding:"required,min=1,max=200"`
	Ansprechpartner  string       `json:"ansprechpartner" binding:"max=200"`
	Adresse          AdresseInput `json:"adresse" binding:"required"`
	Region           string       `json:"region" binding:"required,min=1,max=100"`
	Telefon          string       `json:"telefon" binding:"max=50"`
	Email            string       `json:"email" binding:"omitempty,email"`
	UstID            string       `json:"ust_id" binding:"max=50"`
	ZahlungszielTage int          `json:"zahlungsziel_tage" binding:"gte=0,lte=90"`
}

// KundeListFilter contains filters for listing customers
type KundeListFilter struct {
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
	Search    string
	Region    *string
	Aktiv     *bool
	Genehmigt *bool
}

// KundeResponse represents a customer in API responses
type KundeResponse struct {
	ID               uuid.UUID `json:"id"`
	Kundennummer     string    `json:"kundennummer"`
	Firma            string    `json:"firma"`
	Ansprechpartner  string    `json:"ansprechpartner"`
	Strasse          string    `json:"strasse"`
	PLZ              string    `json:"plz"`
	Ort              string    `json:"ort"`
	Region           string    `json:"region"`
	Telefon          string    `json:"telefon"`
	Email            string    `json:"email"`
	UstID            string    `json:"ust_id"`
	ZahlungszielTage int       `json:"zahlungsziel_tage"`
	IsGenehmigt      bool      `json:"is_genehmigt"`
	Aktiv            bool      `json:"aktiv"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToKundeResponse converts a domain Kunde to a response DTO
func ToKundeResponse(k *kunde.Kunde) KundeResponse {
	return KundeResponse{
		ID:               k.ID,
		Kundennummer:     k.Kundennummer,
		Firma:            k.Firma,
		Ansprechpartner:  k.Ansprechpartner,
		Strasse:          k.Adresse.Strasse,
		PLZ:              k.Adresse.PLZ,
		Ort:              k.Adresse.Ort,
		Region:           k.Region,
		Telefon:          k.Telefon,
		Email:            k.Email,
		UstID:            k.UstID,
		ZahlungszielTage: k.ZahlungszielTage,
		IsGenehmigt:      k.IsGenehmigt,
		Aktiv:            k.Aktiv,
		CreatedAt:        k.CreatedAt,
		UpdatedAt:        k.UpdatedAt,
	}
}

// ToKundeResponses converts a slice of domain customers
func ToKundeResponses(kunden []kunde.Kunde) []KundeResponse {
	responses := make([]KundeResponse, len(kunden))
	for i := range kunden {
		responses[i] = ToKundeResponse(&kunden[i])
	}
	return responses
}

// CreateVerkaeuferRequest represents a request to create a sales rep
type CreateVerkaeuferRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Telefon string `json:"telefon" binding:"max=50"`
}

// UpdateVerkaeuferRequest represents a request to update a sales rep
type UpdateVerkaeuferRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Telefon string `json:"telefon" binding:"max=50"`
}

// VerkaeuferResponse represents a sales rep in API responses
type VerkaeuferResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Telefon   string    `json:"telefon"`
	Aktiv     bool      `json:"aktiv"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToVerkaeuferResponse converts a domain Verkaeufer to a response DTO
func ToVerkaeuferResponse(v *kunde.Verkaeufer) VerkaeuferResponse {
	return VerkaeuferResponse{
		ID:        v.ID,
		Name:      v.Name,
		Telefon:   v.Telefon,
		Aktiv:     v.Aktiv,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// ToVerkaeuferResponses converts a slice of domain sales reps
func ToVerkaeuferResponses(verkaeufer []kunde.Verkaeufer) []VerkaeuferResponse {
	responses := make([]VerkaeuferResponse, len(verkaeufer))
	for i := range verkaeufer {
		responses[i] = ToVerkaeuferResponse(&verkaeufer[i])
	}
	return responses
}
