package kunde

import (
	"strings"
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
)

// Adresse is the delivery address of a customer
type Adresse struct {
	Strasse string
	PLZ     string
	Ort     string
}

// IsComplete reports whether all address parts are present
func (a Adresse) IsComplete() bool {
	return a.Strasse != "" && a.PLZ != "" && a.Ort != ""
}

// Kunde represents a commercial customer (restaurant, butcher shop, kiosk)
type Kunde struct {
	shared.BaseAggregateRoot
	Kundennummer    string
	Firma           string
	Ansprechpartner string
	Adresse         Adresse `gorm:"embedded;embeddedPrefix:adresse_"`
	Region          string
	Telefon         string
	Email           string
	UstID           string
	// ZahlungszielTage is the payment term in days, 0 means prepaid/cash
	ZahlungszielTage int
	// IsGenehmigt is set by an admin after the trade licence was checked
	IsGenehmigt bool
	Aktiv       bool
}

// TableName returns the table name for GORM
func (Kunde) TableName() string {
	return "kunden"
}

// NewKunde creates a new customer. New customers start unapproved.
func NewKunde(kundennummer, firma string, adresse Adresse, region string) (*Kunde, error) {
	if kundennummer == "" {
		return nil, shared.NewDomainError("INVALID_KUNDENNUMMER", "Kundennummer cannot be empty")
	}
	if firma == "" {
		return nil, shared.NewDomainError("INVALID_FIRMA", "Firma cannot be empty")
	}
	if !adresse.IsComplete() {
		return nil, shared.NewDomainError("INVALID_ADRESSE", "Adresse must contain Strasse, PLZ and Ort")
	}
	if strings.TrimSpace(region) == "" {
		return nil, shared.NewDomainError("INVALID_REGION", "Region cannot be empty")
	}

	return &Kunde{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kundennummer:      kundennummer,
		Firma:             firma,
		Adresse:           adresse,
		Region:            region,
		Aktiv:             true,
	}, nil
}

// Update changes the mutable customer fields
func (k *Kunde) Update(firma, ansprechpartner string, adresse Adresse, region, telefon, email, ustID string, zahlungszielTage int) error {
	if firma == "" {
		return shared.NewDomainError("INVALID_FIRMA", "Firma cannot be empty")
	}
	if !adresse.IsComplete() {
		return shared.NewDomainError("INVALID_ADRESSE", "Adresse must contain Strasse, PLZ and Ort")
	}
	if strings.TrimSpace(region) == "" {
		return shared.NewDomainError("INVALID_REGION", "Region cannot be empty")
	}
	if zahlungszielTage < 0 {
		return shared.NewDomainError("INVALID_ZAHLUNGSZIEL", "Zahlungsziel cannot be negative")
	}

	k.Firma = firma
	k.Ansprechpartner = ansprechpartner
	k.Adresse = adresse
	k.Region = region
	k.Telefon = telefon
	k.Email = email
	k.UstID = ustID
	k.ZahlungszielTage = zahlungszielTage
	k.UpdatedAt = time.Now()
	return nil
}

// Genehmigen approves the customer for ordering
func (k *Kunde) Genehmigen() {
	k.IsGenehmigt = true
	k.UpdatedAt = time.Now()
}

// Deactivate disables the customer; existing orders stay untouched
func (k *Kunde) Deactivate() {
	k.Aktiv = false
	k.UpdatedAt = time.Now()
}

// Activate re-enables the customer
func (k *Kunde) Activate() {
	k.Aktiv = true
	k.UpdatedAt = time.Now()
}

// KannBestellen reports whether the customer may place orders
func (k *Kunde) KannBestellen() bool {
	return k.Aktiv && k.IsGenehmigt
}
