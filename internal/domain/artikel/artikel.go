package artikel

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Kategorie classifies an article
type Kategorie string

const (
	KategorieRind      Kategorie = "rind"
	KategorieSchwein   Kategorie = "schwein"
	KategorieGefluegel Kategorie = "gefluegel"
	KategorieWurst     Kategorie = "wurst"
	KategorieSonstiges Kategorie = "sonstiges"
)

// IsValid checks if the value is a known Kategorie
func (k Kategorie) IsValid() bool {
	switch k {
	case KategorieRind, KategorieSchwein, KategorieGefluegel, KategorieWurst, KategorieSonstiges:
		return true
	}
	return false
}

// Einheit is the unit an article is ordered in
type Einheit string

const (
	EinheitKilogramm Einheit = "kg"
	EinheitStueck    Einheit = "stueck"
	EinheitKarton    Einheit = "karton"
	EinheitKiste     Einheit = "kiste"
)

// IsValid checks if the value is a known Einheit
func (e Einheit) IsValid() bool {
	switch e {
	case EinheitKilogramm, EinheitStueck, EinheitKarton, EinheitKiste:
		return true
	}
	return false
}

// Artikel represents a sellable article (cut, sausage, carcass part)
type Artikel struct {
	shared.BaseAggregateRoot
	ArtikelNummer   string
	Bezeichnung     string
	Kategorie       Kategorie
	Einheit         Einheit
	BasispreisProKg decimal.Decimal
	// GewichtProEinheit is the weight in kg of one ordered unit.
	// For kg-articles this is 1.
	GewichtProEinheit decimal.Decimal
	Aktiv             bool
	Ausverkauft       bool
}

// TableName returns the table name for GORM
func (Artikel) TableName() string {
	return "artikel"
}

// NewArtikel creates a new article
func NewArtikel(nummer, bezeichnung string, kategorie Kategorie, einheit Einheit, basispreis valueobject.Money, gewichtProEinheit decimal.Decimal) (*Artikel, error) {
	if nummer == "" {
		return nil, shared.NewDomainError("INVALID_ARTIKELNUMMER", "Artikelnummer cannot be empty")
	}
	if bezeichnung == "" {
		return nil, shared.NewDomainError("INVALID_BEZEICHNUNG", "Bezeichnung cannot be empty")
	}
	if !kategorie.IsValid() {
		return nil, shared.NewDomainError("INVALID_KATEGORIE", "Unknown Kategorie")
	}
	if !einheit.IsValid() {
		return nil, shared.NewDomainError("INVALID_EINHEIT", "Unknown Einheit")
	}
	if basispreis.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PREIS", "Basispreis cannot be negative")
	}
	if gewichtProEinheit.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_GEWICHT", "Gewicht pro Einheit must be positive")
	}
	if einheit == EinheitKilogramm && !gewichtProEinheit.Equal(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_GEWICHT", "Gewicht pro Einheit must be 1 for kg articles")
	}

	return &Artikel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ArtikelNummer:     nummer,
		Bezeichnung:       bezeichnung,
		Kategorie:         kategorie,
		Einheit:           einheit,
		BasispreisProKg:   basispreis.Amount(),
		GewichtProEinheit: gewichtProEinheit,
		Aktiv:             true,
	}, nil
}

// Update changes the mutable article fields. The Artikelnummer is immutable.
func (a *Artikel) Update(bezeichnung string, kategorie Kategorie, basispreis valueobject.Money, gewichtProEinheit decimal.Decimal) error {
	if bezeichnung == "" {
		return shared.NewDomainError("INVALID_BEZEICHNUNG", "Bezeichnung cannot be empty")
	}
	if !kategorie.IsValid() {
		return shared.NewDomainError("INVALID_KATEGORIE", "Unknown Kategorie")
	}
	if basispreis.IsNegative() {
		return shared.NewDomainError("INVALID_PREIS", "Basispreis cannot be negative")
	}
	if gewichtProEinheit.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_GEWICHT", "Gewicht pro Einheit must be positive")
	}

	a.Bezeichnung = bezeichnung
	a.Kategorie = kategorie
	a.BasispreisProKg = basispreis.Amount()
	a.GewichtProEinheit = gewichtProEinheit
	a.UpdatedAt = time.Now()
	return nil
}

// SetAusverkauft flags the article as sold out for the current day
func (a *Artikel) SetAusverkauft(ausverkauft bool) {
	a.Ausverkauft = ausverkauft
	a.UpdatedAt = time.Now()
}

// Deactivate removes the article from the orderable catalog
func (a *Artikel) Deactivate() {
	a.Aktiv = false
	a.UpdatedAt = time.Now()
}

// Activate puts the article back into the orderable catalog
func (a *Artikel) Activate() {
	a.Aktiv = true
	a.UpdatedAt = time.Now()
}

// Gewicht returns the weight in kg for a given ordered quantity
func (a *Artikel) Gewicht(menge decimal.Decimal) decimal.Decimal {
	return menge.Mul(a.GewichtProEinheit).Round(3)
}

// PreisMoney returns the base price as Money value object
func (a *Artikel) PreisMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(a.BasispreisProKg)
}
