package auftrag

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ArtikelPosition is a line item of an order.
// Einzelpreis is resolved once at creation (customer override or base
// price) and frozen afterwards.
type ArtikelPosition struct {
	ID                 uuid.UUID
	AuftragID          uuid.UUID
	ArtikelID          uuid.UUID
	ArtikelNummer      string
	ArtikelBezeichnung string
	Menge              decimal.Decimal
	Einheit            artikel.Einheit
	Einzelpreis        decimal.Decimal
	Gesamtpreis        decimal.Decimal
	// SollGewicht is the expected weight (Menge x GewichtProEinheit)
	SollGewicht decimal.Decimal
	// IstGewicht is the actual weight set by the picker on the scale
	IstGewicht     *decimal.Decimal
	Kommissioniert bool
	Bemerkung      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (ArtikelPosition) TableName() string {
	return "auftrag_positionen"
}

// NewArtikelPosition creates a new line item
func NewArtikelPosition(auftragID, artikelID uuid.UUID, artikelNummer, bezeichnung string, einheit artikel.Einheit, menge, gewichtProEinheit decimal.Decimal, einzelpreis valueobject.Money) (*ArtikelPosition, error) {
	if artikelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ARTIKEL", "Artikel ID cannot be empty")
	}
	if bezeichnung == "" {
		return nil, shared.NewDomainError("INVALID_ARTIKEL", "Artikel Bezeichnung cannot be empty")
	}
	if menge.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_MENGE", "Menge must be positive")
	}
	if gewichtProEinheit.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_GEWICHT", "Gewicht pro Einheit must be positive")
	}
	if einzelpreis.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PREIS", "Einzelpreis cannot be negative")
	}
	if !einheit.IsValid() {
		return nil, shared.NewDomainError("INVALID_EINHEIT", "Unknown Einheit")
	}

	now := time.Now()
	sollGewicht := menge.Mul(gewichtProEinheit).Round(3)

	return &ArtikelPosition{
		ID:                 uuid.New(),
		AuftragID:          auftragID,
		ArtikelID:          artikelID,
		ArtikelNummer:      artikelNummer,
		ArtikelBezeichnung: bezeichnung,
		Menge:              menge,
		Einheit:            einheit,
		Einzelpreis:        einzelpreis.Amount(),
		Gesamtpreis:        sollGewicht.Mul(einzelpreis.Amount()).Round(2),
		SollGewicht:        sollGewicht,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// UpdateMenge changes the ordered quantity and recalculates weight and price
func (p *ArtikelPosition) UpdateMenge(menge, gewichtProEinheit decimal.Decimal) error {
	if menge.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_MENGE", "Menge must be positive")
	}
	if p.Kommissioniert {
		return shared.NewDomainError("INVALID_STATE", "Cannot change Menge of a picked position")
	}

	p.Menge = menge
	p.SollGewicht = menge.Mul(gewichtProEinheit).Round(3)
	p.Gesamtpreis = p.SollGewicht.Mul(p.Einzelpreis).Round(2)
	p.UpdatedAt = time.Now()
	return nil
}

// Kommissionieren records the actual weight from the scale and marks the
// position as picked. The final price follows the actual weight.
func (p *ArtikelPosition) Kommissionieren(istGewicht decimal.Decimal) error {
	if istGewicht.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_GEWICHT", "Ist-Gewicht must be positive")
	}

	p.IstGewicht = &istGewicht
	p.Kommissioniert = true
	p.Gesamtpreis = istGewicht.Mul(p.Einzelpreis).Round(2)
	p.UpdatedAt = time.Now()
	return nil
}

// EffektivesGewicht returns the actual weight if picked, else the expected one
func (p *ArtikelPosition) EffektivesGewicht() decimal.Decimal {
	if p.IstGewicht != nil {
		return *p.IstGewicht
	}
	return p.SollGewicht
}

// SetBemerkung sets the line item remark
func (p *ArtikelPosition) SetBemerkung(bemerkung string) {
	p.Bemerkung = bemerkung
	p.UpdatedAt = time.Now()
}
