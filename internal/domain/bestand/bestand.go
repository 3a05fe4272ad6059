package bestand

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BewegungsTyp classifies a stock movement
type BewegungsTyp string

const (
	BewegungEingang   BewegungsTyp = "eingang"
	BewegungAusgang   BewegungsTyp = "ausgang"
	BewegungKorrektur BewegungsTyp = "korrektur"
	BewegungMuell     BewegungsTyp = "muell"
)

// IsValid checks if the value is a known BewegungsTyp
func (t BewegungsTyp) IsValid() bool {
	switch t {
	case BewegungEingang, BewegungAusgang, BewegungKorrektur, BewegungMuell:
		return true
	}
	return false
}

// Vorzeichen returns the sign the movement applies to stock.
// Korrektur carries its own sign in Menge.
func (t BewegungsTyp) Vorzeichen() decimal.Decimal {
	switch t {
	case BewegungEingang:
		return decimal.NewFromInt(1)
	case BewegungAusgang, BewegungMuell:
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// Charge is a received batch of an article
type Charge struct {
	shared.BaseAggregateRoot
	ArtikelID     uuid.UUID
	Menge         decimal.Decimal
	MHD           *time.Time
	Lieferant     string
	EingangsDatum time.Time
}

// TableName returns the table name for GORM
func (Charge) TableName() string {
	return "chargen"
}

// NewCharge creates a batch record for a goods receipt
func NewCharge(artikelID uuid.UUID, menge decimal.Decimal, mhd *time.Time, lieferant string, eingangsDatum time.Time) (*Charge, error) {
	if artikelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ARTIKEL", "Artikel ID cannot be empty")
	}
	if menge.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_MENGE", "Menge must be positive")
	}
	if eingangsDatum.IsZero() {
		eingangsDatum = time.Now()
	}

	return &Charge{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ArtikelID:         artikelID,
		Menge:             menge,
		MHD:               mhd,
		Lieferant:         lieferant,
		EingangsDatum:     eingangsDatum,
	}, nil
}

// IstAbgelaufen reports whether the batch is past its best-before date
func (c *Charge) IstAbgelaufen(am time.Time) bool {
	return c.MHD != nil && c.MHD.Before(am)
}

// Bewegung is one stock movement. Movements are append-only; stock is
// always computed from the movement history.
type Bewegung struct {
	shared.BaseEntity
	ArtikelID uuid.UUID
	ChargeID  *uuid.UUID
	Typ       BewegungsTyp
	// Menge is positive for eingang/ausgang/muell; korrektur may be
	// negative for downward adjustments
	Menge       decimal.Decimal
	Referenz    string
	Grund       string
	ErstelltVon uuid.UUID
}

// TableName returns the table name for GORM
func (Bewegung) TableName() string {
	return "bestand_bewegungen"
}

// NewBewegung creates a stock movement
func NewBewegung(artikelID uuid.UUID, chargeID *uuid.UUID, typ BewegungsTyp, menge decimal.Decimal, referenz, grund string, erstelltVon uuid.UUID) (*Bewegung, error) {
	if artikelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ARTIKEL", "Artikel ID cannot be empty")
	}
	if !typ.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYP", "Unknown BewegungsTyp")
	}
	if typ == BewegungKorrektur {
		if menge.IsZero() {
			return nil, shared.NewDomainError("INVALID_MENGE", "Korrektur Menge cannot be zero")
		}
	} else if menge.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_MENGE", "Menge must be positive")
	}
	if typ == BewegungMuell && grund == "" {
		return nil, shared.NewDomainError("INVALID_GRUND", "Muell requires a Grund")
	}
	if erstelltVon == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MITARBEITER", "ErstelltVon cannot be empty")
	}

	return &Bewegung{
		BaseEntity:  shared.NewBaseEntity(),
		ArtikelID:   artikelID,
		ChargeID:    chargeID,
		Typ:         typ,
		Menge:       menge,
		Referenz:    referenz,
		Grund:       grund,
		ErstelltVon: erstelltVon,
	}, nil
}

// Wirkung returns the signed stock effect of the movement
func (b *Bewegung) Wirkung() decimal.Decimal {
	if b.Typ == BewegungKorrektur {
		return b.Menge
	}
	return b.Menge.Mul(b.Typ.Vorzeichen())
}

// Bestandsuebersicht is the computed stock of one article
type Bestandsuebersicht struct {
	ArtikelID  uuid.UUID       `json:"artikel_id"`
	Eingang    decimal.Decimal `json:"eingang"`
	Ausgang    decimal.Decimal `json:"ausgang"`
	Muell      decimal.Decimal `json:"muell"`
	Korrektur  decimal.Decimal `json:"korrektur"`
	Verfuegbar decimal.Decimal `json:"verfuegbar"`
}

// Berechne aggregates movements of one article into a stock overview
func Berechne(artikelID uuid.UUID, bewegungen []Bewegung) Bestandsuebersicht {
	u := Bestandsuebersicht{
		ArtikelID: artikelID,
		Eingang:   decimal.Zero,
		Ausgang:   decimal.Zero,
		Muell:     decimal.Zero,
		Korrektur: decimal.Zero,
	}
	for _, b := range bewegungen {
		if b.ArtikelID != artikelID {
			continue
		}
		switch b.Typ {
		case BewegungEingang:
			u.Eingang = u.Eingang.Add(b.Menge)
		case BewegungAusgang:
			u.Ausgang = u.Ausgang.Add(b.Menge)
		case BewegungMuell:
			u.Muell = u.Muell.Add(b.Menge)
		case BewegungKorrektur:
			u.Korrektur = u.Korrektur.Add(b.Menge)
		}
	}
	u.Verfuegbar = u.Eingang.Sub(u.Ausgang).Sub(u.Muell).Add(u.Korrektur)
	return u
}
