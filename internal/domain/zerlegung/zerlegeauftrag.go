package zerlegung

import (
	"fmt"
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ZerlegeStatus is the lifecycle state of a cutting order
type ZerlegeStatus string

const (
	ZerlegeOffen    ZerlegeStatus = "offen"
	ZerlegeInArbeit ZerlegeStatus = "in_arbeit"
	ZerlegeFertig   ZerlegeStatus = "fertig"
)

// IsValid checks if the value is a known ZerlegeStatus
func (s ZerlegeStatus) IsValid() bool {
	switch s {
	case ZerlegeOffen, ZerlegeInArbeit, ZerlegeFertig:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target
func (s ZerlegeStatus) CanTransitionTo(target ZerlegeStatus) bool {
	switch s {
	case ZerlegeOffen:
		return target == ZerlegeInArbeit
	case ZerlegeInArbeit:
		return target == ZerlegeFertig
	case ZerlegeFertig:
		return false
	}
	return false
}

// ZerlegeTeil is one cut produced from the source article
type ZerlegeTeil struct {
	ID                 uuid.UUID
	ZerlegeauftragID   uuid.UUID
	ArtikelID          uuid.UUID
	ArtikelBezeichnung string
	Menge              decimal.Decimal
	CreatedAt          time.Time
}

// TableName returns the table name for GORM
func (ZerlegeTeil) TableName() string {
	return "zerlege_teile"
}

// Zerlegeauftrag is a cutting order: one source carcass article is cut
// into target articles. Completing it books the stock movements.
type Zerlegeauftrag struct {
	shared.BaseAggregateRoot
	Datum              time.Time
	ArtikelID          uuid.UUID
	ArtikelBezeichnung string
	Menge              decimal.Decimal
	Status             ZerlegeStatus
	Teile              []ZerlegeTeil
	ZerlegerID         *uuid.UUID
	FertigAm           *time.Time
}

// TableName returns the table name for GORM
func (Zerlegeauftrag) TableName() string {
	return "zerlegeauftraege"
}

// NewZerlegeauftrag creates a cutting order in state offen
func NewZerlegeauftrag(datum time.Time, artikelID uuid.UUID, bezeichnung string, menge decimal.Decimal) (*Zerlegeauftrag, error) {
	if datum.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATUM", "Datum cannot be empty")
	}
	if artikelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ARTIKEL", "Artikel ID cannot be empty")
	}
	if bezeichnung == "" {
		return nil, shared.NewDomainError("INVALID_ARTIKEL", "Artikel Bezeichnung cannot be empty")
	}
	if menge.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_MENGE", "Menge must be positive")
	}

	return &Zerlegeauftrag{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Datum:              datum,
		ArtikelID:          artikelID,
		ArtikelBezeichnung: bezeichnung,
		Menge:              menge,
		Status:             ZerlegeOffen,
		Teile:              make([]ZerlegeTeil, 0),
	}, nil
}

// Start transitions the order to in_arbeit and assigns the cutter
func (z *Zerlegeauftrag) Start(zerlegerID uuid.UUID) error {
	if zerlegerID == uuid.Nil {
		return shared.NewDomainError("INVALID_MITARBEITER", "Zerleger ID cannot be empty")
	}
	if !z.Status.CanTransitionTo(ZerlegeInArbeit) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start Zerlegung in %s", z.Status))
	}

	z.Status = ZerlegeInArbeit
	z.ZerlegerID = &zerlegerID
	z.UpdatedAt = time.Now()
	return nil
}

// AddTeil records one produced cut. Only allowed while in_arbeit.
func (z *Zerlegeauftrag) AddTeil(artikelID uuid.UUID, bezeichnung string, menge decimal.Decimal) (*ZerlegeTeil, error) {
	if z.Status != ZerlegeInArbeit {
		return nil, shared.NewDomainError("INVALID_STATE", "Teile can only be added while in_arbeit")
	}
	if artikelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ARTIKEL", "Artikel ID cannot be empty")
	}
	if artikelID == z.ArtikelID {
		return nil, shared.NewDomainError("INVALID_ARTIKEL", "Teil cannot be the source Artikel")
	}
	if menge.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_MENGE", "Menge must be positive")
	}

	teil := ZerlegeTeil{
		ID:                 uuid.New(),
		ZerlegeauftragID:   z.ID,
		ArtikelID:          artikelID,
		ArtikelBezeichnung: bezeichnung,
		Menge:              menge,
	}
	teil.CreatedAt = time.Now()
	z.Teile = append(z.Teile, teil)
	z.UpdatedAt = time.Now()

	return &z.Teile[len(z.Teile)-1], nil
}

// RemoveTeil removes a recorded cut while still in_arbeit
func (z *Zerlegeauftrag) RemoveTeil(teilID uuid.UUID) error {
	if z.Status != ZerlegeInArbeit {
		return shared.NewDomainError("INVALID_STATE", "Teile can only be changed while in_arbeit")
	}
	for idx, teil := range z.Teile {
		if teil.ID == teilID {
			z.Teile = append(z.Teile[:idx], z.Teile[idx+1:]...)
			z.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("TEIL_NOT_FOUND", "Teil not found")
}

// Complete finishes the cutting order. Requires at least one Teil; the
// service books the stock movements afterwards.
func (z *Zerlegeauftrag) Complete() error {
	if !z.Status.CanTransitionTo(ZerlegeFertig) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete Zerlegung in %s", z.Status))
	}
	if len(z.Teile) == 0 {
		return shared.NewDomainError("KEINE_TEILE", "At least one Teil is required")
	}

	now := time.Now()
	z.Status = ZerlegeFertig
	z.FertigAm = &now
	z.UpdatedAt = now
	return nil
}

// KannGeloeschtWerden reports whether the order may be deleted
func (z *Zerlegeauftrag) KannGeloeschtWerden() bool {
	return z.Status == ZerlegeOffen
}

// GesamtmengeTeile returns the summed weight of all cuts
func (z *Zerlegeauftrag) GesamtmengeTeile() decimal.Decimal {
	sum := decimal.Zero
	for _, teil := range z.Teile {
		sum = sum.Add(teil.Menge)
	}
	return sum
}
