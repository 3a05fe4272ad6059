package preis

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KundenPreis is a customer-specific price override for one article.
// It wins over the article base price while its validity window covers
// the requested date.
type KundenPreis struct {
	shared.BaseAggregateRoot
	KundeID   uuid.UUID
	ArtikelID uuid.UUID
	Preis     decimal.Decimal
	GueltigAb time.Time
	// GueltigBis nil means open-ended
	GueltigBis *time.Time
}

// TableName returns the table name for GORM
func (KundenPreis) TableName() string {
	return "kundenpreise"
}

// NewKundenPreis creates a new price override
func NewKundenPreis(kundeID, artikelID uuid.UUID, preis valueobject.Money, gueltigAb time.Time, gueltigBis *time.Time) (*KundenPreis, error) {
	if kundeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_KUNDE", "Kunde ID cannot be empty")
	}
	if artikelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ARTIKEL", "Artikel ID cannot be empty")
	}
	if preis.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PREIS", "Preis cannot be negative")
	}
	if gueltigBis != nil && gueltigBis.Before(gueltigAb) {
		return nil, shared.NewDomainError("INVALID_ZEITRAUM", "GueltigBis must not be before GueltigAb")
	}

	return &KundenPreis{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		KundeID:           kundeID,
		ArtikelID:         artikelID,
		Preis:             preis.Amount(),
		GueltigAb:         gueltigAb,
		GueltigBis:        gueltigBis,
	}, nil
}

// GiltAm reports whether the override is valid on the given date
func (p *KundenPreis) GiltAm(datum time.Time) bool {
	if datum.Before(p.GueltigAb) {
		return false
	}
	if p.GueltigBis != nil && datum.After(*p.GueltigBis) {
		return false
	}
	return true
}

// SetPreis changes the override price
func (p *KundenPreis) SetPreis(preis valueobject.Money) error {
	if preis.IsNegative() {
		return shared.NewDomainError("INVALID_PREIS", "Preis cannot be negative")
	}
	p.Preis = preis.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// Resolve picks the effective override from a candidate list for a date.
// The newest valid override wins; nil means the article base price applies.
func Resolve(overrides []KundenPreis, datum time.Time) *KundenPreis {
	var winner *KundenPreis
	for i := range overrides {
		o := &overrides[i]
		if !o.GiltAm(datum) {
			continue
		}
		if winner == nil || o.GueltigAb.After(winner.GueltigAb) {
			winner = o
		}
	}
	return winner
}
