package tour

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RankUnbekannt sorts customers without a template entry after all
// ranked ones.
const RankUnbekannt = 1 << 30

// ReihenfolgeVorlage is the preferred stop order of a region: the
// customers in the sequence the driver usually serves them.
// One template per region.
type ReihenfolgeVorlage struct {
	shared.BaseAggregateRoot
	Region    string
	KundenIDs []uuid.UUID `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (ReihenfolgeVorlage) TableName() string {
	return "reihenfolge_vorlagen"
}

// NewReihenfolgeVorlage creates a stop-order template for a region
func NewReihenfolgeVorlage(region string, kundenIDs []uuid.UUID) (*ReihenfolgeVorlage, error) {
	if region == "" {
		return nil, shared.NewDomainError("INVALID_REGION", "Region cannot be empty")
	}
	if err := validateKundenIDs(kundenIDs); err != nil {
		return nil, err
	}

	return &ReihenfolgeVorlage{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Region:            region,
		KundenIDs:         kundenIDs,
	}, nil
}

// SetKundenIDs replaces the ordered customer list
func (v *ReihenfolgeVorlage) SetKundenIDs(kundenIDs []uuid.UUID) error {
	if err := validateKundenIDs(kundenIDs); err != nil {
		return err
	}
	v.KundenIDs = kundenIDs
	v.UpdatedAt = time.Now()
	return nil
}

// Rank returns the template index of a customer; customers not on the
// template get RankUnbekannt.
func (v *ReihenfolgeVorlage) Rank(kundeID uuid.UUID) int {
	for idx, id := range v.KundenIDs {
		if id == kundeID {
			return idx
		}
	}
	return RankUnbekannt
}

func validateKundenIDs(kundenIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(kundenIDs))
	for _, id := range kundenIDs {
		if id == uuid.Nil {
			return shared.NewDomainError("INVALID_KUNDE", "Kunde ID cannot be empty")
		}
		if seen[id] {
			return shared.NewDomainError("INVALID_KUNDE", "Duplicate Kunde in Vorlage")
		}
		seen[id] = true
	}
	return nil
}
