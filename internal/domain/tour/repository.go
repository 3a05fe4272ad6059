package tour

import (
	"context"
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for tours
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tour, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tour, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindByDatumRegion returns all tours of a date and region ordered by
	// Laufnummer (empty region means all regions)
	FindByDatumRegion(ctx context.Context, datum time.Time, region string) ([]Tour, error)
	// FindByAuftrag returns the tour carrying the stop of an order on a
	// date, or shared.ErrNotFound
	FindByAuftrag(ctx context.Context, auftragID uuid.UUID, datum time.Time) (*Tour, error)
	// NextLaufnummer returns max(Laufnummer)+1 for (datum, region)
	NextLaufnummer(ctx context.Context, datum time.Time, region string) (int, error)
	Save(ctx context.Context, t *Tour) error
	// SaveAll persists several tours in one transaction, used by MoveStop
	// and overflow reassignment
	SaveAll(ctx context.Context, tours []*Tour) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RegionRuleRepository defines persistence operations for region rules
type RegionRuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RegionRule, error)
	FindByRegion(ctx context.Context, region string) (*RegionRule, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]RegionRule, error)
	Save(ctx context.Context, r *RegionRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VorlageRepository defines persistence operations for stop-order templates
type VorlageRepository interface {
	FindByRegion(ctx context.Context, region string) (*ReihenfolgeVorlage, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ReihenfolgeVorlage, error)
	Save(ctx context.Context, v *ReihenfolgeVorlage) error
	DeleteByRegion(ctx context.Context, region string) error
}
