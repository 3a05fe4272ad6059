package zerlegung

import (
	"context"
	"time"

	"github.com/fleischhandel/backend/internal/domain/bestand"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for cutting orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Zerlegeauftrag, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Zerlegeauftrag, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindByDatum(ctx context.Context, datum time.Time) ([]Zerlegeauftrag, error)
	Save(ctx context.Context, z *Zerlegeauftrag) error
	// SaveMitBewegungen persists the completed order and its stock
	// movements in one transaction
	SaveMitBewegungen(ctx context.Context, z *Zerlegeauftrag, bewegungen []*bestand.Bewegung) error
	Delete(ctx context.Context, id uuid.UUID) error
}
