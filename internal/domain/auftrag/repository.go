package auftrag

import (
	"context"
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Auftrag, error)
	FindByNummer(ctx context.Context, auftragsnummer string) (*Auftrag, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Auftrag, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindByLieferdatum returns all orders for a delivery date, optionally
	// narrowed to a region (empty region means all regions)
	FindByLieferdatum(ctx context.Context, datum time.Time, region string) ([]Auftrag, error)
	FindByKunde(ctx context.Context, kundeID uuid.UUID, filter shared.Filter) ([]Auftrag, error)
	// GenerateAuftragsnummer generates the next order number (A-YYYY-NNNNN)
	GenerateAuftragsnummer(ctx context.Context) (string, error)
	Save(ctx context.Context, a *Auftrag) error
	Delete(ctx context.Context, id uuid.UUID) error
}
