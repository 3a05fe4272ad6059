package bestand

import (
	"context"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ChargeRepository defines persistence operations for batches
type ChargeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Charge, error)
	FindByArtikel(ctx context.Context, artikelID uuid.UUID, filter shared.Filter) ([]Charge, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Charge, error)
	Save(ctx context.Context, c *Charge) error
}

// BewegungRepository defines persistence operations for stock movements.
// Movements are append-only.
type BewegungRepository interface {
	FindByArtikel(ctx context.Context, artikelID uuid.UUID, filter shared.Filter) ([]Bewegung, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Bewegung, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// SumByArtikel returns the signed stock total of one article
	SumByArtikel(ctx context.Context, artikelID uuid.UUID) (Bestandsuebersicht, error)
	// SumAll returns stock overviews for every article with movements
	SumAll(ctx context.Context) ([]Bestandsuebersicht, error)
	Save(ctx context.Context, b *Bewegung) error
	// SaveAll persists several movements in one transaction, used when a
	// cutting order books source and target articles together
	SaveAll(ctx context.Context, bewegungen []*Bewegung) error
}
