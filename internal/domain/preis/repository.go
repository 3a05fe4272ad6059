package preis

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence operations for customer price overrides
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*KundenPreis, error)
	FindByKunde(ctx context.Context, kundeID uuid.UUID) ([]KundenPreis, error)
	FindByKundeArtikel(ctx context.Context, kundeID, artikelID uuid.UUID) ([]KundenPreis, error)
	// FindEffective returns the overrides for (kunde, artikel) valid on datum
	FindEffective(ctx context.Context, kundeID, artikelID uuid.UUID, datum time.Time) ([]KundenPreis, error)
	Save(ctx context.Context, p *KundenPreis) error
	Delete(ctx context.Context, id uuid.UUID) error
}
