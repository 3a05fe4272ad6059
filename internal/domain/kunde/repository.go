package kunde

import (
	"context"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for customers
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Kunde, error)
	FindByKundennummer(ctx context.Context, nummer string) (*Kunde, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Kunde, error)
	FindByRegion(ctx context.Context, region string) ([]Kunde, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByKundennummer(ctx context.Context, nummer string) (bool, error)
	Save(ctx context.Context, k *Kunde) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VerkaeuferRepository defines persistence operations for sales representatives
type VerkaeuferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Verkaeufer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Verkaeufer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, v *Verkaeufer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
