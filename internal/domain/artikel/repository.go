package artikel

import (
	"context"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for articles
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Artikel, error)
	FindByNummer(ctx context.Context, nummer string) (*Artikel, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Artikel, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByNummer(ctx context.Context, nummer string) (bool, error)
	Save(ctx context.Context, a *Artikel) error
	Delete(ctx context.Context, id uuid.UUID) error
}
