package mitarbeiter

import (
	"context"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for staff members
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Mitarbeiter, error)
	FindByBenutzername(ctx context.Context, benutzername string) (*Mitarbeiter, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Mitarbeiter, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByBenutzername(ctx context.Context, benutzername string) (bool, error)
	Save(ctx context.Context, m *Mitarbeiter) error
	Delete(ctx context.Context, id uuid.UUID) error
}
