package kunde

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
)

// Verkaeufer is a field sales representative taking orders for customers
type Verkaeufer struct {
	shared.BaseAggregateRoot
	Name    string
	Telefon string
	Aktiv   bool
}

// TableName returns the table name for GORM
func (Verkaeufer) TableName() string {
	return "verkaeufer"
}

// NewVerkaeufer creates a new sales representative
func NewVerkaeufer(name, telefon string) (*Verkaeufer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	return &Verkaeufer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Telefon:           telefon,
		Aktiv:             true,
	}, nil
}

// Update changes the mutable fields
func (v *Verkaeufer) Update(name, telefon string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	v.Name = name
	v.Telefon = telefon
	v.UpdatedAt = time.Now()
	return nil
}

// Deactivate disables the sales representative
func (v *Verkaeufer) Deactivate() {
	v.Aktiv = false
	v.UpdatedAt = time.Now()
}
