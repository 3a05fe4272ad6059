package mitarbeiter

import (
	"context"

	"github.com/fleischhandel/backend/internal/domain/mitarbeiter"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MitarbeiterService handles staff administration
type MitarbeiterService struct {
	mitarbeiterRepo mitarbeiter.Repository
}

// NewMitarbeiterService creates a new MitarbeiterService
func NewMitarbeiterService(mitarbeiterRepo mitarbeiter.Repository) *MitarbeiterService {
	return &MitarbeiterService{mitarbeiterRepo: mitarbeiterRepo}
}

// Create creates a new staff member with a hashed password
func (s *MitarbeiterService) Create(ctx context.Context, req CreateMitarbeiterRequest) (*MitarbeiterResponse, error) {
	exists, err := s.mitarbeiterRepo.ExistsByBenutzername(ctx, req.Benutzername)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Benutzername is already in use")
	}

	hash, err := mitarbeiter.HashPasswort(req.Passwort)
	if err != nil {
		return nil, err
	}

	m, err := mitarbeiter.NewMitarbeiter(req.Benutzername, req.Name, hash, parseRollen(req.Rollen))
	if err != nil {
		return nil, err
	}
	m.Telefon = req.Telefon
	m.Eintrittsdatum = req.Eintrittsdatum

	if err := s.mitarbeiterRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	response := ToMitarbeiterResponse(m)
	return &response, nil
}

// GetByID retrieves a staff member by ID
func (s *MitarbeiterService) GetByID(ctx context.Context, id uuid.UUID) (*MitarbeiterResponse, error) {
	m, err := s.mitarbeiterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMitarbeiterResponse(m)
	return &response, nil
}

// List retrieves staff members with filtering and pagination
func (s *MitarbeiterService) List(ctx context.Context, filter shared.Filter) ([]MitarbeiterResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	mitarbeiterListe, err := s.mitarbeiterRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.mitarbeiterRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToMitarbeiterResponses(mitarbeiterListe), total, nil
}

// Update updates the profile fields of a staff member
func (s *MitarbeiterService) Update(ctx context.Context, id uuid.UUID, req UpdateMitarbeiterRequest) (*MitarbeiterResponse, error) {
	m, err := s.mitarbeiterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.Update(req.Name, req.Telefon, req.Eintrittsdatum); err != nil {
		return nil, err
	}

	if err := s.mitarbeiterRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	response := ToMitarbeiterResponse(m)
	return &response, nil
}

// SetRollen replaces the role set of a staff member
func (s *MitarbeiterService) SetRollen(ctx context.Context, id uuid.UUID, req SetRollenRequest) (*MitarbeiterResponse, error) {
	m, err := s.mitarbeiterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.SetRollen(parseRollen(req.Rollen)); err != nil {
		return nil, err
	}

	if err := s.mitarbeiterRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	response := ToMitarbeiterResponse(m)
	return &response, nil
}

// SetAktiv activates or deactivates the login
func (s *MitarbeiterService) SetAktiv(ctx context.Context, id uuid.UUID, aktiv bool) (*MitarbeiterResponse, error) {
	m, err := s.mitarbeiterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if aktiv {
		m.Activate()
	} else {
		m.Deactivate()
	}

	if err := s.mitarbeiterRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	response := ToMitarbeiterResponse(m)
	return &response, nil
}

// ResetPasswort sets a new password without checking the old one.
// Restricted to admins by the route configuration.
func (s *MitarbeiterService) ResetPasswort(ctx context.Context, id uuid.UUID, req ResetPasswortRequest) error {
	m, err := s.mitarbeiterRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := m.SetPasswort(req.NeuesPasswort); err != nil {
		return err
	}

	return s.mitarbeiterRepo.Save(ctx, m)
}

// Delete removes a staff member
func (s *MitarbeiterService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mitarbeiterRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.mitarbeiterRepo.Delete(ctx, id)
}
