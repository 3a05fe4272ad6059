package kunde

import (
	"context"

	"github.com/fleischhandel/backend/internal/domain/kunde"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// KundeService handles customer master data operations
type KundeService struct {
	kundeRepo kunde.Repository
}

// NewKundeService creates a new KundeService
func NewKundeService(kundeRepo kunde.Repository) *KundeService {
	return &KundeService{kundeRepo: kundeRepo}
}

// Create creates a new customer. New customers start unapproved and
// cannot place orders until an admin approves them.
func (s *KundeService) Create(ctx context.Context, req CreateKundeRequest) (*KundeResponse, error) {
	exists, err := s.kundeRepo.ExistsByKundennummer(ctx, req.Kundennummer)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Kundennummer is already in use")
	}

	adresse := kunde.Adresse{Strasse: req.Adresse.Strasse, PLZ: req.Adresse.PLZ, Ort: req.Adresse.Ort}
	k, err := kunde.NewKunde(req.Kundennummer, req.Firma, adresse, req.Region)
	if err != nil {
		return nil, err
	}

	if req.Ansprechpartner != "" || req.Telefon != "" || req.Email != "" || req.UstID != "" || req.ZahlungszielTage > 0 {
		if err := k.Update(req.Firma, req.Ansprechpartner, adresse, req.Region, req.Telefon, req.Email, req.UstID, req.ZahlungszielTage); err != nil {
			return nil, err
		}
	}

	if err := s.kundeRepo.Save(ctx, k); err != nil {
		return nil, err
	}

	response := ToKundeResponse(k)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *KundeService) GetByID(ctx context.Context, id uuid.UUID) (*KundeResponse, error) {
	k, err := s.kundeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToKundeResponse(k)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *KundeService) List(ctx context.Context, filter KundeListFilter) ([]KundeResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "firma"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Region != nil {
		domainFilter.Filters["region"] = *filter.Region
	}
	if filter.Aktiv != nil {
		domainFilter.Filters["aktiv"] = *filter.Aktiv
	}
	if filter.Genehmigt != nil {
		domainFilter.Filters["is_genehmigt"] = *filter.Genehmigt
	}

	kunden, err := s.kundeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.kundeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToKundeResponses(kunden), total, nil
}

// Update updates a customer
func (s *KundeService) Update(ctx context.Context, id uuid.UUID, req UpdateKundeRequest) (*KundeResponse, error) {
	k, err := s.kundeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	adresse := kunde.Adresse{Strasse: req.Adresse.Strasse, PLZ: req.Adresse.PLZ, Ort: req.Adresse.Ort}
	if err := k.Update(req.Firma, req.Ansprechpartner, adresse, req.Region, req.Telefon, req.Email, req.UstID, req.ZahlungszielTage); err != nil {
		return nil, err
	}

	if err := s.kundeRepo.Save(ctx, k); err != nil {
		return nil, err
	}

	response := ToKundeResponse(k)
	return &response, nil
}

// Genehmigen approves a customer for ordering
func (s *KundeService) Genehmigen(ctx context.Context, id uuid.UUID) (*KundeResponse, error) {
	k, err := s.kundeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	k.Genehmigen()

	if err := s.kundeRepo.Save(ctx, k); err != nil {
		return nil, err
	}

	response := ToKundeResponse(k)
	return &response, nil
}

// SetAktiv activates or deactivates a customer
func (s *KundeService) SetAktiv(ctx context.Context, id uuid.UUID, aktiv bool) (*KundeResponse, error) {
	k, err := s.kundeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if aktiv {
		k.Activate()
	} else {
		k.Deactivate()
	}

	if err := s.kundeRepo.Save(ctx, k); err != nil {
		return nil, err
	}

	response := ToKundeResponse(k)
	return &response, nil
}

// Delete removes a customer
func (s *KundeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.kundeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.kundeRepo.Delete(ctx, id)
}

// VerkaeuferService handles sales representative operations
type VerkaeuferService struct {
	verkaeuferRepo kunde.VerkaeuferRepository
}

// NewVerkaeuferService creates a new VerkaeuferService
func NewVerkaeuferService(verkaeuferRepo kunde.VerkaeuferRepository) *VerkaeuferService {
	return &VerkaeuferService{verkaeuferRepo: verkaeuferRepo}
}

// Create creates a new sales rep
func (s *VerkaeuferService) Create(ctx context.Context, req CreateVerkaeuferRequest) (*VerkaeuferResponse, error) {
	v, err := kunde.NewVerkaeufer(req.Name, req.Telefon)
	if err != nil {
		return nil, err
	}

	if err := s.verkaeuferRepo.Save(ctx, v); err != nil {
		return nil, err
	}

	response := ToVerkaeuferResponse(v)
	return &response, nil
}

// GetByID retrieves a sales rep by ID
func (s *VerkaeuferService) GetByID(ctx context.Context, id uuid.UUID) (*VerkaeuferResponse, error) {
	v, err := s.verkaeuferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToVerkaeuferResponse(v)
	return &response, nil
}

// List retrieves all sales reps
func (s *VerkaeuferService) List(ctx context.Context, filter shared.Filter) ([]VerkaeuferResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	verkaeufer, err := s.verkaeuferRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.verkaeuferRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToVerkaeuferResponses(verkaeufer), total, nil
}

// Update updates a sales rep
func (s *VerkaeuferService) Update(ctx context.Context, id uuid.UUID, req UpdateVerkaeuferRequest) (*VerkaeuferResponse, error) {
	v, err := s.verkaeuferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := v.Update(req.Name, req.Telefon); err != nil {
		return nil, err
	}

	if err := s.verkaeuferRepo.Save(ctx, v); err != nil {
		return nil, err
	}

	response := ToVerkaeuferResponse(v)
	return &response, nil
}

// Delete removes a sales rep
func (s *VerkaeuferService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.verkaeuferRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.verkaeuferRepo.Delete(ctx, id)
}
