package artikel

import (
	"context"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ArtikelService handles article catalog operations
type ArtikelService struct {
	artikelRepo artikel.Repository
}

// NewArtikelService creates a new ArtikelService
func NewArtikelService(artikelRepo artikel.Repository) *ArtikelService {
	return &ArtikelService{artikelRepo: artikelRepo}
}

// Create creates a new article
func (s *ArtikelService) Create(ctx context.Context, req CreateArtikelRequest) (*ArtikelResponse, error) {
	exists, err := s.artikelRepo.ExistsByNummer(ctx, req.ArtikelNummer)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Artikelnummer is already in use")
	}

	a, err := artikel.NewArtikel(
		req.ArtikelNummer,
		req.Bezeichnung,
		artikel.Kategorie(req.Kategorie),
		artikel.Einheit(req.Einheit),
		valueobject.NewMoneyEUR(req.BasispreisProKg),
		req.GewichtProEinheit,
	)
	if err != nil {
		return nil, err
	}

	if err := s.artikelRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	response := ToArtikelResponse(a)
	return &response, nil
}

// GetByID retrieves an article by ID
func (s *ArtikelService) GetByID(ctx context.Context, id uuid.UUID) (*ArtikelResponse, error) {
	a, err := s.artikelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToArtikelResponse(a)
	return &response, nil
}

// List retrieves articles with filtering and pagination
func (s *ArtikelService) List(ctx context.Context, filter ArtikelListFilter) ([]ArtikelResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "artikel_nummer"
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
	if filter.Kategorie != nil {
		domainFilter.Filters["kategorie"] = *filter.Kategorie
	}
	if filter.Aktiv != nil {
		domainFilter.Filters["aktiv"] = *filter.Aktiv
	}

	artikelListe, err := s.artikelRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.artikelRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToArtikelResponses(artikelListe), total, nil
}

// Update updates an article
func (s *ArtikelService) Update(ctx context.Context, id uuid.UUID, req UpdateArtikelRequest) (*ArtikelResponse, error) {
	a, err := s.artikelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := a.Update(
		req.Bezeichnung,
		artikel.Kategorie(req.Kategorie),
		valueobject.NewMoneyEUR(req.BasispreisProKg),
		req.GewichtProEinheit,
	); err != nil {
		return nil, err
	}

	if err := s.artikelRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	response := ToArtikelResponse(a)
	return &response, nil
}

// SetAusverkauft flags or unflags an article as sold out
func (s *ArtikelService) SetAusverkauft(ctx context.Context, id uuid.UUID, ausverkauft bool) (*ArtikelResponse, error) {
	a, err := s.artikelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.SetAusverkauft(ausverkauft)

	if err := s.artikelRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	response := ToArtikelResponse(a)
	return &response, nil
}

// SetAktiv activates or deactivates an article
func (s *ArtikelService) SetAktiv(ctx context.Context, id uuid.UUID, aktiv bool) (*ArtikelResponse, error) {
	a, err := s.artikelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if aktiv {
		a.Activate()
	} else {
		a.Deactivate()
	}

	if err := s.artikelRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	response := ToArtikelResponse(a)
	return &response, nil
}

// Delete removes an article from the catalog
func (s *ArtikelService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.artikelRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.artikelRepo.Delete(ctx, id)
}
