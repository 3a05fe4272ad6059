package preis

import (
	"context"
	"time"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/kunde"
	"github.com/fleischhandel/backend/internal/domain/preis"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PreisService handles customer price overrides and price resolution
type PreisService struct {
	preisRepo   preis.Repository
	kundeRepo   kunde.Repository
	artikelRepo artikel.Repository
}

// NewPreisService creates a new PreisService
func NewPreisService(preisRepo preis.Repository, kundeRepo kunde.Repository, artikelRepo artikel.Repository) *PreisService {
	return &PreisService{
		preisRepo:   preisRepo,
		kundeRepo:   kundeRepo,
		artikelRepo: artikelRepo,
	}
}

// Set creates a price override for a customer and article. Overlapping
// windows are allowed; resolution picks the newest valid override.
func (s *PreisService) Set(ctx context.Context, kundeID uuid.UUID, req SetKundenPreisRequest) (*KundenPreisResponse, error) {
	if _, err := s.kundeRepo.FindByID(ctx, kundeID); err != nil {
		return nil, err
	}
	if _, err := s.artikelRepo.FindByID(ctx, req.ArtikelID); err != nil {
		return nil, err
	}

	p, err := preis.NewKundenPreis(
		kundeID,
		req.ArtikelID,
		valueobject.NewMoneyEUR(req.Preis),
		req.GueltigAb,
		req.GueltigBis,
	)
	if err != nil {
		return nil, err
	}

	if err := s.preisRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToKundenPreisResponse(p)
	return &response, nil
}

// ListByKunde retrieves all price overrides of a customer
func (s *PreisService) ListByKunde(ctx context.Context, kundeID uuid.UUID) ([]KundenPreisResponse, error) {
	if _, err := s.kundeRepo.FindByID(ctx, kundeID); err != nil {
		return nil, err
	}

	preise, err := s.preisRepo.FindByKunde(ctx, kundeID)
	if err != nil {
		return nil, err
	}
	return ToKundenPreisResponses(preise), nil
}

// Delete removes a price override
func (s *PreisService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.preisRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.preisRepo.Delete(ctx, id)
}

// ResolvePreis determines the effective per-kg price for a customer,
// article and date. Falls back to the article base price when no
// override is valid.
func (s *PreisService) ResolvePreis(ctx context.Context, kundeID, artikelID uuid.UUID, datum time.Time) (*EffektiverPreisResponse, error) {
	a, err := s.artikelRepo.FindByID(ctx, artikelID)
	if err != nil {
		return nil, err
	}
	if _, err := s.kundeRepo.FindByID(ctx, kundeID); err != nil {
		return nil, err
	}

	overrides, err := s.preisRepo.FindEffective(ctx, kundeID, artikelID, datum)
	if err != nil {
		return nil, err
	}

	response := EffektiverPreisResponse{
		KundeID:    kundeID,
		ArtikelID:  artikelID,
		Datum:      datum,
		PreisProKg: a.BasispreisProKg,
	}
	if winner := preis.Resolve(overrides, datum); winner != nil {
		response.PreisProKg = winner.Preis
		response.Kundenpreis = true
	}
	return &response, nil
}
