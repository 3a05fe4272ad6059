package zerlegung

import (
	"context"
	"fmt"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/bestand"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/zerlegung"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ZerlegungService handles cutting orders. Completing an order books the
// stock movements: one ausgang for the source article and one eingang
// per produced cut, all in one transaction.
type ZerlegungService struct {
	zerlegungRepo zerlegung.Repository
	artikelRepo   artikel.Repository
	logger        *zap.Logger
}

// NewZerlegungService creates a new ZerlegungService
func NewZerlegungService(
	zerlegungRepo zerlegung.Repository,
	artikelRepo artikel.Repository,
	logger *zap.Logger,
) *ZerlegungService {
	return &ZerlegungService{
		zerlegungRepo: zerlegungRepo,
		artikelRepo:   artikelRepo,
		logger:        logger,
	}
}

// Create creates a cutting order for a source article
func (s *ZerlegungService) Create(ctx context.Context, req CreateZerlegeauftragRequest) (*ZerlegeauftragResponse, error) {
	art, err := s.artikelRepo.FindByID(ctx, req.ArtikelID)
	if err != nil {
		return nil, err
	}

	z, err := zerlegung.NewZerlegeauftrag(req.Datum, art.ID, art.Bezeichnung, req.Menge)
	if err != nil {
		return nil, err
	}

	if err := s.zerlegungRepo.Save(ctx, z); err != nil {
		return nil, err
	}

	response := ToZerlegeauftragResponse(z)
	return &response, nil
}

// GetByID retrieves a cutting order
func (s *ZerlegungService) GetByID(ctx context.Context, id uuid.UUID) (*ZerlegeauftragResponse, error) {
	z, err := s.zerlegungRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToZerlegeauftragResponse(z)
	return &response, nil
}

// List retrieves cutting orders with filtering and pagination
func (s *ZerlegungService) List(ctx context.Context, filter ZerlegeauftragListFilter) ([]ZerlegeauftragResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "datum"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Datum != nil {
		domainFilter.Filters["datum"] = *filter.Datum
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}

	auftraege, err := s.zerlegungRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.zerlegungRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToZerlegeauftragResponses(auftraege), total, nil
}

// Start assigns the cutter and transitions the order to in_arbeit
func (s *ZerlegungService) Start(ctx context.Context, id, zerlegerID uuid.UUID) (*ZerlegeauftragResponse, error) {
	z, err := s.zerlegungRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := z.Start(zerlegerID); err != nil {
		return nil, err
	}

	if err := s.zerlegungRepo.Save(ctx, z); err != nil {
		return nil, err
	}

	response := ToZerlegeauftragResponse(z)
	return &response, nil
}

// AddTeil records one produced cut
func (s *ZerlegungService) AddTeil(ctx context.Context, id uuid.UUID, req AddTeilRequest) (*ZerlegeauftragResponse, error) {
	z, err := s.zerlegungRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	art, err := s.artikelRepo.FindByID(ctx, req.ArtikelID)
	if err != nil {
		return nil, err
	}

	if _, err := z.AddTeil(art.ID, art.Bezeichnung, req.Menge); err != nil {
		return nil, err
	}

	if err := s.zerlegungRepo.Save(ctx, z); err != nil {
		return nil, err
	}

	response := ToZerlegeauftragResponse(z)
	return &response, nil
}

// RemoveTeil removes a recorded cut
func (s *ZerlegungService) RemoveTeil(ctx context.Context, id, teilID uuid.UUID) (*ZerlegeauftragResponse, error) {
	z, err := s.zerlegungRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := z.RemoveTeil(teilID); err != nil {
		return nil, err
	}

	if err := s.zerlegungRepo.Save(ctx, z); err != nil {
		return nil, err
	}

	response := ToZerlegeauftragResponse(z)
	return &response, nil
}

// Complete finishes the cutting order and books the stock movements
func (s *ZerlegungService) Complete(ctx context.Context, id, mitarbeiterID uuid.UUID) (*ZerlegeauftragResponse, error) {
	z, err := s.zerlegungRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := z.Complete(); err != nil {
		return nil, err
	}

	bewegungen, err := s.buildBewegungen(z, mitarbeiterID)
	if err != nil {
		return nil, err
	}

	if err := s.zerlegungRepo.SaveMitBewegungen(ctx, z, bewegungen); err != nil {
		return nil, err
	}

	s.logger.Info("Zerlegung completed",
		zap.String("zerlegeauftrag_id", z.ID.String()),
		zap.String("artikel_id", z.ArtikelID.String()),
		zap.Int("teile", len(z.Teile)),
		zap.String("gesamtmenge_teile", z.GesamtmengeTeile().String()))

	response := ToZerlegeauftragResponse(z)
	return &response, nil
}

// buildBewegungen creates the movement set for a completed cutting order:
// the source quantity leaves stock, every cut enters it. The difference
// between source weight and cut weights is the cutting loss and stays
// visible in the stock history.
func (s *ZerlegungService) buildBewegungen(z *zerlegung.Zerlegeauftrag, mitarbeiterID uuid.UUID) ([]*bestand.Bewegung, error) {
	referenz := fmt.Sprintf("zerlegung:%s", z.ID)

	bewegungen := make([]*bestand.Bewegung, 0, len(z.Teile)+1)
	ausgang, err := bestand.NewBewegung(z.ArtikelID, nil, bestand.BewegungAusgang, z.Menge, referenz, "", mitarbeiterID)
	if err != nil {
		return nil, err
	}
	bewegungen = append(bewegungen, ausgang)

	for _, teil := range z.Teile {
		eingang, err := bestand.NewBewegung(teil.ArtikelID, nil, bestand.BewegungEingang, teil.Menge, referenz, "", mitarbeiterID)
		if err != nil {
			return nil, err
		}
		bewegungen = append(bewegungen, eingang)
	}
	return bewegungen, nil
}

// Delete removes a cutting order that has not been started
func (s *ZerlegungService) Delete(ctx context.Context, id uuid.UUID) error {
	z, err := s.zerlegungRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !z.KannGeloeschtWerden() {
		return shared.NewDomainError("INVALID_STATE", "Only offene Zerlegeauftraege can be deleted")
	}
	return s.zerlegungRepo.Delete(ctx, id)
}
