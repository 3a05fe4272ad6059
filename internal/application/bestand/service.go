package bestand

import (
	"context"
	"time"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/bestand"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BestandService books stock movements and computes stock overviews.
// Stock is never stored, only derived from the append-only movement log.
type BestandService struct {
	chargeRepo      bestand.ChargeRepository
	bewegungRepo    bestand.BewegungRepository
	artikelRepo     artikel.Repository
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewBestandService creates a new BestandService
func NewBestandService(
	chargeRepo bestand.ChargeRepository,
	bewegungRepo bestand.BewegungRepository,
	artikelRepo artikel.Repository,
	logger *zap.Logger,
) *BestandService {
	return &BestandService{
		chargeRepo:   chargeRepo,
		bewegungRepo: bewegungRepo,
		artikelRepo:  artikelRepo,
		logger:       logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *BestandService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// BucheEingang books a goods receipt: a new batch plus its movement
func (s *BestandService) BucheEingang(ctx context.Context, mitarbeiterID uuid.UUID, req BucheEingangRequest) (*BewegungResponse, error) {
	if _, err := s.artikelRepo.FindByID(ctx, req.ArtikelID); err != nil {
		return nil, err
	}

	charge, err := bestand.NewCharge(req.ArtikelID, req.Menge, req.MHD, req.Lieferant, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.chargeRepo.Save(ctx, charge); err != nil {
		return nil, err
	}

	b, err := bestand.NewBewegung(req.ArtikelID, &charge.ID, bestand.BewegungEingang, req.Menge, req.Referenz, "", mitarbeiterID)
	if err != nil {
		return nil, err
	}
	if err := s.bewegungRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("Eingang gebucht",
		zap.String("artikel_id", req.ArtikelID.String()),
		zap.String("charge_id", charge.ID.String()),
		zap.String("menge", req.Menge.String()))

	response := ToBewegungResponse(b)
	return &response, nil
}

// BucheAusgang books a stock issue. Stock may not go negative.
func (s *BestandService) BucheAusgang(ctx context.Context, mitarbeiterID uuid.UUID, req BucheAusgangRequest) (*BewegungResponse, error) {
	if _, err := s.artikelRepo.FindByID(ctx, req.ArtikelID); err != nil {
		return nil, err
	}

	b, err := bestand.NewBewegung(req.ArtikelID, req.ChargeID, bestand.BewegungAusgang, req.Menge, req.Referenz, "", mitarbeiterID)
	if err != nil {
		return nil, err
	}

	if err := s.checkDeckung(ctx, req.ArtikelID, b); err != nil {
		return nil, err
	}

	if err := s.bewegungRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	response := ToBewegungResponse(b)
	return &response, nil
}

// BucheKorrektur books a signed adjustment (inventory count differences)
func (s *BestandService) BucheKorrektur(ctx context.Context, mitarbeiterID uuid.UUID, req BucheKorrekturRequest) (*BewegungResponse, error) {
	if _, err := s.artikelRepo.FindByID(ctx, req.ArtikelID); err != nil {
		return nil, err
	}

	b, err := bestand.NewBewegung(req.ArtikelID, nil, bestand.BewegungKorrektur, req.Menge, "", req.Grund, mitarbeiterID)
	if err != nil {
		return nil, err
	}

	if b.Menge.IsNegative() {
		if err := s.checkDeckung(ctx, req.ArtikelID, b); err != nil {
			return nil, err
		}
	}

	if err := s.bewegungRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	response := ToBewegungResponse(b)
	return &response, nil
}

// BucheMuell books waste disposal with a mandatory reason
func (s *BestandService) BucheMuell(ctx context.Context, mitarbeiterID uuid.UUID, req BucheMuellRequest) (*BewegungResponse, error) {
	if _, err := s.artikelRepo.FindByID(ctx, req.ArtikelID); err != nil {
		return nil, err
	}

	b, err := bestand.NewBewegung(req.ArtikelID, req.ChargeID, bestand.BewegungMuell, req.Menge, "", req.Grund, mitarbeiterID)
	if err != nil {
		return nil, err
	}

	if err := s.checkDeckung(ctx, req.ArtikelID, b); err != nil {
		return nil, err
	}

	if err := s.bewegungRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordMuell(ctx, req.ArtikelID, req.Menge)
	}

	s.logger.Info("Muell gebucht",
		zap.String("artikel_id", req.ArtikelID.String()),
		zap.String("menge", req.Menge.String()),
		zap.String("grund", req.Grund))

	response := ToBewegungResponse(b)
	return &response, nil
}

// checkDeckung rejects a movement that would push stock below zero
func (s *BestandService) checkDeckung(ctx context.Context, artikelID uuid.UUID, b *bestand.Bewegung) error {
	uebersicht, err := s.bewegungRepo.SumByArtikel(ctx, artikelID)
	if err != nil {
		return err
	}
	if uebersicht.Verfuegbar.Add(b.Wirkung()).IsNegative() {
		return shared.NewDomainError("BESTAND_UNZUREICHEND", "Bestand would become negative")
	}
	return nil
}

// Uebersicht returns the computed stock of one article
func (s *BestandService) Uebersicht(ctx context.Context, artikelID uuid.UUID) (*bestand.Bestandsuebersicht, error) {
	if _, err := s.artikelRepo.FindByID(ctx, artikelID); err != nil {
		return nil, err
	}
	u, err := s.bewegungRepo.SumByArtikel(ctx, artikelID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UebersichtAlle returns stock overviews for every article with movements
func (s *BestandService) UebersichtAlle(ctx context.Context) ([]bestand.Bestandsuebersicht, error) {
	return s.bewegungRepo.SumAll(ctx)
}

// ListBewegungen retrieves movements with filtering and pagination
func (s *BestandService) ListBewegungen(ctx context.Context, filter BewegungListFilter) ([]BewegungResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
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
	if filter.ArtikelID != nil {
		domainFilter.Filters["artikel_id"] = *filter.ArtikelID
	}
	if filter.Typ != nil {
		domainFilter.Filters["typ"] = *filter.Typ
	}

	bewegungen, err := s.bewegungRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.bewegungRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBewegungResponses(bewegungen), total, nil
}

// ListChargen retrieves the batches of one article
func (s *BestandService) ListChargen(ctx context.Context, artikelID uuid.UUID, filter shared.Filter) ([]ChargeResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "eingangs_datum"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	chargen, err := s.chargeRepo.FindByArtikel(ctx, artikelID, filter)
	if err != nil {
		return nil, err
	}
	return ToChargeResponses(chargen), nil
}
