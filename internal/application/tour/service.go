package tour

import (
	"context"
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/tour"
	"github.com/fleischhandel/backend/internal/infrastructure/config"
	"github.com/fleischhandel/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TourService handles delivery tour planning
type TourService struct {
	tourRepo        tour.Repository
	cfg             config.TourConfig
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewTourService creates a new TourService
func NewTourService(tourRepo tour.Repository, cfg config.TourConfig, logger *zap.Logger) *TourService {
	return &TourService{
		tourRepo: tourRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *TourService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create creates an empty tour for a date and region
func (s *TourService) Create(ctx context.Context, req CreateTourRequest) (*TourResponse, error) {
	maxGewicht := decimal.NewFromFloat(s.cfg.DefaultMaxGewichtKg)
	if req.MaxGewicht != nil {
		maxGewicht = *req.MaxGewicht
	}

	laufnummer, err := s.tourRepo.NextLaufnummer(ctx, req.Datum, req.Region)
	if err != nil {
		return nil, err
	}

	t, err := tour.NewTour(req.Datum, req.Region, maxGewicht, laufnummer)
	if err != nil {
		return nil, err
	}
	if req.Fahrzeug != "" {
		t.SetFahrzeug(req.Fahrzeug)
	}
	if req.FahrerID != nil {
		t.SetFahrer(req.FahrerID)
	}

	if err := s.tourRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordTourPlanned(ctx, t.Region)
	}

	s.logger.Info("Tour created",
		zap.String("tour_id", t.ID.String()),
		zap.String("region", t.Region),
		zap.Int("laufnummer", t.Laufnummer))

	response := ToTourResponse(t)
	return &response, nil
}

// GetByID retrieves a tour with its stops
func (s *TourService) GetByID(ctx context.Context, id uuid.UUID) (*TourResponse, error) {
	t, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTourResponse(t)
	return &response, nil
}

// List retrieves tours with filtering and pagination
func (s *TourService) List(ctx context.Context, filter TourListFilter) ([]TourResponse, int64, error) {
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
	if filter.Region != nil {
		domainFilter.Filters["region"] = *filter.Region
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.FahrerID != nil {
		domainFilter.Filters["fahrer_id"] = *filter.FahrerID
	}

	touren, err := s.tourRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tourRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTourResponses(touren), total, nil
}

// Update changes vehicle, driver or capacity
func (s *TourService) Update(ctx context.Context, id uuid.UUID, req UpdateTourRequest) (*TourResponse, error) {
	t, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Fahrzeug != nil {
		t.SetFahrzeug(*req.Fahrzeug)
	}
	if req.FahrerID != nil {
		t.SetFahrer(req.FahrerID)
	}
	if req.MaxGewicht != nil {
		if err := t.SetMaxGewicht(*req.MaxGewicht); err != nil {
			return nil, err
		}
	}

	if err := s.tourRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTourResponse(t)
	return &response, nil
}

// SetStatus transitions the tour lifecycle
func (s *TourService) SetStatus(ctx context.Context, id uuid.UUID, req SetTourStatusRequest) (*TourResponse, error) {
	t, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := t.SetStatus(tour.TourStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.tourRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTourResponse(t)
	return &response, nil
}

// Delete removes an empty tour. Tours carrying stops cannot be deleted.
func (s *TourService) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !t.IsEmpty() {
		return shared.NewDomainError("TOUR_NICHT_LEER", "Tour still carries stops")
	}
	return s.tourRepo.Delete(ctx, id)
}

// ReorderStops applies a full permutation of the tour's stop IDs
func (s *TourService) ReorderStops(ctx context.Context, id uuid.UUID, req ReorderStopsRequest) (*TourResponse, error) {
	t, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsOffen() {
		return nil, shared.NewDomainError("INVALID_STATE", "Tour is not geplant")
	}

	if err := t.Reorder(req.StopIDs); err != nil {
		return nil, err
	}

	if err := s.tourRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTourResponse(t)
	return &response, nil
}

// MoveStop moves a stop to another tour of the same date. Both tours are
// saved in one transaction.
func (s *TourService) MoveStop(ctx context.Context, tourID, stopID uuid.UUID, req MoveStopRequest) (*TourResponse, error) {
	if tourID == req.ZielTourID {
		return nil, shared.NewDomainError("INVALID_ZIEL", "Ziel tour must differ from source tour")
	}

	quelle, err := s.tourRepo.FindByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	ziel, err := s.tourRepo.FindByID(ctx, req.ZielTourID)
	if err != nil {
		return nil, err
	}

	if !quelle.Datum.Equal(ziel.Datum) {
		return nil, shared.NewDomainError("DATUM_MISMATCH", "Stops can only move between tours of the same Datum")
	}
	if !quelle.IsOffen() || !ziel.IsOffen() {
		return nil, shared.NewDomainError("INVALID_STATE", "Both tours must be geplant")
	}

	stop, err := quelle.RemoveStop(stopID)
	if err != nil {
		return nil, err
	}

	index := req.Position
	if index < 0 || index > len(ziel.Stops) {
		index = len(ziel.Stops)
	}
	if err := ziel.InsertStopAt(*stop, index); err != nil {
		return nil, err
	}

	if err := s.tourRepo.SaveAll(ctx, []*tour.Tour{quelle, ziel}); err != nil {
		return nil, err
	}

	s.logger.Info("Stop moved",
		zap.String("stop_id", stopID.String()),
		zap.String("von_tour", quelle.ID.String()),
		zap.String("nach_tour", ziel.ID.String()))

	response := ToTourResponse(ziel)
	return &response, nil
}

// ListByDatum returns the tours of a delivery date, optionally narrowed
// to a region, ordered by Laufnummer
func (s *TourService) ListByDatum(ctx context.Context, datum time.Time, region string) ([]TourResponse, error) {
	touren, err := s.tourRepo.FindByDatumRegion(ctx, datum, region)
	if err != nil {
		return nil, err
	}
	return ToTourResponses(touren), nil
}
