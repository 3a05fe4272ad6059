package tour

import (
	"context"
	"errors"
	"time"

	"github.com/fleischhandel/backend/internal/domain/auftrag"
	"github.com/fleischhandel/backend/internal/domain/kunde"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/tour"
	"github.com/fleischhandel/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TourSyncHandler keeps tour stops in sync with the order lifecycle.
// It subscribes to the order events and assigns, reweighs, moves or
// removes stops accordingly.
type TourSyncHandler struct {
	tourRepo    tour.Repository
	vorlageRepo tour.VorlageRepository
	kundeRepo   kunde.Repository
	cfg         config.TourConfig
	logger      *zap.Logger
}

// NewTourSyncHandler creates a new TourSyncHandler
func NewTourSyncHandler(
	tourRepo tour.Repository,
	vorlageRepo tour.VorlageRepository,
	kundeRepo kunde.Repository,
	cfg config.TourConfig,
	logger *zap.Logger,
) *TourSyncHandler {
	return &TourSyncHandler{
		tourRepo:    tourRepo,
		vorlageRepo: vorlageRepo,
		kundeRepo:   kundeRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// EventTypes returns the order events this handler reacts to
func (h *TourSyncHandler) EventTypes() []string {
	return []string{
		auftrag.EventTypeAuftragErstellt,
		auftrag.EventTypeAuftragGewichtGeaendert,
		auftrag.EventTypeAuftragLieferdatumGeaendert,
		auftrag.EventTypeAuftragStorniert,
		auftrag.EventTypeAuftragGeloescht,
	}
}

// Handle dispatches an order event to the matching sync operation
func (h *TourSyncHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *auftrag.AuftragErstelltEvent:
		return h.assignStop(ctx, e.AuftragID, e.KundeID, e.Region, e.Lieferdatum, e.Gesamtgewicht)
	case *auftrag.AuftragGewichtGeaendertEvent:
		return h.updateStopGewicht(ctx, e.AuftragID, e.Lieferdatum, e.Gesamtgewicht)
	case *auftrag.AuftragLieferdatumGeaendertEvent:
		return h.moveStopToDatum(ctx, e)
	case *auftrag.AuftragStorniertEvent:
		return h.removeStop(ctx, e.AuftragID, e.Lieferdatum)
	case *auftrag.AuftragGeloeschtEvent:
		return h.removeStop(ctx, e.AuftragID, e.Lieferdatum)
	default:
		return nil
	}
}

// assignStop places an order on the first open tour of its date and
// region that has capacity left; when every tour is full, an overflow
// tour with the next Laufnummer is created.
func (h *TourSyncHandler) assignStop(ctx context.Context, auftragID, kundeID uuid.UUID, region string, datum time.Time, gewicht decimal.Decimal) error {
	kundeFirma, err := h.kundeFirma(ctx, kundeID)
	if err != nil {
		return err
	}
	rank := h.rankFunc(ctx, region)

	touren, err := h.tourRepo.FindByDatumRegion(ctx, datum, region)
	if err != nil {
		return err
	}

	for i := range touren {
		t := &touren[i]
		if !t.IsOffen() {
			continue
		}
		if _, err := t.AddStop(auftragID, kundeID, kundeFirma, gewicht, rank); err != nil {
			if errors.Is(err, shared.ErrCapacityExceeded) {
				continue
			}
			return err
		}
		h.logger.Info("Stop assigned",
			zap.String("auftrag_id", auftragID.String()),
			zap.String("tour_id", t.ID.String()),
			zap.Int("laufnummer", t.Laufnummer))
		return h.tourRepo.Save(ctx, t)
	}

	return h.assignToOverflow(ctx, auftragID, kundeID, kundeFirma, region, datum, gewicht, rank)
}

// assignToOverflow creates a fresh tour and places the stop on it
func (h *TourSyncHandler) assignToOverflow(ctx context.Context, auftragID, kundeID uuid.UUID, kundeFirma, region string, datum time.Time, gewicht decimal.Decimal, rank func(uuid.UUID) int) error {
	laufnummer, err := h.tourRepo.NextLaufnummer(ctx, datum, region)
	if err != nil {
		return err
	}

	t, err := tour.NewTour(datum, region, decimal.NewFromFloat(h.cfg.DefaultMaxGewichtKg), laufnummer)
	if err != nil {
		return err
	}
	if _, err := t.AddStop(auftragID, kundeID, kundeFirma, gewicht, rank); err != nil {
		// a single order heavier than a whole tour still gets its own tour
		if !errors.Is(err, shared.ErrCapacityExceeded) {
			return err
		}
		if err := t.SetMaxGewicht(gewicht); err != nil {
			return err
		}
		if _, err := t.AddStop(auftragID, kundeID, kundeFirma, gewicht, rank); err != nil {
			return err
		}
	}

	h.logger.Info("Overflow tour created",
		zap.String("auftrag_id", auftragID.String()),
		zap.String("region", region),
		zap.Int("laufnummer", laufnummer))

	return h.tourRepo.Save(ctx, t)
}

// updateStopGewicht applies the new order weight to its stop. When the
// tour overflows, the stop moves to a sibling tour.
func (h *TourSyncHandler) updateStopGewicht(ctx context.Context, auftragID uuid.UUID, datum time.Time, gewicht decimal.Decimal) error {
	t, err := h.tourRepo.FindByAuftrag(ctx, auftragID, datum)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// order was never assigned (tour closed meanwhile); nothing to sync
			return nil
		}
		return err
	}
	if !t.IsOffen() {
		return nil
	}

	err = t.UpdateStopGewicht(auftragID, gewicht)
	if err == nil {
		return h.tourRepo.Save(ctx, t)
	}
	if !errors.Is(err, shared.ErrCapacityExceeded) {
		return err
	}

	// the weight no longer fits: take the stop off and reassign it
	stop, rerr := t.RemoveStopByAuftrag(auftragID)
	if rerr != nil {
		return rerr
	}
	if err := h.tourRepo.Save(ctx, t); err != nil {
		return err
	}

	h.logger.Info("Stop overflowed after weight change",
		zap.String("auftrag_id", auftragID.String()),
		zap.String("tour_id", t.ID.String()))

	return h.assignStop(ctx, auftragID, stop.KundeID, t.Region, datum, gewicht)
}

// moveStopToDatum removes the stop from the old date's tour and assigns
// the order on the new date
func (h *TourSyncHandler) moveStopToDatum(ctx context.Context, e *auftrag.AuftragLieferdatumGeaendertEvent) error {
	if err := h.removeStop(ctx, e.AuftragID, e.AltesLieferdatum); err != nil {
		return err
	}
	return h.assignStop(ctx, e.AuftragID, e.KundeID, e.Region, e.Lieferdatum, e.Gesamtgewicht)
}

// removeStop drops the order's stop from whatever tour carries it on the
// given date. Closed tours keep their stops for the delivery record.
func (h *TourSyncHandler) removeStop(ctx context.Context, auftragID uuid.UUID, datum time.Time) error {
	t, err := h.tourRepo.FindByAuftrag(ctx, auftragID, datum)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if !t.IsOffen() {
		return nil
	}

	if _, err := t.RemoveStopByAuftrag(auftragID); err != nil {
		return err
	}

	h.logger.Info("Stop removed",
		zap.String("auftrag_id", auftragID.String()),
		zap.String("tour_id", t.ID.String()))

	return h.tourRepo.Save(ctx, t)
}

// kundeFirma resolves the customer name stamped onto the stop
func (h *TourSyncHandler) kundeFirma(ctx context.Context, kundeID uuid.UUID) (string, error) {
	k, err := h.kundeRepo.FindByID(ctx, kundeID)
	if err != nil {
		return "", err
	}
	return k.Firma, nil
}

// rankFunc builds the template rank lookup for a region. Without a
// template every customer ranks equal and keeps insertion order.
func (h *TourSyncHandler) rankFunc(ctx context.Context, region string) func(uuid.UUID) int {
	vorlage, err := h.vorlageRepo.FindByRegion(ctx, region)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("Failed to load ReihenfolgeVorlage", zap.String("region", region), zap.Error(err))
		}
		return func(uuid.UUID) int { return tour.RankUnbekannt }
	}
	return vorlage.Rank
}

var _ shared.EventHandler = (*TourSyncHandler)(nil)
