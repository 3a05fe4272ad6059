package auftrag

import (
	"context"
	"errors"
	"time"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/auftrag"
	"github.com/fleischhandel/backend/internal/domain/kunde"
	"github.com/fleischhandel/backend/internal/domain/preis"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/fleischhandel/backend/internal/domain/tour"
	"github.com/fleischhandel/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuftragService handles the order lifecycle. Tour synchronization runs
// through domain events, not direct calls into the tour context.
type AuftragService struct {
	auftragRepo     auftrag.Repository
	kundeRepo       kunde.Repository
	artikelRepo     artikel.Repository
	preisRepo       preis.Repository
	regionRuleRepo  tour.RegionRuleRepository
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewAuftragService creates a new AuftragService
func NewAuftragService(
	auftragRepo auftrag.Repository,
	kundeRepo kunde.Repository,
	artikelRepo artikel.Repository,
	preisRepo preis.Repository,
	regionRuleRepo tour.RegionRuleRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *AuftragService {
	return &AuftragService{
		auftragRepo:    auftragRepo,
		kundeRepo:      kundeRepo,
		artikelRepo:    artikelRepo,
		preisRepo:      preisRepo,
		regionRuleRepo: regionRuleRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *AuftragService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create creates a new order with its initial positions
func (s *AuftragService) Create(ctx context.Context, req CreateAuftragRequest) (*AuftragResponse, error) {
	k, err := s.kundeRepo.FindByID(ctx, req.KundeID)
	if err != nil {
		return nil, err
	}
	if !k.KannBestellen() {
		return nil, shared.NewDomainError("KUNDE_GESPERRT", "Kunde is not approved for ordering")
	}

	if err := s.checkLiefertag(ctx, k.Region, req.Lieferdatum); err != nil {
		return nil, err
	}

	nummer, err := s.auftragRepo.GenerateAuftragsnummer(ctx)
	if err != nil {
		return nil, err
	}

	a, err := auftrag.NewAuftrag(nummer, k.ID, k.Firma, k.Region, req.Lieferdatum)
	if err != nil {
		return nil, err
	}
	if req.Bemerkung != "" {
		a.SetBemerkung(req.Bemerkung)
	}

	for _, input := range req.Positionen {
		if err := s.addPosition(ctx, a, input.ArtikelID, input); err != nil {
			return nil, err
		}
	}

	if err := s.auftragRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, a)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordAuftragWithGewicht(ctx, a.Region, a.Gesamtgewicht)
	}

	s.logger.Info("Auftrag created",
		zap.String("auftragsnummer", a.Auftragsnummer),
		zap.String("kunde_id", k.ID.String()),
		zap.String("region", a.Region))

	response := ToAuftragResponse(a)
	return &response, nil
}

// addPosition resolves the price and attaches a new line item
func (s *AuftragService) addPosition(ctx context.Context, a *auftrag.Auftrag, artikelID uuid.UUID, input CreatePositionInput) error {
	art, err := s.artikelRepo.FindByID(ctx, artikelID)
	if err != nil {
		return err
	}
	if !art.Aktiv {
		return shared.NewDomainError("ARTIKEL_INAKTIV", "Artikel is not active")
	}
	if art.Ausverkauft {
		return shared.NewDomainError("ARTIKEL_AUSVERKAUFT", "Artikel is sold out")
	}

	einzelpreis, err := s.resolvePreis(ctx, a, art)
	if err != nil {
		return err
	}

	pos, err := a.AddPosition(art.ID, art.ArtikelNummer, art.Bezeichnung, art.Einheit, input.Menge, art.GewichtProEinheit, einzelpreis)
	if err != nil {
		return err
	}
	if input.Bemerkung != "" {
		if p := a.GetPosition(pos.ID); p != nil {
			p.SetBemerkung(input.Bemerkung)
		}
	}
	return nil
}

// resolvePreis picks the customer override valid on the delivery date,
// falling back to the article base price
func (s *AuftragService) resolvePreis(ctx context.Context, a *auftrag.Auftrag, art *artikel.Artikel) (valueobject.Money, error) {
	overrides, err := s.preisRepo.FindEffective(ctx, a.KundeID, art.ID, a.Lieferdatum)
	if err != nil {
		return valueobject.Money{}, err
	}
	if winner := preis.Resolve(overrides, a.Lieferdatum); winner != nil {
		return valueobject.NewMoneyEUR(winner.Preis), nil
	}
	return valueobject.NewMoneyEUR(art.BasispreisProKg), nil
}

// checkLiefertag validates the delivery date against the region rule.
// Regions without a rule are deliverable on every day.
func (s *AuftragService) checkLiefertag(ctx context.Context, region string, datum time.Time) error {
	rule, err := s.regionRuleRepo.FindByRegion(ctx, region)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if !rule.ErlaubtAm(datum) {
		return shared.ErrNotDeliverable
	}
	return nil
}

// publishEvents flushes the aggregate's pending domain events
func (s *AuftragService) publishEvents(ctx context.Context, a *auftrag.Auftrag) {
	if s.eventPublisher == nil {
		a.ClearDomainEvents()
		return
	}
	if err := s.eventPublisher.Publish(ctx, a.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish Auftrag events",
			zap.String("auftrag_id", a.ID.String()),
			zap.Error(err))
	}
	a.ClearDomainEvents()
}

// GetByID retrieves an order by ID
func (s *AuftragService) GetByID(ctx context.Context, id uuid.UUID) (*AuftragResponse, error) {
	a, err := s.auftragRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAuftragResponse(a)
	return &response, nil
}

// Update changes header fields of an open order
func (s *AuftragService) Update(ctx context.Context, id uuid.UUID, req UpdateAuftragRequest) (*AuftragResponse, error) {
	return s.mutate(ctx, id, func(a *auftrag.Auftrag) error {
		if !a.KannBearbeitetWerden() {
			return shared.NewDomainError("INVALID_STATE", "Auftrag is not editable")
		}
		if req.Bemerkung != nil {
			a.SetBemerkung(*req.Bemerkung)
		}
		return nil
	})
}

// List retrieves orders with filtering and pagination
func (s *AuftragService) List(ctx context.Context, filter AuftragListFilter) ([]AuftragResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "lieferdatum"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.KundeID != nil {
		domainFilter.Filters["kunde_id"] = *filter.KundeID
	}
	if filter.Region != nil {
		domainFilter.Filters["region"] = *filter.Region
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.Kommissioniert != nil {
		domainFilter.Filters["kommissioniert"] = *filter.Kommissioniert
	}
	if filter.Kontrolliert != nil {
		domainFilter.Filters["kontrolliert"] = *filter.Kontrolliert
	}
	if filter.Lieferdatum != nil {
		domainFilter.Filters["lieferdatum"] = *filter.Lieferdatum
	}

	auftraege, err := s.auftragRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.auftragRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToAuftragResponses(auftraege), total, nil
}

// AddPosition adds a line item to an existing order
func (s *AuftragService) AddPosition(ctx context.Context, id uuid.UUID, req AddPositionRequest) (*AuftragResponse, error) {
	a, err := s.auftragRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input := CreatePositionInput{ArtikelID: req.ArtikelID, Menge: req.Menge, Bemerkung: req.Bemerkung}
	if err := s.addPosition(ctx, a, req.ArtikelID, input); err != nil {
		return nil, err
	}

	if err := s.auftragRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, a)

	response := ToAuftragResponse(a)
	return &response, nil
}

// UpdatePosition changes the quantity of a line item
func (s *AuftragService) UpdatePosition(ctx context.Context, id, positionID uuid.UUID, req UpdatePositionRequest) (*AuftragResponse, error) {
	a, err := s.auftragRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pos := a.GetPosition(positionID)
	if pos == nil {
		return nil, shared.NewDomainError("POSITION_NOT_FOUND", "Position not found")
	}
	art, err := s.artikelRepo.FindByID(ctx, pos.ArtikelID)
	if err != nil {
		return nil, err
	}

	if err := a.UpdatePositionMenge(positionID, req.Menge, art.GewichtProEinheit); err != nil {
		return nil, err
	}

	if err := s.auftragRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, a)

	response := ToAuftragResponse(a)
	return &response, nil
}

// RemovePosition removes a line item
func (s *AuftragService) RemovePosition(ctx context.Context, id, positionID uuid.UUID) (*AuftragResponse, error) {
	a, err := s.auftragRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := a.RemovePosition(positionID); err != nil {
		return nil, err
	}

	if err := s.auftragRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, a)

	response := ToAuftragResponse(a)
	return &response, nil
}

// SetLieferdatum moves the order to another delivery date
func (s *AuftragService) SetLieferdatum(ctx context.Context, id uuid.UUID, req SetLieferdatumRequest) (*AuftragResponse, error) {
	a, err := s.auftragRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkLiefertag(ctx, a.Region, req.Lieferdatum); err != nil {
		return nil, err
	}

	if err := a.SetLieferdatum(req.Lieferdatum); err != nil {
		return nil, err
	}

	if err := s.auftragRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, a)

	response := ToAuftragResponse(a)
	return &response, nil
}

// StartKommissionierung begins picking
func (s *AuftragService) StartKommissionierung(ctx context.Context, id uuid.UUID) (*AuftragResponse, error) {
	return s.mutate(ctx, id, func(a *auftrag.Auftrag) error {
		return a.StartKommissionierung()
	})
}

// KommissionierePosition records the scale weight for one position
func (s *AuftragService) KommissionierePosition(ctx context.Context, id, positionID uuid.UUID, req KommissionierePositionRequest) (*AuftragResponse, error) {
	return s.mutate(ctx, id, func(a *auftrag.Auftrag) error {
		return a.KommissionierePosition(positionID, req.IstGewicht)
	})
}

// FinishKommissionierung completes picking, stamping the caller
func (s *AuftragService) FinishKommissionierung(ctx context.Context, id, mitarbeiterID uuid.UUID) (*AuftragResponse, error) {
	return s.mutate(ctx, id, func(a *auftrag.Auftrag) error {
		return a.FinishKommissionierung(mitarbeiterID)
	})
}

// StartKontrolle begins quality control
func (s *AuftragService) StartKontrolle(ctx context.Context, id uuid.UUID) (*AuftragResponse, error) {
	return s.mutate(ctx, id, func(a *auftrag.Auftrag) error {
		return a.StartKontrolle()
	})
}

// FinishKontrolle completes quality control, stamping the caller
func (s *AuftragService) FinishKontrolle(ctx context.Context, id, mitarbeiterID uuid.UUID) (*AuftragResponse, error) {
	return s.mutate(ctx, id, func(a *auftrag.Auftrag) error {
		return a.FinishKontrolle(mitarbeiterID)
	})
}

// Stornieren cancels an order
func (s *AuftragService) Stornieren(ctx context.Context, id uuid.UUID, req StornoRequest) (*AuftragResponse, error) {
	return s.mutate(ctx, id, func(a *auftrag.Auftrag) error {
		return a.Stornieren(req.Grund)
	})
}

// Delete removes an open order. The deletion event lets the tour context
// drop the stop before the row disappears.
func (s *AuftragService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.auftragRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := a.MarkGeloescht(); err != nil {
		return err
	}
	s.publishEvents(ctx, a)

	return s.auftragRepo.Delete(ctx, id)
}

// mutate loads, mutates, saves and publishes in one step
func (s *AuftragService) mutate(ctx context.Context, id uuid.UUID, fn func(*auftrag.Auftrag) error) (*AuftragResponse, error) {
	a, err := s.auftragRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(a); err != nil {
		return nil, err
	}

	if err := s.auftragRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, a)

	response := ToAuftragResponse(a)
	return &response, nil
}
