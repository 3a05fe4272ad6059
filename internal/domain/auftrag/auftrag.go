package auftrag

import (
	"fmt"
	"time"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Auftrag represents a customer order aggregate root.
// It owns its line items and the three lifecycle state machines
// (Status, KommissioniertStatus, KontrolliertStatus).
type Auftrag struct {
	shared.BaseAggregateRoot
	Auftragsnummer string
	KundeID        uuid.UUID
	KundeFirma     string
	Region         string
	Lieferdatum    time.Time
	Status         Status
	Kommissioniert KommissioniertStatus
	Kontrolliert   KontrolliertStatus
	Positionen     []ArtikelPosition
	Gesamtgewicht  decimal.Decimal
	Gesamtpreis    decimal.Decimal
	Bemerkung      string

	KommissioniertVon *uuid.UUID
	KommissioniertAm  *time.Time
	KontrolliertVon   *uuid.UUID
	KontrolliertAm    *time.Time
	StorniertAm       *time.Time
	StornoGrund       string
}

// TableName returns the table name for GORM
func (Auftrag) TableName() string {
	return "auftraege"
}

// NewAuftrag creates a new order in state offen/offen/offen
func NewAuftrag(auftragsnummer string, kundeID uuid.UUID, kundeFirma, region string, lieferdatum time.Time) (*Auftrag, error) {
	if auftragsnummer == "" {
		return nil, shared.NewDomainError("INVALID_AUFTRAGSNUMMER", "Auftragsnummer cannot be empty")
	}
	if kundeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_KUNDE", "Kunde ID cannot be empty")
	}
	if kundeFirma == "" {
		return nil, shared.NewDomainError("INVALID_KUNDE", "Kunde Firma cannot be empty")
	}
	if region == "" {
		return nil, shared.NewDomainError("INVALID_REGION", "Region cannot be empty")
	}
	if lieferdatum.IsZero() {
		return nil, shared.NewDomainError("INVALID_LIEFERDATUM", "Lieferdatum cannot be empty")
	}

	a := &Auftrag{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Auftragsnummer:    auftragsnummer,
		KundeID:           kundeID,
		KundeFirma:        kundeFirma,
		Region:            region,
		Lieferdatum:       lieferdatum,
		Status:            StatusOffen,
		Kommissioniert:    KommissioniertOffen,
		Kontrolliert:      KontrolliertOffen,
		Positionen:        make([]ArtikelPosition, 0),
		Gesamtgewicht:     decimal.Zero,
		Gesamtpreis:       decimal.Zero,
	}

	a.AddDomainEvent(NewAuftragErstelltEvent(a))

	return a, nil
}

// KannBearbeitetWerden reports whether header and positions may be edited
func (a *Auftrag) KannBearbeitetWerden() bool {
	return a.Status == StatusOffen && a.Kommissioniert == KommissioniertOffen
}

// AddPosition adds a line item. Only allowed while the order is editable.
func (a *Auftrag) AddPosition(artikelID uuid.UUID, artikelNummer, bezeichnung string, einheit artikel.Einheit, menge, gewichtProEinheit decimal.Decimal, einzelpreis valueobject.Money) (*ArtikelPosition, error) {
	if !a.KannBearbeitetWerden() {
		return nil, shared.NewDomainError("INVALID_STATE", "Positionen can only be changed while the order is offen")
	}

	for _, p := range a.Positionen {
		if p.ArtikelID == artikelID {
			return nil, shared.NewDomainError("DUPLICATE_ARTIKEL", "Artikel already on the order, change Menge instead")
		}
	}

	pos, err := NewArtikelPosition(a.ID, artikelID, artikelNummer, bezeichnung, einheit, menge, gewichtProEinheit, einzelpreis)
	if err != nil {
		return nil, err
	}

	a.Positionen = append(a.Positionen, *pos)
	a.recalculate()
	a.UpdatedAt = time.Now()
	a.AddDomainEvent(NewAuftragGewichtGeaendertEvent(a))

	return pos, nil
}

// UpdatePositionMenge changes the quantity of an existing line item
func (a *Auftrag) UpdatePositionMenge(positionID uuid.UUID, menge, gewichtProEinheit decimal.Decimal) error {
	if !a.KannBearbeitetWerden() {
		return shared.NewDomainError("INVALID_STATE", "Positionen can only be changed while the order is offen")
	}

	for idx := range a.Positionen {
		if a.Positionen[idx].ID == positionID {
			if err := a.Positionen[idx].UpdateMenge(menge, gewichtProEinheit); err != nil {
				return err
			}
			a.recalculate()
			a.UpdatedAt = time.Now()
			a.AddDomainEvent(NewAuftragGewichtGeaendertEvent(a))
			return nil
		}
	}

	return shared.NewDomainError("POSITION_NOT_FOUND", "Position not found")
}

// RemovePosition removes a line item
func (a *Auftrag) RemovePosition(positionID uuid.UUID) error {
	if !a.KannBearbeitetWerden() {
		return shared.NewDomainError("INVALID_STATE", "Positionen can only be changed while the order is offen")
	}

	for idx, p := range a.Positionen {
		if p.ID == positionID {
			a.Positionen = append(a.Positionen[:idx], a.Positionen[idx+1:]...)
			a.recalculate()
			a.UpdatedAt = time.Now()
			a.AddDomainEvent(NewAuftragGewichtGeaendertEvent(a))
			return nil
		}
	}

	return shared.NewDomainError("POSITION_NOT_FOUND", "Position not found")
}

// SetLieferdatum moves the order to another delivery date.
// Only allowed before picking started; fires the tour reassignment hook.
func (a *Auftrag) SetLieferdatum(datum time.Time) error {
	if datum.IsZero() {
		return shared.NewDomainError("INVALID_LIEFERDATUM", "Lieferdatum cannot be empty")
	}
	if a.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot move a closed order")
	}
	if a.Kommissioniert != KommissioniertOffen {
		return shared.NewDomainError("INVALID_STATE", "Cannot move an order once picking started")
	}
	if datum.Equal(a.Lieferdatum) {
		return nil
	}

	alt := a.Lieferdatum
	a.Lieferdatum = datum
	a.UpdatedAt = time.Now()
	a.AddDomainEvent(NewAuftragLieferdatumGeaendertEvent(a, alt))

	return nil
}

// SetBemerkung sets the order remark
func (a *Auftrag) SetBemerkung(bemerkung string) {
	a.Bemerkung = bemerkung
	a.UpdatedAt = time.Now()
}

// StartKommissionierung transitions picking to gestartet
func (a *Auftrag) StartKommissionierung() error {
	if a.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Order is closed")
	}
	if !a.Kommissioniert.CanTransitionTo(KommissioniertGestartet) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start picking in %s", a.Kommissioniert))
	}
	if len(a.Positionen) == 0 {
		return shared.NewDomainError("NO_POSITIONEN", "Cannot pick an order without Positionen")
	}

	a.Kommissioniert = KommissioniertGestartet
	a.UpdatedAt = time.Now()
	return nil
}

// KommissionierePosition records the actual weight for one position
func (a *Auftrag) KommissionierePosition(positionID uuid.UUID, istGewicht decimal.Decimal) error {
	if a.Kommissioniert != KommissioniertGestartet {
		return shared.NewDomainError("INVALID_STATE", "Picking has not been started")
	}

	for idx := range a.Positionen {
		if a.Positionen[idx].ID == positionID {
			if err := a.Positionen[idx].Kommissionieren(istGewicht); err != nil {
				return err
			}
			a.recalculate()
			a.UpdatedAt = time.Now()
			a.AddDomainEvent(NewAuftragGewichtGeaendertEvent(a))
			return nil
		}
	}

	return shared.NewDomainError("POSITION_NOT_FOUND", "Position not found")
}

// FinishKommissionierung transitions picking to fertig.
// Requires every position to be picked; stamps the picker and moves the
// order status to in_bearbeitung.
func (a *Auftrag) FinishKommissionierung(mitarbeiterID uuid.UUID) error {
	if !a.Kommissioniert.CanTransitionTo(KommissioniertFertig) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot finish picking in %s", a.Kommissioniert))
	}
	for _, p := range a.Positionen {
		if !p.Kommissioniert {
			return shared.NewDomainError("POSITIONEN_OFFEN", "All Positionen must be picked first")
		}
	}

	now := time.Now()
	a.Kommissioniert = KommissioniertFertig
	a.KommissioniertVon = &mitarbeiterID
	a.KommissioniertAm = &now

	if a.Status == StatusOffen {
		a.Status = StatusInBearbeitung
	}
	a.UpdatedAt = now
	return nil
}

// StartKontrolle transitions QC to in_kontrolle; requires finished picking
func (a *Auftrag) StartKontrolle() error {
	if a.Kommissioniert != KommissioniertFertig {
		return shared.NewDomainError("INVALID_STATE", "Kontrolle requires finished Kommissionierung")
	}
	if !a.Kontrolliert.CanTransitionTo(KontrolliertInKontrolle) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start Kontrolle in %s", a.Kontrolliert))
	}

	a.Kontrolliert = KontrolliertInKontrolle
	a.UpdatedAt = time.Now()
	return nil
}

// FinishKontrolle transitions QC to geprueft, stamps the controller and
// completes the order.
func (a *Auftrag) FinishKontrolle(mitarbeiterID uuid.UUID) error {
	if !a.Kontrolliert.CanTransitionTo(KontrolliertGeprueft) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot finish Kontrolle in %s", a.Kontrolliert))
	}
	if !a.Status.CanTransitionTo(StatusAbgeschlossen) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete order in %s", a.Status))
	}

	now := time.Now()
	a.Kontrolliert = KontrolliertGeprueft
	a.KontrolliertVon = &mitarbeiterID
	a.KontrolliertAm = &now
	a.Status = StatusAbgeschlossen
	a.UpdatedAt = now
	return nil
}

// Stornieren cancels the order and fires the stop-removal hook
func (a *Auftrag) Stornieren(grund string) error {
	if !a.Status.CanTransitionTo(StatusStorniert) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s", a.Status))
	}
	if grund == "" {
		return shared.NewDomainError("INVALID_GRUND", "Storno Grund is required")
	}

	now := time.Now()
	a.Status = StatusStorniert
	a.StorniertAm = &now
	a.StornoGrund = grund
	a.UpdatedAt = now
	a.AddDomainEvent(NewAuftragStorniertEvent(a))

	return nil
}

// MarkGeloescht emits the deletion event; called by the service right
// before the repository delete so the tour hook can remove the stop.
func (a *Auftrag) MarkGeloescht() error {
	if a.Status != StatusOffen {
		return shared.NewDomainError("INVALID_STATE", "Only offene orders can be deleted")
	}
	a.AddDomainEvent(NewAuftragGeloeschtEvent(a))
	return nil
}

// recalculate refreshes the order totals from the positions
func (a *Auftrag) recalculate() {
	gewicht := decimal.Zero
	preis := decimal.Zero
	for _, p := range a.Positionen {
		gewicht = gewicht.Add(p.EffektivesGewicht())
		preis = preis.Add(p.Gesamtpreis)
	}
	a.Gesamtgewicht = gewicht
	a.Gesamtpreis = preis
}

// GetPosition returns a line item by its ID
func (a *Auftrag) GetPosition(positionID uuid.UUID) *ArtikelPosition {
	for idx := range a.Positionen {
		if a.Positionen[idx].ID == positionID {
			return &a.Positionen[idx]
		}
	}
	return nil
}

// GesamtpreisMoney returns the order total as Money
func (a *Auftrag) GesamtpreisMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(a.Gesamtpreis)
}
