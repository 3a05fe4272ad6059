package auftrag

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeAuftrag = "Auftrag"

// Event type constants. The tour context subscribes to all of them to
// keep stops in sync with the orders.
const (
	EventTypeAuftragErstellt             = "AuftragErstellt"
	EventTypeAuftragGewichtGeaendert     = "AuftragGewichtGeaendert"
	EventTypeAuftragLieferdatumGeaendert = "AuftragLieferdatumGeaendert"
	EventTypeAuftragStorniert            = "AuftragStorniert"
	EventTypeAuftragGeloescht            = "AuftragGeloescht"
)

// AuftragErstelltEvent is raised when a new order is created
type AuftragErstelltEvent struct {
	shared.BaseDomainEvent
	AuftragID      uuid.UUID       `json:"auftrag_id"`
	Auftragsnummer string          `json:"auftragsnummer"`
	KundeID        uuid.UUID       `json:"kunde_id"`
	Region         string          `json:"region"`
	Lieferdatum    time.Time       `json:"lieferdatum"`
	Gesamtgewicht  decimal.Decimal `json:"gesamtgewicht"`
}

// NewAuftragErstelltEvent creates a new AuftragErstelltEvent
func NewAuftragErstelltEvent(a *Auftrag) *AuftragErstelltEvent {
	return &AuftragErstelltEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAuftragErstellt, AggregateTypeAuftrag, a.ID),
		AuftragID:       a.ID,
		Auftragsnummer:  a.Auftragsnummer,
		KundeID:         a.KundeID,
		Region:          a.Region,
		Lieferdatum:     a.Lieferdatum,
		Gesamtgewicht:   a.Gesamtgewicht,
	}
}

// EventType returns the event type name
func (e *AuftragErstelltEvent) EventType() string {
	return EventTypeAuftragErstellt
}

// AuftragGewichtGeaendertEvent is raised whenever the order total weight
// changes (positions added, removed, requantified or picked)
type AuftragGewichtGeaendertEvent struct {
	shared.BaseDomainEvent
	AuftragID     uuid.UUID       `json:"auftrag_id"`
	KundeID       uuid.UUID       `json:"kunde_id"`
	Lieferdatum   time.Time       `json:"lieferdatum"`
	Gesamtgewicht decimal.Decimal `json:"gesamtgewicht"`
}

// NewAuftragGewichtGeaendertEvent creates a new AuftragGewichtGeaendertEvent
func NewAuftragGewichtGeaendertEvent(a *Auftrag) *AuftragGewichtGeaendertEvent {
	return &AuftragGewichtGeaendertEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAuftragGewichtGeaendert, AggregateTypeAuftrag, a.ID),
		AuftragID:       a.ID,
		KundeID:         a.KundeID,
		Lieferdatum:     a.Lieferdatum,
		Gesamtgewicht:   a.Gesamtgewicht,
	}
}

// EventType returns the event type name
func (e *AuftragGewichtGeaendertEvent) EventType() string {
	return EventTypeAuftragGewichtGeaendert
}

// AuftragLieferdatumGeaendertEvent is raised when the order moves to a
// different delivery date. The tour context removes the stop from the
// old date's tour and reassigns on the new date.
type AuftragLieferdatumGeaendertEvent struct {
	shared.BaseDomainEvent
	AuftragID        uuid.UUID       `json:"auftrag_id"`
	KundeID          uuid.UUID       `json:"kunde_id"`
	Region           string          `json:"region"`
	AltesLieferdatum time.Time       `json:"altes_lieferdatum"`
	Lieferdatum      time.Time       `json:"lieferdatum"`
	Gesamtgewicht    decimal.Decimal `json:"gesamtgewicht"`
}

// NewAuftragLieferdatumGeaendertEvent creates a new AuftragLieferdatumGeaendertEvent
func NewAuftragLieferdatumGeaendertEvent(a *Auftrag, altesDatum time.Time) *AuftragLieferdatumGeaendertEvent {
	return &AuftragLieferdatumGeaendertEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAuftragLieferdatumGeaendert, AggregateTypeAuftrag, a.ID),
		AuftragID:        a.ID,
		KundeID:          a.KundeID,
		Region:           a.Region,
		AltesLieferdatum: altesDatum,
		Lieferdatum:      a.Lieferdatum,
		Gesamtgewicht:    a.Gesamtgewicht,
	}
}

// EventType returns the event type name
func (e *AuftragLieferdatumGeaendertEvent) EventType() string {
	return EventTypeAuftragLieferdatumGeaendert
}

// AuftragStorniertEvent is raised when an order is cancelled
type AuftragStorniertEvent struct {
	shared.BaseDomainEvent
	AuftragID   uuid.UUID `json:"auftrag_id"`
	KundeID     uuid.UUID `json:"kunde_id"`
	Lieferdatum time.Time `json:"lieferdatum"`
	Grund       string    `json:"grund"`
}

// NewAuftragStorniertEvent creates a new AuftragStorniertEvent
func NewAuftragStorniertEvent(a *Auftrag) *AuftragStorniertEvent {
	return &AuftragStorniertEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAuftragStorniert, AggregateTypeAuftrag, a.ID),
		AuftragID:       a.ID,
		KundeID:         a.KundeID,
		Lieferdatum:     a.Lieferdatum,
		Grund:           a.StornoGrund,
	}
}

// EventType returns the event type name
func (e *AuftragStorniertEvent) EventType() string {
	return EventTypeAuftragStorniert
}

// AuftragGeloeschtEvent is raised right before an order is deleted
type AuftragGeloeschtEvent struct {
	shared.BaseDomainEvent
	AuftragID   uuid.UUID `json:"auftrag_id"`
	KundeID     uuid.UUID `json:"kunde_id"`
	Lieferdatum time.Time `json:"lieferdatum"`
}

// NewAuftragGeloeschtEvent creates a new AuftragGeloeschtEvent
func NewAuftragGeloeschtEvent(a *Auftrag) *AuftragGeloeschtEvent {
	return &AuftragGeloeschtEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAuftragGeloescht, AggregateTypeAuftrag, a.ID),
		AuftragID:       a.ID,
		KundeID:         a.KundeID,
		Lieferdatum:     a.Lieferdatum,
	}
}

// EventType returns the event type name
func (e *AuftragGeloeschtEvent) EventType() string {
	return EventTypeAuftragGeloescht
}
