package tour

import (
	"fmt"
	"sort"
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TourStatus is the lifecycle state of a delivery tour
type TourStatus string

const (
	TourGeplant       TourStatus = "geplant"
	TourUnterwegs     TourStatus = "unterwegs"
	TourAbgeschlossen TourStatus = "abgeschlossen"
)

// IsValid checks if the value is a known TourStatus
func (s TourStatus) IsValid() bool {
	switch s {
	case TourGeplant, TourUnterwegs, TourAbgeschlossen:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target
func (s TourStatus) CanTransitionTo(target TourStatus) bool {
	switch s {
	case TourGeplant:
		return target == TourUnterwegs
	case TourUnterwegs:
		return target == TourAbgeschlossen
	case TourAbgeschlossen:
		return false
	}
	return false
}

// TourStop is one delivery stop on a tour. Position is 0-based and dense
// within the tour.
type TourStop struct {
	ID         uuid.UUID
	TourID     uuid.UUID
	AuftragID  uuid.UUID
	KundeID    uuid.UUID
	KundeFirma string
	Gewicht    decimal.Decimal
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (TourStop) TableName() string {
	return "tour_stops"
}

// Tour represents one vehicle run on a delivery date for a region.
// When a tour is full, the next order overflows into a sibling tour with
// the next Laufnummer.
type Tour struct {
	shared.BaseAggregateRoot
	Datum      time.Time
	Region     string
	Fahrzeug   string
	MaxGewicht decimal.Decimal
	FahrerID   *uuid.UUID
	Status     TourStatus
	Laufnummer int
	Stops      []TourStop
}

// TableName returns the table name for GORM
func (Tour) TableName() string {
	return "touren"
}

// NewTour creates an empty tour in state geplant
func NewTour(datum time.Time, region string, maxGewicht decimal.Decimal, laufnummer int) (*Tour, error) {
	if datum.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATUM", "Datum cannot be empty")
	}
	if region == "" {
		return nil, shared.NewDomainError("INVALID_REGION", "Region cannot be empty")
	}
	if maxGewicht.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_GEWICHT", "MaxGewicht must be positive")
	}
	if laufnummer < 1 {
		return nil, shared.NewDomainError("INVALID_LAUFNUMMER", "Laufnummer must be >= 1")
	}

	return &Tour{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Datum:             datum,
		Region:            region,
		MaxGewicht:        maxGewicht,
		Status:            TourGeplant,
		Laufnummer:        laufnummer,
		Stops:             make([]TourStop, 0),
	}, nil
}

// Gesamtgewicht returns the summed weight of all stops
func (t *Tour) Gesamtgewicht() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range t.Stops {
		sum = sum.Add(s.Gewicht)
	}
	return sum
}

// HatKapazitaetFuer reports whether an additional weight still fits
func (t *Tour) HatKapazitaetFuer(gewicht decimal.Decimal) bool {
	return t.Gesamtgewicht().Add(gewicht).LessThanOrEqual(t.MaxGewicht)
}

// IsOffen reports whether the tour still accepts stops
func (t *Tour) IsOffen() bool {
	return t.Status == TourGeplant
}

// AddStop appends a stop for an order, keeping stops sorted by the
// supplied template rank. Stops of customers without a rank keep
// insertion order at the end.
func (t *Tour) AddStop(auftragID, kundeID uuid.UUID, kundeFirma string, gewicht decimal.Decimal, rank func(kundeID uuid.UUID) int) (*TourStop, error) {
	if !t.IsOffen() {
		return nil, shared.NewDomainError("INVALID_STATE", "Tour is not geplant")
	}
	if gewicht.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_GEWICHT", "Stop Gewicht cannot be negative")
	}
	for _, s := range t.Stops {
		if s.AuftragID == auftragID {
			return nil, shared.NewDomainError("DUPLICATE_STOP", "Auftrag is already on this tour")
		}
	}
	if !t.HatKapazitaetFuer(gewicht) {
		return nil, shared.ErrCapacityExceeded
	}

	now := time.Now()
	stop := TourStop{
		ID:         uuid.New(),
		TourID:     t.ID,
		AuftragID:  auftragID,
		KundeID:    kundeID,
		KundeFirma: kundeFirma,
		Gewicht:    gewicht,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	t.Stops = append(t.Stops, stop)

	if rank != nil {
		sort.SliceStable(t.Stops, func(i, j int) bool {
			return rank(t.Stops[i].KundeID) < rank(t.Stops[j].KundeID)
		})
	}
	t.compact()
	t.UpdatedAt = now

	return t.FindStopByAuftrag(auftragID), nil
}

// InsertStopAt places an existing stop at the given index, used when a
// stop is moved between tours.
func (t *Tour) InsertStopAt(stop TourStop, index int) error {
	if !t.IsOffen() {
		return shared.NewDomainError("INVALID_STATE", "Tour is not geplant")
	}
	for _, s := range t.Stops {
		if s.AuftragID == stop.AuftragID {
			return shared.NewDomainError("DUPLICATE_STOP", "Auftrag is already on this tour")
		}
	}
	if !t.HatKapazitaetFuer(stop.Gewicht) {
		return shared.ErrCapacityExceeded
	}
	if index < 0 || index > len(t.Stops) {
		return shared.NewDomainError("INVALID_POSITION", fmt.Sprintf("Position %d out of range", index))
	}

	stop.TourID = t.ID
	stop.UpdatedAt = time.Now()
	t.Stops = append(t.Stops, TourStop{})
	copy(t.Stops[index+1:], t.Stops[index:])
	t.Stops[index] = stop
	t.compact()
	t.UpdatedAt = time.Now()
	return nil
}

// RemoveStop removes a stop by its ID and returns it
func (t *Tour) RemoveStop(stopID uuid.UUID) (*TourStop, error) {
	for idx, s := range t.Stops {
		if s.ID == stopID {
			removed := s
			t.Stops = append(t.Stops[:idx], t.Stops[idx+1:]...)
			t.compact()
			t.UpdatedAt = time.Now()
			return &removed, nil
		}
	}
	return nil, shared.NewDomainError("STOP_NOT_FOUND", "Stop not found")
}

// RemoveStopByAuftrag removes the stop that belongs to an order
func (t *Tour) RemoveStopByAuftrag(auftragID uuid.UUID) (*TourStop, error) {
	stop := t.FindStopByAuftrag(auftragID)
	if stop == nil {
		return nil, shared.NewDomainError("STOP_NOT_FOUND", "Stop not found")
	}
	return t.RemoveStop(stop.ID)
}

// UpdateStopGewicht sets a stop weight. Returns ErrCapacityExceeded when
// the tour no longer fits; the caller then overflows the stop to a
// sibling tour.
func (t *Tour) UpdateStopGewicht(auftragID uuid.UUID, gewicht decimal.Decimal) error {
	stop := t.FindStopByAuftrag(auftragID)
	if stop == nil {
		return shared.NewDomainError("STOP_NOT_FOUND", "Stop not found")
	}
	if gewicht.LessThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_GEWICHT", "Stop Gewicht cannot be negative")
	}

	stop.Gewicht = gewicht
	stop.UpdatedAt = time.Now()
	t.UpdatedAt = time.Now()

	if t.Gesamtgewicht().GreaterThan(t.MaxGewicht) {
		return shared.ErrCapacityExceeded
	}
	return nil
}

// Reorder applies a full permutation of stop IDs. The ID set must match
// the current stops exactly; weights and membership never change.
func (t *Tour) Reorder(stopIDs []uuid.UUID) error {
	if len(stopIDs) != len(t.Stops) {
		return shared.NewDomainError("INVALID_REIHENFOLGE", fmt.Sprintf("Expected %d stop IDs, got %d", len(t.Stops), len(stopIDs)))
	}

	byID := make(map[uuid.UUID]TourStop, len(t.Stops))
	for _, s := range t.Stops {
		byID[s.ID] = s
	}

	reordered := make([]TourStop, 0, len(stopIDs))
	for _, id := range stopIDs {
		stop, ok := byID[id]
		if !ok {
			return shared.NewDomainError("INVALID_REIHENFOLGE", fmt.Sprintf("Stop %s is not on this tour", id))
		}
		delete(byID, id)
		reordered = append(reordered, stop)
	}

	t.Stops = reordered
	t.compact()
	t.UpdatedAt = time.Now()
	return nil
}

// FindStopByAuftrag returns the stop of an order, nil when absent
func (t *Tour) FindStopByAuftrag(auftragID uuid.UUID) *TourStop {
	for idx := range t.Stops {
		if t.Stops[idx].AuftragID == auftragID {
			return &t.Stops[idx]
		}
	}
	return nil
}

// GetStop returns a stop by its ID, nil when absent
func (t *Tour) GetStop(stopID uuid.UUID) *TourStop {
	for idx := range t.Stops {
		if t.Stops[idx].ID == stopID {
			return &t.Stops[idx]
		}
	}
	return nil
}

// SetFahrer assigns or clears the driver
func (t *Tour) SetFahrer(fahrerID *uuid.UUID) {
	t.FahrerID = fahrerID
	t.UpdatedAt = time.Now()
}

// SetFahrzeug sets the vehicle label
func (t *Tour) SetFahrzeug(fahrzeug string) {
	t.Fahrzeug = fahrzeug
	t.UpdatedAt = time.Now()
}

// SetMaxGewicht changes the capacity; it may not drop below the current load
func (t *Tour) SetMaxGewicht(maxGewicht decimal.Decimal) error {
	if maxGewicht.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_GEWICHT", "MaxGewicht must be positive")
	}
	if t.Gesamtgewicht().GreaterThan(maxGewicht) {
		return shared.ErrCapacityExceeded
	}
	t.MaxGewicht = maxGewicht
	t.UpdatedAt = time.Now()
	return nil
}

// SetStatus transitions the tour status
func (t *Tour) SetStatus(status TourStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown TourStatus")
	}
	if !t.Status.CanTransitionTo(status) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition tour from %s to %s", t.Status, status))
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	return nil
}

// IsEmpty reports whether the tour has no stops
func (t *Tour) IsEmpty() bool {
	return len(t.Stops) == 0
}

// compact renumbers stop positions to 0..n-1
func (t *Tour) compact() {
	for idx := range t.Stops {
		t.Stops[idx].Position = idx
	}
}
