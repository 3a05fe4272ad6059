package auftrag

// Status is the overall order lifecycle state
type Status string

const (
	StatusOffen         Status = "offen"
	StatusInBearbeitung Status = "in_bearbeitung"
	StatusAbgeschlossen Status = "abgeschlossen"
	StatusStorniert     Status = "storniert"
)

// IsValid checks if the value is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusOffen, StatusInBearbeitung, StatusAbgeschlossen, StatusStorniert:
		return true
	}
	return false
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusOffen:
		return target == StatusInBearbeitung || target == StatusStorniert
	case StatusInBearbeitung:
		return target == StatusAbgeschlossen || target == StatusStorniert
	case StatusAbgeschlossen, StatusStorniert:
		return false // Terminal states
	}
	return false
}

// IsTerminal reports whether the status is terminal
func (s Status) IsTerminal() bool {
	return s == StatusAbgeschlossen || s == StatusStorniert
}

// KommissioniertStatus is the picking state of an order
type KommissioniertStatus string

const (
	KommissioniertOffen     KommissioniertStatus = "offen"
	KommissioniertGestartet KommissioniertStatus = "gestartet"
	KommissioniertFertig    KommissioniertStatus = "fertig"
)

// IsValid checks if the value is a known KommissioniertStatus
func (s KommissioniertStatus) IsValid() bool {
	switch s {
	case KommissioniertOffen, KommissioniertGestartet, KommissioniertFertig:
		return true
	}
	return false
}

// CanTransitionTo checks if the picking status can transition to the target
func (s KommissioniertStatus) CanTransitionTo(target KommissioniertStatus) bool {
	switch s {
	case KommissioniertOffen:
		return target == KommissioniertGestartet
	case KommissioniertGestartet:
		return target == KommissioniertFertig
	case KommissioniertFertig:
		return false
	}
	return false
}

// KontrolliertStatus is the quality-control state of an order
type KontrolliertStatus string

const (
	KontrolliertOffen       KontrolliertStatus = "offen"
	KontrolliertInKontrolle KontrolliertStatus = "in_kontrolle"
	KontrolliertGeprueft    KontrolliertStatus = "geprueft"
)

// IsValid checks if the value is a known KontrolliertStatus
func (s KontrolliertStatus) IsValid() bool {
	switch s {
	case KontrolliertOffen, KontrolliertInKontrolle, KontrolliertGeprueft:
		return true
	}
	return false
}

// CanTransitionTo checks if the control status can transition to the target
func (s KontrolliertStatus) CanTransitionTo(target KontrolliertStatus) bool {
	switch s {
	case KontrolliertOffen:
		return target == KontrolliertInKontrolle
	case KontrolliertInKontrolle:
		return target == KontrolliertGeprueft
	case KontrolliertGeprueft:
		return false
	}
	return false
}
