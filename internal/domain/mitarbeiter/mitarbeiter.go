package mitarbeiter

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// MinPasswortLength is the minimum accepted password length
const MinPasswortLength = 8

// Rolle is a staff role gating API access
type Rolle string

const (
	RolleAdmin            Rolle = "admin"
	RolleVerkauf          Rolle = "verkauf"
	RolleKommissionierung Rolle = "kommissionierung"
	RolleKontrolle        Rolle = "kontrolle"
	RolleFahrer           Rolle = "fahrer"
	RolleBuchhaltung      Rolle = "buchhaltung"
	RolleStatistik        Rolle = "statistik"
	RolleZerleger         Rolle = "zerleger"
	RolleLager            Rolle = "lager"
)

// IsValid checks if the value is a known Rolle
func (r Rolle) IsValid() bool {
	switch r {
	case RolleAdmin, RolleVerkauf, RolleKommissionierung, RolleKontrolle,
		RolleFahrer, RolleBuchhaltung, RolleStatistik, RolleZerleger, RolleLager:
		return true
	}
	return false
}

// Mitarbeiter represents a staff member with login access
type Mitarbeiter struct {
	shared.BaseAggregateRoot
	Benutzername   string
	Name           string
	PasswortHash   string
	Rollen         []Rolle `gorm:"serializer:json"`
	Telefon        string
	Eintrittsdatum *time.Time
	Aktiv          bool
}

// TableName returns the table name for GORM
func (Mitarbeiter) TableName() string {
	return "mitarbeiter"
}

// NewMitarbeiter creates a new staff member with a pre-hashed password
func NewMitarbeiter(benutzername, name, passwortHash string, rollen []Rolle) (*Mitarbeiter, error) {
	if benutzername == "" {
		return nil, shared.NewDomainError("INVALID_BENUTZERNAME", "Benutzername cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if passwortHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORT", "Passwort hash cannot be empty")
	}
	if len(rollen) == 0 {
		return nil, shared.NewDomainError("INVALID_ROLLEN", "At least one Rolle is required")
	}
	for _, r := range rollen {
		if !r.IsValid() {
			return nil, shared.NewDomainError("INVALID_ROLLEN", "Unknown Rolle: "+string(r))
		}
	}

	return &Mitarbeiter{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Benutzername:      benutzername,
		Name:              name,
		PasswortHash:      passwortHash,
		Rollen:            rollen,
		Aktiv:             true,
	}, nil
}

// HatRolle reports whether the staff member has the given role.
// Admins implicitly hold every role.
func (m *Mitarbeiter) HatRolle(rolle Rolle) bool {
	for _, r := range m.Rollen {
		if r == RolleAdmin || r == rolle {
			return true
		}
	}
	return false
}

// SetRollen replaces the role set
func (m *Mitarbeiter) SetRollen(rollen []Rolle) error {
	if len(rollen) == 0 {
		return shared.NewDomainError("INVALID_ROLLEN", "At least one Rolle is required")
	}
	for _, r := range rollen {
		if !r.IsValid() {
			return shared.NewDomainError("INVALID_ROLLEN", "Unknown Rolle: "+string(r))
		}
	}
	m.Rollen = rollen
	m.UpdatedAt = time.Now()
	return nil
}

// Update changes the mutable profile fields
func (m *Mitarbeiter) Update(name, telefon string, eintrittsdatum *time.Time) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	m.Name = name
	m.Telefon = telefon
	m.Eintrittsdatum = eintrittsdatum
	m.UpdatedAt = time.Now()
	return nil
}

// SetPasswortHash replaces the stored password hash
func (m *Mitarbeiter) SetPasswortHash(hash string) error {
	if hash == "" {
		return shared.NewDomainError("INVALID_PASSWORT", "Passwort hash cannot be empty")
	}
	m.PasswortHash = hash
	m.UpdatedAt = time.Now()
	return nil
}

// SetPasswort validates, hashes and stores a new password
func (m *Mitarbeiter) SetPasswort(passwort string) error {
	hash, err := HashPasswort(passwort)
	if err != nil {
		return err
	}
	m.PasswortHash = hash
	m.UpdatedAt = time.Now()
	return nil
}

// VerifyPasswort checks a plaintext password against the stored hash
func (m *Mitarbeiter) VerifyPasswort(passwort string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.PasswortHash), []byte(passwort)) == nil
}

// HashPasswort validates and hashes a plaintext password for storage
func HashPasswort(passwort string) (string, error) {
	if len(passwort) < MinPasswortLength {
		return "", shared.NewDomainError("INVALID_PASSWORT", "Passwort must have at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passwort), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to hash Passwort")
	}
	return string(hash), nil
}

// Deactivate disables the login
func (m *Mitarbeiter) Deactivate() {
	m.Aktiv = false
	m.UpdatedAt = time.Now()
}

// Activate re-enables the login
func (m *Mitarbeiter) Activate() {
	m.Aktiv = true
	m.UpdatedAt = time.Now()
}
