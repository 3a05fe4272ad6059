package mitarbeiter

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/mitarbeiter"
	"github.com/fleischhandel/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// CreateMitarbeiterRequest represents a request to create a staff member
type CreateMitarbeiterRequest struct {
	Benutzername   string     `json:"benutzername" binding:"required,min=3,max=50"`
	Name           string     `json:"name" binding:"required,min=1,max=200"`
	Passwort       string     `json:"passwort" binding:"required,min=8,max=128"`
	Rollen         []string   `json:"rollen" binding:"required,min=1"`
	Telefon        string     `json:"telefon" binding:"max=50"`
	Eintrittsdatum *time.Time `json:"eintrittsdatum"`
}

// UpdateMitarbeiterRequest represents a request to update a staff member
type UpdateMitarbeiterRequest struct {
	Name           string     `json:"name" binding:"required,min=1,max=200"`
	Telefon        string     `json:"telefon" binding:"max=50"`
	Eintrittsdatum *time.Time `json:"eintrittsdatum"`
}

// SetRollenRequest represents a request to replace the role set
type SetRollenRequest struct {
	Rollen []string `json:"rollen" binding:"required,min=1"`
}

// ChangePasswortRequest represents a password change by the user themselves
type ChangePasswortRequest struct {
	AltesPasswort string `json:"altes_passwort" binding:"required"`
	NeuesPasswort string `json:"neues_passwort" binding:"required,min=8,max=128"`
}

// ResetPasswortRequest represents an admin password reset
type ResetPasswortRequest struct {
	NeuesPasswort string `json:"neues_passwort" binding:"required,min=8,max=128"`
}

// MitarbeiterResponse represents a staff member in API responses
type MitarbeiterResponse struct {
	ID             uuid.UUID  `json:"id"`
	Benutzername   string     `json:"benutzername"`
	Name           string     `json:"name"`
	Rollen         []string   `json:"rollen"`
	Telefon        string     `json:"telefon"`
	Eintrittsdatum *time.Time `json:"eintrittsdatum,omitempty"`
	Aktiv          bool       `json:"aktiv"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToMitarbeiterResponse converts a domain Mitarbeiter to a response DTO
func ToMitarbeiterResponse(m *mitarbeiter.Mitarbeiter) MitarbeiterResponse {
	rollen := make([]string, len(m.Rollen))
	for i, r := range m.Rollen {
		rollen[i] = string(r)
	}
	return MitarbeiterResponse{
		ID:             m.ID,
		Benutzername:   m.Benutzername,
		Name:           m.Name,
		Rollen:         rollen,
		Telefon:        m.Telefon,
		Eintrittsdatum: m.Eintrittsdatum,
		Aktiv:          m.Aktiv,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToMitarbeiterResponses converts a slice of domain staff members
func ToMitarbeiterResponses(mitarbeiterListe []mitarbeiter.Mitarbeiter) []MitarbeiterResponse {
	responses := make([]MitarbeiterResponse, len(mitarbeiterListe))
	for i := range mitarbeiterListe {
		responses[i] = ToMitarbeiterResponse(&mitarbeiterListe[i])
	}
	return responses
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Benutzername string `json:"benutzername" binding:"required"`
	Passwort     string `json:"passwort" binding:"required"`
}

// LoginResponse carries the token pair and the authenticated profile
type LoginResponse struct {
	Tokens      *auth.TokenPair     `json:"tokens"`
	Mitarbeiter MitarbeiterResponse `json:"mitarbeiter"`
}

// RefreshRequest represents a token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// rollenStrings converts domain roles to their string form for JWT claims
func rollenStrings(rollen []mitarbeiter.Rolle) []string {
	out := make([]string, len(rollen))
	for i, r := range rollen {
		out[i] = string(r)
	}
	return out
}

// parseRollen converts request strings into validated domain roles
func parseRollen(raw []string) []mitarbeiter.Rolle {
	rollen := make([]mitarbeiter.Rolle, len(raw))
	for i, r := range raw {
		rollen[i] = mitarbeiter.Rolle(r)
	}
	return rollen
}
