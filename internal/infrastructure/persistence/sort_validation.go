package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ArtikelSortFields contains allowed sort fields for articles
var ArtikelSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"artikel_nummer":      true,
	"bezeichnung":         true,
	"kategorie":           true,
	"einheit":             true,
	"basispreis_pro_kg":   true,
	"gewicht_pro_einheit": true,
	"aktiv":               true,
	"ausverkauft":         true,
}

// KundeSortFields contains allowed sort fields for customers
var KundeSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"kundennummer":      true,
	"firma":             true,
	"region":            true,
	"adresse_ort":       true,
	"adresse_plz":       true,
	"zahlungsziel_tage": true,
	"is_genehmigt":      true,
	"aktiv":             true,
}

// VerkaeuferSortFields contains allowed sort fields for sales representatives
var VerkaeuferSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"aktiv":      true,
}

// MitarbeiterSortFields contains allowed sort fields for staff members
var MitarbeiterSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"benutzername":   true,
	"name":           true,
	"eintrittsdatum": true,
	"aktiv":          true,
}

// AuftragSortFields contains allowed sort fields for orders
var AuftragSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"auftragsnummer": true,
	"kunde_firma":    true,
	"region":         true,
	"lieferdatum":    true,
	"status":         true,
	"gesamtgewicht":  true,
	"gesamtpreis":    true,
}

// TourSortFields contains allowed sort fields for tours
var TourSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"datum":      true,
	"region":     true,
	"laufnummer": true,
	"status":     true,
	"fahrzeug":   true,
}

// ChargeSortFields contains allowed sort fields for batches
var ChargeSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"artikel_id":     true,
	"menge":          true,
	"mhd":            true,
	"lieferant":      true,
	"eingangs_datum": true,
}

// BewegungSortFields contains allowed sort fields for stock movements
var BewegungSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"artikel_id": true,
	"typ":        true,
	"menge":      true,
	"referenz":   true,
}

// ZerlegungSortFields contains allowed sort fields for cutting orders
var ZerlegungSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"datum":      true,
	"artikel_id": true,
	"status":     true,
}
