package tour

import (
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
)

// RegionRule defines on which ISO weekdays a region is delivered.
// One rule per region.
type RegionRule struct {
	shared.BaseAggregateRoot
	Region string
	// Wochentage holds ISO weekdays, 1 = Monday .. 7 = Sunday
	Wochentage []int `gorm:"serializer:json"`
	Aktiv      bool
}

// TableName returns the table name for GORM
func (RegionRule) TableName() string {
	return "region_rules"
}

// NewRegionRule creates a delivery-day rule for a region
func NewRegionRule(region string, wochentage []int) (*RegionRule, error) {
	if region == "" {
		return nil, shared.NewDomainError("INVALID_REGION", "Region cannot be empty")
	}
	if err := validateWochentage(wochentage); err != nil {
		return nil, err
	}

	return &RegionRule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Region:            region,
		Wochentage:        wochentage,
		Aktiv:             true,
	}, nil
}

// SetWochentage replaces the weekday set
func (r *RegionRule) SetWochentage(wochentage []int) error {
	if err := validateWochentage(wochentage); err != nil {
		return err
	}
	r.Wochentage = wochentage
	r.UpdatedAt = time.Now()
	return nil
}

// Deactivate disables the rule; inactive rules block all deliveries
func (r *RegionRule) Deactivate() {
	r.Aktiv = false
	r.UpdatedAt = time.Now()
}

// Activate enables the rule
func (r *RegionRule) Activate() {
	r.Aktiv = true
	r.UpdatedAt = time.Now()
}

// ErlaubtAm reports whether the rule allows delivery on the given date
func (r *RegionRule) ErlaubtAm(datum time.Time) bool {
	if !r.Aktiv {
		return false
	}
	return containsWochentag(r.Wochentage, isoWeekday(datum))
}

func validateWochentage(wochentage []int) error {
	if len(wochentage) == 0 {
		return shared.NewDomainError("INVALID_WOCHENTAGE", "At least one Wochentag is required")
	}
	seen := make(map[int]bool, len(wochentage))
	for _, w := range wochentage {
		if w < 1 || w > 7 {
			return shared.NewDomainError("INVALID_WOCHENTAGE", "Wochentag must be between 1 (Montag) and 7 (Sonntag)")
		}
		if seen[w] {
			return shared.NewDomainError("INVALID_WOCHENTAGE", "Duplicate Wochentag")
		}
		seen[w] = true
	}
	return nil
}

func containsWochentag(wochentage []int, tag int) bool {
	for _, w := range wochentage {
		if w == tag {
			return true
		}
	}
	return false
}

// isoWeekday maps time.Weekday to ISO numbering (Monday = 1, Sunday = 7)
func isoWeekday(datum time.Time) int {
	wd := int(datum.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
