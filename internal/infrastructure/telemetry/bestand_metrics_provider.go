// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBestandMetricsProvider implements BestandMetricsProvider using GORM.
// It queries the movement ledger and article table directly for aggregated metrics.
type GormBestandMetricsProvider struct {
	db *gorm.DB
}

// NewGormBestandMetricsProvider creates a new GormBestandMetricsProvider.
func NewGormBestandMetricsProvider(db *gorm.DB) *GormBestandMetricsProvider {
	return &GormBestandMetricsProvider{db: db}
}

// GetVerfuegbarByArtikel returns the available stock in kg per article.
// Availability is derived from the movement ledger: incoming minus outgoing
// minus waste plus signed corrections.
func (p *GormBestandMetricsProvider) GetVerfuegbarByArtikel(ctx context.Context) (map[uuid.UUID]float64, error) {
	type result struct {
		ArtikelID  uuid.UUID `gorm:"column:artikel_id"`
		Verfuegbar float64   `gorm:"column:verfuegbar"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("bestand_bewegungen").
		Select(`artikel_id, COALESCE(SUM(CASE
			WHEN typ = 'eingang' THEN menge
			WHEN typ = 'ausgang' THEN -menge
			WHEN typ = 'muell' THEN -menge
			WHEN typ = 'korrektur' THEN menge
			ELSE 0 END), 0) as verfuegbar`).
		Group("artikel_id").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]float64, len(results))
	for _, r := range results {
		m[r.ArtikelID] = r.Verfuegbar
	}

	return m, nil
}

// GetAusverkauftCount returns the number of active articles flagged as sold out.
func (p *GormBestandMetricsProvider) GetAusverkauftCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("artikel").
		Where("aktiv = ? AND ausverkauft = ?", true, true).
		Count(&count).Error

	return count, err
}

// Ensure GormBestandMetricsProvider implements BestandMetricsProvider
var _ BestandMetricsProvider = (*GormBestandMetricsProvider)(nil)
