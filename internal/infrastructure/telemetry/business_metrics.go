// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the distribution backend.
// It tracks order intake, tour planning, waste bookings, and stock health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	auftragCreatedTotal *Counter
	auftragGewichtTotal *Counter
	tourPlannedTotal    *Counter
	muellGewichtTotal   *Counter

	// Gauge metrics (point-in-time values)
	bestandVerfuegbar  *FloatGauge
	ausverkauftArtikel *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	bestandProvider BestandMetricsProvider
}

// BestandMetricsProvider provides stock data for periodic metrics collection.
// This interface allows the telemetry layer to query stock state without
// depending on the bestand domain directly.
type BestandMetricsProvider interface {
	// GetVerfuegbarByArtikel returns the available stock in kg per article
	GetVerfuegbarByArtikel(ctx context.Context) (map[uuid.UUID]float64, error)

	// GetAusverkauftCount returns the number of articles flagged as sold out
	GetAusverkauftCount(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	BestandProvider BestandMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:           cfg.Meter,
		logger:          logger,
		stopChan:        make(chan struct{}),
		bestandProvider: cfg.BestandProvider,
	}

	var err error

	bm.auftragCreatedTotal, err = NewCounter(
		cfg.Meter,
		"fleisch_auftrag_created_total",
		"Total number of orders created",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.auftragGewichtTotal, err = NewCounter(
		cfg.Meter,
		"fleisch_auftrag_gewicht_total",
		"Total ordered weight in grams",
		"{g}",
	)
	if err != nil {
		return nil, err
	}

	bm.tourPlannedTotal, err = NewCounter(
		cfg.Meter,
		"fleisch_tour_planned_total",
		"Total number of tours planned",
		"{tours}",
	)
	if err != nil {
		return nil, err
	}

	bm.muellGewichtTotal, err = NewCounter(
		cfg.Meter,
		"fleisch_muell_gewicht_total",
		"Total waste weight booked in grams",
		"{g}",
	)
	if err != nil {
		return nil, err
	}

	bm.bestandVerfuegbar, err = NewFloatGauge(
		cfg.Meter,
		"fleisch_bestand_verfuegbar_kg",
		"Current available stock per article in kg",
		"{kg}",
	)
	if err != nil {
		return nil, err
	}

	bm.ausverkauftArtikel, err = NewGauge(
		cfg.Meter,
		"fleisch_artikel_ausverkauft_count",
		"Number of articles flagged as sold out",
		"{articles}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordAuftragCreated records an order creation event.
// This should be called from the application layer when an order is created.
func (bm *BusinessMetrics) RecordAuftragCreated(ctx context.Context, region string) {
	bm.auftragCreatedTotal.Inc(ctx, AttrRegion.String(region))
}

// RecordAuftragGewicht adds the ordered weight to the running total.
// Weight is recorded in grams to keep the counter integral.
func (bm *BusinessMetrics) RecordAuftragGewicht(ctx context.Context, region string, gewichtKg decimal.Decimal) {
	gramm := gewichtKg.Mul(decimal.NewFromInt(1000)).IntPart()
	bm.auftragGewichtTotal.Add(ctx, gramm, AttrRegion.String(region))
}

// RecordAuftragWithGewicht is a convenience method that records both order count and weight.
func (bm *BusinessMetrics) RecordAuftragWithGewicht(ctx context.Context, region string, gewichtKg decimal.Decimal) {
	bm.RecordAuftragCreated(ctx, region)
	bm.RecordAuftragGewicht(ctx, region, gewichtKg)
}

// RecordTourPlanned records a planned tour.
func (bm *BusinessMetrics) RecordTourPlanned(ctx context.Context, region string) {
	bm.tourPlannedTotal.Inc(ctx, AttrRegion.String(region))
}

// RecordMuell records a waste booking.
func (bm *BusinessMetrics) RecordMuell(ctx context.Context, artikelID uuid.UUID, mengeKg decimal.Decimal) {
	gramm := mengeKg.Mul(decimal.NewFromInt(1000)).IntPart()
	bm.muellGewichtTotal.Add(ctx, gramm, AttrArtikelID.String(artikelID.String()))
}

// RecordBestandVerfuegbar records the current available stock for an article.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordBestandVerfuegbar(ctx context.Context, artikelID uuid.UUID, kg float64) {
	bm.bestandVerfuegbar.Record(ctx, kg, AttrArtikelID.String(artikelID.String()))
}

// RecordAusverkauftCount records the number of sold-out articles.
func (bm *BusinessMetrics) RecordAusverkauftCount(ctx context.Context, count int64) {
	bm.ausverkauftArtikel.Record(ctx, count)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects stock metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectBestandMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectBestandMetrics(ctx)
		}
	}
}

// collectBestandMetrics collects stock gauge metrics.
func (bm *BusinessMetrics) collectBestandMetrics(ctx context.Context) {
	if bm.bestandProvider == nil {
		bm.logger.Debug("No stock provider configured, skipping stock metrics collection")
		return
	}

	verfuegbar, err := bm.bestandProvider.GetVerfuegbarByArtikel(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get available stock for metrics", zap.Error(err))
	} else {
		for artikelID, kg := range verfuegbar {
			bm.RecordBestandVerfuegbar(ctx, artikelID, kg)
		}
	}

	ausverkauft, err := bm.bestandProvider.GetAusverkauftCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get sold-out article count for metrics", zap.Error(err))
	} else {
		bm.RecordAusverkauftCount(ctx, ausverkauft)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
