package telemetry_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fleischhandel/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func TestNewBusinessMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})

	require.NoError(t, err)
	require.NotNil(t, bm)
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  nil,
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, bm)
	assert.Equal(t, "NewBusinessMetrics: meter cannot be nil", err.Error())
}

func TestBusinessMetrics_RecordAuftragCreated(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordAuftragCreated(ctx, "west")
	bm.RecordAuftragCreated(ctx, "ost")
}

func TestBusinessMetrics_RecordAuftragGewicht(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordAuftragGewicht(ctx, "west", decimal.NewFromFloat(42.5))
	bm.RecordAuftragWithGewicht(ctx, "ost", decimal.NewFromInt(120))
}

func TestBusinessMetrics_RecordTourPlanned(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	bm.RecordTourPlanned(ctx, "west")
	bm.RecordTourPlanned(ctx, "ost")
}

func TestBusinessMetrics_RecordMuell(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	bm.RecordMuell(ctx, uuid.New(), decimal.NewFromFloat(3.2))
}

func TestBusinessMetrics_RecordBestandGauges(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	bm.RecordBestandVerfuegbar(ctx, uuid.New(), 150.5)
	bm.RecordAusverkauftCount(ctx, 3)
}

// mockBestandProvider implements BestandMetricsProvider for testing
type mockBestandProvider struct {
	verfuegbar  map[uuid.UUID]float64
	ausverkauft int64
	err         error
	calls       atomic.Int64
}

func (m *mockBestandProvider) GetVerfuegbarByArtikel(ctx context.Context) (map[uuid.UUID]float64, error) {
	m.calls.Add(1)
	return m.verfuegbar, m.err
}

func (m *mockBestandProvider) GetAusverkauftCount(ctx context.Context) (int64, error) {
	return m.ausverkauft, m.err
}

func TestBusinessMetrics_PeriodicCollection(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	provider := &mockBestandProvider{
		verfuegbar: map[uuid.UUID]float64{
			uuid.New(): 120.5,
			uuid.New(): 33,
		},
		ausverkauft: 2,
	}

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:           meter,
		Logger:          zap.NewNop(),
		BestandProvider: provider,
	})
	require.NoError(t, err)

	ctx := context.Background()
	bm.StartPeriodicCollection(ctx, 50*time.Millisecond)
	defer bm.Stop()

	// Wait for at least the immediate collection plus one tick
	assert.Eventually(t, func() bool {
		return provider.calls.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestBusinessMetrics_PeriodicCollection_ProviderError(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	provider := &mockBestandProvider{err: assert.AnError}

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:           meter,
		Logger:          zap.NewNop(),
		BestandProvider: provider,
	})
	require.NoError(t, err)

	ctx := context.Background()
	bm.StartPeriodicCollection(ctx, 50*time.Millisecond)
	defer bm.Stop()

	// Collection keeps running despite provider errors
	assert.Eventually(t, func() bool {
		return provider.calls.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestBusinessMetrics_StartPeriodicCollection_Once(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Subsequent calls are no-ops
	bm.StartPeriodicCollection(ctx, time.Hour)
	bm.StartPeriodicCollection(ctx, time.Minute)
	bm.StartPeriodicCollection(ctx, time.Second)

	bm.Stop()
	bm.Stop() // Stop is idempotent
}
