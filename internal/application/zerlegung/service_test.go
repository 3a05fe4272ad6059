package zerlegung

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/bestand"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/fleischhandel/backend/internal/domain/zerlegung"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type zerlegungRepoStub struct {
	byID map[uuid.UUID]*zerlegung.Zerlegeauftrag
	// bewegungen recorded per SaveMitBewegungen call, mirroring the
	// single-transaction contract
	gebuchteBewegungen []*bestand.Bewegung
}

func newZerlegungRepoStub() *zerlegungRepoStub {
	return &zerlegungRepoStub{byID: make(map[uuid.UUID]*zerlegung.Zerlegeauftrag)}
}

func (r *zerlegungRepoStub) FindByID(_ context.Context, id uuid.UUID) (*zerlegung.Zerlegeauftrag, error) {
	if z, ok := r.byID[id]; ok {
		return z, nil
	}
	return nil, shared.ErrNotFound
}

func (r *zerlegungRepoStub) FindAll(_ context.Context, _ shared.Filter) ([]zerlegung.Zerlegeauftrag, error) {
	out := make([]zerlegung.Zerlegeauftrag, 0, len(r.byID))
	for _, z := range r.byID {
		out = append(out, *z)
	}
	return out, nil
}

func (r *zerlegungRepoStub) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *zerlegungRepoStub) FindByDatum(_ context.Context, _ time.Time) ([]zerlegung.Zerlegeauftrag, error) {
	return nil, nil
}

func (r *zerlegungRepoStub) Save(_ context.Context, z *zerlegung.Zerlegeauftrag) error {
	r.byID[z.ID] = z
	return nil
}

func (r *zerlegungRepoStub) SaveMitBewegungen(_ context.Context, z *zerlegung.Zerlegeauftrag, bewegungen []*bestand.Bewegung) error {
	r.byID[z.ID] = z
	r.gebuchteBewegungen = append(r.gebuchteBewegungen, bewegungen...)
	return nil
}

func (r *zerlegungRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type artikelRepoStub struct {
	byID map[uuid.UUID]*artikel.Artikel
}

func (r *artikelRepoStub) FindByID(_ context.Context, id uuid.UUID) (*artikel.Artikel, error) {
	if a, ok := r.byID[id]; ok {
		return a, nil
	}
	return nil, shared.ErrNotFound
}
func (r *artikelRepoStub) FindByNummer(_ context.Context, _ string) (*artikel.Artikel, error) {
	return nil, shared.ErrNotFound
}
func (r *artikelRepoStub) FindAll(_ context.Context, _ shared.Filter) ([]artikel.Artikel, error) {
	return nil, nil
}
func (r *artikelRepoStub) Count(_ context.Context, _ shared.Filter) (int64, error) { return 0, nil }
func (r *artikelRepoStub) ExistsByNummer(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (r *artikelRepoStub) Save(_ context.Context, a *artikel.Artikel) error {
	r.byID[a.ID] = a
	return nil
}
func (r *artikelRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type zerlegungFixture struct {
	svc      *ZerlegungService
	repo     *zerlegungRepoStub
	schwein  *artikel.Artikel
	schulter *artikel.Artikel
	datum    time.Time
}

func newZerlegungFixture(t *testing.T) *zerlegungFixture {
	t.Helper()
	repo := newZerlegungRepoStub()
	artikelRepo := &artikelRepoStub{byID: make(map[uuid.UUID]*artikel.Artikel)}

	schwein, err := artikel.NewArtikel("20001", "Schweinehaelfte", artikel.KategorieSchwein, artikel.EinheitKilogramm,
		valueobject.NewMoneyEUR(decimal.NewFromFloat(4.20)), decimal.NewFromInt(1))
	require.NoError(t, err)
	artikelRepo.byID[schwein.ID] = schwein

	schulter, err := artikel.NewArtikel("20002", "Schweineschulter", artikel.KategorieSchwein, artikel.EinheitKilogramm,
		valueobject.NewMoneyEUR(decimal.NewFromFloat(6.90)), decimal.NewFromInt(1))
	require.NoError(t, err)
	artikelRepo.byID[schulter.ID] = schulter

	return &zerlegungFixture{
		svc:      NewZerlegungService(repo, artikelRepo, zap.NewNop()),
		repo:     repo,
		schwein:  schwein,
		schulter: schulter,
		datum:    time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	}
}

func (f *zerlegungFixture) createStarted(t *testing.T, zerlegerID uuid.UUID) *ZerlegeauftragResponse {
	t.Helper()
	created, err := f.svc.Create(context.Background(), CreateZerlegeauftragRequest{
		Datum:     f.datum,
		ArtikelID: f.schwein.ID,
		Menge:     decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	_, err = f.svc.Start(context.Background(), created.ID, zerlegerID)
	require.NoError(t, err)
	return created
}

func TestZerlegungService_Complete_BooksBewegungen(t *testing.T) {
	f := newZerlegungFixture(t)
	mitarbeiterID := uuid.New()
	created := f.createStarted(t, mitarbeiterID)

	_, err := f.svc.AddTeil(context.Background(), created.ID, AddTeilRequest{
		ArtikelID: f.schulter.ID,
		Menge:     decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	resp, err := f.svc.Complete(context.Background(), created.ID, mitarbeiterID)
	require.NoError(t, err)
	assert.Equal(t, "fertig", resp.Status)

	// Order and movements go through the same transactional save:
	// one ausgang for the source, one eingang per cut.
	require.Len(t, f.repo.gebuchteBewegungen, 2)
	referenz := fmt.Sprintf("zerlegung:%s", created.ID)

	ausgang := f.repo.gebuchteBewegungen[0]
	assert.Equal(t, f.schwein.ID, ausgang.ArtikelID)
	assert.Equal(t, bestand.BewegungAusgang, ausgang.Typ)
	assert.True(t, ausgang.Menge.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, referenz, ausgang.Referenz)

	eingang := f.repo.gebuchteBewegungen[1]
	assert.Equal(t, f.schulter.ID, eingang.ArtikelID)
	assert.Equal(t, bestand.BewegungEingang, eingang.Typ)
	assert.True(t, eingang.Menge.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, referenz, eingang.Referenz)
}

func TestZerlegungService_Complete_OhneTeile(t *testing.T) {
	f := newZerlegungFixture(t)
	mitarbeiterID := uuid.New()
	created := f.createStarted(t, mitarbeiterID)

	_, err := f.svc.Complete(context.Background(), created.ID, mitarbeiterID)
	require.Error(t, err)
	assert.Empty(t, f.repo.gebuchteBewegungen)
}

func TestZerlegungService_Delete_NurOffen(t *testing.T) {
	f := newZerlegungFixture(t)
	created := f.createStarted(t, uuid.New())

	err := f.svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
}
