package preis

import (
	"context"
	"testing"
	"time"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/kunde"
	"github.com/fleischhandel/backend/internal/domain/preis"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type preisRepoStub struct {
	preise []preis.KundenPreis
}

func (r *preisRepoStub) FindByID(_ context.Context, id uuid.UUID) (*preis.KundenPreis, error) {
	for i := range r.preise {
		if r.preise[i].ID == id {
			return &r.preise[i], nil
		}
	}
	return nil, shared.ErrNotFound
}
func (r *preisRepoStub) FindByKunde(_ context.Context, kundeID uuid.UUID) ([]preis.KundenPreis, error) {
	var out []preis.KundenPreis
	for _, p := range r.preise {
		if p.KundeID == kundeID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *preisRepoStub) FindByKundeArtikel(_ context.Context, _, _ uuid.UUID) ([]preis.KundenPreis, error) {
	return r.preise, nil
}
func (r *preisRepoStub) FindEffective(_ context.Context, kundeID, artikelID uuid.UUID, datum time.Time) ([]preis.KundenPreis, error) {
	var out []preis.KundenPreis
	for _, p := range r.preise {
		if p.KundeID == kundeID && p.ArtikelID == artikelID && p.GiltAm(datum) {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *preisRepoStub) Save(_ context.Context, p *preis.KundenPreis) error {
	r.preise = append(r.preise, *p)
	return nil
}
func (r *preisRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.preise {
		if r.preise[i].ID == id {
			r.preise = append(r.preise[:i], r.preise[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

type kundeRepoStub struct {
	byID map[uuid.UUID]*kunde.Kunde
}

func (r *kundeRepoStub) FindByID(_ context.Context, id uuid.UUID) (*kunde.Kunde, error) {
	if k, ok := r.byID[id]; ok {
		return k, nil
	}
	return nil, shared.ErrNotFound
}
func (r *kundeRepoStub) FindByKundennummer(_ context.Context, _ string) (*kunde.Kunde, error) {
	return nil, shared.ErrNotFound
}
func (r *kundeRepoStub) FindAll(_ context.Context, _ shared.Filter) ([]kunde.Kunde, error) {
	return nil, nil
}
func (r *kundeRepoStub) FindByRegion(_ context.Context, _ string) ([]kunde.Kunde, error) {
	return nil, nil
}
func (r *kundeRepoStub) Count(_ context.Context, _ shared.Filter) (int64, error) { return 0, nil }
func (r *kundeRepoStub) ExistsByKundennummer(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (r *kundeRepoStub) Save(_ context.Context, k *kunde.Kunde) error {
	r.byID[k.ID] = k
	return nil
}
func (r *kundeRepoStub) Delete(_ context.Context, id uuid.UUID) error {
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

type preisFixture struct {
	svc      *PreisService
	preise   *preisRepoStub
	kunde    *kunde.Kunde
	artikel1 *artikel.Artikel
}

func newPreisFixture(t *testing.T) *preisFixture {
	t.Helper()
	preise := &preisRepoStub{}
	kunden := &kundeRepoStub{byID: make(map[uuid.UUID]*kunde.Kunde)}
	artikelRepo := &artikelRepoStub{byID: make(map[uuid.UUID]*artikel.Artikel)}

	adresse := kunde.Adresse{Strasse: "Hauptstr. 1", PLZ: "50667", Ort: "Koeln"}
	k, err := kunde.NewKunde("K-1001", "Metzgerei Schmitz", adresse, "west")
	require.NoError(t, err)
	kunden.byID[k.ID] = k

	a, err := artikel.NewArtikel("10001", "Rinderfilet", artikel.KategorieRind, artikel.EinheitKilogramm,
		valueobject.NewMoneyEUR(decimal.NewFromFloat(32.50)), decimal.NewFromInt(1))
	require.NoError(t, err)
	artikelRepo.byID[a.ID] = a

	return &preisFixture{
		svc:      NewPreisService(preise, kunden, artikelRepo),
		preise:   preise,
		kunde:    k,
		artikel1: a,
	}
}

func TestPreisService_Set(t *testing.T) {
	f := newPreisFixture(t)

	resp, err := f.svc.Set(context.Background(), f.kunde.ID, SetKundenPreisRequest{
		ArtikelID: f.artikel1.ID,
		Preis:     decimal.NewFromFloat(29.90),
		GueltigAb: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, f.kunde.ID, resp.KundeID)
	assert.Equal(t, f.artikel1.ID, resp.ArtikelID)
	assert.True(t, resp.Preis.Equal(decimal.NewFromFloat(29.90)))
}

func TestPreisService_Set_NegativerPreis(t *testing.T) {
	f := newPreisFixture(t)

	_, err := f.svc.Set(context.Background(), f.kunde.ID, SetKundenPreisRequest{
		ArtikelID: f.artikel1.ID,
		Preis:     decimal.NewFromFloat(-1),
		GueltigAb: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PREIS", domainErr.Code)
}

func TestPreisService_Set_UnbekannterKunde(t *testing.T) {
	f := newPreisFixture(t)

	_, err := f.svc.Set(context.Background(), uuid.New(), SetKundenPreisRequest{
		ArtikelID: f.artikel1.ID,
		Preis:     decimal.NewFromFloat(29.90),
		GueltigAb: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPreisService_ResolvePreis(t *testing.T) {
	f := newPreisFixture(t)
	datum := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	t.Run("falls back to base price without override", func(t *testing.T) {
		resp, err := f.svc.ResolvePreis(context.Background(), f.kunde.ID, f.artikel1.ID, datum)
		require.NoError(t, err)
		assert.True(t, resp.PreisProKg.Equal(decimal.NewFromFloat(32.50)))
		assert.False(t, resp.Kundenpreis)
	})

	t.Run("valid override wins over base price", func(t *testing.T) {
		_, err := f.svc.Set(context.Background(), f.kunde.ID, SetKundenPreisRequest{
			ArtikelID: f.artikel1.ID,
			Preis:     decimal.NewFromFloat(29.90),
			GueltigAb: datum.AddDate(0, 0, -7),
		})
		require.NoError(t, err)

		resp, err := f.svc.ResolvePreis(context.Background(), f.kunde.ID, f.artikel1.ID, datum)
		require.NoError(t, err)
		assert.True(t, resp.PreisProKg.Equal(decimal.NewFromFloat(29.90)))
		assert.True(t, resp.Kundenpreis)
	})
}

func TestPreisService_Delete(t *testing.T) {
	f := newPreisFixture(t)

	resp, err := f.svc.Set(context.Background(), f.kunde.ID, SetKundenPreisRequest{
		ArtikelID: f.artikel1.ID,
		Preis:     decimal.NewFromFloat(29.90),
		GueltigAb: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), resp.ID))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), resp.ID), shared.ErrNotFound)
}
