package auftrag

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/auftrag"
	"github.com/fleischhandel/backend/internal/domain/kunde"
	"github.com/fleischhandel/backend/internal/domain/preis"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/fleischhandel/backend/internal/domain/tour"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type auftragRepoStub struct {
	byID       map[uuid.UUID]*auftrag.Auftrag
	seq        int
	lastFilter shared.Filter
}

func newAuftragRepoStub() *auftragRepoStub {
	return &auftragRepoStub{byID: make(map[uuid.UUID]*auftrag.Auftrag)}
}

func (r *auftragRepoStub) FindByID(_ context.Context, id uuid.UUID) (*auftrag.Auftrag, error) {
	if a, ok := r.byID[id]; ok {
		return a, nil
	}
	return nil, shared.ErrNotFound
}

func (r *auftragRepoStub) FindByNummer(_ context.Context, nummer string) (*auftrag.Auftrag, error) {
	for _, a := range r.byID {
		if a.Auftragsnummer == nummer {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *auftragRepoStub) FindAll(_ context.Context, filter shared.Filter) ([]auftrag.Auftrag, error) {
	r.lastFilter = filter
	out := make([]auftrag.Auftrag, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, *a)
	}
	return out, nil
}

func (r *auftragRepoStub) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *auftragRepoStub) FindByLieferdatum(_ context.Context, datum time.Time, region string) ([]auftrag.Auftrag, error) {
	var out []auftrag.Auftrag
	for _, a := range r.byID {
		if a.Lieferdatum.Equal(datum) && (region == "" || a.Region == region) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *auftragRepoStub) FindByKunde(_ context.Context, kundeID uuid.UUID, _ shared.Filter) ([]auftrag.Auftrag, error) {
	var out []auftrag.Auftrag
	for _, a := range r.byID {
		if a.KundeID == kundeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *auftragRepoStub) GenerateAuftragsnummer(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("A-2026-%05d", r.seq), nil
}

func (r *auftragRepoStub) Save(_ context.Context, a *auftrag.Auftrag) error {
	r.byID[a.ID] = a
	return nil
}

func (r *auftragRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type kundeRepoStub struct {
	byID map[uuid.UUID]*kunde.Kunde
}

func newKundeRepoStub() *kundeRepoStub {
	return &kundeRepoStub{byID: make(map[uuid.UUID]*kunde.Kunde)}
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

func newArtikelRepoStub() *artikelRepoStub {
	return &artikelRepoStub{byID: make(map[uuid.UUID]*artikel.Artikel)}
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

type preisRepoStub struct {
	preise []preis.KundenPreis
}

func (r *preisRepoStub) FindByID(_ context.Context, _ uuid.UUID) (*preis.KundenPreis, error) {
	return nil, shared.ErrNotFound
}
func (r *preisRepoStub) FindByKunde(_ context.Context, _ uuid.UUID) ([]preis.KundenPreis, error) {
	return r.preise, nil
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
func (r *preisRepoStub) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type regionRuleRepoStub struct {
	byRegion map[string]*tour.RegionRule
}

func newRegionRuleRepoStub() *regionRuleRepoStub {
	return &regionRuleRepoStub{byRegion: make(map[string]*tour.RegionRule)}
}

func (r *regionRuleRepoStub) FindByID(_ context.Context, _ uuid.UUID) (*tour.RegionRule, error) {
	return nil, shared.ErrNotFound
}
func (r *regionRuleRepoStub) FindByRegion(_ context.Context, region string) (*tour.RegionRule, error) {
	if rule, ok := r.byRegion[region]; ok {
		return rule, nil
	}
	return nil, shared.ErrNotFound
}
func (r *regionRuleRepoStub) FindAll(_ context.Context, _ shared.Filter) ([]tour.RegionRule, error) {
	return nil, nil
}
func (r *regionRuleRepoStub) Save(_ context.Context, rule *tour.RegionRule) error {
	r.byRegion[rule.Region] = rule
	return nil
}
func (r *regionRuleRepoStub) Delete(_ context.Context, _ uuid.UUID) error { return nil }

// eventRecorder captures published domain events
type eventRecorder struct {
	events []shared.DomainEvent
}

func (r *eventRecorder) Publish(_ context.Context, events ...shared.DomainEvent) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *eventRecorder) typeNames() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

type serviceFixture struct {
	svc       *AuftragService
	auftraege *auftragRepoStub
	kunden    *kundeRepoStub
	artikel   *artikelRepoStub
	preise    *preisRepoStub
	rules     *regionRuleRepoStub
	events    *eventRecorder

	kunde    *kunde.Kunde
	artikel1 *artikel.Artikel
	mittwoch time.Time
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		auftraege: newAuftragRepoStub(),
		kunden:    newKundeRepoStub(),
		artikel:   newArtikelRepoStub(),
		preise:    &preisRepoStub{},
		rules:     newRegionRuleRepoStub(),
		events:    &eventRecorder{},
		mittwoch:  time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), // a Wednesday
	}
	f.svc = NewAuftragService(f.auftraege, f.kunden, f.artikel, f.preise, f.rules, f.events, zap.NewNop())

	adresse := kunde.Adresse{Strasse: "Hauptstr. 1", PLZ: "50667", Ort: "Koeln"}
	k, err := kunde.NewKunde("K-1001", "Metzgerei Schmitz", adresse, "west")
	require.NoError(t, err)
	k.Genehmigen()
	f.kunde = k
	f.kunden.byID[k.ID] = k

	a, err := artikel.NewArtikel("10001", "Rinderfilet", artikel.KategorieRind, artikel.EinheitKilogramm,
		valueobject.NewMoneyEUR(decimal.NewFromFloat(32.50)), decimal.NewFromInt(1))
	require.NoError(t, err)
	f.artikel1 = a
	f.artikel.byID[a.ID] = a

	return f
}

func TestAuftragService_Create(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
		Positionen: []CreatePositionInput{
			{ArtikelID: f.artikel1.ID, Menge: decimal.NewFromFloat(12.5)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "A-2026-00001", resp.Auftragsnummer)
	assert.Equal(t, "Metzgerei Schmitz", resp.KundeFirma)
	assert.Equal(t, "west", resp.Region)
	assert.Equal(t, "offen", resp.Status)
	require.Len(t, resp.Positionen, 1)
	assert.True(t, resp.Gesamtpreis.Equal(decimal.NewFromFloat(406.25)))

	// creation publishes AuftragErstellt (plus a weight event per position)
	assert.Contains(t, f.events.typeNames(), auftrag.EventTypeAuftragErstellt)
}

func TestAuftragService_Create_UnapprovedKunde(t *testing.T) {
	f := newServiceFixture(t)
	f.kunde.IsGenehmigt = false

	_, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "KUNDE_GESPERRT", domainErr.Code)
}

func TestAuftragService_Create_RegionRuleBlocksDate(t *testing.T) {
	f := newServiceFixture(t)
	rule, err := tour.NewRegionRule("west", []int{1, 4}) // Montag, Donnerstag
	require.NoError(t, err)
	f.rules.byRegion["west"] = rule

	_, err = f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
	})
	require.ErrorIs(t, err, shared.ErrNotDeliverable)

	donnerstag := f.mittwoch.AddDate(0, 0, 1)
	_, err = f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: donnerstag,
	})
	assert.NoError(t, err)
}

func TestAuftragService_Create_KundenpreisWins(t *testing.T) {
	f := newServiceFixture(t)

	override, err := preis.NewKundenPreis(f.kunde.ID, f.artikel1.ID,
		valueobject.NewMoneyEUR(decimal.NewFromFloat(29.90)),
		f.mittwoch.AddDate(0, -1, 0), nil)
	require.NoError(t, err)
	f.preise.preise = append(f.preise.preise, *override)

	resp, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
		Positionen: []CreatePositionInput{
			{ArtikelID: f.artikel1.ID, Menge: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Positionen[0].Einzelpreis.Equal(decimal.NewFromFloat(29.90)))
	assert.True(t, resp.Gesamtpreis.Equal(decimal.NewFromFloat(299.00)))
}

func TestAuftragService_Create_AusverkaufterArtikel(t *testing.T) {
	f := newServiceFixture(t)
	f.artikel1.SetAusverkauft(true)

	_, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
		Positionen: []CreatePositionInput{
			{ArtikelID: f.artikel1.ID, Menge: decimal.NewFromInt(5)},
		},
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ARTIKEL_AUSVERKAUFT", domainErr.Code)
}

func TestAuftragService_SetLieferdatum_PublishesEvent(t *testing.T) {
	f := newServiceFixture(t)
	resp, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
		Positionen: []CreatePositionInput{
			{ArtikelID: f.artikel1.ID, Menge: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	f.events.events = nil

	neuesDatum := f.mittwoch.AddDate(0, 0, 7)
	updated, err := f.svc.SetLieferdatum(context.Background(), resp.ID, SetLieferdatumRequest{Lieferdatum: neuesDatum})
	require.NoError(t, err)
	assert.True(t, updated.Lieferdatum.Equal(neuesDatum))

	require.Len(t, f.events.events, 1)
	moved, ok := f.events.events[0].(*auftrag.AuftragLieferdatumGeaendertEvent)
	require.True(t, ok)
	assert.True(t, moved.AltesLieferdatum.Equal(f.mittwoch))
}

func TestAuftragService_KommissionierungFlow(t *testing.T) {
	f := newServiceFixture(t)
	created, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
		Positionen: []CreatePositionInput{
			{ArtikelID: f.artikel1.ID, Menge: decimal.NewFromFloat(10)},
		},
	})
	require.NoError(t, err)
	picker := uuid.New()

	_, err = f.svc.StartKommissionierung(context.Background(), created.ID)
	require.NoError(t, err)

	resp, err := f.svc.KommissionierePosition(context.Background(), created.ID, created.Positionen[0].ID,
		KommissionierePositionRequest{IstGewicht: decimal.NewFromFloat(9.6)})
	require.NoError(t, err)
	// repriced by actual weight: 9.6 x 32.50
	assert.True(t, resp.Gesamtpreis.Equal(decimal.NewFromFloat(312.00)))

	resp, err = f.svc.FinishKommissionierung(context.Background(), created.ID, picker)
	require.NoError(t, err)
	assert.Equal(t, "fertig", resp.Kommissioniert)
	assert.Equal(t, "in_bearbeitung", resp.Status)
	require.NotNil(t, resp.KommissioniertVon)
	assert.Equal(t, picker, *resp.KommissioniertVon)
}

func TestAuftragService_List_StatusTrioFilter(t *testing.T) {
	f := newServiceFixture(t)

	status := "offen"
	kommissioniert := "gestartet"
	kontrolliert := "offen"
	_, _, err := f.svc.List(context.Background(), AuftragListFilter{
		Status:         &status,
		Kommissioniert: &kommissioniert,
		Kontrolliert:   &kontrolliert,
	})
	require.NoError(t, err)

	assert.Equal(t, "offen", f.auftraege.lastFilter.Filters["status"])
	assert.Equal(t, "gestartet", f.auftraege.lastFilter.Filters["kommissioniert"])
	assert.Equal(t, "offen", f.auftraege.lastFilter.Filters["kontrolliert"])
}

func TestAuftragService_Update_Bemerkung(t *testing.T) {
	f := newServiceFixture(t)
	created, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
	})
	require.NoError(t, err)

	bemerkung := "Anlieferung erst ab 7 Uhr"
	resp, err := f.svc.Update(context.Background(), created.ID, UpdateAuftragRequest{Bemerkung: &bemerkung})
	require.NoError(t, err)
	assert.Equal(t, bemerkung, resp.Bemerkung)
}

func TestAuftragService_Update_NonOffen(t *testing.T) {
	f := newServiceFixture(t)
	created, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
		Positionen: []CreatePositionInput{
			{ArtikelID: f.artikel1.ID, Menge: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	_, err = f.svc.Stornieren(context.Background(), created.ID, StornoRequest{Grund: "test"})
	require.NoError(t, err)

	bemerkung := "zu spaet"
	_, err = f.svc.Update(context.Background(), created.ID, UpdateAuftragRequest{Bemerkung: &bemerkung})
	require.Error(t, err)
}

func TestAuftragService_Stornieren(t *testing.T) {
	f := newServiceFixture(t)
	created, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
		Positionen: []CreatePositionInput{
			{ArtikelID: f.artikel1.ID, Menge: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	f.events.events = nil

	resp, err := f.svc.Stornieren(context.Background(), created.ID, StornoRequest{Grund: "Kunde hat abbestellt"})
	require.NoError(t, err)
	assert.Equal(t, "storniert", resp.Status)
	assert.Equal(t, []string{auftrag.EventTypeAuftragStorniert}, f.events.typeNames())
}

func TestAuftragService_Delete_PublishesGeloescht(t *testing.T) {
	f := newServiceFixture(t)
	created, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
	})
	require.NoError(t, err)
	f.events.events = nil

	require.NoError(t, f.svc.Delete(context.Background(), created.ID))
	assert.Equal(t, []string{auftrag.EventTypeAuftragGeloescht}, f.events.typeNames())

	_, err = f.svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAuftragService_Delete_NonOffen(t *testing.T) {
	f := newServiceFixture(t)
	created, err := f.svc.Create(context.Background(), CreateAuftragRequest{
		KundeID:     f.kunde.ID,
		Lieferdatum: f.mittwoch,
		Positionen: []CreatePositionInput{
			{ArtikelID: f.artikel1.ID, Menge: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	_, err = f.svc.Stornieren(context.Background(), created.ID, StornoRequest{Grund: "test"})
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
}
