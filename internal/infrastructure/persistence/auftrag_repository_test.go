package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/auftrag"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuftrag(t *testing.T, nummer string, lieferdatum time.Time) *auftrag.Auftrag {
	t.Helper()
	a, err := auftrag.NewAuftrag(nummer, uuid.New(), "Metzgerei Schmitz", "west", lieferdatum)
	require.NoError(t, err)
	a.ClearDomainEvents()
	return a
}

func addTestPosition(t *testing.T, a *auftrag.Auftrag, menge float64) *auftrag.ArtikelPosition {
	t.Helper()
	pos, err := a.AddPosition(uuid.New(), "ART-100", "Rinderfilet", artikel.EinheitKilogramm,
		decimal.NewFromFloat(menge), decimal.NewFromInt(1), valueobject.NewMoneyEURFromFloat(32.50))
	require.NoError(t, err)
	a.ClearDomainEvents()
	return pos
}

func TestGormAuftragRepository_SaveAndFind(t *testing.T) {
	db := newSQLiteDB(t, &auftrag.Auftrag{}, &auftrag.ArtikelPosition{})
	repo := NewGormAuftragRepository(db)
	ctx := context.Background()
	lieferdatum := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	t.Run("saves order with line items", func(t *testing.T) {
		a := newTestAuftrag(t, "A-2026-00001", lieferdatum)
		addTestPosition(t, a, 10)
		addTestPosition(t, a, 5)

		require.NoError(t, repo.Save(ctx, a))

		found, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "A-2026-00001", found.Auftragsnummer)
		assert.Len(t, found.Positionen, 2)
		assert.True(t, found.Gesamtgewicht.Equal(decimal.NewFromInt(15)))
	})

	t.Run("removed line items disappear on the next save", func(t *testing.T) {
		a := newTestAuftrag(t, "A-2026-00002", lieferdatum)
		pos := addTestPosition(t, a, 10)
		addTestPosition(t, a, 5)
		require.NoError(t, repo.Save(ctx, a))

		require.NoError(t, a.RemovePosition(pos.ID))
		a.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, a))

		found, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, found.Positionen, 1)
		assert.True(t, found.Gesamtgewicht.Equal(decimal.NewFromInt(5)))
	})

	t.Run("finds order by Auftragsnummer", func(t *testing.T) {
		found, err := repo.FindByNummer(ctx, "A-2026-00001")
		require.NoError(t, err)
		assert.Equal(t, "A-2026-00001", found.Auftragsnummer)
	})

	t.Run("unknown order returns ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormAuftragRepository_GenerateAuftragsnummer(t *testing.T) {
	db := newSQLiteDB(t, &auftrag.Auftrag{}, &auftrag.ArtikelPosition{})
	repo := NewGormAuftragRepository(db)
	ctx := context.Background()
	year := time.Now().Year()
	lieferdatum := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	t.Run("first number of the year", func(t *testing.T) {
		nummer, err := repo.GenerateAuftragsnummer(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("A-%d-00001", year), nummer)
	})

	t.Run("continues the sequence", func(t *testing.T) {
		a := newTestAuftrag(t, fmt.Sprintf("A-%d-00041", year), lieferdatum)
		require.NoError(t, repo.Save(ctx, a))

		nummer, err := repo.GenerateAuftragsnummer(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("A-%d-00042", year), nummer)
	})
}

func TestGormAuftragRepository_FindByLieferdatum(t *testing.T) {
	db := newSQLiteDB(t, &auftrag.Auftrag{}, &auftrag.ArtikelPosition{})
	repo := NewGormAuftragRepository(db)
	ctx := context.Background()
	lieferdatum := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	west := newTestAuftrag(t, "A-2026-00001", lieferdatum)
	require.NoError(t, repo.Save(ctx, west))
	ost, err := auftrag.NewAuftrag("A-2026-00002", uuid.New(), "Gasthof Löwen", "ost", lieferdatum)
	require.NoError(t, err)
	ost.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, ost))
	andererTag := newTestAuftrag(t, "A-2026-00003", lieferdatum.AddDate(0, 0, 1))
	require.NoError(t, repo.Save(ctx, andererTag))

	t.Run("filters by region", func(t *testing.T) {
		auftraege, err := repo.FindByLieferdatum(ctx, lieferdatum, "west")
		require.NoError(t, err)
		require.Len(t, auftraege, 1)
		assert.Equal(t, "A-2026-00001", auftraege[0].Auftragsnummer)
	})

	t.Run("empty region returns the whole day", func(t *testing.T) {
		auftraege, err := repo.FindByLieferdatum(ctx, lieferdatum, "")
		require.NoError(t, err)
		assert.Len(t, auftraege, 2)
	})
}

func TestGormAuftragRepository_Delete(t *testing.T) {
	db := newSQLiteDB(t, &auftrag.Auftrag{}, &auftrag.ArtikelPosition{})
	repo := NewGormAuftragRepository(db)
	ctx := context.Background()
	lieferdatum := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	a := newTestAuftrag(t, "A-2026-00001", lieferdatum)
	addTestPosition(t, a, 10)
	require.NoError(t, repo.Save(ctx, a))

	require.NoError(t, repo.Delete(ctx, a.ID))

	_, err := repo.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var posCount int64
	require.NoError(t, db.Model(&auftrag.ArtikelPosition{}).Count(&posCount).Error)
	assert.Zero(t, posCount)
}

func TestGormAuftragRepository_FindAllFilters(t *testing.T) {
	db := newSQLiteDB(t, &auftrag.Auftrag{}, &auftrag.ArtikelPosition{})
	repo := NewGormAuftragRepository(db)
	ctx := context.Background()
	lieferdatum := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	a := newTestAuftrag(t, "A-2026-00001", lieferdatum)
	require.NoError(t, repo.Save(ctx, a))
	b := newTestAuftrag(t, "A-2026-00002", lieferdatum)
	require.NoError(t, b.Stornieren("Kunde hat abbestellt"))
	b.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, b))

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = "storniert"

		auftraege, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, auftraege, 1)
		assert.Equal(t, "A-2026-00002", auftraege[0].Auftragsnummer)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("filters by delivery date window", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["lieferdatum"] = lieferdatum

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
