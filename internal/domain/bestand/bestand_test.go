package bestand

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCharge(t *testing.T) {
	artikelID := uuid.New()

	t.Run("valid batch", func(t *testing.T) {
		mhd := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		c, err := NewCharge(artikelID, decimal.NewFromFloat(120.5), &mhd, "Schlachthof Nord", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.False(t, c.IstAbgelaufen(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)))
		assert.True(t, c.IstAbgelaufen(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("no MHD never expires", func(t *testing.T) {
		c, err := NewCharge(artikelID, decimal.NewFromInt(50), nil, "", time.Now())
		require.NoError(t, err)
		assert.False(t, c.IstAbgelaufen(time.Now().AddDate(10, 0, 0)))
	})

	t.Run("rejects non-positive Menge", func(t *testing.T) {
		_, err := NewCharge(artikelID, decimal.Zero, nil, "", time.Now())
		assert.Error(t, err)
	})
}

func TestNewBewegung(t *testing.T) {
	artikelID := uuid.New()
	mitarbeiterID := uuid.New()

	t.Run("eingang", func(t *testing.T) {
		b, err := NewBewegung(artikelID, nil, BewegungEingang, decimal.NewFromInt(100), "", "", mitarbeiterID)
		require.NoError(t, err)
		assert.True(t, b.Wirkung().Equal(decimal.NewFromInt(100)))
	})

	t.Run("ausgang counts negative", func(t *testing.T) {
		b, err := NewBewegung(artikelID, nil, BewegungAusgang, decimal.NewFromInt(30), "A-2026-00001", "", mitarbeiterID)
		require.NoError(t, err)
		assert.True(t, b.Wirkung().Equal(decimal.NewFromInt(-30)))
	})

	t.Run("muell requires Grund", func(t *testing.T) {
		_, err := NewBewegung(artikelID, nil, BewegungMuell, decimal.NewFromInt(5), "", "", mitarbeiterID)
		assert.Error(t, err)

		b, err := NewBewegung(artikelID, nil, BewegungMuell, decimal.NewFromInt(5), "", "MHD ueberschritten", mitarbeiterID)
		require.NoError(t, err)
		assert.True(t, b.Wirkung().Equal(decimal.NewFromInt(-5)))
	})

	t.Run("korrektur keeps its own sign", func(t *testing.T) {
		b, err := NewBewegung(artikelID, nil, BewegungKorrektur, decimal.NewFromInt(-12), "", "Inventur", mitarbeiterID)
		require.NoError(t, err)
		assert.True(t, b.Wirkung().Equal(decimal.NewFromInt(-12)))

		_, err = NewBewegung(artikelID, nil, BewegungKorrektur, decimal.Zero, "", "", mitarbeiterID)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive Menge outside korrektur", func(t *testing.T) {
		_, err := NewBewegung(artikelID, nil, BewegungEingang, decimal.NewFromInt(-1), "", "", mitarbeiterID)
		assert.Error(t, err)
	})

	t.Run("requires ErstelltVon", func(t *testing.T) {
		_, err := NewBewegung(artikelID, nil, BewegungEingang, decimal.NewFromInt(1), "", "", uuid.Nil)
		assert.Error(t, err)
	})
}

func TestBerechne(t *testing.T) {
	artikelID := uuid.New()
	andereID := uuid.New()
	mitarbeiterID := uuid.New()

	mk := func(typ BewegungsTyp, menge int64, grund string) Bewegung {
		b, err := NewBewegung(artikelID, nil, typ, decimal.NewFromInt(menge), "", grund, mitarbeiterID)
		require.NoError(t, err)
		return *b
	}

	fremd, err := NewBewegung(andereID, nil, BewegungEingang, decimal.NewFromInt(999), "", "", mitarbeiterID)
	require.NoError(t, err)

	bewegungen := []Bewegung{
		mk(BewegungEingang, 200, ""),
		mk(BewegungAusgang, 80, ""),
		mk(BewegungMuell, 10, "verdorben"),
		mk(BewegungKorrektur, -5, "Inventur"),
		*fremd,
	}

	u := Berechne(artikelID, bewegungen)
	assert.True(t, u.Eingang.Equal(decimal.NewFromInt(200)))
	assert.True(t, u.Ausgang.Equal(decimal.NewFromInt(80)))
	assert.True(t, u.Muell.Equal(decimal.NewFromInt(10)))
	assert.True(t, u.Korrektur.Equal(decimal.NewFromInt(-5)))
	assert.True(t, u.Verfuegbar.Equal(decimal.NewFromInt(105)))
}
