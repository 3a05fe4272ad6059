package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleischhandel/backend/internal/domain/bestand"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormChargeRepository implements bestand.ChargeRepository using GORM
type GormChargeRepository struct {
	db *gorm.DB
}

// NewGormChargeRepository creates a new GormChargeRepository
func NewGormChargeRepository(db *gorm.DB) *GormChargeRepository {
	return &GormChargeRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*bestand.Charge, error) {
	var c bestand.Charge
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByArtikel finds batches of an article
func (r *GormChargeRepository) FindByArtikel(ctx context.Context, artikelID uuid.UUID, filter shared.Filter) ([]bestand.Charge, error) {
	var chargen []bestand.Charge
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&bestand.Charge{}).Where("artikel_id = ?", artikelID),
		filter,
	)

	if err := query.Find(&chargen).Error; err != nil {
		return nil, err
	}
	return chargen, nil
}

// FindAll finds all batches matching the filter
func (r *GormChargeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]bestand.Charge, error) {
	var chargen []bestand.Charge
	query := r.applyFilter(r.db.WithContext(ctx).Model(&bestand.Charge{}), filter)

	if err := query.Find(&chargen).Error; err != nil {
		return nil, err
	}
	return chargen, nil
}

// Save creates or updates a batch
func (r *GormChargeRepository) Save(ctx context.Context, c *bestand.Charge) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// applyFilter applies filter options to the query
func (r *GormChargeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "artikel_id":
			query = query.Where("artikel_id = ?", value)
		case "lieferant":
			query = query.Where("lieferant = ?", value)
		case "mhd_bis":
			if t, ok := value.(time.Time); ok {
				query = query.Where("mhd IS NOT NULL AND mhd <= ?", t)
			}
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ChargeSortFields, "eingangs_datum")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormChargeRepository implements bestand.ChargeRepository
var _ bestand.ChargeRepository = (*GormChargeRepository)(nil)

// GormBewegungRepository implements bestand.BewegungRepository using GORM.
// Movements are append-only; Save only ever inserts.
type GormBewegungRepository struct {
	db *gorm.DB
}

// NewGormBewegungRepository creates a new GormBewegungRepository
func NewGormBewegungRepository(db *gorm.DB) *GormBewegungRepository {
	return &GormBewegungRepository{db: db}
}

// FindByArtikel finds movements of an article
func (r *GormBewegungRepository) FindByArtikel(ctx context.Context, artikelID uuid.UUID, filter shared.Filter) ([]bestand.Bewegung, error) {
	var bewegungen []bestand.Bewegung
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&bestand.Bewegung{}).Where("artikel_id = ?", artikelID),
		filter,
	)

	if err := query.Find(&bewegungen).Error; err != nil {
		return nil, err
	}
	return bewegungen, nil
}

// FindAll finds all movements matching the filter
func (r *GormBewegungRepository) FindAll(ctx context.Context, filter shared.Filter) ([]bestand.Bewegung, error) {
	var bewegungen []bestand.Bewegung
	query := r.applyFilter(r.db.WithContext(ctx).Model(&bestand.Bewegung{}), filter)

	if err := query.Find(&bewegungen).Error; err != nil {
		return nil, err
	}
	return bewegungen, nil
}

// Count counts movements matching the filter
func (r *GormBewegungRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&bestand.Bewegung{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// bewegungSummen carries the per-type aggregates of one article
type bewegungSummen struct {
	ArtikelID uuid.UUID
	Eingang   decimal.Decimal
	Ausgang   decimal.Decimal
	Muell     decimal.Decimal
	Korrektur decimal.Decimal
}

const summenSelect = `artikel_id,
COALESCE(SUM(CASE WHEN typ = 'eingang' THEN menge ELSE 0 END), 0) AS eingang,
COALESCE(SUM(CASE WHEN typ = 'ausgang' THEN menge ELSE 0 END), 0) AS ausgang,
COALESCE(SUM(CASE WHEN typ = 'muell' THEN menge ELSE 0 END), 0) AS muell,
COALESCE(SUM(CASE WHEN typ = 'korrektur' THEN menge ELSE 0 END), 0) AS korrektur`

// SumByArtikel returns the signed stock total of one article
func (r *GormBewegungRepository) SumByArtikel(ctx context.Context, artikelID uuid.UUID) (bestand.Bestandsuebersicht, error) {
	var row bewegungSummen
	err := r.db.WithContext(ctx).
		Model(&bestand.Bewegung{}).
		Select(summenSelect).
		Where("artikel_id = ?", artikelID).
		Group("artikel_id").
		Scan(&row).Error
	if err != nil {
		return bestand.Bestandsuebersicht{}, err
	}
	if row.ArtikelID == uuid.Nil {
		// no movements yet: an empty overview
		row.ArtikelID = artikelID
	}
	return row.uebersicht(), nil
}

// SumAll returns stock overviews for every article with movements
func (r *GormBewegungRepository) SumAll(ctx context.Context) ([]bestand.Bestandsuebersicht, error) {
	var rows []bewegungSummen
	err := r.db.WithContext(ctx).
		Model(&bestand.Bewegung{}).
		Select(summenSelect).
		Group("artikel_id").
		Order("artikel_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	uebersichten := make([]bestand.Bestandsuebersicht, len(rows))
	for i, row := range rows {
		uebersichten[i] = row.uebersicht()
	}
	return uebersichten, nil
}

func (s bewegungSummen) uebersicht() bestand.Bestandsuebersicht {
	return bestand.Bestandsuebersicht{
		ArtikelID:  s.ArtikelID,
		Eingang:    s.Eingang,
		Ausgang:    s.Ausgang,
		Muell:      s.Muell,
		Korrektur:  s.Korrektur,
		Verfuegbar: s.Eingang.Sub(s.Ausgang).Sub(s.Muell).Add(s.Korrektur),
	}
}

// Save appends a movement
func (r *GormBewegungRepository) Save(ctx context.Context, b *bestand.Bewegung) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// SaveAll appends several movements in one transaction
func (r *GormBewegungRepository) SaveAll(ctx context.Context, bewegungen []*bestand.Bewegung) error {
	if len(bewegungen) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range bewegungen {
			if err := tx.Create(b).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormBewegungRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BewegungSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBewegungRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "artikel_id":
			query = query.Where("artikel_id = ?", value)
		case "typ":
			query = query.Where("typ = ?", value)
		case "charge_id":
			query = query.Where("charge_id = ?", value)
		case "referenz":
			query = query.Where("referenz = ?", value)
		case "von":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "bis":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormBewegungRepository implements bestand.BewegungRepository
var _ bestand.BewegungRepository = (*GormBewegungRepository)(nil)
