package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/tour"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTourRepository implements tour.Repository using GORM
type GormTourRepository struct {
	db *gorm.DB
}

// NewGormTourRepository creates a new GormTourRepository
func NewGormTourRepository(db *gorm.DB) *GormTourRepository {
	return &GormTourRepository{db: db}
}

// FindByID finds a tour by its ID
func (r *GormTourRepository) FindByID(ctx context.Context, id uuid.UUID) (*tour.Tour, error) {
	var t tour.Tour
	if err := r.db.WithContext(ctx).
		Preload("Stops", stopOrder).
		First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll finds all tours matching the filter
func (r *GormTourRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tour.Tour, error) {
	var touren []tour.Tour
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tour.Tour{}), filter)

	if err := query.Preload("Stops", stopOrder).Find(&touren).Error; err != nil {
		return nil, err
	}
	return touren, nil
}

// Count counts tours matching the filter
func (r *GormTourRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&tour.Tour{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByDatumRegion returns all tours of a date and region ordered by
// Laufnummer (empty region means all regions)
func (r *GormTourRepository) FindByDatumRegion(ctx context.Context, datum time.Time, region string) ([]tour.Tour, error) {
	start, end := tagesbereich(datum)
	query := r.db.WithContext(ctx).
		Where("datum >= ? AND datum < ?", start, end)
	if region != "" {
		query = query.Where("region = ?", region)
	}

	var touren []tour.Tour
	if err := query.Preload("Stops", stopOrder).
		Order("region ASC, laufnummer ASC").
		Find(&touren).Error; err != nil {
		return nil, err
	}
	return touren, nil
}

// FindByAuftrag returns the tour carrying the stop of an order on a date
func (r *GormTourRepository) FindByAuftrag(ctx context.Context, auftragID uuid.UUID, datum time.Time) (*tour.Tour, error) {
	start, end := tagesbereich(datum)

	var stop tour.TourStop
	err := r.db.WithContext(ctx).
		Where("auftrag_id = ?", auftragID).
		Where("tour_id IN (?)", r.db.Model(&tour.Tour{}).Select("id").
			Where("datum >= ? AND datum < ?", start, end)).
		First(&stop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	return r.FindByID(ctx, stop.TourID)
}

// NextLaufnummer returns max(Laufnummer)+1 for (datum, region)
func (r *GormTourRepository) NextLaufnummer(ctx context.Context, datum time.Time, region string) (int, error) {
	start, end := tagesbereich(datum)

	var max int
	err := r.db.WithContext(ctx).
		Model(&tour.Tour{}).
		Select("COALESCE(MAX(laufnummer), 0)").
		Where("datum >= ? AND datum < ? AND region = ?", start, end, region).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Save creates or updates a tour together with its stops
func (r *GormTourRepository) Save(ctx context.Context, t *tour.Tour) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveInTx(tx, t)
	})
}

// SaveAll persists several tours in one transaction, used by MoveStop and
// overflow reassignment
func (r *GormTourRepository) SaveAll(ctx context.Context, tours []*tour.Tour) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range tours {
			if err := r.saveInTx(tx, t); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormTourRepository) saveInTx(tx *gorm.DB, t *tour.Tour) error {
	if err := tx.Omit("Stops").Save(t).Error; err != nil {
		return err
	}

	// Reconcile stops: drop removed ones, save the rest
	currentIDs := make([]uuid.UUID, len(t.Stops))
	for i, s := range t.Stops {
		currentIDs[i] = s.ID
	}

	if len(currentIDs) > 0 {
		if err := tx.Where("tour_id = ? AND id NOT IN ?", t.ID, currentIDs).
			Delete(&tour.TourStop{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("tour_id = ?", t.ID).
			Delete(&tour.TourStop{}).Error; err != nil {
			return err
		}
	}

	for i := range t.Stops {
		t.Stops[i].TourID = t.ID
		if err := tx.Save(&t.Stops[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete deletes a tour together with its stops
func (r *GormTourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tour_id = ?", id).Delete(&tour.TourStop{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&tour.Tour{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// stopOrder keeps preloaded stops in their planned sequence
func stopOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// applyFilter applies filter options to the query
func (r *GormTourRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TourSortFields, "datum")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if orderBy == "datum" {
		return query.Order("datum " + orderDir + ", region ASC, laufnummer ASC")
	}
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTourRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "fahrzeug", "region")

	for key, value := range filter.Filters {
		switch key {
		case "region":
			query = query.Where("region = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "fahrer_id":
			query = query.Where("fahrer_id = ?", value)
		case "datum":
			if t, ok := value.(time.Time); ok {
				start, end := tagesbereich(t)
				query = query.Where("datum >= ? AND datum < ?", start, end)
			}
		}
	}

	return query
}

// Ensure GormTourRepository implements tour.Repository
var _ tour.Repository = (*GormTourRepository)(nil)
