package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleischhandel/backend/internal/domain/bestand"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/zerlegung"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormZerlegungRepository implements zerlegung.Repository using GORM
type GormZerlegungRepository struct {
	db *gorm.DB
}

// NewGormZerlegungRepository creates a new GormZerlegungRepository
func NewGormZerlegungRepository(db *gorm.DB) *GormZerlegungRepository {
	return &GormZerlegungRepository{db: db}
}

// FindByID finds a cutting order by its ID
func (r *GormZerlegungRepository) FindByID(ctx context.Context, id uuid.UUID) (*zerlegung.Zerlegeauftrag, error) {
	var z zerlegung.Zerlegeauftrag
	if err := r.db.WithContext(ctx).
		Preload("Teile").
		First(&z, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &z, nil
}

// FindAll finds all cutting orders matching the filter
func (r *GormZerlegungRepository) FindAll(ctx context.Context, filter shared.Filter) ([]zerlegung.Zerlegeauftrag, error) {
	var auftraege []zerlegung.Zerlegeauftrag
	query := r.applyFilter(r.db.WithContext(ctx).Model(&zerlegung.Zerlegeauftrag{}), filter)

	if err := query.Preload("Teile").Find(&auftraege).Error; err != nil {
		return nil, err
	}
	return auftraege, nil
}

// Count counts cutting orders matching the filter
func (r *GormZerlegungRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&zerlegung.Zerlegeauftrag{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByDatum returns all cutting orders of a date
func (r *GormZerlegungRepository) FindByDatum(ctx context.Context, datum time.Time) ([]zerlegung.Zerlegeauftrag, error) {
	start, end := tagesbereich(datum)

	var auftraege []zerlegung.Zerlegeauftrag
	if err := r.db.WithContext(ctx).
		Where("datum >= ? AND datum < ?", start, end).
		Preload("Teile").
		Order("created_at ASC").
		Find(&auftraege).Error; err != nil {
		return nil, err
	}
	return auftraege, nil
}

// Save creates or updates a cutting order together with its cuts
func (r *GormZerlegungRepository) Save(ctx context.Context, z *zerlegung.Zerlegeauftrag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveZerlegeauftrag(tx, z)
	})
}

// SaveMitBewegungen persists the completed order and its stock movements
// in one transaction, so a fertig order never exists without its bookings
func (r *GormZerlegungRepository) SaveMitBewegungen(ctx context.Context, z *zerlegung.Zerlegeauftrag, bewegungen []*bestand.Bewegung) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveZerlegeauftrag(tx, z); err != nil {
			return err
		}
		for _, b := range bewegungen {
			if err := tx.Create(b).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func saveZerlegeauftrag(tx *gorm.DB, z *zerlegung.Zerlegeauftrag) error {
	if err := tx.Omit("Teile").Save(z).Error; err != nil {
		return err
	}

	currentIDs := make([]uuid.UUID, len(z.Teile))
	for i, teil := range z.Teile {
		currentIDs[i] = teil.ID
	}

	if len(currentIDs) > 0 {
		if err := tx.Where("zerlegeauftrag_id = ? AND id NOT IN ?", z.ID, currentIDs).
			Delete(&zerlegung.ZerlegeTeil{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("zerlegeauftrag_id = ?", z.ID).
			Delete(&zerlegung.ZerlegeTeil{}).Error; err != nil {
			return err
		}
	}

	for i := range z.Teile {
		z.Teile[i].ZerlegeauftragID = z.ID
		if err := tx.Save(&z.Teile[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete deletes a cutting order together with its cuts
func (r *GormZerlegungRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("zerlegeauftrag_id = ?", id).Delete(&zerlegung.ZerlegeTeil{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&zerlegung.Zerlegeauftrag{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormZerlegungRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ZerlegungSortFields, "datum")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormZerlegungRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "artikel_id":
			query = query.Where("artikel_id = ?", value)
		case "datum":
			if t, ok := value.(time.Time); ok {
				start, end := tagesbereich(t)
				query = query.Where("datum >= ? AND datum < ?", start, end)
			}
		}
	}

	return query
}

// Ensure GormZerlegungRepository implements zerlegung.Repository
var _ zerlegung.Repository = (*GormZerlegungRepository)(nil)
