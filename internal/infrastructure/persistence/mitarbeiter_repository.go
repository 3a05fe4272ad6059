package persistence

import (
	"context"
	"errors"

	"github.com/fleischhandel/backend/internal/domain/mitarbeiter"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMitarbeiterRepository implements mitarbeiter.Repository using GORM
type GormMitarbeiterRepository struct {
	db *gorm.DB
}

// NewGormMitarbeiterRepository creates a new GormMitarbeiterRepository
func NewGormMitarbeiterRepository(db *gorm.DB) *GormMitarbeiterRepository {
	return &GormMitarbeiterRepository{db: db}
}

// FindByID finds a staff member by its ID
func (r *GormMitarbeiterRepository) FindByID(ctx context.Context, id uuid.UUID) (*mitarbeiter.Mitarbeiter, error) {
	var m mitarbeiter.Mitarbeiter
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByBenutzername finds a staff member by login name
func (r *GormMitarbeiterRepository) FindByBenutzername(ctx context.Context, benutzername string) (*mitarbeiter.Mitarbeiter, error) {
	var m mitarbeiter.Mitarbeiter
	if err := r.db.WithContext(ctx).
		Where("benutzername = ?", benutzername).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindAll finds all staff members matching the filter
func (r *GormMitarbeiterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mitarbeiter.Mitarbeiter, error) {
	var mitarbeiterListe []mitarbeiter.Mitarbeiter
	query := r.applyFilter(r.db.WithContext(ctx).Model(&mitarbeiter.Mitarbeiter{}), filter)

	if err := query.Find(&mitarbeiterListe).Error; err != nil {
		return nil, err
	}
	return mitarbeiterListe, nil
}

// Count counts staff members matching the filter
func (r *GormMitarbeiterRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&mitarbeiter.Mitarbeiter{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByBenutzername checks if a staff member with the given login name exists
func (r *GormMitarbeiterRepository) ExistsByBenutzername(ctx context.Context, benutzername string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&mitarbeiter.Mitarbeiter{}).
		Where("benutzername = ?", benutzername).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a staff member
func (r *GormMitarbeiterRepository) Save(ctx context.Context, m *mitarbeiter.Mitarbeiter) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete deletes a staff member
func (r *GormMitarbeiterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&mitarbeiter.Mitarbeiter{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormMitarbeiterRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, MitarbeiterSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormMitarbeiterRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "name", "benutzername")

	for key, value := range filter.Filters {
		switch key {
		case "aktiv":
			query = query.Where("aktiv = ?", value)
		case "rolle":
			// Rollen is stored as a JSON array; a plain substring match on
			// the quoted role name is enough for the fixed role vocabulary
			if rolle, ok := value.(string); ok {
				query = query.Where("rollen LIKE ?", "%\""+rolle+"\"%")
			}
		}
	}

	return query
}

// Ensure GormMitarbeiterRepository implements mitarbeiter.Repository
var _ mitarbeiter.Repository = (*GormMitarbeiterRepository)(nil)
