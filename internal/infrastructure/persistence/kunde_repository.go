package persistence

import (
	"context"
	"errors"

	"github.com/fleischhandel/backend/internal/domain/kunde"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormKundeRepository implements kunde.Repository using GORM
type GormKundeRepository struct {
	db *gorm.DB
}

// NewGormKundeRepository creates a new GormKundeRepository
func NewGormKundeRepository(db *gorm.DB) *GormKundeRepository {
	return &GormKundeRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormKundeRepository) FindByID(ctx context.Context, id uuid.UUID) (*kunde.Kunde, error) {
	var k kunde.Kunde
	if err := r.db.WithContext(ctx).First(&k, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &k, nil
}

// FindByKundennummer finds a customer by its Kundennummer
func (r *GormKundeRepository) FindByKundennummer(ctx context.Context, nummer string) (*kunde.Kunde, error) {
	var k kunde.Kunde
	if err := r.db.WithContext(ctx).
		Where("kundennummer = ?", nummer).
		First(&k).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &k, nil
}

// FindAll finds all customers matching the filter
func (r *GormKundeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]kunde.Kunde, error) {
	var kunden []kunde.Kunde
	query := r.applyFilter(r.db.WithContext(ctx).Model(&kunde.Kunde{}), filter)

	if err := query.Find(&kunden).Error; err != nil {
		return nil, err
	}
	return kunden, nil
}

// FindByRegion finds all active customers of a region ordered by Firma
func (r *GormKundeRepository) FindByRegion(ctx context.Context, region string) ([]kunde.Kunde, error) {
	var kunden []kunde.Kunde
	if err := r.db.WithContext(ctx).
		Where("region = ?", region).
		Order("firma ASC").
		Find(&kunden).Error; err != nil {
		return nil, err
	}
	return kunden, nil
}

// Count counts customers matching the filter
func (r *GormKundeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&kunde.Kunde{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByKundennummer checks if a customer with the given Kundennummer exists
func (r *GormKundeRepository) ExistsByKundennummer(ctx context.Context, nummer string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&kunde.Kunde{}).
		Where("kundennummer = ?", nummer).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a customer
func (r *GormKundeRepository) Save(ctx context.Context, k *kunde.Kunde) error {
	return r.db.WithContext(ctx).Save(k).Error
}

// Delete deletes a customer
func (r *GormKundeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&kunde.Kunde{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormKundeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, KundeSortFields, "firma")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormKundeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "firma", "kundennummer", "ansprechpartner", "adresse_ort")

	for key, value := range filter.Filters {
		switch key {
		case "region":
			query = query.Where("region = ?", value)
		case "aktiv":
			query = query.Where("aktiv = ?", value)
		case "is_genehmigt":
			query = query.Where("is_genehmigt = ?", value)
		}
	}

	return query
}

// Ensure GormKundeRepository implements kunde.Repository
var _ kunde.Repository = (*GormKundeRepository)(nil)

// GormVerkaeuferRepository implements kunde.VerkaeuferRepository using GORM
type GormVerkaeuferRepository struct {
	db *gorm.DB
}

// NewGormVerkaeuferRepository creates a new GormVerkaeuferRepository
func NewGormVerkaeuferRepository(db *gorm.DB) *GormVerkaeuferRepository {
	return &GormVerkaeuferRepository{db: db}
}

// FindByID finds a sales representative by its ID
func (r *GormVerkaeuferRepository) FindByID(ctx context.Context, id uuid.UUID) (*kunde.Verkaeufer, error) {
	var v kunde.Verkaeufer
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FindAll finds all sales representatives matching the filter
func (r *GormVerkaeuferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]kunde.Verkaeufer, error) {
	var verkaeufer []kunde.Verkaeufer
	query := r.applyFilter(r.db.WithContext(ctx).Model(&kunde.Verkaeufer{}), filter)

	if err := query.Find(&verkaeufer).Error; err != nil {
		return nil, err
	}
	return verkaeufer, nil
}

// Count counts sales representatives matching the filter
func (r *GormVerkaeuferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&kunde.Verkaeufer{}), filter.Search, "name")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a sales representative
func (r *GormVerkaeuferRepository) Save(ctx context.Context, v *kunde.Verkaeufer) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// Delete deletes a sales representative
func (r *GormVerkaeuferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&kunde.Verkaeufer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormVerkaeuferRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "name")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, VerkaeuferSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormVerkaeuferRepository implements kunde.VerkaeuferRepository
var _ kunde.VerkaeuferRepository = (*GormVerkaeuferRepository)(nil)
