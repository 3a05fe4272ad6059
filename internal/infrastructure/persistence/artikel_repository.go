package persistence

import (
	"context"
	"errors"

	"github.com/fleischhandel/backend/internal/domain/artikel"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormArtikelRepository implements artikel.Repository using GORM
type GormArtikelRepository struct {
	db *gorm.DB
}

// NewGormArtikelRepository creates a new GormArtikelRepository
func NewGormArtikelRepository(db *gorm.DB) *GormArtikelRepository {
	return &GormArtikelRepository{db: db}
}

// FindByID finds an article by its ID
func (r *GormArtikelRepository) FindByID(ctx context.Context, id uuid.UUID) (*artikel.Artikel, error) {
	var a artikel.Artikel
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByNummer finds an article by its Artikelnummer
func (r *GormArtikelRepository) FindByNummer(ctx context.Context, nummer string) (*artikel.Artikel, error) {
	var a artikel.Artikel
	if err := r.db.WithContext(ctx).
		Where("artikel_nummer = ?", nummer).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindAll finds all articles matching the filter
func (r *GormArtikelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]artikel.Artikel, error) {
	var arten []artikel.Artikel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&artikel.Artikel{}), filter)

	if err := query.Find(&arten).Error; err != nil {
		return nil, err
	}
	return arten, nil
}

// Count counts articles matching the filter
func (r *GormArtikelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&artikel.Artikel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNummer checks if an article with the given Artikelnummer exists
func (r *GormArtikelRepository) ExistsByNummer(ctx context.Context, nummer string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&artikel.Artikel{}).
		Where("artikel_nummer = ?", nummer).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an article
func (r *GormArtikelRepository) Save(ctx context.Context, a *artikel.Artikel) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete deletes an article
func (r *GormArtikelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&artikel.Artikel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormArtikelRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ArtikelSortFields, "artikel_nummer")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormArtikelRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "artikel_nummer", "bezeichnung")

	for key, value := range filter.Filters {
		switch key {
		case "kategorie":
			query = query.Where("kategorie = ?", value)
		case "einheit":
			query = query.Where("einheit = ?", value)
		case "aktiv":
			query = query.Where("aktiv = ?", value)
		case "ausverkauft":
			query = query.Where("ausverkauft = ?", value)
		}
	}

	return query
}

// Ensure GormArtikelRepository implements artikel.Repository
var _ artikel.Repository = (*GormArtikelRepository)(nil)
