package persistence

import (
	"context"
	"errors"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/tour"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRegionRuleRepository implements tour.RegionRuleRepository using GORM
type GormRegionRuleRepository struct {
	db *gorm.DB
}

// NewGormRegionRuleRepository creates a new GormRegionRuleRepository
func NewGormRegionRuleRepository(db *gorm.DB) *GormRegionRuleRepository {
	return &GormRegionRuleRepository{db: db}
}

// FindByID finds a region rule by its ID
func (r *GormRegionRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*tour.RegionRule, error) {
	var rule tour.RegionRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindByRegion finds the rule of a region
func (r *GormRegionRuleRepository) FindByRegion(ctx context.Context, region string) (*tour.RegionRule, error) {
	var rule tour.RegionRule
	if err := r.db.WithContext(ctx).
		Where("region = ?", region).
		First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindAll finds all region rules matching the filter
func (r *GormRegionRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tour.RegionRule, error) {
	query := r.db.WithContext(ctx).Model(&tour.RegionRule{})

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var rules []tour.RegionRule
	if err := query.Order("region ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Save creates or updates a region rule
func (r *GormRegionRuleRepository) Save(ctx context.Context, rule *tour.RegionRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// Delete deletes a region rule
func (r *GormRegionRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tour.RegionRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRegionRuleRepository implements tour.RegionRuleRepository
var _ tour.RegionRuleRepository = (*GormRegionRuleRepository)(nil)

// GormVorlageRepository implements tour.VorlageRepository using GORM
type GormVorlageRepository struct {
	db *gorm.DB
}

// NewGormVorlageRepository creates a new GormVorlageRepository
func NewGormVorlageRepository(db *gorm.DB) *GormVorlageRepository {
	return &GormVorlageRepository{db: db}
}

// FindByRegion finds the stop-order template of a region
func (r *GormVorlageRepository) FindByRegion(ctx context.Context, region string) (*tour.ReihenfolgeVorlage, error) {
	var v tour.ReihenfolgeVorlage
	if err := r.db.WithContext(ctx).
		Where("region = ?", region).
		First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FindAll finds all stop-order templates matching the filter
func (r *GormVorlageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tour.ReihenfolgeVorlage, error) {
	query := r.db.WithContext(ctx).Model(&tour.ReihenfolgeVorlage{})

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var vorlagen []tour.ReihenfolgeVorlage
	if err := query.Order("region ASC").Find(&vorlagen).Error; err != nil {
		return nil, err
	}
	return vorlagen, nil
}

// Save creates or updates a stop-order template
func (r *GormVorlageRepository) Save(ctx context.Context, v *tour.ReihenfolgeVorlage) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// DeleteByRegion deletes the template of a region
func (r *GormVorlageRepository) DeleteByRegion(ctx context.Context, region string) error {
	result := r.db.WithContext(ctx).Delete(&tour.ReihenfolgeVorlage{}, "region = ?", region)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormVorlageRepository implements tour.VorlageRepository
var _ tour.VorlageRepository = (*GormVorlageRepository)(nil)
