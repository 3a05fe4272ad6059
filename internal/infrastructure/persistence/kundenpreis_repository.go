package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleischhandel/backend/internal/domain/preis"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormKundenPreisRepository implements preis.Repository using GORM
type GormKundenPreisRepository struct {
	db *gorm.DB
}

// NewGormKundenPreisRepository creates a new GormKundenPreisRepository
func NewGormKundenPreisRepository(db *gorm.DB) *GormKundenPreisRepository {
	return &GormKundenPreisRepository{db: db}
}

// FindByID finds a price override by its ID
func (r *GormKundenPreisRepository) FindByID(ctx context.Context, id uuid.UUID) (*preis.KundenPreis, error) {
	var p preis.KundenPreis
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByKunde finds all price overrides of a customer
func (r *GormKundenPreisRepository) FindByKunde(ctx context.Context, kundeID uuid.UUID) ([]preis.KundenPreis, error) {
	var preise []preis.KundenPreis
	if err := r.db.WithContext(ctx).
		Where("kunde_id = ?", kundeID).
		Order("artikel_id ASC, gueltig_ab DESC").
		Find(&preise).Error; err != nil {
		return nil, err
	}
	return preise, nil
}

// FindByKundeArtikel finds all overrides for one customer/article pair
func (r *GormKundenPreisRepository) FindByKundeArtikel(ctx context.Context, kundeID, artikelID uuid.UUID) ([]preis.KundenPreis, error) {
	var preise []preis.KundenPreis
	if err := r.db.WithContext(ctx).
		Where("kunde_id = ? AND artikel_id = ?", kundeID, artikelID).
		Order("gueltig_ab DESC").
		Find(&preise).Error; err != nil {
		return nil, err
	}
	return preise, nil
}

// FindEffective returns the overrides for (kunde, artikel) valid on datum.
// The winner among them is picked by preis.Resolve.
func (r *GormKundenPreisRepository) FindEffective(ctx context.Context, kundeID, artikelID uuid.UUID, datum time.Time) ([]preis.KundenPreis, error) {
	var preise []preis.KundenPreis
	if err := r.db.WithContext(ctx).
		Where("kunde_id = ? AND artikel_id = ?", kundeID, artikelID).
		Where("gueltig_ab <= ?", datum).
		Where("gueltig_bis IS NULL OR gueltig_bis >= ?", datum).
		Order("gueltig_ab DESC").
		Find(&preise).Error; err != nil {
		return nil, err
	}
	return preise, nil
}

// Save creates or updates a price override
func (r *GormKundenPreisRepository) Save(ctx context.Context, p *preis.KundenPreis) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete deletes a price override
func (r *GormKundenPreisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&preis.KundenPreis{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormKundenPreisRepository implements preis.Repository
var _ preis.Repository = (*GormKundenPreisRepository)(nil)
