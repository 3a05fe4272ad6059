package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fleischhandel/backend/internal/domain/auftrag"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuftragRepository implements auftrag.Repository using GORM
type GormAuftragRepository struct {
	db *gorm.DB
}

// NewGormAuftragRepository creates a new GormAuftragRepository
func NewGormAuftragRepository(db *gorm.DB) *GormAuftragRepository {
	return &GormAuftragRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormAuftragRepository) FindByID(ctx context.Context, id uuid.UUID) (*auftrag.Auftrag, error) {
	var a auftrag.Auftrag
	if err := r.db.WithContext(ctx).
		Preload("Positionen").
		First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByNummer finds an order by its Auftragsnummer
func (r *GormAuftragRepository) FindByNummer(ctx context.Context, auftragsnummer string) (*auftrag.Auftrag, error) {
	var a auftrag.Auftrag
	if err := r.db.WithContext(ctx).
		Preload("Positionen").
		Where("auftragsnummer = ?", auftragsnummer).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindAll finds all orders matching the filter
func (r *GormAuftragRepository) FindAll(ctx context.Context, filter shared.Filter) ([]auftrag.Auftrag, error) {
	var auftraege []auftrag.Auftrag
	query := r.applyFilter(r.db.WithContext(ctx).Model(&auftrag.Auftrag{}), filter)

	if err := query.Preload("Positionen").Find(&auftraege).Error; err != nil {
		return nil, err
	}
	return auftraege, nil
}

// Count counts orders matching the filter
func (r *GormAuftragRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&auftrag.Auftrag{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByLieferdatum returns all orders of a delivery date, optionally
// narrowed to a region
func (r *GormAuftragRepository) FindByLieferdatum(ctx context.Context, datum time.Time, region string) ([]auftrag.Auftrag, error) {
	start, end := tagesbereich(datum)
	query := r.db.WithContext(ctx).
		Where("lieferdatum >= ? AND lieferdatum < ?", start, end)
	if region != "" {
		query = query.Where("region = ?", region)
	}

	var auftraege []auftrag.Auftrag
	if err := query.Preload("Positionen").Order("auftragsnummer ASC").Find(&auftraege).Error; err != nil {
		return nil, err
	}
	return auftraege, nil
}

// FindByKunde finds orders of a customer
func (r *GormAuftragRepository) FindByKunde(ctx context.Context, kundeID uuid.UUID, filter shared.Filter) ([]auftrag.Auftrag, error) {
	var auftraege []auftrag.Auftrag
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&auftrag.Auftrag{}).Where("kunde_id = ?", kundeID),
		filter,
	)

	if err := query.Preload("Positionen").Find(&auftraege).Error; err != nil {
		return nil, err
	}
	return auftraege, nil
}

// GenerateAuftragsnummer generates a unique order number.
// Format: A-YYYY-NNNNN (e.g. A-2026-00001)
func (r *GormAuftragRepository) GenerateAuftragsnummer(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("A-%d-", year)

	var last auftrag.Auftrag
	err := r.db.WithContext(ctx).
		Model(&auftrag.Auftrag{}).
		Where("auftragsnummer LIKE ?", prefix+"%").
		Order("auftragsnummer DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.Auftragsnummer != "" {
		parts := strings.Split(last.Auftragsnummer, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	nummer := fmt.Sprintf("%s%05d", prefix, nextNum)

	exists, err := r.existsByNummer(ctx, nummer)
	if err != nil {
		return "", err
	}
	for i := 0; exists && i < 100; i++ {
		nextNum++
		nummer = fmt.Sprintf("%s%05d", prefix, nextNum)
		exists, err = r.existsByNummer(ctx, nummer)
		if err != nil {
			return "", err
		}
	}

	return nummer, nil
}

func (r *GormAuftragRepository) existsByNummer(ctx context.Context, nummer string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&auftrag.Auftrag{}).
		Where("auftragsnummer = ?", nummer).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an order together with its line items
func (r *GormAuftragRepository) Save(ctx context.Context, a *auftrag.Auftrag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Positionen").Save(a).Error; err != nil {
			return err
		}

		// Reconcile line items: drop removed ones, save the rest
		currentIDs := make([]uuid.UUID, len(a.Positionen))
		for i, p := range a.Positionen {
			currentIDs[i] = p.ID
		}

		if len(currentIDs) > 0 {
			if err := tx.Where("auftrag_id = ? AND id NOT IN ?", a.ID, currentIDs).
				Delete(&auftrag.ArtikelPosition{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("auftrag_id = ?", a.ID).
				Delete(&auftrag.ArtikelPosition{}).Error; err != nil {
				return err
			}
		}

		for i := range a.Positionen {
			a.Positionen[i].AuftragID = a.ID
			if err := tx.Save(&a.Positionen[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes an order together with its line items
func (r *GormAuftragRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("auftrag_id = ?", id).Delete(&auftrag.ArtikelPosition{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&auftrag.Auftrag{}, "id = ?", id)
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
func (r *GormAuftragRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AuftragSortFields, "lieferdatum")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAuftragRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "auftragsnummer", "kunde_firma")

	for key, value := range filter.Filters {
		switch key {
		case "kunde_id":
			query = query.Where("kunde_id = ?", value)
		case "region":
			query = query.Where("region = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "kommissioniert":
			query = query.Where("kommissioniert = ?", value)
		case "kontrolliert":
			query = query.Where("kontrolliert = ?", value)
		case "lieferdatum":
			if t, ok := value.(time.Time); ok {
				start, end := tagesbereich(t)
				query = query.Where("lieferdatum >= ? AND lieferdatum < ?", start, end)
			}
		case "lieferdatum_ab":
			if t, ok := value.(time.Time); ok {
				query = query.Where("lieferdatum >= ?", t)
			}
		case "lieferdatum_bis":
			if t, ok := value.(time.Time); ok {
				query = query.Where("lieferdatum <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormAuftragRepository implements auftrag.Repository
var _ auftrag.Repository = (*GormAuftragRepository)(nil)
