// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Medicine
// catalog, including the query resolution used by the nearby-availability
// search.
package repo

import (
	"context"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
)

// CreateMedicine inserts a new Medicine row.
func CreateMedicine(ctx context.Context, db *gorm.DB, m *domain.Medicine) (*domain.Medicine, error) {
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListMedicines returns a page of medicines, optionally filtered by a
// case-insensitive search over name and manufacturer.
func ListMedicines(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.Medicine, error) {
	q := db.WithContext(ctx).Model(&domain.Medicine{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(manufacturer) LIKE ?", like, like)
	}
	var out []domain.Medicine
	err := q.Order("id asc").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountMedicines returns the number of medicines matching the search term.
func CountMedicines(ctx context.Context, db *gorm.DB, search string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Medicine{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(manufacturer) LIKE ?", like, like)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// GetMedicine fetches a single medicine by ID, or ErrNotFound.
func GetMedicine(ctx context.Context, db *gorm.DB, id int64) (*domain.Medicine, error) {
	var m domain.Medicine
	if err := db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMedicine saves the mutable fields of the medicine identified by m.ID.
func UpdateMedicine(ctx context.Context, db *gorm.DB, m *domain.Medicine) error {
	res := db.WithContext(ctx).
		Model(&domain.Medicine{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"name":         m.Name,
			"manufacturer": m.Manufacturer,
			"details":      m.Details,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMedicine removes a medicine by ID, or ErrNotFound. Interaction logs
// referencing it keep their rows with the reference set to NULL.
func DeleteMedicine(ctx context.Context, db *gorm.DB, id int64) error {
	// SET_NULL semantics for interaction logs before the delete; SQLite
	// does not always enforce referential actions through AutoMigrate.
	if err := db.WithContext(ctx).
		Model(&domain.InteractionLog{}).
		Where("medicine_id = ?", id).
		Update("medicine_id", nil).Error; err != nil {
		return err
	}
	res := db.WithContext(ctx).Delete(&domain.Medicine{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindMedicines resolves a free-form query to matching medicines. The match
// is the union of an exact id (when the query parses as an integer) and a
// case-insensitive name substring, so "12" can match both medicine 12 and
// anything literally named "...12...". An empty result is not an error here;
// the service layer decides how to surface it.
func FindMedicines(ctx context.Context, db *gorm.DB, query string) ([]domain.Medicine, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	q := db.WithContext(ctx).Model(&domain.Medicine{})
	like := "%" + strings.ToLower(query) + "%"
	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		q = q.Where("id = ? OR LOWER(name) LIKE ?", id, like)
	} else {
		q = q.Where("LOWER(name) LIKE ?", like)
	}
	var out []domain.Medicine
	err := q.Order("id asc").Find(&out).Error
	return out, err
}
