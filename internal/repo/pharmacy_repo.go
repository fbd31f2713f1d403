// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Pharmacy
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a pharmacy is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.CatalogService) which enforces business rules and maps
// errors to the API surface.
package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreatePharmacy inserts a new Pharmacy row. On success it returns the
// persisted record with its generated ID.
func CreatePharmacy(ctx context.Context, db *gorm.DB, p *domain.Pharmacy) (*domain.Pharmacy, error) {
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListPharmacies returns a page of pharmacies. A non-empty search term is
// matched case-insensitively against name and address. Ordering accepts
// "name" or "-name"; anything else falls back to primary-key order.
func ListPharmacies(ctx context.Context, db *gorm.DB, search, ordering string, offset, limit int) ([]domain.Pharmacy, error) {
	q := db.WithContext(ctx).Model(&domain.Pharmacy{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", like, like)
	}
	switch ordering {
	case "name":
		q = q.Order("name asc")
	case "-name":
		q = q.Order("name desc")
	default:
		q = q.Order("id asc")
	}
	var out []domain.Pharmacy
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountPharmacies returns the total number of pharmacies matching the
// search term (same matching rules as ListPharmacies).
func CountPharmacies(ctx context.Context, db *gorm.DB, search string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Pharmacy{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", like, like)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// GetPharmacy fetches a single pharmacy by ID, or ErrNotFound.
func GetPharmacy(ctx context.Context, db *gorm.DB, id int64) (*domain.Pharmacy, error) {
	var p domain.Pharmacy
	if err := db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePharmacy saves the full pharmacy record identified by p.ID.
// Returns ErrNotFound when the row does not exist.
func UpdatePharmacy(ctx context.Context, db *gorm.DB, p *domain.Pharmacy) error {
	res := db.WithContext(ctx).
		Model(&domain.Pharmacy{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":         p.Name,
			"address":      p.Address,
			"latitude":     p.Latitude,
			"longitude":    p.Longitude,
			"phone_number": p.PhoneNumber,
			"is_active":    p.IsActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePharmacy removes a pharmacy by ID. Returns ErrNotFound when no row
// was deleted.
func DeletePharmacy(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(&domain.Pharmacy{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
