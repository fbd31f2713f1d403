// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
)

// InventoryStats returns aggregate metadata for stock rows scoped to an
// optional pharmacy filter: the total number of rows and the maximum
// UpdatedAt timestamp among them.
//
// When there are no matching rows, the returned count is 0 and maxUpdatedAt
// is nil.
//
// Return values:
//   - count:        total inventory rows in scope
//   - maxUpdatedAt: pointer to the greatest UpdatedAt, or nil if no rows
//   - err:          database error, if any
func InventoryStats(ctx context.Context, db *gorm.DB, pharmacyID int64) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Inventory{})
	if pharmacyID > 0 {
		q = q.Where("pharmacy_id = ?", pharmacyID)
	}

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// PurchasesStats returns aggregate metadata for a patient's purchases: the
// total number of rows and the maximum CreatedAt timestamp among them.
// Purchases are immutable, so CreatedAt is the freshness signal.
//
// Return values:
//   - count:        total purchases for patientID (all purchases when 0)
//   - maxCreatedAt: pointer to the greatest CreatedAt, or nil if no rows
//   - err:          database error, if any
func PurchasesStats(ctx context.Context, db *gorm.DB, patientID int64) (count int64, maxCreatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Purchase{})
	if patientID > 0 {
		q = q.Where("patient_id = ?", patientID)
	}

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
