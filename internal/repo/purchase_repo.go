// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Purchase
// model. Purchases are immutable: rows are created inside the purchase
// transaction and never updated afterwards.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
)

// CreatePurchase inserts a purchase row. Called with the transaction handle
// that holds the inventory row lock so the snapshot price and the decrement
// commit atomically.
func CreatePurchase(ctx context.Context, tx *gorm.DB, p *domain.Purchase) (*domain.Purchase, error) {
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListPurchases returns a page of purchases, newest first. patientID and
// pharmacyID of 0 mean "no filter".
func ListPurchases(ctx context.Context, db *gorm.DB, patientID, pharmacyID int64, offset, limit int) ([]domain.Purchase, error) {
	q := db.WithContext(ctx).Model(&domain.Purchase{})
	if patientID > 0 {
		q = q.Where("patient_id = ?", patientID)
	}
	if pharmacyID > 0 {
		q = q.Where("pharmacy_id = ?", pharmacyID)
	}
	var out []domain.Purchase
	err := q.Order("created_at desc, id desc").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountPurchases returns the number of purchases matching the filters.
func CountPurchases(ctx context.Context, db *gorm.DB, patientID, pharmacyID int64) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Purchase{})
	if patientID > 0 {
		q = q.Where("patient_id = ?", patientID)
	}
	if pharmacyID > 0 {
		q = q.Where("pharmacy_id = ?", pharmacyID)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// GetPurchase fetches a single purchase by ID, or ErrNotFound.
func GetPurchase(ctx context.Context, db *gorm.DB, id int64) (*domain.Purchase, error) {
	var p domain.Purchase
	if err := db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
