// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Inventory
// model: per-pharmacy stock rows, the locked reads used by the purchase
// transaction, and the guarded decrement that keeps stock non-negative.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
)

// ErrStockConflict indicates that a guarded stock decrement matched no row:
// the inventory row was deleted or its stock dropped below the requested
// quantity between the locked read and the update.
var ErrStockConflict = errors.New("stock conflict")

// CreateInventory inserts a new stock row. Returns ErrDuplicate when a row
// already exists for the (pharmacy, medicine) pair.
func CreateInventory(ctx context.Context, db *gorm.DB, inv *domain.Inventory) (*domain.Inventory, error) {
	if err := db.WithContext(ctx).Create(inv).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return inv, nil
}

// ListInventory returns a page of stock rows with their pharmacy and
// medicine preloaded. pharmacyID/medicineID of 0 mean "no filter".
func ListInventory(ctx context.Context, db *gorm.DB, pharmacyID, medicineID int64, offset, limit int) ([]domain.Inventory, error) {
	q := db.WithContext(ctx).
		Model(&domain.Inventory{}).
		Preload("Pharmacy").
		Preload("Medicine")
	if pharmacyID > 0 {
		q = q.Where("pharmacy_id = ?", pharmacyID)
	}
	if medicineID > 0 {
		q = q.Where("medicine_id = ?", medicineID)
	}
	var out []domain.Inventory
	err := q.Order("id asc").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountInventory returns the number of stock rows matching the filters.
func CountInventory(ctx context.Context, db *gorm.DB, pharmacyID, medicineID int64) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Inventory{})
	if pharmacyID > 0 {
		q = q.Where("pharmacy_id = ?", pharmacyID)
	}
	if medicineID > 0 {
		q = q.Where("medicine_id = ?", medicineID)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// GetInventory fetches a stock row by ID with associations preloaded.
func GetInventory(ctx context.Context, db *gorm.DB, id int64) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := db.WithContext(ctx).
		Preload("Pharmacy").
		Preload("Medicine").
		First(&inv, id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInventoryForUpdate fetches the stock row for a (pharmacy, medicine)
// pair under SELECT ... FOR UPDATE. Must be called inside a transaction;
// the lock is held until that transaction commits or rolls back. On SQLite
// the clause is a no-op and the database-level write lock serializes
// writers instead.
func GetInventoryForUpdate(ctx context.Context, tx *gorm.DB, pharmacyID, medicineID int64) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pharmacy_id = ? AND medicine_id = ?", pharmacyID, medicineID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// DecrementStock applies a relative, guarded decrement:
//
//	UPDATE inventory SET stock_quantity = stock_quantity - ?
//	WHERE id = ? AND stock_quantity >= ?
//
// The guard makes the decrement safe even if another writer slipped in
// between the locked read and this statement; zero affected rows surface
// as ErrStockConflict and the enclosing transaction must roll back.
func DecrementStock(ctx context.Context, tx *gorm.DB, inventoryID int64, qty int) error {
	res := tx.WithContext(ctx).
		Model(&domain.Inventory{}).
		Where("id = ? AND stock_quantity >= ?", inventoryID, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

// UpdateInventory saves stock quantity and price for the row inv.ID.
func UpdateInventory(ctx context.Context, db *gorm.DB, inv *domain.Inventory) error {
	res := db.WithContext(ctx).
		Model(&domain.Inventory{}).
		Where("id = ?", inv.ID).
		Updates(map[string]any{
			"stock_quantity": inv.StockQuantity,
			"price":          inv.Price,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteInventory removes a stock row by ID, or ErrNotFound.
func DeleteInventory(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(&domain.Inventory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAvailability returns every in-stock row for the given medicines with
// pharmacy and medicine preloaded. Used by the nearby-availability search;
// distance filtering and ranking happen in the service layer.
func ListAvailability(ctx context.Context, db *gorm.DB, medicineIDs []int64) ([]domain.Inventory, error) {
	if len(medicineIDs) == 0 {
		return nil, nil
	}
	var out []domain.Inventory
	err := db.WithContext(ctx).
		Preload("Pharmacy").
		Preload("Medicine").
		Where("medicine_id IN ? AND stock_quantity > 0", medicineIDs).
		Find(&out).Error
	return out, err
}
