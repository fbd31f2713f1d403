// Package services – InventoryService
//
// Manages per-pharmacy stock rows outside the sale path: restocking, price
// changes, and listings. The unique (pharmacy, medicine) constraint is
// enforced here as ErrDuplicateInventory. Sale-time decrements never go
// through this service; they belong to PurchaseService's locked protocol.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"
)

// InventoryService provides CRUD over stock rows.
type InventoryService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewInventoryService constructs an InventoryService.
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// Create inserts a stock row after verifying both referenced entities
// exist. A second row for the same (pharmacy, medicine) pair returns
// ErrDuplicateInventory; negative stock returns ErrInvalidReference.
func (s *InventoryService) Create(ctx context.Context, inv *domain.Inventory) (*domain.Inventory, error) {
	if inv.StockQuantity < 0 || inv.Price.IsNegative() {
		return nil, ErrInvalidReference
	}
	if _, err := repo.GetPharmacy(ctx, s.DB, inv.PharmacyID); err != nil {
		return nil, missingRef(err)
	}
	if _, err := repo.GetMedicine(ctx, s.DB, inv.MedicineID); err != nil {
		return nil, missingRef(err)
	}
	out, err := repo.CreateInventory(ctx, s.DB, inv)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrDuplicateInventory
	}
	if err != nil {
		return nil, err
	}
	return repo.GetInventory(ctx, s.DB, out.ID)
}

// ListPage returns a page of stock rows (associations preloaded) with the
// total count. pharmacyID/medicineID of 0 mean "no filter".
func (s *InventoryService) ListPage(ctx context.Context, pharmacyID, medicineID int64, page, pageSize int) ([]domain.Inventory, int64, error) {
	offset, limit := pageWindow(page, pageSize)
	total, err := repo.CountInventory(ctx, s.DB, pharmacyID, medicineID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Inventory{}, 0, nil
	}
	items, err := repo.ListInventory(ctx, s.DB, pharmacyID, medicineID, offset, limit)
	return items, total, err
}

// Get returns a stock row by id with associations, or repo.ErrNotFound.
func (s *InventoryService) Get(ctx context.Context, id int64) (*domain.Inventory, error) {
	return repo.GetInventory(ctx, s.DB, id)
}

// Update saves stock quantity and price for an existing row.
func (s *InventoryService) Update(ctx context.Context, inv *domain.Inventory) error {
	if inv.StockQuantity < 0 || inv.Price.IsNegative() {
		return ErrInvalidReference
	}
	return repo.UpdateInventory(ctx, s.DB, inv)
}

// Delete removes a stock row by id, or repo.ErrNotFound.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	return repo.DeleteInventory(ctx, s.DB, id)
}

// missingRef maps a not-found error on a referenced entity to
// ErrInvalidReference.
func missingRef(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidReference
	}
	return err
}
