// Package services – CatalogService
//
// This file implements the CatalogService, which manages the pharmacy and
// medicine registries: validated create/update/delete plus searchable,
// paginated listings. Stock levels are not handled here; see
// InventoryService and PurchaseService.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"
)

// CatalogService provides CRUD over pharmacies and medicines.
type CatalogService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// CreatePharmacy validates and inserts a pharmacy. Name is required.
func (s *CatalogService) CreatePharmacy(ctx context.Context, p *domain.Pharmacy) (*domain.Pharmacy, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, ErrInvalidReference
	}
	return repo.CreatePharmacy(ctx, s.DB, p)
}

// ListPharmacies returns a page of pharmacies with the total count.
// search matches name/address; ordering accepts "name" or "-name".
func (s *CatalogService) ListPharmacies(ctx context.Context, search, ordering string, page, pageSize int) ([]domain.Pharmacy, int64, error) {
	offset, limit := pageWindow(page, pageSize)
	total, err := repo.CountPharmacies(ctx, s.DB, search)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Pharmacy{}, 0, nil
	}
	items, err := repo.ListPharmacies(ctx, s.DB, search, ordering, offset, limit)
	return items, total, err
}

// GetPharmacy returns a pharmacy by id, or repo.ErrNotFound.
func (s *CatalogService) GetPharmacy(ctx context.Context, id int64) (*domain.Pharmacy, error) {
	return repo.GetPharmacy(ctx, s.DB, id)
}

// UpdatePharmacy validates and saves a pharmacy.
func (s *CatalogService) UpdatePharmacy(ctx context.Context, p *domain.Pharmacy) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrInvalidReference
	}
	return repo.UpdatePharmacy(ctx, s.DB, p)
}

// DeletePharmacy removes a pharmacy by id, or repo.ErrNotFound.
func (s *CatalogService) DeletePharmacy(ctx context.Context, id int64) error {
	return repo.DeletePharmacy(ctx, s.DB, id)
}

// CreateMedicine validates and inserts a catalog medicine. Name is required.
func (s *CatalogService) CreateMedicine(ctx context.Context, m *domain.Medicine) (*domain.Medicine, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return nil, ErrInvalidReference
	}
	return repo.CreateMedicine(ctx, s.DB, m)
}

// ListMedicines returns a page of medicines with the total count.
// search matches name/manufacturer.
func (s *CatalogService) ListMedicines(ctx context.Context, search string, page, pageSize int) ([]domain.Medicine, int64, error) {
	offset, limit := pageWindow(page, pageSize)
	total, err := repo.CountMedicines(ctx, s.DB, search)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Medicine{}, 0, nil
	}
	items, err := repo.ListMedicines(ctx, s.DB, search, offset, limit)
	return items, total, err
}

// GetMedicine returns a medicine by id, or repo.ErrNotFound.
func (s *CatalogService) GetMedicine(ctx context.Context, id int64) (*domain.Medicine, error) {
	return repo.GetMedicine(ctx, s.DB, id)
}

// UpdateMedicine validates and saves a medicine.
func (s *CatalogService) UpdateMedicine(ctx context.Context, m *domain.Medicine) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return ErrInvalidReference
	}
	return repo.UpdateMedicine(ctx, s.DB, m)
}

// DeleteMedicine removes a medicine by id, or repo.ErrNotFound.
func (s *CatalogService) DeleteMedicine(ctx context.Context, id int64) error {
	return repo.DeleteMedicine(ctx, s.DB, id)
}

// pageWindow applies the shared pagination defaults.
func pageWindow(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return (page - 1) * pageSize, pageSize
}
