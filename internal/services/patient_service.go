// Package services – PatientService
//
// Manages patient registration and lookup. Phone numbers are the primary
// identity and must be unique; duplicates surface as ErrDuplicatePhone.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"
)

// PatientService provides CRUD over patients.
type PatientService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewPatientService constructs a PatientService.
func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{DB: db}
}

// Create registers a patient. The phone number is required and unique.
func (s *PatientService) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	if p.PhoneNumber == "" {
		return nil, ErrInvalidReference
	}
	out, err := repo.CreatePatient(ctx, s.DB, p)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrDuplicatePhone
	}
	return out, err
}

// ListPage returns a page of patients with the total count.
// search matches phone number and name.
func (s *PatientService) ListPage(ctx context.Context, search string, page, pageSize int) ([]domain.Patient, int64, error) {
	offset, limit := pageWindow(page, pageSize)
	total, err := repo.CountPatients(ctx, s.DB, search)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Patient{}, 0, nil
	}
	items, err := repo.ListPatients(ctx, s.DB, search, offset, limit)
	return items, total, err
}

// Get returns a patient by id, or repo.ErrNotFound.
func (s *PatientService) Get(ctx context.Context, id int64) (*domain.Patient, error) {
	return repo.GetPatient(ctx, s.DB, id)
}

// Update saves a patient's phone number and name.
func (s *PatientService) Update(ctx context.Context, p *domain.Patient) error {
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	if p.PhoneNumber == "" {
		return ErrInvalidReference
	}
	err := repo.UpdatePatient(ctx, s.DB, p)
	if errors.Is(err, repo.ErrDuplicate) {
		return ErrDuplicatePhone
	}
	return err
}

// Delete removes a patient by id, or repo.ErrNotFound.
func (s *PatientService) Delete(ctx context.Context, id int64) error {
	return repo.DeletePatient(ctx, s.DB, id)
}
