// Package services – InteractionService
//
// Records patient touchpoints with pharmacies: stock queries and SMS
// notifications, each with a lifecycle status. The medicine reference is
// optional.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"
)

// InteractionService provides CRUD over interaction logs.
type InteractionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewInteractionService constructs an InteractionService.
func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{DB: db}
}

func validInteractionType(t string) bool {
	return t == domain.InteractionTypeQuery || t == domain.InteractionTypeSMS
}

func validInteractionStatus(s string) bool {
	switch s {
	case domain.InteractionStatusPending, domain.InteractionStatusSent,
		domain.InteractionStatusFailed, domain.InteractionStatusResolved:
		return true
	}
	return false
}

// Create validates and records an interaction log. An empty status
// defaults to "pending".
func (s *InteractionService) Create(ctx context.Context, l *domain.InteractionLog) (*domain.InteractionLog, error) {
	if !validInteractionType(l.Type) {
		return nil, ErrInvalidInteraction
	}
	if l.Status == "" {
		l.Status = domain.InteractionStatusPending
	}
	if !validInteractionStatus(l.Status) {
		return nil, ErrInvalidInteraction
	}
	if _, err := repo.GetPatient(ctx, s.DB, l.PatientID); err != nil {
		return nil, missingRef(err)
	}
	if _, err := repo.GetPharmacy(ctx, s.DB, l.PharmacyID); err != nil {
		return nil, missingRef(err)
	}
	if l.MedicineID != nil {
		if _, err := repo.GetMedicine(ctx, s.DB, *l.MedicineID); err != nil {
			return nil, missingRef(err)
		}
	}
	return repo.CreateInteraction(ctx, s.DB, l)
}

// ListPage returns a page of interaction logs, newest first, with the
// total count. Zero ids and an empty status mean "no filter".
func (s *InteractionService) ListPage(ctx context.Context, patientID, pharmacyID int64, status string, page, pageSize int) ([]domain.InteractionLog, int64, error) {
	if status != "" && !validInteractionStatus(status) {
		return nil, 0, ErrInvalidInteraction
	}
	offset, limit := pageWindow(page, pageSize)
	total, err := repo.CountInteractions(ctx, s.DB, patientID, pharmacyID, status)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.InteractionLog{}, 0, nil
	}
	items, err := repo.ListInteractions(ctx, s.DB, patientID, pharmacyID, status, offset, limit)
	return items, total, err
}

// Get returns an interaction log by id, or repo.ErrNotFound.
func (s *InteractionService) Get(ctx context.Context, id int64) (*domain.InteractionLog, error) {
	return repo.GetInteraction(ctx, s.DB, id)
}

// UpdateStatus transitions an interaction log to a new status.
func (s *InteractionService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !validInteractionStatus(status) {
		return ErrInvalidInteraction
	}
	err := repo.UpdateInteractionStatus(ctx, s.DB, id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	return err
}

// Delete removes an interaction log by id, or repo.ErrNotFound.
func (s *InteractionService) Delete(ctx context.Context, id int64) error {
	return repo.DeleteInteraction(ctx, s.DB, id)
}
