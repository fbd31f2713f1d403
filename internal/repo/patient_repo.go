// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Patient
// model. Phone numbers are unique; a duplicate insert surfaces ErrDuplicate.
package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
)

// CreatePatient inserts a new Patient row. Returns ErrDuplicate when the
// phone number is already registered.
func CreatePatient(ctx context.Context, db *gorm.DB, p *domain.Patient) (*domain.Patient, error) {
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return p, nil
}

// ListPatients returns a page of patients, optionally filtered by a
// case-insensitive search over phone number and name.
func ListPatients(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.Patient, error) {
	q := db.WithContext(ctx).Model(&domain.Patient{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(phone_number) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	var out []domain.Patient
	err := q.Order("id asc").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountPatients returns the number of patients matching the search term.
func CountPatients(ctx context.Context, db *gorm.DB, search string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Patient{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(phone_number) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// GetPatient fetches a single patient by ID, or ErrNotFound.
func GetPatient(ctx context.Context, db *gorm.DB, id int64) (*domain.Patient, error) {
	var p domain.Patient
	if err := db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePatient saves the mutable fields of the patient identified by p.ID.
func UpdatePatient(ctx context.Context, db *gorm.DB, p *domain.Patient) error {
	res := db.WithContext(ctx).
		Model(&domain.Patient{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"phone_number": p.PhoneNumber,
			"name":         p.Name,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePatient removes a patient by ID, or ErrNotFound.
func DeletePatient(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(&domain.Patient{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
