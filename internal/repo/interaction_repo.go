// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// InteractionLog model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
)

// CreateInteraction inserts a new interaction log row.
func CreateInteraction(ctx context.Context, db *gorm.DB, l *domain.InteractionLog) (*domain.InteractionLog, error) {
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// ListInteractions returns a page of interaction logs, newest first.
// patientID/pharmacyID of 0 and an empty status mean "no filter".
func ListInteractions(ctx context.Context, db *gorm.DB, patientID, pharmacyID int64, status string, offset, limit int) ([]domain.InteractionLog, error) {
	q := db.WithContext(ctx).Model(&domain.InteractionLog{})
	if patientID > 0 {
		q = q.Where("patient_id = ?", patientID)
	}
	if pharmacyID > 0 {
		q = q.Where("pharmacy_id = ?", pharmacyID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.InteractionLog
	err := q.Order("created_at desc, id desc").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountInteractions returns the number of interaction logs matching the filters.
func CountInteractions(ctx context.Context, db *gorm.DB, patientID, pharmacyID int64, status string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.InteractionLog{})
	if patientID > 0 {
		q = q.Where("patient_id = ?", patientID)
	}
	if pharmacyID > 0 {
		q = q.Where("pharmacy_id = ?", pharmacyID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// GetInteraction fetches a single interaction log by ID, or ErrNotFound.
func GetInteraction(ctx context.Context, db *gorm.DB, id int64) (*domain.InteractionLog, error) {
	var l domain.InteractionLog
	if err := db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateInteractionStatus transitions the status of an interaction log.
func UpdateInteractionStatus(ctx context.Context, db *gorm.DB, id int64, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.InteractionLog{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteInteraction removes an interaction log by ID, or ErrNotFound.
func DeleteInteraction(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(&domain.InteractionLog{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
