// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the Idempotency
// model used to implement safe-retry semantics for POST /purchases.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
)

// ErrDuplicate indicates that a row already exists for a unique key:
// an idempotency record for the same (patient_id, key), a patient phone
// number, or an inventory (pharmacy, medicine) pair.
var ErrDuplicate = errors.New("duplicate")

// isUniqueViolation reports whether err is a unique-constraint failure.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations,
// and postgres reports SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key value violates unique constraint") ||
		strings.Contains(low, "sqlstate 23505")
}

// GetIdempotency returns a non-expired record for (patientID, key) or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, patientID int64, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("patient_id = ? AND key = ? AND expires_at > ?", patientID, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}

// HasIdempotencyKey reports whether any non-expired record exists for key,
// regardless of patient. Used by the HTTP layer to gate the rate-limit
// bypass on replayed requests; the authoritative patient-scoped check is
// GetIdempotency.
func HasIdempotencyKey(ctx context.Context, db *gorm.DB, key string, now time.Time) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Idempotency{}).
		Where("key = ? AND expires_at > ?", key, now).
		Count(&n).Error
	return n > 0, err
}

// CreateIdempotency inserts a record and returns ErrDuplicate on unique violation.
func CreateIdempotency(ctx context.Context, db *gorm.DB, patientID int64, key string, purchaseID int64, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:         uuid.NewString(),
		PatientID:  patientID,
		Key:        key,
		PurchaseID: purchaseID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
