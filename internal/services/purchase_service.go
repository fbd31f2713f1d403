// Package services – PurchaseService
//
// This file implements the PurchaseService, which owns the sale protocol:
// a single database transaction that locks the inventory row, verifies
// stock, applies a guarded relative decrement, and records an immutable
// purchase with the unit price snapshotted from the locked row. Either the
// decrement and the purchase row both commit, or neither does.
//
// Observability: public methods are OpenTelemetry-instrumented; spans
// include the entity identifiers and requested quantity.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PurchaseService provides the atomic purchase operation plus read access
// to the purchase history.
type PurchaseService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewPurchaseService constructs a PurchaseService.
func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{DB: db}
}

// Create executes a purchase of qty units of medicineID at pharmacyID for
// patientID.
//
// Validation failures (unknown references, qty <= 0) return
// ErrInvalidPurchase. A missing stock row returns ErrInventoryNotFound,
// too little stock returns ErrInsufficientStock, and a lock acquisition
// failure returns ErrLockTimeout (retryable). On success the returned
// purchase carries the price that was current on the locked row.
func (s *PurchaseService) Create(ctx context.Context, patientID, pharmacyID, medicineID int64, qty int) (*domain.Purchase, error) {
	tr := otel.Tracer("services/PurchaseService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.Int64("patient.id", patientID),
			attribute.Int64("pharmacy.id", pharmacyID),
			attribute.Int64("medicine.id", medicineID),
			attribute.Int("quantity", qty),
		),
	)
	defer span.End()

	if patientID <= 0 || pharmacyID <= 0 || medicineID <= 0 || qty <= 0 {
		return nil, ErrInvalidPurchase
	}

	// Referenced entities must exist before we touch stock. These reads are
	// outside the transaction on purpose: they never mutate and keeping them
	// out shortens the window the inventory row lock is held.
	if _, err := repo.GetPatient(ctx, s.DB, patientID); err != nil {
		return nil, refErr(err)
	}
	if _, err := repo.GetPharmacy(ctx, s.DB, pharmacyID); err != nil {
		return nil, refErr(err)
	}
	if _, err := repo.GetMedicine(ctx, s.DB, medicineID); err != nil {
		return nil, refErr(err)
	}

	var purchase *domain.Purchase
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := repo.GetInventoryForUpdate(ctx, tx, pharmacyID, medicineID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInventoryNotFound
			}
			if isLockTimeout(err) {
				return ErrLockTimeout
			}
			return err
		}
		if inv.StockQuantity < qty {
			return ErrInsufficientStock
		}

		if err := repo.DecrementStock(ctx, tx, inv.ID, qty); err != nil {
			if errors.Is(err, repo.ErrStockConflict) {
				return ErrInsufficientStock
			}
			if isLockTimeout(err) {
				return ErrLockTimeout
			}
			return err
		}

		// Snapshot the locked row's price; later price edits never touch
		// this purchase.
		purchase, err = repo.CreatePurchase(ctx, tx, &domain.Purchase{
			PatientID:  patientID,
			PharmacyID: pharmacyID,
			MedicineID: medicineID,
			Quantity:   qty,
			Price:      inv.Price,
		})
		return err
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return purchase, nil
}

// ListPage returns a page of purchases, newest first, with the total count.
// patientID/pharmacyID of 0 mean "no filter".
func (s *PurchaseService) ListPage(ctx context.Context, patientID, pharmacyID int64, page, pageSize int) ([]domain.Purchase, int64, error) {
	tr := otel.Tracer("services/PurchaseService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int64("patient.id", patientID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountPurchases(ctx, s.DB, patientID, pharmacyID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Purchase{}, 0, nil
	}
	items, err := repo.ListPurchases(ctx, s.DB, patientID, pharmacyID, offset, pageSize)
	return items, total, err
}

// Get returns a single purchase by id, or repo.ErrNotFound.
func (s *PurchaseService) Get(ctx context.Context, id int64) (*domain.Purchase, error) {
	return repo.GetPurchase(ctx, s.DB, id)
}

// refErr maps a missing referenced entity to the purchase validation error.
func refErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidPurchase
	}
	return err
}

// isLockTimeout reports whether err looks like a lock-acquisition failure.
// SQLite surfaces these as "database is locked"/"database table is locked"
// (SQLITE_BUSY family), postgres as lock_timeout or lock_not_available.
func isLockTimeout(err error) bool {
	if err == nil {
		return false
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "database is locked") ||
		strings.Contains(low, "database table is locked") ||
		strings.Contains(low, "lock timeout") ||
		strings.Contains(low, "could not obtain lock") ||
		strings.Contains(low, "canceling statement due to lock timeout") ||
		strings.Contains(low, "sqlstate 55p03")
}
