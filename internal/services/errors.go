// Package services defines the business logic for pharmacies, patients,
// medicines, inventory, purchases, and interaction logs. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// Purchase-related errors.
var (
	// ErrInvalidPurchase is returned when a purchase request is missing a
	// referenced entity or carries a non-positive quantity.
	ErrInvalidPurchase = errors.New("patient, pharmacy, medicine and quantity (>0) are required")

	// ErrInventoryNotFound indicates that no stock row exists for the
	// requested (pharmacy, medicine) pair.
	ErrInventoryNotFound = errors.New("inventory record not found")

	// ErrInsufficientStock is returned when the locked stock row holds fewer
	// units than the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrLockTimeout is returned when the inventory row lock could not be
	// acquired in time. The request is retryable.
	ErrLockTimeout = errors.New("inventory row is locked, retry")
)

// Availability-related errors.
var (
	// ErrMedicineNotFound indicates that a medicine query (id or name
	// fragment) matched nothing in the catalog.
	ErrMedicineNotFound = errors.New("medicine not found")
)

// Catalog/inventory CRUD errors.
var (
	// ErrDuplicatePhone is returned when a patient is registered with a
	// phone number that already exists.
	ErrDuplicatePhone = errors.New("phone number already registered")

	// ErrDuplicateInventory is returned when a stock row already exists for
	// the (pharmacy, medicine) pair.
	ErrDuplicateInventory = errors.New("inventory row already exists for this pharmacy & medicine")

	// ErrInvalidReference is returned when a request references a pharmacy,
	// patient, or medicine that does not exist.
	ErrInvalidReference = errors.New("referenced entity does not exist")

	// ErrInvalidInteraction is returned when an interaction log carries an
	// unknown type or status value.
	ErrInvalidInteraction = errors.New("invalid interaction type or status")
)
