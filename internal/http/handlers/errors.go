// Package handlers – error translation
//
// This file centralizes the mapping between service-layer sentinel errors and
// the HTTP error envelope. The `detail` messages are part of the public API
// contract: clients match on them, so they are defined once here and reused by
// every handler.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pharmacy-backend/internal/repo"
	"github.com/tbourn/go-pharmacy-backend/internal/services"
)

// Detail messages returned in the `detail` field of ErrorResponse. The
// wording is stable; do not edit without a deprecation cycle.
const (
	// DetailNotFound is the generic fallback for unmatched routes and
	// missing resources.
	DetailNotFound = "Not found."
	// DetailMethodNotAllowed is returned for known routes with an
	// unsupported HTTP method.
	DetailMethodNotAllowed = "Method not allowed."

	detailPurchaseRequired = "patient, pharmacy, medicine and quantity (>0) are required."
	detailNoInventory      = "Inventory record not found for this pharmacy & medicine."
	detailNoStock          = "Insufficient stock"
	detailStockContention  = "Inventory row is locked by another purchase; retry."
	detailNearbyParams     = "Provide lat, lng, and medicine (id or name)."
	detailMedicineNotFound = "Medicine not found."

	detailInvalidBody        = "Invalid request body."
	detailNameRequired       = "name is required."
	detailPhoneRequired      = "phone_number is required."
	detailDuplicatePhone     = "patient with this phone number already exists."
	detailDuplicateInventory = "inventory for this pharmacy & medicine already exists."
	detailInvalidInventory   = "pharmacy, medicine, non-negative stock_quantity and price are required."
	detailInvalidInteraction = "patient, pharmacy and a valid type/status are required."
	detailInternal           = "Internal server error."
)

// failFromError translates shared service/repo errors into HTTP responses.
// Handler-specific validation errors (e.g. the purchase required-fields
// message) are written by the handlers directly; everything that can escape
// more than one endpoint funnels through here.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidPurchase):
		fail(c, http.StatusBadRequest, detailPurchaseRequired)
	case errors.Is(err, services.ErrInventoryNotFound):
		fail(c, http.StatusBadRequest, detailNoInventory)
	case errors.Is(err, services.ErrInsufficientStock):
		fail(c, http.StatusBadRequest, detailNoStock)
	case errors.Is(err, services.ErrLockTimeout):
		fail(c, http.StatusConflict, detailStockContention)
	case errors.Is(err, services.ErrMedicineNotFound):
		fail(c, http.StatusNotFound, detailMedicineNotFound)
	case errors.Is(err, services.ErrDuplicatePhone):
		fail(c, http.StatusBadRequest, detailDuplicatePhone)
	case errors.Is(err, services.ErrDuplicateInventory):
		fail(c, http.StatusBadRequest, detailDuplicateInventory)
	case errors.Is(err, repo.ErrNotFound):
		fail(c, http.StatusNotFound, DetailNotFound)
	default:
		fail(c, http.StatusInternalServerError, detailInternal)
	}
}
