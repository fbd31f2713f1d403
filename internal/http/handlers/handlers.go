// Package handlers – construction and shared request plumbing
//
// This file defines the Handlers aggregate that the router wires into routes,
// along with the small request helpers shared by every endpoint (id path
// params, pagination window, list envelope).
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/services"
	"github.com/tbourn/go-pharmacy-backend/internal/utils"
)

// maxPageSize caps the page_size query parameter to keep list responses and
// COUNT windows bounded.
const maxPageSize = 100

// Handlers bundles all HTTP handlers and their dependencies.
// A single instance is created at startup and registered on the router.
type Handlers struct {
	DB *gorm.DB

	Catalog      *services.CatalogService
	Patients     *services.PatientService
	Inventory    *services.InventoryService
	Purchases    *services.PurchaseService
	Availability *services.AvailabilityService
	Interactions *services.InteractionService

	// IdempotencyTTL is the validity window for Idempotency-Key replays on
	// POST /purchases.
	IdempotencyTTL time.Duration
}

// New constructs the handler aggregate over a shared database handle.
func New(db *gorm.DB, idempotencyTTL time.Duration) *Handlers {
	return &Handlers{
		DB:             db,
		Catalog:        services.NewCatalogService(db),
		Patients:       services.NewPatientService(db),
		Inventory:      services.NewInventoryService(db),
		Purchases:      services.NewPurchaseService(db),
		Availability:   services.NewAvailabilityService(db),
		Interactions:   services.NewInteractionService(db),
		IdempotencyTTL: idempotencyTTL,
	}
}

// Page is the envelope for list responses.
type Page struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  any   `json:"results"`
}

// pagination reads ?page / ?page_size with defaults (1, 20) and clamps the
// page size to maxPageSize.
func pagination(c *gin.Context) (page, pageSize int) {
	page = utils.AtoiDefault(c.Query("page"), 1)
	pageSize = utils.AtoiDefault(c.Query("page_size"), 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// idParam parses the :id path parameter as a positive int64.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// idQuery parses an optional numeric query parameter used as a list filter
// (e.g. ?pharmacy=3). Absent or unparseable values return 0 ("no filter").
func idQuery(c *gin.Context, name string) int64 {
	v := c.Query(name)
	if v == "" {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
