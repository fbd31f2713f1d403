// Purchase HTTP handlers.
//
// This file exposes the sale endpoints:
//   - POST /purchases       (atomic purchase: locked stock decrement + price snapshot)
//   - GET  /purchases       (list, newest first; ?patient= / ?pharmacy= filters)
//   - GET  /purchases/{id}
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// result exists for (patient, key), the handler returns that recorded purchase
// and sets `Idempotency-Replayed: true`. This makes retries after a 409 lock
// timeout safe: a retried request whose original actually committed will not
// decrement stock a second time.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pharmacy-backend/internal/http/middleware"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"
)

// PurchaseRequest is the JSON payload for executing a purchase. The patient,
// pharmacy, and medicine fields carry entity ids.
type PurchaseRequest struct {
	Patient  int64 `json:"patient" example:"1"`
	Pharmacy int64 `json:"pharmacy" example:"2"`
	Medicine int64 `json:"medicine" example:"3"`
	Quantity int   `json:"quantity" example:"2"`
}

// CreatePurchase godoc
// @ID          createPurchase
// @Summary     Execute a purchase
// @Description Atomically decrements pharmacy stock and records the sale with
// @Description the unit price snapshotted at decrement time. Supports safe
// @Description retries via the Idempotency-Key header (same patient + key →
// @Description the recorded purchase is replayed).
// @Tags        Purchases
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.PurchaseRequest  true  "Purchase payload"
//
// @Success     201  {object} domain.Purchase
// @Failure     400  {object} handlers.ErrorResponse "Validation / no inventory / insufficient stock"
// @Failure     409  {object} handlers.ErrorResponse "Inventory row locked; retry"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /purchases [post]
func (h *Handlers) CreatePurchase(c *gin.Context) {
	ctx := c.Request.Context()

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailPurchaseRequired)
		return
	}

	// Idempotency (replay path) – read validated key if present. The
	// middleware only validates shape; the authoritative (patient, key)
	// scoped lookup happens here, where the body is available.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" && req.Patient > 0 {
		if rec, err := repo.GetIdempotency(ctx, h.DB, req.Patient, idemKey, time.Now().UTC()); err == nil && rec != nil {
			if prev, err2 := repo.GetPurchase(ctx, h.DB, rec.PurchaseID); err2 == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, rec.Status, prev)
				return
			}
		}
	}

	p, err := h.Purchases.Create(ctx, req.Patient, req.Pharmacy, req.Medicine, req.Quantity)
	if err != nil {
		failFromError(c, err)
		return
	}

	// Idempotency (store path) – best effort. A concurrent duplicate means
	// both requests committed; each returns its own purchase.
	if idemKey != "" {
		_, _ = repo.CreateIdempotency(ctx, h.DB, req.Patient, idemKey, p.ID, http.StatusCreated, h.IdempotencyTTL)
	}

	ok(c, http.StatusCreated, p)
}

// ListPurchases godoc
// @ID          listPurchases
// @Summary     List purchases
// @Description Returns paginated purchases, newest first. Supports
// @Description If-None-Match against the served weak ETag.
// @Tags        Purchases
// @Produce     json
//
// @Param       patient    query  int  false "Filter by patient id"
// @Param       pharmacy   query  int  false "Filter by pharmacy id"
// @Param       page       query  int  false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.Page
// @Success     304  "Not modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /purchases [get]
func (h *Handlers) ListPurchases(c *gin.Context) {
	ctx := c.Request.Context()
	patientID := idQuery(c, "patient")
	pharmacyID := idQuery(c, "pharmacy")

	// ETag pre-check (best effort); the stats query is patient-scoped, so
	// skip it when a pharmacy filter is active.
	if pharmacyID == 0 {
		count, maxTS, err := repo.PurchasesStats(ctx, h.DB, patientID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"purchases:%d:%d:%d"`, patientID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	page, pageSize := pagination(c)
	items, total, err := h.Purchases.ListPage(ctx, patientID, pharmacyID, page, pageSize)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, Page{Count: total, Page: page, PageSize: pageSize, Results: items})
}

// GetPurchase godoc
// @ID          getPurchase
// @Summary     Fetch a purchase
// @Tags        Purchases
// @Produce     json
//
// @Param       id  path  int  true  "Purchase ID"
//
// @Success     200  {object} domain.Purchase
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /purchases/{id} [get]
func (h *Handlers) GetPurchase(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	p, err := h.Purchases.Get(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
