// Inventory HTTP handlers.
//
// REST endpoints for per-pharmacy stock rows:
//   - GET    /inventory        (paginated list; ?pharmacy= / ?medicine= id filters)
//   - POST   /inventory        (create; unique (pharmacy, medicine) pair)
//   - GET    /inventory/{id}
//   - PUT    /inventory/{id}   (stock/price only; the pair is immutable)
//   - DELETE /inventory/{id}
//
// List and detail responses embed the full pharmacy and medicine objects.
// The list endpoint serves a weak ETag derived from row count and the
// newest updated_at so pollers can cheaply detect "nothing changed".
//
// Stock decrements during a sale never pass through these endpoints; they
// belong to POST /purchases and its locked protocol.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"
	"github.com/tbourn/go-pharmacy-backend/internal/services"
)

// InventoryRequest is the JSON payload for creating a stock row. The
// pharmacy and medicine fields carry entity ids.
type InventoryRequest struct {
	PharmacyID    int64           `json:"pharmacy" example:"1"`
	MedicineID    int64           `json:"medicine" example:"3"`
	StockQuantity int             `json:"stock_quantity" example:"50"`
	Price         decimal.Decimal `json:"price" swaggertype:"string" example:"45.50"`
}

// InventoryUpdateRequest is the JSON payload for updating a stock row.
// The (pharmacy, medicine) pair cannot be changed after creation.
type InventoryUpdateRequest struct {
	StockQuantity int             `json:"stock_quantity" example:"75"`
	Price         decimal.Decimal `json:"price" swaggertype:"string" example:"47.00"`
}

// ListInventory godoc
// @ID          listInventory
// @Summary     List stock rows
// @Description Returns paginated inventory with pharmacy and medicine embedded.
// @Description Supports If-None-Match against the served weak ETag.
// @Tags        Inventory
// @Produce     json
//
// @Param       pharmacy   query  int  false "Filter by pharmacy id"
// @Param       medicine   query  int  false "Filter by medicine id"
// @Param       page       query  int  false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.Page
// @Success     304  "Not modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /inventory [get]
func (h *Handlers) ListInventory(c *gin.Context) {
	ctx := c.Request.Context()
	pharmacyID := idQuery(c, "pharmacy")
	medicineID := idQuery(c, "medicine")

	// ETag pre-check (best effort); only exact when the medicine filter is
	// absent, so skip it otherwise.
	if medicineID == 0 {
		count, maxTS, err := repo.InventoryStats(ctx, h.DB, pharmacyID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"inventory:%d:%d:%d"`, pharmacyID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	page, pageSize := pagination(c)
	items, total, err := h.Inventory.ListPage(ctx, pharmacyID, medicineID, page, pageSize)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, Page{Count: total, Page: page, PageSize: pageSize, Results: items})
}

// CreateInventory godoc
// @ID          createInventory
// @Summary     Create a stock row
// @Description Registers the stock and price of a medicine at a pharmacy.
// @Description At most one row may exist per (pharmacy, medicine) pair.
// @Tags        Inventory
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.InventoryRequest  true  "Inventory payload"
//
// @Success     201  {object} domain.Inventory
// @Failure     400  {object} handlers.ErrorResponse "Bad request / duplicate pair"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /inventory [post]
func (h *Handlers) CreateInventory(c *gin.Context) {
	var req InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailInvalidBody)
		return
	}
	inv, err := h.Inventory.Create(c.Request.Context(), &domain.Inventory{
		PharmacyID:    req.PharmacyID,
		MedicineID:    req.MedicineID,
		StockQuantity: req.StockQuantity,
		Price:         req.Price,
	})
	if err != nil {
		if err == services.ErrInvalidReference {
			fail(c, http.StatusBadRequest, detailInvalidInventory)
			return
		}
		failFromError(c, err)
		return
	}
	ok(c, http.StatusCreated, inv)
}

// GetInventory godoc
// @ID          getInventory
// @Summary     Fetch a stock row
// @Tags        Inventory
// @Produce     json
//
// @Param       id  path  int  true  "Inventory ID"
//
// @Success     200  {object} domain.Inventory
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /inventory/{id} [get]
func (h *Handlers) GetInventory(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	inv, err := h.Inventory.Get(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, inv)
}

// UpdateInventory godoc
// @ID          updateInventory
// @Summary     Update stock and price
// @Tags        Inventory
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                              true  "Inventory ID"
// @Param       body  body  handlers.InventoryUpdateRequest  true  "Stock/price payload"
//
// @Success     200  {object} domain.Inventory
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /inventory/{id} [put]
func (h *Handlers) UpdateInventory(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	var req InventoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailInvalidBody)
		return
	}
	err := h.Inventory.Update(c.Request.Context(), &domain.Inventory{
		ID:            id,
		StockQuantity: req.StockQuantity,
		Price:         req.Price,
	})
	if err != nil {
		if err == services.ErrInvalidReference {
			fail(c, http.StatusBadRequest, detailInvalidInventory)
			return
		}
		failFromError(c, err)
		return
	}
	inv, err := h.Inventory.Get(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, inv)
}

// DeleteInventory godoc
// @ID          deleteInventory
// @Summary     Delete a stock row
// @Tags        Inventory
//
// @Param       id  path  int  true  "Inventory ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /inventory/{id} [delete]
func (h *Handlers) DeleteInventory(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	if err := h.Inventory.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	noContent(c)
}
