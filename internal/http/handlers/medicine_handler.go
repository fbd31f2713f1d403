// Medicine HTTP handlers.
//
// REST endpoints for the medicine catalog:
//   - GET    /medicines        (paginated list; search over name/manufacturer)
//   - POST   /medicines
//   - GET    /medicines/{id}
//   - PUT    /medicines/{id}
//   - DELETE /medicines/{id}   (interaction logs keep a NULL medicine ref)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/services"
)

// MedicineRequest is the JSON payload for creating or updating a medicine.
type MedicineRequest struct {
	Name         string `json:"name" example:"Paracetamol"`
	Manufacturer string `json:"manufacturer" example:"Cipla"`
	Details      string `json:"details" example:"500mg tablets"`
}

// ListMedicines godoc
// @ID          listMedicines
// @Summary     List medicines
// @Tags        Medicines
// @Produce     json
//
// @Param       search     query  string  false "Case-insensitive match over name and manufacturer"
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.Page
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /medicines [get]
func (h *Handlers) ListMedicines(c *gin.Context) {
	page, pageSize := pagination(c)
	items, total, err := h.Catalog.ListMedicines(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, Page{Count: total, Page: page, PageSize: pageSize, Results: items})
}

// CreateMedicine godoc
// @ID          createMedicine
// @Summary     Add a medicine to the catalog
// @Tags        Medicines
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.MedicineRequest  true  "Medicine payload"
//
// @Success     201  {object} domain.Medicine
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /medicines [post]
func (h *Handlers) CreateMedicine(c *gin.Context) {
	var req MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailInvalidBody)
		return
	}
	m, err := h.Catalog.CreateMedicine(c.Request.Context(), &domain.Medicine{
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		Details:      req.Details,
	})
	if err != nil {
		if err == services.ErrInvalidReference {
			fail(c, http.StatusBadRequest, detailNameRequired)
			return
		}
		failFromError(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}

// GetMedicine godoc
// @ID          getMedicine
// @Summary     Fetch a medicine
// @Tags        Medicines
// @Produce     json
//
// @Param       id  path  int  true  "Medicine ID"
//
// @Success     200  {object} domain.Medicine
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /medicines/{id} [get]
func (h *Handlers) GetMedicine(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	m, err := h.Catalog.GetMedicine(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// UpdateMedicine godoc
// @ID          updateMedicine
// @Summary     Update a medicine
// @Tags        Medicines
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                       true  "Medicine ID"
// @Param       body  body  handlers.MedicineRequest  true  "Medicine payload"
//
// @Success     200  {object} domain.Medicine
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /medicines/{id} [put]
func (h *Handlers) UpdateMedicine(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	var req MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailInvalidBody)
		return
	}
	err := h.Catalog.UpdateMedicine(c.Request.Context(), &domain.Medicine{
		ID:           id,
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		Details:      req.Details,
	})
	if err != nil {
		if err == services.ErrInvalidReference {
			fail(c, http.StatusBadRequest, detailNameRequired)
			return
		}
		failFromError(c, err)
		return
	}
	m, err := h.Catalog.GetMedicine(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMedicine godoc
// @ID          deleteMedicine
// @Summary     Delete a medicine
// @Tags        Medicines
//
// @Param       id  path  int  true  "Medicine ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /medicines/{id} [delete]
func (h *Handlers) DeleteMedicine(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	if err := h.Catalog.DeleteMedicine(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	noContent(c)
}
