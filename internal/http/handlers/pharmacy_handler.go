// Pharmacy HTTP handlers.
//
// This file exposes REST endpoints for the pharmacy registry:
//   - GET    /pharmacies        (paginated list; search over name/address, ordering=name|-name)
//   - POST   /pharmacies        (register a pharmacy)
//   - GET    /pharmacies/{id}   (fetch one)
//   - PUT    /pharmacies/{id}   (full update)
//   - DELETE /pharmacies/{id}   (remove)
//
// Handlers are transport-thin: validate & normalize inputs, delegate to
// CatalogService, translate sentinel errors into the `detail` envelope.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/services"
)

// PharmacyRequest is the JSON payload for creating or updating a pharmacy.
//
// Latitude/longitude are optional; a pharmacy without both coordinates is
// excluded from the nearby-availability ranking.
type PharmacyRequest struct {
	Name        string   `json:"name" example:"City Care Pharmacy"`
	Address     string   `json:"address" example:"12 Janpath Rd, New Delhi"`
	Latitude    *float64 `json:"latitude" example:"28.6139"`
	Longitude   *float64 `json:"longitude" example:"77.209"`
	PhoneNumber string   `json:"phone_number" example:"+91-11-5550100"`
	IsActive    *bool    `json:"is_active"`
}

func (r *PharmacyRequest) toDomain(id int64) *domain.Pharmacy {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.Pharmacy{
		ID:          id,
		Name:        r.Name,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		PhoneNumber: r.PhoneNumber,
		IsActive:    active,
	}
}

// ListPharmacies godoc
// @ID          listPharmacies
// @Summary     List pharmacies
// @Description Returns a paginated list of pharmacies, optionally filtered and ordered.
// @Tags        Pharmacies
// @Produce     json
//
// @Param       search     query  string  false "Case-insensitive match over name and address"
// @Param       ordering   query  string  false "Sort order"  Enums(name, -name)
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.Page
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /pharmacies [get]
func (h *Handlers) ListPharmacies(c *gin.Context) {
	page, pageSize := pagination(c)
	items, total, err := h.Catalog.ListPharmacies(c.Request.Context(), c.Query("search"), c.Query("ordering"), page, pageSize)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, Page{Count: total, Page: page, PageSize: pageSize, Results: items})
}

// CreatePharmacy godoc
// @ID          createPharmacy
// @Summary     Register a pharmacy
// @Tags        Pharmacies
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.PharmacyRequest  true  "Pharmacy payload"
//
// @Success     201  {object} domain.Pharmacy
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /pharmacies [post]
func (h *Handlers) CreatePharmacy(c *gin.Context) {
	var req PharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailInvalidBody)
		return
	}
	p, err := h.Catalog.CreatePharmacy(c.Request.Context(), req.toDomain(0))
	if err != nil {
		if err == services.ErrInvalidReference {
			fail(c, http.StatusBadRequest, detailNameRequired)
			return
		}
		failFromError(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetPharmacy godoc
// @ID          getPharmacy
// @Summary     Fetch a pharmacy
// @Tags        Pharmacies
// @Produce     json
//
// @Param       id  path  int  true  "Pharmacy ID"
//
// @Success     200  {object} domain.Pharmacy
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /pharmacies/{id} [get]
func (h *Handlers) GetPharmacy(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	p, err := h.Catalog.GetPharmacy(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdatePharmacy godoc
// @ID          updatePharmacy
// @Summary     Update a pharmacy
// @Tags        Pharmacies
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                       true  "Pharmacy ID"
// @Param       body  body  handlers.PharmacyRequest  true  "Pharmacy payload"
//
// @Success     200  {object} domain.Pharmacy
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /pharmacies/{id} [put]
func (h *Handlers) UpdatePharmacy(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	var req PharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailInvalidBody)
		return
	}
	if err := h.Catalog.UpdatePharmacy(c.Request.Context(), req.toDomain(id)); err != nil {
		if err == services.ErrInvalidReference {
			fail(c, http.StatusBadRequest, detailNameRequired)
			return
		}
		failFromError(c, err)
		return
	}
	p, err := h.Catalog.GetPharmacy(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePharmacy godoc
// @ID          deletePharmacy
// @Summary     Delete a pharmacy
// @Tags        Pharmacies
//
// @Param       id  path  int  true  "Pharmacy ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /pharmacies/{id} [delete]
func (h *Handlers) DeletePharmacy(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	if err := h.Catalog.DeletePharmacy(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	noContent(c)
}
