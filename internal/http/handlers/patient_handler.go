// Patient HTTP handlers.
//
// REST endpoints for patient registration and lookup:
//   - GET    /patients        (paginated list; search over phone_number/name)
//   - POST   /patients        (register; phone number unique)
//   - GET    /patients/{id}
//   - PUT    /patients/{id}
//   - DELETE /patients/{id}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/services"
)

// PatientRequest is the JSON payload for creating or updating a patient.
// The phone number is the primary identity and must be unique; the name is
// optional, mirroring walk-in registration.
type PatientRequest struct {
	PhoneNumber string  `json:"phone_number" example:"+91-9810000001"`
	Name        *string `json:"name" example:"Asha Verma"`
}

// ListPatients godoc
// @ID          listPatients
// @Summary     List patients
// @Tags        Patients
// @Produce     json
//
// @Param       search     query  string  false "Case-insensitive match over phone number and name"
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.Page
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /patients [get]
func (h *Handlers) ListPatients(c *gin.Context) {
	page, pageSize := pagination(c)
	items, total, err := h.Patients.ListPage(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, Page{Count: total, Page: page, PageSize: pageSize, Results: items})
}

// CreatePatient godoc
// @ID          createPatient
// @Summary     Register a patient
// @Tags        Patients
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.PatientRequest  true  "Patient payload"
//
// @Success     201  {object} domain.Patient
// @Failure     400  {object} handlers.ErrorResponse "Bad request / duplicate phone"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /patients [post]
func (h *Handlers) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailInvalidBody)
		return
	}
	p, err := h.Patients.Create(c.Request.Context(), &domain.Patient{PhoneNumber: req.PhoneNumber, Name: req.Name})
	if err != nil {
		if err == services.ErrInvalidReference {
			fail(c, http.StatusBadRequest, detailPhoneRequired)
			return
		}
		failFromError(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetPatient godoc
// @ID          getPatient
// @Summary     Fetch a patient
// @Tags        Patients
// @Produce     json
//
// @Param       id  path  int  true  "Patient ID"
//
// @Success     200  {object} domain.Patient
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /patients/{id} [get]
func (h *Handlers) GetPatient(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	p, err := h.Patients.Get(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdatePatient godoc
// @ID          updatePatient
// @Summary     Update a patient
// @Tags        Patients
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                      true  "Patient ID"
// @Param       body  body  handlers.PatientRequest  true  "Patient payload"
//
// @Success     200  {object} domain.Patient
// @Failure     400  {object} handlers.ErrorResponse "Bad request / duplicate phone"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /patients/{id} [put]
func (h *Handlers) UpdatePatient(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailInvalidBody)
		return
	}
	err := h.Patients.Update(c.Request.Context(), &domain.Patient{ID: id, PhoneNumber: req.PhoneNumber, Name: req.Name})
	if err != nil {
		if err == services.ErrInvalidReference {
			fail(c, http.StatusBadRequest, detailPhoneRequired)
			return
		}
		failFromError(c, err)
		return
	}
	p, err := h.Patients.Get(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePatient godoc
// @ID          deletePatient
// @Summary     Delete a patient
// @Tags        Patients
//
// @Param       id  path  int  true  "Patient ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /patients/{id} [delete]
func (h *Handlers) DeletePatient(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	if err := h.Patients.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	noContent(c)
}
