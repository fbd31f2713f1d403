// Interaction-log HTTP handlers.
//
// REST endpoints for patient/pharmacy touchpoints (stock queries and SMS
// notifications):
//   - GET    /interactions        (paginated list; ?patient= / ?pharmacy= / ?status= filters)
//   - POST   /interactions        (record; status defaults to "pending")
//   - GET    /interactions/{id}
//   - PATCH  /interactions/{id}   (status transition only)
//   - DELETE /interactions/{id}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/services"
)

// InteractionRequest is the JSON payload for recording an interaction log.
// The medicine reference is optional.
type InteractionRequest struct {
	Patient     int64  `json:"patient" example:"1"`
	Pharmacy    int64  `json:"pharmacy" example:"2"`
	Medicine    *int64 `json:"medicine" example:"3"`
	Type        string `json:"type" example:"query" enums:"query,sms"`
	MessageText string `json:"message_text" example:"Is Paracetamol in stock?"`
	Status      string `json:"status" example:"pending" enums:"pending,sent,failed,resolved"`
}

// InteractionStatusRequest is the JSON payload for a status transition.
type InteractionStatusRequest struct {
	Status string `json:"status" example:"resolved" enums:"pending,sent,failed,resolved"`
}

// ListInteractions godoc
// @ID          listInteractions
// @Summary     List interaction logs
// @Tags        Interactions
// @Produce     json
//
// @Param       patient    query  int     false "Filter by patient id"
// @Param       pharmacy   query  int     false "Filter by pharmacy id"
// @Param       status     query  string  false "Filter by status"  Enums(pending, sent, failed, resolved)
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.Page
// @Failure     400  {object} handlers.ErrorResponse "Unknown status filter"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /interactions [get]
func (h *Handlers) ListInteractions(c *gin.Context) {
	page, pageSize := pagination(c)
	items, total, err := h.Interactions.ListPage(
		c.Request.Context(),
		idQuery(c, "patient"),
		idQuery(c, "pharmacy"),
		c.Query("status"),
		page, pageSize,
	)
	if err != nil {
		if err == services.ErrInvalidInteraction {
			fail(c, http.StatusBadRequest, detailInvalidInteraction)
			return
		}
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, Page{Count: total, Page: page, PageSize: pageSize, Results: items})
}

// CreateInteraction godoc
// @ID          createInteraction
// @Summary     Record an interaction
// @Tags        Interactions
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.InteractionRequest  true  "Interaction payload"
//
// @Success     201  {object} domain.InteractionLog
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /interactions [post]
func (h *Handlers) CreateInteraction(c *gin.Context) {
	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailInvalidBody)
		return
	}
	l, err := h.Interactions.Create(c.Request.Context(), &domain.InteractionLog{
		PatientID:   req.Patient,
		PharmacyID:  req.Pharmacy,
		MedicineID:  req.Medicine,
		Type:        req.Type,
		MessageText: req.MessageText,
		Status:      req.Status,
	})
	if err != nil {
		if err == services.ErrInvalidInteraction || err == services.ErrInvalidReference {
			fail(c, http.StatusBadRequest, detailInvalidInteraction)
			return
		}
		failFromError(c, err)
		return
	}
	ok(c, http.StatusCreated, l)
}

// GetInteraction godoc
// @ID          getInteraction
// @Summary     Fetch an interaction log
// @Tags        Interactions
// @Produce     json
//
// @Param       id  path  int  true  "Interaction ID"
//
// @Success     200  {object} domain.InteractionLog
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /interactions/{id} [get]
func (h *Handlers) GetInteraction(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	l, err := h.Interactions.Get(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, l)
}

// UpdateInteractionStatus godoc
// @ID          updateInteractionStatus
// @Summary     Transition an interaction's status
// @Tags        Interactions
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                               true  "Interaction ID"
// @Param       body  body  handlers.InteractionStatusRequest true  "New status"
//
// @Success     200  {object} domain.InteractionLog
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /interactions/{id} [patch]
func (h *Handlers) UpdateInteractionStatus(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	var req InteractionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, detailInvalidBody)
		return
	}
	if err := h.Interactions.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if err == services.ErrInvalidInteraction {
			fail(c, http.StatusBadRequest, detailInvalidInteraction)
			return
		}
		failFromError(c, err)
		return
	}
	l, err := h.Interactions.Get(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, l)
}

// DeleteInteraction godoc
// @ID          deleteInteraction
// @Summary     Delete an interaction log
// @Tags        Interactions
//
// @Param       id  path  int  true  "Interaction ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /interactions/{id} [delete]
func (h *Handlers) DeleteInteraction(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		fail(c, http.StatusNotFound, DetailNotFound)
		return
	}
	if err := h.Interactions.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	noContent(c)
}
