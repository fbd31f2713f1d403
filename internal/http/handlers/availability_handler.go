// Nearby-availability HTTP handler.
//
// This file exposes the stock search endpoint:
//   - GET /pharmacies/nearby?lat=..&lng=..&medicine=..
//
// The medicine parameter is free-form: a numeric value matches by id or name
// fragment, anything else by case-insensitive name fragment. The response is
// a plain JSON array ordered by ascending haversine distance.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// NearbyPharmacies godoc
// @ID          nearbyPharmacies
// @Summary     Find nearby pharmacies with stock
// @Description Returns pharmacies holding positive stock of the matched
// @Description medicine(s), ranked by great-circle distance from the caller.
// @Tags        Pharmacies
// @Produce     json
//
// @Param       lat       query  number  true  "Caller latitude (decimal degrees)"   example(28.6139)
// @Param       lng       query  number  true  "Caller longitude (decimal degrees)"  example(77.2090)
// @Param       medicine  query  string  true  "Medicine id or name fragment"        example(paracetamol)
//
// @Success     200  {array}  services.AvailabilityEntry
// @Failure     400  {object} handlers.ErrorResponse "Missing or invalid parameters"
// @Failure     404  {object} handlers.ErrorResponse "Medicine not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /pharmacies/nearby [get]
func (h *Handlers) NearbyPharmacies(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	medicine := strings.TrimSpace(c.Query("medicine"))
	if latErr != nil || lngErr != nil || medicine == "" {
		fail(c, http.StatusBadRequest, detailNearbyParams)
		return
	}

	entries, err := h.Availability.FindNearby(c.Request.Context(), lat, lng, medicine)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, entries)
}
