// Package services – AvailabilityService
//
// This file implements the nearby-availability search: resolve a free-form
// medicine query (id or name fragment), collect in-stock inventory for the
// matched medicines, and rank the holding pharmacies by haversine distance
// from the caller's position.
package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/geo"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AvailabilityEntry is one row of the nearby search result: a pharmacy
// holding stock of a matched medicine, with its distance from the caller.
type AvailabilityEntry struct {
	PharmacyID    int64           `json:"pharmacy_id"`
	PharmacyName  string          `json:"pharmacy_name"`
	Address       string          `json:"address"`
	DistanceKm    float64         `json:"distance_km"`
	StockQuantity int             `json:"stock_quantity"`
	Price         decimal.Decimal `json:"price"`
	MedicineID    int64           `json:"medicine_id"`
	MedicineName  string          `json:"medicine_name"`
}

// AvailabilityService answers "which pharmacies near me have this medicine".
type AvailabilityService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// FindNearby returns in-stock availability entries for medicines matching
// query, sorted by ascending distance from (lat, lng). Distances use the
// haversine formula and are rounded to 3 decimals. Pharmacies without a
// complete coordinate pair are skipped. An empty medicine match returns
// ErrMedicineNotFound.
func (s *AvailabilityService) FindNearby(ctx context.Context, lat, lng float64, query string) ([]AvailabilityEntry, error) {
	tr := otel.Tracer("services/AvailabilityService")
	ctx, span := tr.Start(ctx, "FindNearby",
		trace.WithAttributes(
			attribute.Float64("geo.lat", lat),
			attribute.Float64("geo.lng", lng),
			attribute.String("medicine.query", query),
		),
	)
	defer span.End()

	meds, err := repo.FindMedicines(ctx, s.DB, query)
	if err != nil {
		return nil, err
	}
	if len(meds) == 0 {
		return nil, ErrMedicineNotFound
	}
	ids := make([]int64, len(meds))
	for i, m := range meds {
		ids[i] = m.ID
	}

	rows, err := repo.ListAvailability(ctx, s.DB, ids)
	if err != nil {
		return nil, err
	}

	out := make([]AvailabilityEntry, 0, len(rows))
	for _, row := range rows {
		if row.Pharmacy == nil || row.Medicine == nil || !row.Pharmacy.HasPosition() {
			continue
		}
		d := geo.Haversine(lat, lng, *row.Pharmacy.Latitude, *row.Pharmacy.Longitude)
		out = append(out, AvailabilityEntry{
			PharmacyID:    row.Pharmacy.ID,
			PharmacyName:  row.Pharmacy.Name,
			Address:       row.Pharmacy.Address,
			DistanceKm:    geo.RoundKm(d),
			StockQuantity: row.StockQuantity,
			Price:         row.Price,
			MedicineID:    row.Medicine.ID,
			MedicineName:  row.Medicine.Name,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].PharmacyID < out[j].PharmacyID
	})
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out, nil
}
