// Package seed populates the database with a deterministic demo dataset:
// five Delhi pharmacies, ten patients, the five canonical medicines, a full
// inventory matrix, sample purchases, and interaction logs. Purchases go
// through the regular purchase protocol so seeded stock levels stay
// consistent with the purchase history.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/services"
)

// defaultSeed fixes the RNG so repeated runs produce the same dataset.
const defaultSeed = 1337

var pharmacyNames = []string{
	"City Care Pharmacy",
	"Apollo Medicos",
	"Green Cross Chemists",
	"Janpath Drug Store",
	"Lotus Health Mart",
}

var patientNames = []string{
	"Asha Verma", "Rohan Gupta", "Meera Iyer", "Karan Singh", "Divya Nair",
	"Arjun Mehta", "Sneha Rao", "Vikram Joshi", "Priya Sharma", "Aditya Kulkarni",
}

var medicineNames = []string{
	"Paracetamol", "Amoxicillin", "Ibuprofen", "Aspirin", "Cough Syrup",
}

var manufacturers = []string{"Cipla", "Sun Pharma", "Dr. Reddy's", "Bayer", "Himalaya"}

// Run wipes existing rows and inserts the demo dataset. It is idempotent in
// the sense that running it twice yields the same final state.
func Run(ctx context.Context, db *gorm.DB) error {
	rng := rand.New(rand.NewSource(defaultSeed))

	// Clear old data; children first so FK constraints hold.
	for _, m := range []any{
		&domain.Purchase{}, &domain.InteractionLog{}, &domain.Idempotency{},
		&domain.Inventory{}, &domain.Pharmacy{}, &domain.Patient{}, &domain.Medicine{},
	} {
		if err := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}

	// Pharmacies around Delhi.
	pharmacies := make([]domain.Pharmacy, 0, len(pharmacyNames))
	for i, name := range pharmacyNames {
		lat := round6(28.5 + rng.Float64()*0.3)
		lng := round6(77.0 + rng.Float64()*0.3)
		p := domain.Pharmacy{
			Name:        name,
			Address:     fmt.Sprintf("%d Mahatma Gandhi Marg, New Delhi", 10+i),
			Latitude:    &lat,
			Longitude:   &lng,
			PhoneNumber: fmt.Sprintf("+91-11-555%04d", 100+i),
			IsActive:    true,
		}
		if err := db.WithContext(ctx).Create(&p).Error; err != nil {
			return fmt.Errorf("create pharmacy: %w", err)
		}
		pharmacies = append(pharmacies, p)
	}

	// Patients.
	patients := make([]domain.Patient, 0, len(patientNames))
	for i, name := range patientNames {
		n := name
		p := domain.Patient{
			PhoneNumber: fmt.Sprintf("+91-98100%05d", i+1),
			Name:        &n,
		}
		if err := db.WithContext(ctx).Create(&p).Error; err != nil {
			return fmt.Errorf("create patient: %w", err)
		}
		patients = append(patients, p)
	}

	// Medicines.
	medicines := make([]domain.Medicine, 0, len(medicineNames))
	for i, name := range medicineNames {
		m := domain.Medicine{
			Name:         name,
			Manufacturer: manufacturers[i%len(manufacturers)],
			Details:      fmt.Sprintf("%s, standard retail pack", name),
		}
		if err := db.WithContext(ctx).Create(&m).Error; err != nil {
			return fmt.Errorf("create medicine: %w", err)
		}
		medicines = append(medicines, m)
	}

	// Full inventory matrix: every medicine at every pharmacy.
	for _, ph := range pharmacies {
		for _, med := range medicines {
			inv := domain.Inventory{
				PharmacyID:    ph.ID,
				MedicineID:    med.ID,
				StockQuantity: 5 + rng.Intn(96),                              // 5..100
				Price:         decimal.NewFromInt(10 + int64(rng.Intn(191))), // 10..200
			}
			if err := db.WithContext(ctx).Create(&inv).Error; err != nil {
				return fmt.Errorf("create inventory: %w", err)
			}
		}
	}

	// Purchases through the locked protocol, so stock and history agree.
	purchaseSvc := services.NewPurchaseService(db)
	for i := 0; i < 20; i++ {
		patient := patients[rng.Intn(len(patients))]
		pharmacy := pharmacies[rng.Intn(len(pharmacies))]
		medicine := medicines[rng.Intn(len(medicines))]
		qty := 1 + rng.Intn(3)
		_, err := purchaseSvc.Create(ctx, patient.ID, pharmacy.ID, medicine.ID, qty)
		if err != nil && !errors.Is(err, services.ErrInsufficientStock) {
			return fmt.Errorf("seed purchase: %w", err)
		}
	}

	// Interaction logs.
	types := []string{domain.InteractionTypeQuery, domain.InteractionTypeSMS}
	statuses := []string{
		domain.InteractionStatusPending, domain.InteractionStatusSent,
		domain.InteractionStatusFailed, domain.InteractionStatusResolved,
	}
	for i := 0; i < 20; i++ {
		l := domain.InteractionLog{
			PatientID:   patients[rng.Intn(len(patients))].ID,
			PharmacyID:  pharmacies[rng.Intn(len(pharmacies))].ID,
			Type:        types[rng.Intn(len(types))],
			MessageText: fmt.Sprintf("Availability question #%d", i+1),
			Status:      statuses[rng.Intn(len(statuses))],
		}
		if rng.Float64() > 0.3 {
			id := medicines[rng.Intn(len(medicines))].ID
			l.MedicineID = &id
		}
		if err := db.WithContext(ctx).Create(&l).Error; err != nil {
			return fmt.Errorf("create interaction log: %w", err)
		}
	}

	return nil
}

func round6(f float64) float64 {
	return float64(int64(f*1e6)) / 1e6
}
