package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"
)

// newTestDB opens an in-memory SQLite database unique to the calling test.
// The pool is pinned to a single connection so concurrent transactions
// serialize instead of tripping over SQLITE_BUSY.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:svc_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedPurchasable inserts one patient, one pharmacy with coordinates, one
// medicine, and a stock row, returning the ids.
func seedPurchasable(t *testing.T, db *gorm.DB, stock int, price string) (patientID, pharmacyID, medicineID int64) {
	t.Helper()
	pat := &domain.Patient{PhoneNumber: "+919876500000"}
	if err := db.Create(pat).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	lat, lng := 28.6139, 77.2090
	ph := &domain.Pharmacy{Name: "Apollo", Address: "CP", Latitude: &lat, Longitude: &lng, IsActive: true}
	if err := db.Create(ph).Error; err != nil {
		t.Fatalf("seed pharmacy: %v", err)
	}
	med := &domain.Medicine{Name: "Ibuprofen", Manufacturer: "Abbott"}
	if err := db.Create(med).Error; err != nil {
		t.Fatalf("seed medicine: %v", err)
	}
	inv := &domain.Inventory{
		PharmacyID: ph.ID, MedicineID: med.ID,
		StockQuantity: stock, Price: decimal.RequireFromString(price),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	return pat.ID, ph.ID, med.ID
}

func TestPurchaseCreate_Success_DecrementsAndSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)
	ctx := context.Background()
	patID, phID, medID := seedPurchasable(t, db, 10, "45.50")

	p, err := svc.Create(ctx, patID, phID, medID, 3)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 || p.Quantity != 3 {
		t.Fatalf("unexpected purchase: %+v", p)
	}
	if !p.Price.Equal(decimal.RequireFromString("45.50")) {
		t.Fatalf("snapshot price = %s, want 45.50", p.Price)
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set")
	}

	var inv domain.Inventory
	if err := db.Where("pharmacy_id = ? AND medicine_id = ?", phID, medID).First(&inv).Error; err != nil {
		t.Fatalf("readback inventory: %v", err)
	}
	if inv.StockQuantity != 7 {
		t.Fatalf("stock after purchase = %d, want 7", inv.StockQuantity)
	}
}

func TestPurchaseCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)
	ctx := context.Background()
	patID, phID, medID := seedPurchasable(t, db, 10, "10.00")

	for _, c := range []struct {
		name         string
		pat, ph, med int64
		qty          int
	}{
		{"zero quantity", patID, phID, medID, 0},
		{"negative quantity", patID, phID, medID, -2},
		{"missing patient", patID + 99, phID, medID, 1},
		{"missing pharmacy", patID, phID + 99, medID, 1},
		{"missing medicine", patID, phID, medID + 99, 1},
		{"zero ids", 0, 0, 0, 1},
	} {
		if _, err := svc.Create(ctx, c.pat, c.ph, c.med, c.qty); !errors.Is(err, ErrInvalidPurchase) {
			t.Errorf("%s: err = %v, want ErrInvalidPurchase", c.name, err)
		}
	}

	// Nothing was decremented by the rejected requests.
	var inv domain.Inventory
	if err := db.First(&inv).Error; err != nil || inv.StockQuantity != 10 {
		t.Fatalf("stock = %d err=%v, want untouched 10", inv.StockQuantity, err)
	}
}

func TestPurchaseCreate_InventoryNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)
	ctx := context.Background()
	patID, phID, _ := seedPurchasable(t, db, 5, "10.00")

	// A second medicine with no stock row at this pharmacy.
	other := &domain.Medicine{Name: "Aspirin"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("seed medicine: %v", err)
	}
	if _, err := svc.Create(ctx, patID, phID, other.ID, 1); !errors.Is(err, ErrInventoryNotFound) {
		t.Fatalf("err = %v, want ErrInventoryNotFound", err)
	}
}

func TestPurchaseCreate_InsufficientStock_RollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)
	ctx := context.Background()
	patID, phID, medID := seedPurchasable(t, db, 2, "10.00")

	if _, err := svc.Create(ctx, patID, phID, medID, 3); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	var count int64
	if err := db.Model(&domain.Purchase{}).Count(&count).Error; err != nil || count != 0 {
		t.Fatalf("purchases after failure = %d err=%v, want 0", count, err)
	}
	var inv domain.Inventory
	if err := db.First(&inv).Error; err != nil || inv.StockQuantity != 2 {
		t.Fatalf("stock = %d err=%v, want untouched 2", inv.StockQuantity, err)
	}
}

func TestPurchaseCreate_PriceEditDoesNotRewriteHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)
	ctx := context.Background()
	patID, phID, medID := seedPurchasable(t, db, 10, "20.00")

	first, err := svc.Create(ctx, patID, phID, medID, 1)
	if err != nil {
		t.Fatalf("first purchase: %v", err)
	}

	if err := db.Model(&domain.Inventory{}).
		Where("pharmacy_id = ? AND medicine_id = ?", phID, medID).
		Update("price", decimal.RequireFromString("99.99")).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}

	second, err := svc.Create(ctx, patID, phID, medID, 1)
	if err != nil {
		t.Fatalf("second purchase: %v", err)
	}
	if !second.Price.Equal(decimal.RequireFromString("99.99")) {
		t.Fatalf("second snapshot = %s, want 99.99", second.Price)
	}

	var got domain.Purchase
	if err := db.First(&got, first.ID).Error; err != nil {
		t.Fatalf("readback first: %v", err)
	}
	if !got.Price.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("historical price = %s, want 20.00", got.Price)
	}
}

func TestPurchaseCreate_ConcurrentNeverOversells(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)
	ctx := context.Background()

	const stock, buyers = 5, 12
	patID, phID, medID := seedPurchasable(t, db, stock, "10.00")

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, patID, phID, medID, 1)
		}(i)
	}
	wg.Wait()

	ok := 0
	for i, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrLockTimeout):
			// acceptable outcomes under contention
		default:
			t.Fatalf("buyer %d: unexpected error %v", i, err)
		}
	}
	if ok != stock {
		t.Fatalf("%d successful purchases for stock %d", ok, stock)
	}

	var inv domain.Inventory
	if err := db.First(&inv).Error; err != nil {
		t.Fatalf("readback inventory: %v", err)
	}
	if inv.StockQuantity != 0 {
		t.Fatalf("final stock = %d, want 0", inv.StockQuantity)
	}
	var count int64
	if err := db.Model(&domain.Purchase{}).Count(&count).Error; err != nil || count != int64(stock) {
		t.Fatalf("purchase rows = %d err=%v, want %d", count, err, stock)
	}
}

func TestPurchaseListPage_AndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)
	ctx := context.Background()
	patID, phID, medID := seedPurchasable(t, db, 50, "5.00")

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, patID, phID, medID, 1); err != nil {
			t.Fatalf("purchase %d: %v", i, err)
		}
	}

	items, total, err := svc.ListPage(ctx, patID, 0, 1, 2)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("total=%d page=%d, want 3/2", total, len(items))
	}

	got, err := svc.Get(ctx, items[0].ID)
	if err != nil || got.ID != items[0].ID {
		t.Fatalf("Get: %+v err=%v", got, err)
	}
	if _, err := svc.Get(ctx, 9999); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("Get missing: %v, want ErrNotFound", err)
	}

	// Filter that matches nothing short-circuits with an empty page.
	items, total, err = svc.ListPage(ctx, patID+1, 0, 1, 20)
	if err != nil || total != 0 || len(items) != 0 {
		t.Fatalf("empty filter: items=%d total=%d err=%v", len(items), total, err)
	}
}
