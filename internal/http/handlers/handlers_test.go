package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
)

// newTestDB opens a per-test in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:h_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Pharmacy{}, &domain.Patient{}, &domain.Medicine{},
		&domain.Inventory{}, &domain.Purchase{}, &domain.InteractionLog{},
		&domain.Idempotency{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// newTestRouter mounts the handler aggregate on a bare engine (no middleware)
// so tests hit handler logic directly.
func newTestRouter(t *testing.T) (*gin.Engine, *Handlers) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := New(newTestDB(t), 24*time.Hour)
	r := gin.New()

	r.GET("/pharmacies/nearby", h.NearbyPharmacies)
	r.GET("/pharmacies", h.ListPharmacies)
	r.POST("/pharmacies", h.CreatePharmacy)
	r.GET("/pharmacies/:id", h.GetPharmacy)
	r.PUT("/pharmacies/:id", h.UpdatePharmacy)
	r.DELETE("/pharmacies/:id", h.DeletePharmacy)

	r.GET("/patients", h.ListPatients)
	r.POST("/patients", h.CreatePatient)
	r.GET("/patients/:id", h.GetPatient)
	r.PUT("/patients/:id", h.UpdatePatient)
	r.DELETE("/patients/:id", h.DeletePatient)

	r.GET("/medicines", h.ListMedicines)
	r.POST("/medicines", h.CreateMedicine)
	r.GET("/medicines/:id", h.GetMedicine)
	r.PUT("/medicines/:id", h.UpdateMedicine)
	r.DELETE("/medicines/:id", h.DeleteMedicine)

	r.GET("/inventory", h.ListInventory)
	r.POST("/inventory", h.CreateInventory)
	r.GET("/inventory/:id", h.GetInventory)
	r.PUT("/inventory/:id", h.UpdateInventory)
	r.DELETE("/inventory/:id", h.DeleteInventory)

	r.GET("/purchases", h.ListPurchases)
	r.POST("/purchases", h.CreatePurchase)
	r.GET("/purchases/:id", h.GetPurchase)

	r.GET("/interactions", h.ListInteractions)
	r.POST("/interactions", h.CreateInteraction)
	r.GET("/interactions/:id", h.GetInteraction)
	r.PATCH("/interactions/:id", h.UpdateInteractionStatus)
	r.DELETE("/interactions/:id", h.DeleteInteraction)

	return r, h
}

// do issues a request with an optional JSON body and returns the recorder.
func do(t *testing.T, r *gin.Engine, method, path, payload string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if payload == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// do304 issues a conditional GET with If-None-Match.
func do304(t *testing.T, r *gin.Engine, path, etag string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("If-None-Match", etag)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// mustCreate POSTs payload to path and fails the test unless it gets a 201.
func mustCreate(t *testing.T, r *gin.Engine, path, payload string) {
	t.Helper()
	if w := do(t, r, http.MethodPost, path, payload); w.Code != http.StatusCreated {
		t.Fatalf("POST %s = %d: %s", path, w.Code, w.Body.String())
	}
}

// mustDecode unmarshals a recorder body into v.
func mustDecode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
