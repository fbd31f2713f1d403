package handlers

import (
	"net/http"
	"testing"

	"github.com/tbourn/go-pharmacy-backend/internal/domain"
)

func TestPharmacyCRUD(t *testing.T) {
	r, _ := newTestRouter(t)

	// Create
	w := do(t, r, http.MethodPost, "/pharmacies", `{"name":"City Care","address":"Janpath","latitude":28.61,"longitude":77.21,"phone_number":"+91-11-5550100"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}
	var p domain.Pharmacy
	mustDecode(t, w, &p)
	if p.ID == 0 || !p.IsActive {
		t.Fatalf("created pharmacy = %+v", p)
	}

	// Blank name rejected
	w = do(t, r, http.MethodPost, "/pharmacies", `{"name":"  "}`)
	if w.Code != http.StatusBadRequest || detailOf(t, w.Body.Bytes()) != "name is required." {
		t.Fatalf("blank name: %d %s", w.Code, w.Body.String())
	}

	// Get
	w = do(t, r, http.MethodGet, "/pharmacies/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get = %d", w.Code)
	}

	// Update
	w = do(t, r, http.MethodPut, "/pharmacies/1", `{"name":"City Care 24x7","address":"Janpath","is_active":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", w.Code, w.Body.String())
	}
	mustDecode(t, w, &p)
	if p.Name != "City Care 24x7" || p.IsActive {
		t.Fatalf("updated pharmacy = %+v", p)
	}

	// Update missing row → 404
	w = do(t, r, http.MethodPut, "/pharmacies/99", `{"name":"Ghost"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("update missing = %d", w.Code)
	}

	// Non-numeric id behaves like an unmatched URL
	w = do(t, r, http.MethodGet, "/pharmacies/abc", "")
	if w.Code != http.StatusNotFound || detailOf(t, w.Body.Bytes()) != "Not found." {
		t.Fatalf("bad id: %d %s", w.Code, w.Body.String())
	}

	// Delete, then gone
	if w = do(t, r, http.MethodDelete, "/pharmacies/1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}
	if w = do(t, r, http.MethodGet, "/pharmacies/1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d", w.Code)
	}
}

func TestListPharmacies_SearchAndOrdering(t *testing.T) {
	r, _ := newTestRouter(t)
	mustCreate(t, r, "/pharmacies", `{"name":"Zenith Meds","address":"Saket"}`)
	mustCreate(t, r, "/pharmacies", `{"name":"Apollo","address":"Connaught Place"}`)
	mustCreate(t, r, "/pharmacies", `{"name":"MedPlus","address":"Saket Market"}`)

	var page struct {
		Count   int64             `json:"count"`
		Results []domain.Pharmacy `json:"results"`
	}

	w := do(t, r, http.MethodGet, "/pharmacies?search=saket", "")
	mustDecode(t, w, &page)
	if page.Count != 2 {
		t.Fatalf("search count = %d, want 2", page.Count)
	}

	w = do(t, r, http.MethodGet, "/pharmacies?ordering=-name", "")
	mustDecode(t, w, &page)
	if len(page.Results) != 3 || page.Results[0].Name != "Zenith Meds" {
		t.Fatalf("ordering wrong: %+v", page.Results)
	}
}

func TestPatients_DuplicatePhone(t *testing.T) {
	r, _ := newTestRouter(t)
	mustCreate(t, r, "/patients", `{"phone_number":"+91-9810000001"}`)

	w := do(t, r, http.MethodPost, "/patients", `{"phone_number":"+91-9810000001"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate = %d: %s", w.Code, w.Body.String())
	}
	if d := detailOf(t, w.Body.Bytes()); d != "patient with this phone number already exists." {
		t.Fatalf("detail = %q", d)
	}

	// Blank phone rejected
	w = do(t, r, http.MethodPost, "/patients", `{"name":"No Phone"}`)
	if w.Code != http.StatusBadRequest || detailOf(t, w.Body.Bytes()) != "phone_number is required." {
		t.Fatalf("blank phone: %d %s", w.Code, w.Body.String())
	}
}

func TestInventory_EmbedsAssociationsAndRejectsDuplicates(t *testing.T) {
	r, _ := newTestRouter(t)
	mustCreate(t, r, "/pharmacies", `{"name":"Apollo"}`)
	mustCreate(t, r, "/medicines", `{"name":"Paracetamol"}`)

	w := do(t, r, http.MethodPost, "/inventory", `{"pharmacy":1,"medicine":1,"stock_quantity":10,"price":"45.50"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}
	var inv domain.Inventory
	mustDecode(t, w, &inv)
	if inv.Pharmacy == nil || inv.Pharmacy.Name != "Apollo" || inv.Medicine == nil || inv.Medicine.Name != "Paracetamol" {
		t.Fatalf("associations not embedded: %+v", inv)
	}

	// Duplicate pair
	w = do(t, r, http.MethodPost, "/inventory", `{"pharmacy":1,"medicine":1,"stock_quantity":1,"price":"1.00"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate = %d", w.Code)
	}
	if d := detailOf(t, w.Body.Bytes()); d != "inventory for this pharmacy & medicine already exists." {
		t.Fatalf("detail = %q", d)
	}

	// Unknown pharmacy ref
	w = do(t, r, http.MethodPost, "/inventory", `{"pharmacy":9,"medicine":1,"stock_quantity":1,"price":"1.00"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad ref = %d", w.Code)
	}

	// Update stock/price only
	w = do(t, r, http.MethodPut, "/inventory/1", `{"stock_quantity":7,"price":"47.00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", w.Code, w.Body.String())
	}
	mustDecode(t, w, &inv)
	if inv.StockQuantity != 7 || inv.Price.StringFixed(2) != "47.00" {
		t.Fatalf("updated row = %+v", inv)
	}
}

func TestNearbyPharmacies_ParamValidationAndMiss(t *testing.T) {
	r, _ := newTestRouter(t)
	mustCreate(t, r, "/pharmacies", `{"name":"Near","latitude":28.63,"longitude":77.22}`)
	mustCreate(t, r, "/medicines", `{"name":"Aspirin"}`)
	mustCreate(t, r, "/inventory", `{"pharmacy":1,"medicine":1,"stock_quantity":3,"price":"12.00"}`)

	for _, q := range []string{"", "?lat=28.6", "?lat=28.6&lng=abc&medicine=asp", "?lat=28.6&lng=77.2"} {
		w := do(t, r, http.MethodGet, "/pharmacies/nearby"+q, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("query %q: code = %d", q, w.Code)
		}
		if d := detailOf(t, w.Body.Bytes()); d != "Provide lat, lng, and medicine (id or name)." {
			t.Fatalf("query %q: detail = %q", q, d)
		}
	}

	// Unknown medicine → 404 with the canonical detail.
	w := do(t, r, http.MethodGet, "/pharmacies/nearby?lat=28.6&lng=77.2&medicine=zzz", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("miss = %d", w.Code)
	}
	if d := detailOf(t, w.Body.Bytes()); d != "Medicine not found." {
		t.Fatalf("detail = %q", d)
	}

	// Hit returns a plain array.
	w = do(t, r, http.MethodGet, "/pharmacies/nearby?lat=28.6&lng=77.2&medicine=asp", "")
	if w.Code != http.StatusOK {
		t.Fatalf("hit = %d: %s", w.Code, w.Body.String())
	}
	var entries []map[string]any
	mustDecode(t, w, &entries)
	if len(entries) != 1 || entries[0]["pharmacy_name"] != "Near" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestInteractions_Lifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	mustCreate(t, r, "/pharmacies", `{"name":"Apollo"}`)
	mustCreate(t, r, "/patients", `{"phone_number":"+91-9810000001"}`)
	mustCreate(t, r, "/medicines", `{"name":"Aspirin"}`)

	// Status defaults to pending.
	w := do(t, r, http.MethodPost, "/interactions", `{"patient":1,"pharmacy":1,"medicine":1,"type":"query","message_text":"in stock?"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}
	var l domain.InteractionLog
	mustDecode(t, w, &l)
	if l.Status != domain.InteractionStatusPending {
		t.Fatalf("status = %q, want pending", l.Status)
	}

	// Invalid type rejected.
	w = do(t, r, http.MethodPost, "/interactions", `{"patient":1,"pharmacy":1,"type":"carrier-pigeon"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad type = %d", w.Code)
	}

	// Status transition.
	w = do(t, r, http.MethodPatch, "/interactions/1", `{"status":"resolved"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("patch = %d: %s", w.Code, w.Body.String())
	}
	mustDecode(t, w, &l)
	if l.Status != domain.InteractionStatusResolved {
		t.Fatalf("status = %q, want resolved", l.Status)
	}

	// Filtered list.
	var page struct {
		Count int64 `json:"count"`
	}
	mustDecode(t, do(t, r, http.MethodGet, "/interactions?patient=1&status=resolved", ""), &page)
	if page.Count != 1 {
		t.Fatalf("filtered count = %d", page.Count)
	}

	// Unknown status filter rejected.
	if w = do(t, r, http.MethodGet, "/interactions?status=wat", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad filter = %d", w.Code)
	}

	// Delete.
	if w = do(t, r, http.MethodDelete, "/interactions/1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}
}
