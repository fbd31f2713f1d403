// Package domain defines the persistence models for pharmacies, patients,
// medicines, per-pharmacy inventory, purchases, and patient interaction logs.
// These types are mapped with GORM and form the core data layer of the
// pharmacy inventory backend.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pharmacy represents a registered pharmacy outlet. Latitude/longitude are
// optional: a pharmacy without a recorded position is excluded from the
// nearby-availability ranking.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Name / Address / PhoneNumber: contact details.
//   - Latitude / Longitude: decimal degrees, nil when unknown.
//   - IsActive: soft activation flag.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Pharmacy struct {
	ID          int64     `json:"id"           gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name"         gorm:"type:varchar(255);not null"`
	Address     string    `json:"address"      gorm:"type:text"`
	Latitude    *float64  `json:"latitude"     gorm:"type:decimal(9,6)"`
	Longitude   *float64  `json:"longitude"    gorm:"type:decimal(9,6)"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(32)"`
	IsActive    bool      `json:"is_active"    gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Pharmacy.
func (Pharmacy) TableName() string { return "pharmacies" }

// HasPosition reports whether the pharmacy carries a complete coordinate pair.
func (p Pharmacy) HasPosition() bool { return p.Latitude != nil && p.Longitude != nil }

// Patient represents a patient identified primarily by phone number
// (unique). The name is optional, mirroring walk-in registration.
type Patient struct {
	ID          int64     `json:"id"           gorm:"primaryKey;autoIncrement"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(32);not null;uniqueIndex"`
	Name        *string   `json:"name"         gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Patient.
func (Patient) TableName() string { return "patients" }

// Medicine is a catalog entry independent of any pharmacy's stock.
type Medicine struct {
	ID           int64     `json:"id"           gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name"         gorm:"type:varchar(255);not null;index"`
	Manufacturer string    `json:"manufacturer" gorm:"type:varchar(255)"`
	Details      string    `json:"details"      gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Medicine.
func (Medicine) TableName() string { return "medicines" }

// Inventory is the stock/price record for one (pharmacy, medicine) pair.
// The pair is unique: there is at most one inventory row per combination,
// and stock_quantity is never negative at any committed state. All stock
// mutation during a sale goes through the purchase protocol, which locks
// this row and decrements it relative to the stored value.
//
// The Pharmacy/Medicine associations are preloaded on read paths so list
// responses embed the full related objects.
type Inventory struct {
	ID            int64           `json:"id"             gorm:"primaryKey;autoIncrement"`
	PharmacyID    int64           `json:"pharmacy_id"    gorm:"not null;uniqueIndex:ux_inventory_pharmacy_medicine,priority:1"`
	MedicineID    int64           `json:"medicine_id"    gorm:"not null;uniqueIndex:ux_inventory_pharmacy_medicine,priority:2"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0;check:stock_quantity >= 0"`
	Price         decimal.Decimal `json:"price"          gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Pharmacy *Pharmacy `json:"pharmacy,omitempty" gorm:"foreignKey:PharmacyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Medicine *Medicine `json:"medicine,omitempty" gorm:"foreignKey:MedicineID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Inventory.
func (Inventory) TableName() string { return "inventory" }

// Purchase is an immutable record of a completed sale. Price is the unit
// price snapshotted from the inventory row at the moment of the stock
// decrement; later price edits never touch historical purchases.
//
// JSON field names follow the public API contract: the foreign keys are
// exposed as "patient", "pharmacy", and "medicine".
type Purchase struct {
	ID         int64           `json:"id"         gorm:"primaryKey;autoIncrement"`
	PatientID  int64           `json:"patient"    gorm:"column:patient_id;not null;index"`
	PharmacyID int64           `json:"pharmacy"   gorm:"column:pharmacy_id;not null;index"`
	MedicineID int64           `json:"medicine"   gorm:"column:medicine_id;not null;index"`
	Quantity   int             `json:"quantity"   gorm:"not null;check:quantity > 0"`
	Price      decimal.Decimal `json:"price"      gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TableName returns the database table name for Purchase.
func (Purchase) TableName() string { return "purchases" }

// Interaction type and status values accepted by InteractionLog.
const (
	InteractionTypeQuery = "query"
	InteractionTypeSMS   = "sms"

	InteractionStatusPending  = "pending"
	InteractionStatusSent     = "sent"
	InteractionStatusFailed   = "failed"
	InteractionStatusResolved = "resolved"
)

// InteractionLog records a patient touchpoint with a pharmacy (a stock
// query or an SMS notification). The medicine reference is optional and
// survives medicine deletion as NULL.
type InteractionLog struct {
	ID          int64     `json:"id"           gorm:"primaryKey;autoIncrement"`
	PatientID   int64     `json:"patient"      gorm:"column:patient_id;not null;index"`
	PharmacyID  int64     `json:"pharmacy"     gorm:"column:pharmacy_id;not null;index"`
	MedicineID  *int64    `json:"medicine"     gorm:"column:medicine_id"`
	Type        string    `json:"type"         gorm:"type:varchar(10);not null;check:type IN ('query','sms')"`
	MessageText string    `json:"message_text" gorm:"type:text"`
	Status      string    `json:"status"       gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','sent','failed','resolved')"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for InteractionLog.
func (InteractionLog) TableName() string { return "interaction_logs" }
