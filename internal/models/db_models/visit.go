package db_models

import "github.com/google/uuid"

// Visit is a billing transaction. Price, Discount and Total are computed and
// persisted when the visit is created or its items/discount change, never on
// read. Total is the raw price-discount difference; it is not floored at
// zero here (display layers clamp it).
type Visit struct {
	BaseModel
	PatientName string `gorm:"index"`
	VisitDate   int64  `gorm:"index"`
	DoctorID    *uuid.UUID
	CreatedByID uuid.UUID `gorm:"type:uuid;index"`

	Price         int64
	Discount      int64
	Total         int64
	PaymentMethod string `gorm:"size:32"`
	Paid          bool
	Notes         string `gorm:"type:text"`

	Items   []VisitItem `gorm:"constraint:OnDelete:CASCADE"`
	Doctor  *User       `gorm:"foreignKey:DoctorID"`
	Creator User        `gorm:"foreignKey:CreatedByID"`
}

// VisitItem is one priced line of a visit. ServiceID references the catalog
// for catalog-backed lines and is nil for custom one-off lines; Name and
// UnitPrice are snapshotted for both kinds at computation time.
type VisitItem struct {
	BaseModel
	VisitID   uuid.UUID `gorm:"type:uuid;index"`
	ServiceID *uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
}
