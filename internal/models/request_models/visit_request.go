package request_models

// VisitItemInput is one line of a visit. Either ServiceID (catalog line) or
// Name+UnitPrice (custom line) must be supplied.
type VisitItemInput struct {
	ServiceID *string `json:"service_id"`
	Name      string  `json:"name"`
	UnitPrice *int64  `json:"unit_price"`
	Quantity  int     `json:"quantity" binding:"required"`
}

type CreateVisitRequest struct {
	PatientName   string           `json:"patient_name" binding:"required"`
	VisitDate     int64            `json:"visit_date"`
	DoctorID      *string          `json:"doctor_id"`
	Items         []VisitItemInput `json:"items" binding:"required,min=1"`
	Discount      int64            `json:"discount"`
	PaymentMethod string           `json:"payment_method"`
	Paid          bool             `json:"paid"`
	Notes         string           `json:"notes"`
}

// UpdateVisitRequest uses pointers so "absent" and "set to zero value" can be
// told apart. Totals are recomputed only when Items or Discount is present.
type UpdateVisitRequest struct {
	PatientName   *string           `json:"patient_name"`
	VisitDate     *int64            `json:"visit_date"`
	DoctorID      *string           `json:"doctor_id"`
	Items         *[]VisitItemInput `json:"items"`
	Discount      *int64            `json:"discount"`
	PaymentMethod *string           `json:"payment_method"`
	Paid          *bool             `json:"paid"`
	Notes         *string           `json:"notes"`
}
