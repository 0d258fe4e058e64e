package response_models

type VisitItemResponse struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id,omitempty"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// VisitResponse carries both the persisted raw Total (which may go negative
// under a heavy discount) and TotalDue floored at zero for display.
type VisitResponse struct {
	ID            string              `json:"id"`
	PatientName   string              `json:"patient_name"`
	VisitDate     int64               `json:"visit_date"`
	DoctorID      string              `json:"doctor_id,omitempty"`
	DoctorName    string              `json:"doctor_name,omitempty"`
	CreatedByID   string              `json:"created_by_id"`
	Price         int64               `json:"price"`
	Discount      int64               `json:"discount"`
	Total         int64               `json:"total"`
	TotalDue      int64               `json:"total_due"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Paid          bool                `json:"paid"`
	Notes         string              `json:"notes,omitempty"`
	Items         []VisitItemResponse `json:"items"`
}
