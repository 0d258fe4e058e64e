package response_models

import "time"

type ReportRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type DoctorRevenueRow struct {
	DoctorID   string `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Visits     int64  `json:"visits"`
	Revenue    int64  `json:"revenue"`
}

type ReportSummary struct {
	Range        ReportRange        `json:"range"`
	VisitCount   int64              `json:"visit_count"`
	Revenue      int64              `json:"revenue"`
	UnpaidVisits int64              `json:"unpaid_visits"`
	DentistCount int64              `json:"dentist_count"`
	ByDoctor     []DoctorRevenueRow `json:"by_doctor"`
}
