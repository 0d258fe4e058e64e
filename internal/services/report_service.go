package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"smilecare/internal/models/db_models"
	"smilecare/internal/models/response_models"
	"smilecare/internal/repositories"
	"smilecare/pkg/utils"
)

type ReportServiceInterface interface {
	BuildSummary(ctx context.Context, start, end time.Time) (*response_models.ReportSummary, error)
	// ExportVisitsXLSX returns a spreadsheet with one row per visit in the
	// range, ready to serve as an attachment.
	ExportVisitsXLSX(ctx context.Context, start, end time.Time) ([]byte, error)
}

type ReportService struct {
	reportRepo repositories.ReportRepository
	userRepo   repositories.UserRepository
}

func NewReportService(reportRepo repositories.ReportRepository, userRepo repositories.UserRepository) ReportServiceInterface {
	return &ReportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
	}
}

// normalizeRange defaults to the last 30 days and fixes inverted bounds.
func normalizeRange(start, end time.Time) (time.Time, time.Time) {
	if end.IsZero() {
		end = time.Now().UTC()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -30)
	}
	if start.After(end) {
		start, end = end, start
	}
	return start, end
}

func (s *ReportService) BuildSummary(ctx context.Context, start, end time.Time) (*response_models.ReportSummary, error) {
	start, end = normalizeRange(start, end)
	from, to := start.Unix(), end.Unix()

	visitCount, err := s.reportRepo.CountVisits(ctx, from, to)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	revenue, err := s.reportRepo.SumRevenue(ctx, from, to)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	unpaid, err := s.reportRepo.CountUnpaidVisits(ctx, from, to)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	dentists, err := s.userRepo.CountByRole(ctx, db_models.RoleDoctor)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	byDoctor, err := s.reportRepo.RevenueByDoctor(ctx, from, to)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	rows := make([]response_models.DoctorRevenueRow, 0, len(byDoctor))
	for _, row := range byDoctor {
		rows = append(rows, response_models.DoctorRevenueRow{
			DoctorID:   row.DoctorID,
			DoctorName: row.DoctorName,
			Visits:     row.Visits,
			Revenue:    row.Revenue,
		})
	}

	return &response_models.ReportSummary{
		Range:        response_models.ReportRange{Start: start, End: end},
		VisitCount:   visitCount,
		Revenue:      revenue,
		UnpaidVisits: unpaid,
		DentistCount: dentists,
		ByDoctor:     rows,
	}, nil
}

const visitsSheet = "Visits"

var exportHeader = []string{
	"Date", "Patient", "Doctor", "Items", "Price", "Discount", "Total", "Paid", "Payment Method",
}

func (s *ReportService) ExportVisitsXLSX(ctx context.Context, start, end time.Time) ([]byte, error) {
	start, end = normalizeRange(start, end)

	visits, err := s.reportRepo.ListVisitsForExport(ctx, start.Unix(), end.Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", visitsSheet); err != nil {
		return nil, err
	}

	for col, title := range exportHeader {
		cell, cellErr := excelize.CoordinatesToCellName(col+1, 1)
		if cellErr != nil {
			return nil, cellErr
		}
		if err := f.SetCellValue(visitsSheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, visit := range visits {
		values := []interface{}{
			formatVisitDate(visit.VisitDate),
			visit.PatientName,
			doctorName(&visit),
			summarizeItems(visit.Items),
			visit.Price,
			visit.Discount,
			visit.Total,
			paidLabel(visit.Paid),
			visit.PaymentMethod,
		}
		for col, value := range values {
			cell, cellErr := excelize.CoordinatesToCellName(col+1, i+2)
			if cellErr != nil {
				return nil, cellErr
			}
			if err := f.SetCellValue(visitsSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatVisitDate(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02")
}

func doctorName(visit *db_models.Visit) string {
	if visit.Doctor != nil {
		return visit.Doctor.Name
	}
	return ""
}

func summarizeItems(items []db_models.VisitItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}

func paidLabel(paid bool) string {
	if paid {
		return "paid"
	}
	return "unpaid"
}
