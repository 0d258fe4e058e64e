package repositories

import (
	"context"

	"gorm.io/gorm"

	"smilecare/internal/models/db_models"
)

// DoctorRevenueRow aggregates billing per assigned doctor.
type DoctorRevenueRow struct {
	DoctorID   string `gorm:"column:doctor_id"`
	DoctorName string `gorm:"column:doctor_name"`
	Visits     int64  `gorm:"column:visits"`
	Revenue    int64  `gorm:"column:revenue"`
}

type ReportRepository interface {
	CountVisits(ctx context.Context, from, to int64) (int64, error)
	SumRevenue(ctx context.Context, from, to int64) (int64, error)
	CountUnpaidVisits(ctx context.Context, from, to int64) (int64, error)
	RevenueByDoctor(ctx context.Context, from, to int64) ([]DoctorRevenueRow, error)
	ListVisitsForExport(ctx context.Context, from, to int64) ([]db_models.Visit, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) rangeScope(from, to int64) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("visit_date >= ? AND visit_date <= ?", from, to)
	}
}

func (r *reportRepository) CountVisits(ctx context.Context, from, to int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Visit{}).
		Scopes(r.rangeScope(from, to)).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) SumRevenue(ctx context.Context, from, to int64) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Visit{}).
		Scopes(r.rangeScope(from, to)).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *reportRepository) CountUnpaidVisits(ctx context.Context, from, to int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Visit{}).
		Scopes(r.rangeScope(from, to)).
		Where("paid = FALSE").
		Count(&count).Error
	return count, err
}

func (r *reportRepository) RevenueByDoctor(ctx context.Context, from, to int64) ([]DoctorRevenueRow, error) {
	var rows []DoctorRevenueRow
	err := r.db.WithContext(ctx).
		Model(&db_models.Visit{}).
		Scopes(r.rangeScope(from, to)).
		Select("users.id AS doctor_id, users.name AS doctor_name, COUNT(visits.id) AS visits, COALESCE(SUM(visits.total), 0) AS revenue").
		Joins("JOIN users ON users.id = visits.doctor_id").
		Group("users.id, users.name").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) ListVisitsForExport(ctx context.Context, from, to int64) ([]db_models.Visit, error) {
	var visits []db_models.Visit
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Doctor").
		Scopes(r.rangeScope(from, to)).
		Order("visit_date ASC").
		Find(&visits).Error
	return visits, err
}
