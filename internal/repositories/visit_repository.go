package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smilecare/internal/models/db_models"
)

// VisitFilter narrows ListVisits. DoctorScope restricts results to visits
// created by or assigned to that user (the DOCTOR visibility rule).
type VisitFilter struct {
	DoctorScope *uuid.UUID
	From        int64
	To          int64
	Paid        *bool
	Page        int
	PageSize    int
}

type VisitRepository interface {
	Insert(ctx context.Context, visit *db_models.Visit) error
	// UpdateReplacingItems saves the visit and swaps its line items in one
	// transaction. Pass replaceItems=false to leave stored items alone.
	UpdateReplacingItems(ctx context.Context, visit *db_models.Visit, replaceItems bool) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id string) (*db_models.Visit, error)
	List(ctx context.Context, filter VisitFilter) ([]db_models.Visit, error)
}

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Insert(ctx context.Context, visit *db_models.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *visitRepository) UpdateReplacingItems(ctx context.Context, visit *db_models.Visit, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Doctor", "Creator").Save(visit).Error; err != nil {
			return err
		}
		if !replaceItems {
			return nil
		}

		if err := tx.Unscoped().Where("visit_id = ?", visit.ID).Delete(&db_models.VisitItem{}).Error; err != nil {
			return err
		}
		for i := range visit.Items {
			visit.Items[i].ID = uuid.Nil
			visit.Items[i].VisitID = visit.ID
		}
		if len(visit.Items) == 0 {
			return nil
		}
		return tx.Create(&visit.Items).Error
	})
}

func (r *visitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("visit_id = ?", id).Delete(&db_models.VisitItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Visit{}, "id = ?", id).Error
	})
}

func (r *visitRepository) FindByID(ctx context.Context, id string) (*db_models.Visit, error) {
	var visit db_models.Visit
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Doctor").
		First(&visit, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) List(ctx context.Context, filter VisitFilter) ([]db_models.Visit, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Doctor").
		Order("visit_date DESC")

	if filter.DoctorScope != nil {
		query = query.Where("created_by_id = ? OR doctor_id = ?", *filter.DoctorScope, *filter.DoctorScope)
	}
	if filter.From > 0 {
		query = query.Where("visit_date >= ?", filter.From)
	}
	if filter.To > 0 {
		query = query.Where("visit_date <= ?", filter.To)
	}
	if filter.Paid != nil {
		query = query.Where("paid = ?", *filter.Paid)
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var visits []db_models.Visit
	err := query.Find(&visits).Error
	return visits, err
}
