package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smilecare/internal/models/db_models"
)

type ServiceRepository interface {
	Insert(ctx context.Context, service *db_models.Service) error
	Update(ctx context.Context, service *db_models.Service) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id string) (*db_models.Service, error)
	FindByName(ctx context.Context, name string) (*db_models.Service, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Service, error)
	List(ctx context.Context, activeOnly bool) ([]db_models.Service, error)
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Insert(ctx context.Context, service *db_models.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) Update(ctx context.Context, service *db_models.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Service{}, "id = ?", id).Error
}

func (r *serviceRepository) FindByID(ctx context.Context, id string) (*db_models.Service, error) {
	var service db_models.Service
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByName(ctx context.Context, name string) (*db_models.Service, error) {
	var service db_models.Service
	err := r.db.WithContext(ctx).First(&service, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Service, error) {
	var services []db_models.Service
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&services).Error
	return services, err
}

func (r *serviceRepository) List(ctx context.Context, activeOnly bool) ([]db_models.Service, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("active = TRUE")
	}

	var services []db_models.Service
	err := query.Find(&services).Error
	return services, err
}
