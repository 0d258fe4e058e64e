package services

import (
	"context"

	"smilecare/internal/models/db_models"
	"smilecare/internal/models/request_models"
	"smilecare/internal/repositories"
	"smilecare/pkg/utils"
)

type CatalogServiceInterface interface {
	ListServices(ctx context.Context, includeInactive bool) ([]db_models.Service, error)
	GetService(ctx context.Context, id string) (*db_models.Service, error)
	CreateService(ctx context.Context, actingRole db_models.UserRole, request request_models.CreateServiceRequest) (*db_models.Service, error)
	UpdateService(ctx context.Context, actingRole db_models.UserRole, id string, request request_models.UpdateServiceRequest) (*db_models.Service, error)
	DeleteService(ctx context.Context, actingRole db_models.UserRole, id string) error
}

type CatalogService struct {
	serviceRepo repositories.ServiceRepository
}

func NewCatalogService(serviceRepo repositories.ServiceRepository) CatalogServiceInterface {
	return &CatalogService{serviceRepo: serviceRepo}
}

func (s *CatalogService) ListServices(ctx context.Context, includeInactive bool) ([]db_models.Service, error) {
	services, err := s.serviceRepo.List(ctx, !includeInactive)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return services, nil
}

func (s *CatalogService) GetService(ctx context.Context, id string) (*db_models.Service, error) {
	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if service == nil {
		return nil, utils.ErrServiceNotFound
	}
	return service, nil
}

func (s *CatalogService) CreateService(ctx context.Context, actingRole db_models.UserRole, request request_models.CreateServiceRequest) (*db_models.Service, error) {
	if actingRole != db_models.RoleAdmin {
		return nil, utils.ErrForbidden
	}

	existing, err := s.serviceRepo.FindByName(ctx, request.Name)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrDuplicateServiceName
	}

	service := &db_models.Service{
		Name:            request.Name,
		Description:     request.Description,
		Price:           request.Price,
		DurationMinutes: request.DurationMinutes,
		Active:          true,
	}
	if err := s.serviceRepo.Insert(ctx, service); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return service, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, actingRole db_models.UserRole, id string, request request_models.UpdateServiceRequest) (*db_models.Service, error) {
	if actingRole != db_models.RoleAdmin {
		return nil, utils.ErrForbidden
	}

	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if service == nil {
		return nil, utils.ErrServiceNotFound
	}

	if request.Name != nil && *request.Name != service.Name {
		existing, findErr := s.serviceRepo.FindByName(ctx, *request.Name)
		if findErr != nil {
			return nil, utils.ErrDatabaseError
		}
		if existing != nil {
			return nil, utils.ErrDuplicateServiceName
		}
		service.Name = *request.Name
	}
	if request.Description != nil {
		service.Description = *request.Description
	}
	if request.Price != nil {
		service.Price = *request.Price
	}
	if request.DurationMinutes != nil {
		service.DurationMinutes = *request.DurationMinutes
	}
	if request.Active != nil {
		service.Active = *request.Active
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return service, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, actingRole db_models.UserRole, id string) error {
	if actingRole != db_models.RoleAdmin {
		return utils.ErrForbidden
	}

	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if service == nil {
		return utils.ErrServiceNotFound
	}
	// Soft delete; existing visit items keep their snapshotted name/price.
	if err := s.serviceRepo.Delete(ctx, service.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
