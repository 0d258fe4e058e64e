package catalog_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"smilecare/internal/repositories"
	"smilecare/internal/services"
)

var Module = fx.Provide(
	provideCatalogService, provideServiceRepo)

func provideServiceRepo(db *gorm.DB) repositories.ServiceRepository {
	return repositories.NewServiceRepository(db)
}

func provideCatalogService(serviceRepo repositories.ServiceRepository) services.CatalogServiceInterface {
	return services.NewCatalogService(serviceRepo)
}
