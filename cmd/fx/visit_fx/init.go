package visit_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"smilecare/internal/repositories"
	"smilecare/internal/services"
)

var Module = fx.Provide(
	provideBillingService, provideVisitRepo)

func provideVisitRepo(db *gorm.DB) repositories.VisitRepository {
	return repositories.NewVisitRepository(db)
}

func provideBillingService(visitRepo repositories.VisitRepository, serviceRepo repositories.ServiceRepository) services.BillingServiceInterface {
	return services.NewBillingService(visitRepo, serviceRepo)
}
