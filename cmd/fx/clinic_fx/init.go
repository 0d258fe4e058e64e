package clinic_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"smilecare/internal/repositories"
	"smilecare/internal/services"
)

var Module = fx.Provide(
	provideClinicService, provideClinicRepo)

func provideClinicRepo(db *gorm.DB) repositories.ClinicRepository {
	return repositories.NewClinicRepository(db)
}

func provideClinicService(clinicRepo repositories.ClinicRepository) services.ClinicServiceInterface {
	return services.NewClinicService(clinicRepo)
}
