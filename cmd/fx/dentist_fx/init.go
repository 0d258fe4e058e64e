package dentist_fx

import (
	"os"

	"go.uber.org/fx"

	"smilecare/internal/repositories"
	"smilecare/internal/services"
)

var Module = fx.Provide(provideDentistService)

func provideDentistService(userRepo repositories.UserRepository, mailService services.IMailService) services.DentistServiceInterface {
	return services.NewDentistService(userRepo, mailService, os.Getenv("APP_ENV"))
}
