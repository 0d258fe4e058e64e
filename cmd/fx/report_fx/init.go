package report_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"smilecare/internal/repositories"
	"smilecare/internal/services"
)

var Module = fx.Provide(
	provideReportService, provideReportRepo)

func provideReportRepo(db *gorm.DB) repositories.ReportRepository {
	return repositories.NewReportRepository(db)
}

func provideReportService(reportRepo repositories.ReportRepository, userRepo repositories.UserRepository) services.ReportServiceInterface {
	return services.NewReportService(reportRepo, userRepo)
}
