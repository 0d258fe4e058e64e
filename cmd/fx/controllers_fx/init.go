package controllers_fx

import (
	"go.uber.org/fx"

	"smilecare/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewDentistController),
	fx.Provide(controllers.NewServiceController),
	fx.Provide(controllers.NewVisitController),
	fx.Provide(controllers.NewClinicController),
	fx.Provide(controllers.NewReportController),
	fx.Provide(controllers.NewPagesController))
