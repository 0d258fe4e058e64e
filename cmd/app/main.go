package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"smilecare/cmd/fx/account_fx"
	"smilecare/cmd/fx/catalog_fx"
	"smilecare/cmd/fx/clinic_fx"
	"smilecare/cmd/fx/controllers_fx"
	"smilecare/cmd/fx/db_fx"
	"smilecare/cmd/fx/dentist_fx"
	"smilecare/cmd/fx/mail_fx"
	"smilecare/cmd/fx/memcache_fx"
	"smilecare/cmd/fx/report_fx"
	"smilecare/cmd/fx/visit_fx"
	"smilecare/internal/api/controllers"
	"smilecare/internal/models/db_models"
	"smilecare/pkg/middleware"
	"smilecare/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		mail_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		dentist_fx.Module,
		catalog_fx.Module,
		visit_fx.Module,
		clinic_fx.Module,
		report_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	authController *controllers.AuthController,
	dentistController *controllers.DentistController,
	serviceController *controllers.ServiceController,
	visitController *controllers.VisitController,
	clinicController *controllers.ClinicController,
	reportController *controllers.ReportController,
	pagesController *controllers.PagesController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r,
		authController,
		dentistController,
		serviceController,
		visitController,
		clinicController,
		reportController,
		pagesController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	authController *controllers.AuthController,
	dentistController *controllers.DentistController,
	serviceController *controllers.ServiceController,
	visitController *controllers.VisitController,
	clinicController *controllers.ClinicController,
	reportController *controllers.ReportController,
	pagesController *controllers.PagesController) {

	decode := utils.DecodeSessionToken

	// Public content for the marketing site. The services list decodes the
	// session cookie when present so an admin can ask for retired entries.
	r.GET("/clinic", clinicController.GetProfile)
	r.GET("/clinic/faqs", clinicController.ListFaqs)
	r.GET("/clinic/gallery", clinicController.ListGallery)
	r.GET("/services", middleware.OptionalSession(decode), serviceController.List)
	r.GET("/services/:id", serviceController.Get)

	authGroup := r.Group("/auth")
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", authController.Logout)
	authGroup.POST("/verify-otp", authController.VerifyOtp)
	authGroup.POST("/setup-password", authController.SetupPassword)
	authGroup.POST("/forgot-password", authController.ForgotPassword)
	authGroup.POST("/reset-password", authController.ResetPassword)
	authGroup.GET("/me", middleware.RequireSession(decode), authController.Me)

	adminAPI := r.Group("/api/admin",
		middleware.RequireSession(decode),
		middleware.RequireRole(string(db_models.RoleAdmin)))
	adminAPI.POST("/dentists", dentistController.Create)
	adminAPI.POST("/dentists/full", dentistController.CreateWithProfile)
	adminAPI.GET("/dentists", dentistController.List)
	adminAPI.GET("/dentists/:id", dentistController.Get)
	adminAPI.PUT("/dentists/:id", dentistController.Update)
	adminAPI.DELETE("/dentists/:id", dentistController.Delete)
	adminAPI.POST("/dentists/:id/resend-otp", dentistController.ResendOtp)
	adminAPI.POST("/services", serviceController.Create)
	adminAPI.PUT("/services/:id", serviceController.Update)
	adminAPI.DELETE("/services/:id", serviceController.Delete)
	adminAPI.PUT("/clinic", clinicController.UpsertProfile)
	adminAPI.POST("/clinic/faqs", clinicController.CreateFaq)
	adminAPI.PUT("/clinic/faqs/:id", clinicController.UpdateFaq)
	adminAPI.DELETE("/clinic/faqs/:id", clinicController.DeleteFaq)
	adminAPI.POST("/clinic/gallery", clinicController.CreateGalleryImage)
	adminAPI.DELETE("/clinic/gallery/:id", clinicController.DeleteGalleryImage)
	adminAPI.GET("/reports/summary", reportController.Summary)
	adminAPI.GET("/reports/visits.xlsx", reportController.ExportVisits)

	visitAPI := r.Group("/api/visits",
		middleware.RequireSession(decode),
		middleware.RequireRole(string(db_models.RoleAdmin), string(db_models.RoleDoctor)))
	visitAPI.POST("", visitController.Create)
	visitAPI.GET("", visitController.List)
	visitAPI.GET("/:id", visitController.Get)
	visitAPI.PUT("/:id", visitController.Update)
	visitAPI.DELETE("/:id", visitController.Delete)

	// Back-office pages. The bare /admin landing is open to any signed-in
	// role and redirects to the caller's home area; the admin sub-areas are
	// admin-only, and /dentist is the doctors' workspace.
	r.GET("/login", pagesController.Login)
	r.GET("/admin", middleware.SessionGuard(decode), pagesController.Landing)

	adminPages := r.Group("/admin",
		middleware.SessionGuard(decode),
		middleware.PageRole(string(db_models.RoleAdmin)))
	adminPages.GET("/clinic", pagesController.AdminArea)
	adminPages.GET("/services", pagesController.AdminArea)
	adminPages.GET("/dentists", pagesController.AdminArea)
	adminPages.GET("/reports", pagesController.AdminArea)

	dentistPages := r.Group("/dentist",
		middleware.SessionGuard(decode),
		middleware.PageRole(string(db_models.RoleDoctor)))
	dentistPages.GET("", pagesController.DentistArea)
	dentistPages.GET("/visits", pagesController.DentistArea)
}
