package account_fx

import (
	"context"
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"smilecare/internal/repositories"
	"smilecare/internal/services"
	mem "smilecare/pkg/memcache"
)

var Module = fx.Options(
	fx.Provide(provideAccountService, provideUserRepo),
	fx.Invoke(seedAdminAccount))

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(userRepo repositories.UserRepository, mailService services.IMailService, resetTokens mem.ResetTokenStore) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, mailService, resetTokens)
}

// seedAdminAccount creates the first ADMIN user from the environment on a
// fresh database. Without it no privileged endpoint is reachable.
func seedAdminAccount(userRepo repositories.UserRepository) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	if err := services.EnsureAdminAccount(context.Background(), userRepo, name, email, password); err != nil {
		log.Fatalf("admin bootstrap for %s failed: %v", email, err)
	}
}
