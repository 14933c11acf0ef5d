package admin_fx

import (
	"context"
	"crypto/rand"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"hibiscus/internal/config"
	"hibiscus/internal/repositories"
	"hibiscus/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideAdminSettings, provideAdminService),
	fx.Invoke(initAdmin),
)

func provideAdminSettings(cfg *config.AppConfig, logger *zap.Logger) (services.AdminSettings, error) {
	settings := services.AdminSettings{
		DefaultUsername: cfg.Admin.DefaultUsername,
		DefaultPassword: cfg.Admin.DefaultPassword,
		IssueTokens:     cfg.Admin.Guard,
		TokenSecret:     []byte(cfg.Admin.JWTSecret),
		TokenTTL:        cfg.Admin.TokenTTL,
	}
	if settings.IssueTokens && len(settings.TokenSecret) == 0 {
		// Tokens will not outlive the process.
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return settings, err
		}
		settings.TokenSecret = secret
		logger.Warn("ADMIN_GUARD on without JWT_SECRET, using an ephemeral signing key")
	}
	return settings, nil
}

func provideAdminService(adminRepo repositories.AdminRepository, settings services.AdminSettings, logger *zap.Logger) services.AdminServiceInterface {
	return services.NewAdminService(adminRepo, settings, logger)
}

func initAdmin(lc fx.Lifecycle, adminService services.AdminServiceInterface) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return adminService.Init(ctx)
		},
	})
}
