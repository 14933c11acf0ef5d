package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hibiscus/cmd/fx/admin_fx"
	"hibiscus/cmd/fx/config_fx"
	"hibiscus/cmd/fx/controllers_fx"
	"hibiscus/cmd/fx/db_fx"
	"hibiscus/cmd/fx/images_fx"
	"hibiscus/cmd/fx/inquiries_fx"
	"hibiscus/cmd/fx/mail_fx"
	"hibiscus/cmd/fx/memcache_fx"
	"hibiscus/cmd/fx/tours_fx"
	"hibiscus/internal/api"
	"hibiscus/internal/api/controllers"
	"hibiscus/internal/config"
	"hibiscus/internal/services"
	"hibiscus/pkg/middleware"
	"hibiscus/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		tours_fx.Module,
		inquiries_fx.Module,
		admin_fx.Module,
		images_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.AppConfig, engine *gin.Engine, logger *zap.Logger) {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", server.Addr))
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.AppConfig,
	logger *zap.Logger,
	tourController *controllers.TourController,
	inquiryController *controllers.InquiryController,
	adminController *controllers.AdminController,
	imageController *controllers.ImageController,
	adminService services.AdminServiceInterface,
	adminSettings services.AdminSettings,
	limiter utils.InquiryLimiter) *gin.Engine {

	if cfg.Logger.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := api.RouterDeps{
		Logger:    logger,
		Tours:     tourController,
		Inquiries: inquiryController,
		Admin:     adminController,
		Images:    imageController,
		Limiter:   limiter,
	}
	if cfg.Admin.Guard {
		deps.AdminGuard = middleware.AdminGuard(adminSettings.TokenSecret, adminService)
	}

	return api.NewRouter(deps)
}
