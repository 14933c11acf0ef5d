// Package apitest wires the full HTTP stack over the in-memory store for
// tests.
package apitest

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hibiscus/internal/api"
	"hibiscus/internal/api/controllers"
	"hibiscus/internal/repositories"
	"hibiscus/internal/services"
	mem "hibiscus/pkg/memcache"
	"hibiscus/pkg/middleware"
	"hibiscus/pkg/utils"
)

const (
	DefaultUsername = "admin"
	DefaultPassword = "hibiscus2025"
)

type Options struct {
	Guard   bool
	Limiter utils.InquiryLimiter
}

type Server struct {
	Router   *gin.Engine
	Store    *repositories.Store
	Admin    services.AdminServiceInterface
	Settings services.AdminSettings
}

// New returns a router backed by a fresh memory store with the admin
// singleton already initialised.
func New(opts Options) (*Server, error) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	store := repositories.NewMemoryStore()
	clock := utils.NewMillisClock()

	settings := services.AdminSettings{
		DefaultUsername: DefaultUsername,
		DefaultPassword: DefaultPassword,
		IssueTokens:     opts.Guard,
		TokenSecret:     []byte("apitest-secret"),
		TokenTTL:        time.Hour,
	}
	adminService := services.NewAdminService(store.Admin, settings, logger)
	if err := adminService.Init(context.Background()); err != nil {
		return nil, err
	}

	deps := api.RouterDeps{
		Logger:    logger,
		Tours:     controllers.NewTourController(services.NewTourService(store.Tours, clock, logger)),
		Inquiries: controllers.NewInquiryController(services.NewInquiryService(store.Inquiries, services.NewNoopMailService(), logger)),
		Admin:     controllers.NewAdminController(adminService),
		Images:    controllers.NewImageController(services.NewImageService(store.Images, mem.NewImageEntries(0), time.Minute, clock, logger)),
		Limiter:   opts.Limiter,
	}
	if opts.Guard {
		deps.AdminGuard = middleware.AdminGuard(settings.TokenSecret, adminService)
	}

	return &Server{
		Router:   api.NewRouter(deps),
		Store:    store,
		Admin:    adminService,
		Settings: settings,
	}, nil
}
