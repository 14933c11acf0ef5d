package tours_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hibiscus/internal/repositories"
	"hibiscus/internal/services"
	"hibiscus/pkg/utils"
)

var Module = fx.Provide(
	utils.NewMillisClock, provideTourService)

func provideTourService(tourRepo repositories.TourRepository, clock *utils.MillisClock, logger *zap.Logger) services.TourServiceInterface {
	return services.NewTourService(tourRepo, clock, logger)
}
