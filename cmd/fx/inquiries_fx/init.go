package inquiries_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hibiscus/internal/repositories"
	"hibiscus/internal/services"
)

var Module = fx.Provide(provideInquiryService)

func provideInquiryService(inquiryRepo repositories.InquiryRepository, mailService services.IMailService, logger *zap.Logger) services.InquiryServiceInterface {
	return services.NewInquiryService(inquiryRepo, mailService, logger)
}
