package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hibiscus/internal/config"
	"hibiscus/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.AppConfig, logger *zap.Logger) services.IMailService {
	if !cfg.SMTP.Enabled() {
		logger.Info("SMTP not configured, inquiry notifications disabled")
		return services.NewNoopMailService()
	}

	return services.NewSMTPMailService(services.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		NotifyTo: cfg.SMTP.NotifyTo,
		AppName:  cfg.SMTP.FromName,
	})
}
