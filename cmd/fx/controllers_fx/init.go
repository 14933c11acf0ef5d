package controllers_fx

import (
	"go.uber.org/fx"

	"hibiscus/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewTourController),
	fx.Provide(controllers.NewInquiryController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewImageController))
