package controllers_fx

import (
	"go.uber.org/fx"
	"travelcraft/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPlannerController),
	fx.Provide(controllers.NewTripAPIController),
	fx.Provide(controllers.NewCatalogController))
