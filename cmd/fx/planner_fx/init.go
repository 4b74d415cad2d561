package planner_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"travelcraft/internal/config"
	"travelcraft/internal/repositories"
	"travelcraft/internal/services"
)

var Module = fx.Provide(
	services.NewCatalogService,
	provideFormService,
	providePlanClient,
	providePlannerService)

func provideFormService(sessionRepo repositories.SessionRepository, catalog services.CatalogServiceInterface) services.FormServiceInterface {
	return services.NewFormService(sessionRepo, catalog)
}

func providePlanClient(cfg *config.Config, logger *zap.Logger) services.PlanClientInterface {
	logger.Info("plan service configured",
		zap.String("base_url", cfg.PlanService.BaseURL),
		zap.Duration("timeout", cfg.PlanService.Timeout))
	return services.NewHTTPPlanClient(cfg.PlanService.BaseURL, cfg.PlanService.Timeout)
}

func providePlannerService(forms services.FormServiceInterface, client services.PlanClientInterface, logger *zap.Logger) services.PlannerServiceInterface {
	return services.NewPlannerService(forms, client, logger)
}
