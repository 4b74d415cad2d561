package export_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"travelcraft/internal/config"
	"travelcraft/internal/services"
)

var Module = fx.Provide(
	provideRenderer, provideExportService)

func provideRenderer(cfg *config.Config, logger *zap.Logger) (services.DocumentRenderer, error) {
	if cfg.Export.FontPath == "" {
		logger.Warn("PDF_FONT_PATH not set, exported PDFs only render Latin-1 text")
	}
	return services.NewGofpdfRenderer(cfg.Export.FontPath)
}

func provideExportService(forms services.FormServiceInterface, renderer services.DocumentRenderer, logger *zap.Logger) services.ExportServiceInterface {
	return services.NewExportService(forms, renderer, services.DefaultExportOptions, logger)
}
