package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"travelcraft/cmd/fx/config_fx"
	"travelcraft/cmd/fx/controllers_fx"
	"travelcraft/cmd/fx/export_fx"
	"travelcraft/cmd/fx/logger_fx"
	"travelcraft/cmd/fx/planner_fx"
	"travelcraft/cmd/fx/session_fx"
	"travelcraft/internal/api"
	"travelcraft/internal/api/controllers"
	"travelcraft/internal/config"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		session_fx.Module,
		planner_fx.Module,
		export_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	plannerController *controllers.PlannerController,
	tripAPIController *controllers.TripAPIController,
	catalogController *controllers.CatalogController) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	return api.NewRouter(api.RouterConfig{
		SessionTTL:     cfg.Session.TTL,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}, plannerController, tripAPIController, catalogController)
}
