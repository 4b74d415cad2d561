package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"travelcraft/internal/api/controllers"
	"travelcraft/internal/api/views"
	"travelcraft/pkg/middleware"
)

type RouterConfig struct {
	SessionTTL     time.Duration
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	plannerController *controllers.PlannerController,
	tripAPIController *controllers.TripAPIController,
	catalogController *controllers.CatalogController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SessionMiddleware(cfg.SessionTTL))
	r.SetHTMLTemplate(views.Templates())

	RegisterRoutes(r, plannerController, tripAPIController, catalogController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	plannerController *controllers.PlannerController,
	tripAPIController *controllers.TripAPIController,
	catalogController *controllers.CatalogController) {

	r.GET("/", plannerController.Index)

	formGroup := r.Group("/form")
	formGroup.POST("/country", plannerController.SelectCountry)
	formGroup.POST("/cities", plannerController.ToggleCity)
	formGroup.POST("/schedule", plannerController.SetSchedule)
	formGroup.POST("/style", plannerController.SetStyle)

	planGroup := r.Group("/plan")
	planGroup.POST("", plannerController.GeneratePlan)
	planGroup.GET("/export", plannerController.ExportPlan)

	apiGroup := r.Group("/api")

	catalogGroup := apiGroup.Group("/catalog")
	catalogGroup.GET("", catalogController.ListCountries)
	catalogGroup.GET("/:country", catalogController.GetCities)

	apiFormGroup := apiGroup.Group("/form")
	apiFormGroup.GET("", tripAPIController.GetForm)
	apiFormGroup.PUT("/country", tripAPIController.SetCountry)
	apiFormGroup.PUT("/cities", tripAPIController.ToggleCity)
	apiFormGroup.PUT("/schedule", tripAPIController.SetSchedule)
	apiFormGroup.PUT("/style", tripAPIController.SetStyle)

	apiPlanGroup := apiGroup.Group("/plan")
	apiPlanGroup.POST("", tripAPIController.GeneratePlan)
	apiPlanGroup.GET("/export", tripAPIController.ExportPlan)
}
