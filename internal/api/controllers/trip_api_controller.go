package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelcraft/internal/models/request_models"
	"travelcraft/internal/models/response_models"
	"travelcraft/internal/models/session_models"
	"travelcraft/internal/services"
	"travelcraft/pkg/utils"
)

// TripAPIController exposes the planner form as JSON for scripted clients.
type TripAPIController struct {
	forms    services.FormServiceInterface
	planner  services.PlannerServiceInterface
	exporter services.ExportServiceInterface
	logger   *zap.Logger
}

func NewTripAPIController(
	forms services.FormServiceInterface,
	planner services.PlannerServiceInterface,
	exporter services.ExportServiceInterface,
	logger *zap.Logger,
) *TripAPIController {
	return &TripAPIController{
		forms:    forms,
		planner:  planner,
		exporter: exporter,
		logger:   logger.Named("trip_api"),
	}
}

// GetForm godoc
// @Summary Current form state and plan of the session
// @Tags Trip
// @Produce json
// @Success 200 {object} response_models.FormStateResponse
// @Router /api/form [get]
func (t *TripAPIController) GetForm(c *gin.Context) {
	session, err := t.forms.Load(c.Request.Context(), c.GetString("session_id"))
	t.respondForm(c, session, err, "Form fetched successfully")
}

// SetCountry godoc
// @Summary Select a country (clears selected cities)
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.CountryRequest true "Country"
// @Success 200 {object} response_models.FormStateResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/form/country [put]
func (t *TripAPIController) SetCountry(c *gin.Context) {
	var req request_models.CountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := t.forms.SetCountry(c.Request.Context(), c.GetString("session_id"), req.Country)
	t.respondForm(c, session, err, "Country updated")
}

// ToggleCity godoc
// @Summary Include or exclude a city
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.CityToggleRequest true "City and whether it is included"
// @Success 200 {object} response_models.FormStateResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/form/cities [put]
func (t *TripAPIController) ToggleCity(c *gin.Context) {
	var req request_models.CityToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "city is required")
		return
	}

	session, err := t.forms.ToggleCity(c.Request.Context(), c.GetString("session_id"), req.City, req.Included)
	t.respondForm(c, session, err, "Cities updated")
}

// SetSchedule godoc
// @Summary Set arrival and/or departure
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.ScheduleRequest true "Arrival and departure, omitted fields are kept"
// @Success 200 {object} response_models.FormStateResponse
// @Router /api/form/schedule [put]
func (t *TripAPIController) SetSchedule(c *gin.Context) {
	var req request_models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := t.forms.SetSchedule(c.Request.Context(), c.GetString("session_id"), req.Arrival, req.Departure)
	t.respondForm(c, session, err, "Schedule updated")
}

// SetStyle godoc
// @Summary Set the travel style
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.StyleRequest true "relax or tight"
// @Success 200 {object} response_models.FormStateResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/form/style [put]
func (t *TripAPIController) SetStyle(c *gin.Context) {
	var req request_models.StyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "style is required")
		return
	}

	session, err := t.forms.SetStyle(c.Request.Context(), c.GetString("session_id"), session_models.TravelStyle(req.Style))
	t.respondForm(c, session, err, "Style updated")
}

// GeneratePlan godoc
// @Summary Generate a plan from the current form
// @Tags Trip
// @Produce json
// @Success 200 {object} response_models.PlanResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/plan [post]
func (t *TripAPIController) GeneratePlan(c *gin.Context) {
	sessionID := c.GetString("session_id")
	outcome := t.planner.GeneratePlan(c.Request.Context(), sessionID)
	if outcome.Err != nil {
		// the notice is meant for the page; API callers get the error instead
		if _, _, err := t.forms.TakeNotice(c.Request.Context(), sessionID); err != nil {
			t.logger.Warn("could not clear page notice",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}
		utils.HandleServiceError(c, t.logger, outcome.Err)
		return
	}

	utils.RespondSuccess(c, response_models.PlanResponse{
		Plan:  outcome.Plan,
		Lines: services.SplitPlanLines(outcome.Plan),
	}, "Travel plan created successfully")
}

// ExportPlan godoc
// @Summary Download the current plan as PDF
// @Tags Trip
// @Produce application/pdf
// @Success 200 {file} file
// @Success 204 "No plan rendered yet"
// @Router /api/plan/export [get]
func (t *TripAPIController) ExportPlan(c *gin.Context) {
	doc, err := t.exporter.Export(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

func (t *TripAPIController) respondForm(c *gin.Context, session *session_models.Session, err error, message string) {
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}
	utils.RespondSuccess(c, response_models.FormStateResponse{
		Form:      session.Form,
		Plan:      session.Plan,
		PlanLines: services.SplitPlanLines(session.Plan),
	}, message)
}
