package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelcraft/internal/api/views"
	"travelcraft/internal/models/request_models"
	"travelcraft/internal/models/response_models"
	"travelcraft/internal/models/session_models"
	"travelcraft/internal/services"
	"travelcraft/pkg/utils"
)

const (
	noticeUnknownCountry = "選択した国は利用できません"
	noticeUnknownCity    = "選択した都市は利用できません"
	noticeUnknownStyle   = "旅のスタイルを選択してください"
)

var styleLabels = []struct {
	Value session_models.TravelStyle
	Label string
}{
	{session_models.StyleRelax, "のんびり"},
	{session_models.StyleTight, "しっかり"},
}

// PlannerController serves the trip planner page and its form posts.
// Every post redirects back to the page.
type PlannerController struct {
	catalog  services.CatalogServiceInterface
	forms    services.FormServiceInterface
	planner  services.PlannerServiceInterface
	exporter services.ExportServiceInterface
	logger   *zap.Logger
}

func NewPlannerController(
	catalog services.CatalogServiceInterface,
	forms services.FormServiceInterface,
	planner services.PlannerServiceInterface,
	exporter services.ExportServiceInterface,
	logger *zap.Logger,
) *PlannerController {
	return &PlannerController{
		catalog:  catalog,
		forms:    forms,
		planner:  planner,
		exporter: exporter,
		logger:   logger.Named("planner_controller"),
	}
}

// GET /
func (p *PlannerController) Index(c *gin.Context) {
	session, notice, err := p.forms.TakeNotice(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		p.abort(c, err)
		return
	}

	c.HTML(http.StatusOK, views.PlannerPage, p.buildView(session, notice))
}

// POST /form/country
func (p *PlannerController) SelectCountry(c *gin.Context) {
	var req request_models.CountryRequest
	if err := c.ShouldBind(&req); err != nil {
		p.logger.Warn("invalid country form", zap.Error(err))
		p.finish(c, utils.ErrUnknownCountry)
		return
	}

	_, err := p.forms.SetCountry(c.Request.Context(), c.GetString("session_id"), req.Country)
	p.finish(c, err)
}

// POST /form/cities
func (p *PlannerController) ToggleCity(c *gin.Context) {
	var req request_models.CityToggleRequest
	if err := c.ShouldBind(&req); err != nil {
		p.finish(c, utils.ErrUnknownCity)
		return
	}

	_, err := p.forms.ToggleCity(c.Request.Context(), c.GetString("session_id"), req.City, req.Included)
	p.finish(c, err)
}

// POST /form/schedule
func (p *PlannerController) SetSchedule(c *gin.Context) {
	var req request_models.ScheduleRequest
	if err := c.ShouldBind(&req); err != nil {
		p.logger.Warn("invalid schedule form", zap.Error(err))
		p.finish(c, nil)
		return
	}

	_, err := p.forms.SetSchedule(c.Request.Context(), c.GetString("session_id"), req.Arrival, req.Departure)
	p.finish(c, err)
}

// POST /form/style
func (p *PlannerController) SetStyle(c *gin.Context) {
	var req request_models.StyleRequest
	if err := c.ShouldBind(&req); err != nil {
		p.finish(c, utils.ErrUnknownStyle)
		return
	}

	_, err := p.forms.SetStyle(c.Request.Context(), c.GetString("session_id"), session_models.TravelStyle(req.Style))
	p.finish(c, err)
}

// POST /plan
// Validation and service failures are already stored as the session notice.
func (p *PlannerController) GeneratePlan(c *gin.Context) {
	outcome := p.planner.GeneratePlan(c.Request.Context(), c.GetString("session_id"))
	if errors.Is(outcome.Err, utils.ErrSessionStore) {
		p.abort(c, outcome.Err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// GET /plan/export
func (p *PlannerController) ExportPlan(c *gin.Context) {
	doc, err := p.exporter.Export(c.Request.Context(), c.GetString("session_id"))
	if errors.Is(err, utils.ErrNoRenderedPlan) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		p.abort(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

func (p *PlannerController) buildView(session *session_models.Session, notice string) response_models.FormView {
	view := response_models.FormView{
		Countries: p.catalog.Countries(),
		Country:   session.Form.Country,
		Arrival:   session.Form.Arrival,
		Departure: session.Form.Departure,
		PlanLines: services.SplitPlanLines(session.Plan),
		Notice:    notice,
	}

	for _, city := range p.catalog.CitiesFor(session.Form.Country) {
		view.Cities = append(view.Cities, response_models.CityOption{
			Name:    city,
			Checked: session.Form.HasCity(city),
		})
	}

	for _, s := range styleLabels {
		view.Styles = append(view.Styles, response_models.StyleOption{
			Value:  s.Value,
			Label:  s.Label,
			Active: session.Form.Style == s.Value,
		})
	}

	return view
}

// finish turns input errors into a page notice and redirects back.
func (p *PlannerController) finish(c *gin.Context, err error) {
	notice := ""
	switch {
	case err == nil:
	case errors.Is(err, utils.ErrUnknownCountry):
		notice = noticeUnknownCountry
	case errors.Is(err, utils.ErrUnknownCity):
		notice = noticeUnknownCity
	case errors.Is(err, utils.ErrUnknownStyle):
		notice = noticeUnknownStyle
	default:
		p.abort(c, err)
		return
	}

	if notice != "" {
		if err := p.forms.Notify(c.Request.Context(), c.GetString("session_id"), notice); err != nil {
			p.abort(c, err)
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (p *PlannerController) abort(c *gin.Context, err error) {
	p.logger.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.String("trace_id", c.GetString("trace_id")),
		zap.Error(err))
	c.AbortWithStatus(http.StatusInternalServerError)
}
