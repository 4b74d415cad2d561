package response_models

import "travelcraft/internal/models/session_models"

type CityOption struct {
	Name    string
	Checked bool
}

type StyleOption struct {
	Value  session_models.TravelStyle
	Label  string
	Active bool
}

// FormView is the data the planner page template renders.
type FormView struct {
	Countries []string
	Country   string
	Cities    []CityOption
	Arrival   string
	Departure string
	Styles    []StyleOption
	PlanLines []string
	Notice    string
}

// FormStateResponse is the JSON view of a session's form and plan.
type FormStateResponse struct {
	Form      session_models.FormState `json:"form"`
	Plan      string                   `json:"plan,omitempty"`
	PlanLines []string                 `json:"plan_lines,omitempty"`
}
