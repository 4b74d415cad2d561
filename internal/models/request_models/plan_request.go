package request_models

import "travelcraft/internal/models/session_models"

// PlanRequest is the body sent to the plan generation service.
type PlanRequest struct {
	Country   string                     `json:"country"`
	Cities    []string                   `json:"cities"`
	Arrival   string                     `json:"arrival"`
	Departure string                     `json:"departure"`
	Style     session_models.TravelStyle `json:"style"`
}

// NewPlanRequest snapshots the form; later form edits do not leak into it.
func NewPlanRequest(f session_models.FormState) PlanRequest {
	cities := make([]string, len(f.Cities))
	copy(cities, f.Cities)
	return PlanRequest{
		Country:   f.Country,
		Cities:    cities,
		Arrival:   f.Arrival,
		Departure: f.Departure,
		Style:     f.Style,
	}
}
