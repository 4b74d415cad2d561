package request_models

// Bindings accept both the page's urlencoded forms and the JSON API.

type CountryRequest struct {
	Country string `form:"country" json:"country"`
}

type CityToggleRequest struct {
	City     string `form:"city" json:"city" binding:"required"`
	Included bool   `form:"included" json:"included"`
}

type ScheduleRequest struct {
	Arrival   *string `form:"arrival" json:"arrival"`
	Departure *string `form:"departure" json:"departure"`
}

type StyleRequest struct {
	Style string `form:"style" json:"style" binding:"required"`
}
