package utils

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrUnknownStyle   = errors.New("unknown travel style")
	ErrUnknownCountry = errors.New("unknown country")
	ErrUnknownCity    = errors.New("city not offered for selected country")
	ErrPlanService    = errors.New("plan service error")
	ErrNoRenderedPlan = errors.New("no rendered plan")
	ErrSessionStore   = errors.New("session store error")
)

// PlanStatusError is returned when the plan service answers with a non-2xx status.
type PlanStatusError struct {
	StatusCode int
}

func (e *PlanStatusError) Error() string {
	return fmt.Sprintf("plan service returned status %d", e.StatusCode)
}

func (e *PlanStatusError) Unwrap() error { return ErrPlanService }
