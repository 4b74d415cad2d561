package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"travelcraft/internal/models/request_models"
	"travelcraft/internal/models/response_models"
	"travelcraft/pkg/utils"
)

const generatePlanPath = "/generate-plan"

type PlanClientInterface interface {
	GeneratePlan(ctx context.Context, req request_models.PlanRequest) (string, error)
}

// HTTPPlanClient talks to the plan generation service.
type HTTPPlanClient struct {
	HTTP    *http.Client
	BaseURL string // e.g. http://localhost:8000
}

// NewHTTPPlanClient builds a client; timeout 0 means wait as long as the caller's context allows.
func NewHTTPPlanClient(baseURL string, timeout time.Duration) *HTTPPlanClient {
	return &HTTPPlanClient{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *HTTPPlanClient) GeneratePlan(ctx context.Context, planReq request_models.PlanRequest) (string, error) {
	body, err := json.Marshal(planReq)
	if err != nil {
		return "", fmt.Errorf("encode plan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+generatePlanPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", utils.ErrPlanService, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrPlanService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", &utils.PlanStatusError{StatusCode: resp.StatusCode}
	}

	var payload response_models.PlanServiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", utils.ErrPlanService, err)
	}

	return payload.Plan, nil
}
