package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service errors onto the API envelope.
func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var statusErr *PlanStatusError

	switch {
	case errors.Is(err, ErrMissingFields):
		RespondError(c, http.StatusBadRequest, "country, cities, arrival and departure are required")
	case errors.Is(err, ErrUnknownStyle):
		RespondError(c, http.StatusBadRequest, "style must be relax or tight")
	case errors.Is(err, ErrUnknownCountry):
		RespondError(c, http.StatusBadRequest, "country is not in the catalog")
	case errors.Is(err, ErrUnknownCity):
		RespondError(c, http.StatusBadRequest, "city is not offered for the selected country")
	case errors.Is(err, ErrNoRenderedPlan):
		c.Status(http.StatusNoContent)
	case errors.As(err, &statusErr):
		logger.Warn("plan service rejected request", zap.Int("status", statusErr.StatusCode), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusBadGateway, statusErr.Error())
	case errors.Is(err, ErrPlanService):
		logger.Warn("plan service unreachable", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusBadGateway, "Plan service unavailable")
	default:
		logger.Error("unhandled error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
