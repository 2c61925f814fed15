package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plateful/backend/internal/metrics"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// PlanRequest is the body of POST /plan-meals.
type PlanRequest struct {
	UserPrompt string `json:"user_prompt" binding:"required"`
}

// PlanResponse carries the interpreted query alongside the matched meals.
// Total counts every candidate that survived filtering, of which the
// first num_meals are returned.
type PlanResponse struct {
	Query     types.ParsedQuery     `json:"query"`
	Recipes   []types.RecipeSummary `json:"recipes"`
	Total     int                   `json:"total"`
	NoResults bool                  `json:"no_results"`
}

// PlanHandler serves meal planning requests.
type PlanHandler struct {
	planner *service.PlannerService
	logger  *zap.Logger
}

func NewPlanHandler(planner *service.PlannerService, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{planner: planner, logger: logger}
}

func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/plan-meals", h.PlanMeals)
}

func (h *PlanHandler) PlanMeals(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_prompt is required"})
		return
	}

	query, result, err := h.planner.PlanMeals(c.Request.Context(), req.UserPrompt)
	if err != nil {
		var filterErr *types.InvalidFilterError
		if errors.As(err, &filterErr) {
			metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": filterErr.Error()})
			return
		}
		h.logger.Error("meal planning failed", zap.Error(err))
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to plan meals"})
		return
	}

	if result.NoResults {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeNoResults).Inc()
	} else {
		metrics.PlanRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	}
	c.JSON(http.StatusOK, PlanResponse{
		Query:     *query,
		Recipes:   result.Recipes,
		Total:     result.Total,
		NoResults: result.NoResults,
	})
}
