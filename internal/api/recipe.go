package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plateful/backend/internal/metrics"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// RecipeHandler serves recipe search and detail requests.
type RecipeHandler struct {
	search *service.SearchService
	logger *zap.Logger
}

func NewRecipeHandler(search *service.SearchService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{search: search, logger: logger}
}

func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recipes/search", h.SearchRecipes)
	rg.GET("/recipes/:id", h.GetRecipe)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	filters := types.SearchFilters{
		Query:      c.Query("q"),
		Ingredient: c.Query("ingredient"),
		Tag:        c.Query("tag"),
	}

	if raw := c.Query("max_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			metrics.SearchRequests.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_minutes must be an integer"})
			return
		}
		filters.MaxMinutes = &minutes
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			metrics.SearchRequests.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		filters.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			metrics.SearchRequests.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
			return
		}
		filters.Offset = offset
	}

	result, err := h.search.Search(c.Request.Context(), filters)
	if err != nil {
		var filterErr *types.InvalidFilterError
		if errors.As(err, &filterErr) {
			metrics.SearchRequests.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": filterErr.Error()})
			return
		}
		h.logger.Error("recipe search failed", zap.Error(err))
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search recipes"})
		return
	}

	if result.NoResults {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeNoResults).Inc()
	} else {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	}
	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id must be a positive integer"})
		return
	}

	detail, err := h.search.GetRecipe(c.Request.Context(), uint(id))
	if err != nil {
		h.logger.Error("recipe lookup failed", zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}
