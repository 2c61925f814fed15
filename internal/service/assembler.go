package service

import (
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// AssembleSummary shapes a repository row into the summary form used by
// search and plan results. Instructions are left to the detail endpoint.
func AssembleSummary(r models.Recipe) types.RecipeSummary {
	return types.RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Serves:      r.Serves,
		Minutes:     r.Minutes,
		Ingredients: r.Ingredients,
		Tags:        r.Tags,
		Nutrition:   assembleNutrition(r),
	}
}

// AssembleSummaries maps a slice of rows, preserving order.
func AssembleSummaries(recipes []models.Recipe) []types.RecipeSummary {
	out := make([]types.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, AssembleSummary(r))
	}
	return out
}

// AssembleDetail shapes a repository row into the full detail form with
// the complete ordered instruction list.
func AssembleDetail(r models.Recipe) types.RecipeDetail {
	return types.RecipeDetail{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Serves:       r.Serves,
		Minutes:      r.Minutes,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Tags:         r.Tags,
		Nutrition:    assembleNutrition(r),
	}
}

// assembleNutrition returns nil when the row carries no nutrition data
// at all, so callers see "unavailable" rather than zeros.
func assembleNutrition(r models.Recipe) *types.Nutrition {
	if r.Calories == nil && r.TotalFatPDV == nil && r.SugarPDV == nil &&
		r.SodiumPDV == nil && r.ProteinPDV == nil && r.SaturatedFatPDV == nil &&
		r.CarbohydratesPDV == nil {
		return nil
	}
	return &types.Nutrition{
		Calories:         r.Calories,
		TotalFatPDV:      r.TotalFatPDV,
		SugarPDV:         r.SugarPDV,
		SodiumPDV:        r.SodiumPDV,
		ProteinPDV:       r.ProteinPDV,
		SaturatedFatPDV:  r.SaturatedFatPDV,
		CarbohydratesPDV: r.CarbohydratesPDV,
	}
}
