package service

import (
	"context"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// RecipeRepository is the read-only data-access collaborator the core
// depends on. Implementations must keep FindByKeyword and FindByFilters
// ordering stable across identical calls: FindByKeyword orders by id
// ascending, FindByFilters follows the store's natural order.
type RecipeRepository interface {
	// FindByKeyword returns up to limit recipes whose ingredient list
	// mentions the keyword, ordered by id ascending. An empty keyword
	// imposes no constraint.
	FindByKeyword(ctx context.Context, keyword string, limit int) ([]models.Recipe, error)

	// CountByFilters counts all recipes matching the filters, ignoring
	// pagination.
	CountByFilters(ctx context.Context, filters types.SearchFilters) (int64, error)

	// FindByFilters returns one page of recipes matching the filters.
	FindByFilters(ctx context.Context, filters types.SearchFilters, limit, offset int) ([]models.Recipe, error)

	// FindByID returns the recipe or (nil, nil) when no such row exists.
	FindByID(ctx context.Context, id uint) (*models.Recipe, error)

	// IngredientNames and TagNames list the parser vocabulary.
	IngredientNames(ctx context.Context) ([]string, error)
	TagNames(ctx context.Context) ([]string, error)
}
