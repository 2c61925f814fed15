package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// GormRecipeRepository is the GORM-backed implementation of the recipe
// repository: PostgreSQL in production, SQLite in tests. All reads, no
// writes. Storage failures are wrapped in *types.RepositoryError.
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a repository over the given connection.
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// ingredientsContains builds a dialect-aware LIKE condition over the
// JSONB ingredient array. Postgres needs the ::text cast, SQLite stores
// the JSON as plain text.
func (r *GormRecipeRepository) ingredientsContains(q *gorm.DB, term string) *gorm.DB {
	like := "%" + strings.ToLower(term) + "%"
	if r.db.Dialector.Name() == "postgres" {
		return q.Where("LOWER(ingredients::text) LIKE ?", like)
	}
	return q.Where("LOWER(ingredients) LIKE ?", like)
}

func (r *GormRecipeRepository) tagsContains(q *gorm.DB, term string) *gorm.DB {
	like := "%" + strings.ToLower(term) + "%"
	if r.db.Dialector.Name() == "postgres" {
		return q.Where("LOWER(tags::text) LIKE ?", like)
	}
	return q.Where("LOWER(tags) LIKE ?", like)
}

// FindByKeyword returns up to limit recipes mentioning the keyword in
// their ingredient list, ordered by id ascending so plan selection is
// reproducible. An empty keyword matches everything.
func (r *GormRecipeRepository) FindByKeyword(ctx context.Context, keyword string, limit int) ([]models.Recipe, error) {
	query := r.db.WithContext(ctx).Model(&models.Recipe{})
	if keyword != "" {
		query = r.ingredientsContains(query, keyword)
	}

	var recipes []models.Recipe
	if err := query.Order("id ASC").Limit(limit).Find(&recipes).Error; err != nil {
		return nil, &types.RepositoryError{Op: "find by keyword", Err: err}
	}
	return recipes, nil
}

// filterQuery combines all present filters with AND semantics.
func (r *GormRecipeRepository) filterQuery(ctx context.Context, filters types.SearchFilters) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Recipe{})

	if filters.Query != "" {
		like := "%" + strings.ToLower(filters.Query) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filters.Ingredient != "" {
		query = r.ingredientsContains(query, filters.Ingredient)
	}
	if filters.Tag != "" {
		query = r.tagsContains(query, filters.Tag)
	}
	if filters.MaxMinutes != nil {
		query = query.Where("minutes <= ?", *filters.MaxMinutes)
	}

	return query
}

// CountByFilters counts all matches regardless of pagination.
func (r *GormRecipeRepository) CountByFilters(ctx context.Context, filters types.SearchFilters) (int64, error) {
	var total int64
	if err := r.filterQuery(ctx, filters).Count(&total).Error; err != nil {
		return 0, &types.RepositoryError{Op: "count by filters", Err: err}
	}
	return total, nil
}

// FindByFilters returns one page of matches in id order, the
// repository's natural order for this corpus.
func (r *GormRecipeRepository) FindByFilters(ctx context.Context, filters types.SearchFilters, limit, offset int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.filterQuery(ctx, filters).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	if err != nil {
		return nil, &types.RepositoryError{Op: "find by filters", Err: err}
	}
	return recipes, nil
}

// FindByID returns the recipe or (nil, nil) when the id is unknown.
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &types.RepositoryError{Op: "find by id", Err: err}
	}
	return &recipe, nil
}

// IngredientNames lists the ingredient vocabulary in name order.
func (r *GormRecipeRepository) IngredientNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Ingredient{}).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, &types.RepositoryError{Op: "list ingredient names", Err: err}
	}
	return names, nil
}

// TagNames lists the tag vocabulary in name order.
func (r *GormRecipeRepository) TagNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, &types.RepositoryError{Op: "list tag names", Err: err}
	}
	return names, nil
}
