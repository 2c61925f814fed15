package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/testhelpers"
	"github.com/plateful/backend/internal/types"
)

func seededRepo(t *testing.T) *GormRecipeRepository {
	t.Helper()
	db := testhelpers.SetupSQLiteDatabase(t)
	testhelpers.SeedRecipes(t, db, []models.Recipe{
		{
			Name: "Roast Chicken", Description: "a sunday roast",
			Minutes:     testhelpers.IntPtr(90),
			Ingredients: models.JSONBStringArray{"chicken", "butter", "thyme"},
			Tags:        models.JSONBStringArray{"dinner"},
			Calories:    testhelpers.FloatPtr(750),
		},
		{
			Name: "Chicken Stir Fry", Description: "fast weeknight wok",
			Minutes:     testhelpers.IntPtr(25),
			Ingredients: models.JSONBStringArray{"chicken breast", "soy sauce", "peanuts"},
			Tags:        models.JSONBStringArray{"30-minutes-or-less"},
		},
		{
			Name: "Mushroom Risotto", Description: "slow stirred rice",
			Minutes:      testhelpers.IntPtr(45),
			Ingredients:  models.JSONBStringArray{"arborio rice", "mushrooms", "parmesan"},
			Instructions: models.JSONBStringArray{"toast the rice", "ladle in stock", "stir"},
			Tags:         models.JSONBStringArray{"vegetarian"},
		},
	})
	return NewGormRecipeRepository(db)
}

func TestFindByKeyword(t *testing.T) {
	repo := seededRepo(t)

	recipes, err := repo.FindByKeyword(context.Background(), "chicken", 10)
	require.NoError(t, err)

	require.Len(t, recipes, 2)
	assert.Equal(t, "Roast Chicken", recipes[0].Name)
	assert.Equal(t, "Chicken Stir Fry", recipes[1].Name)
	assert.Less(t, recipes[0].ID, recipes[1].ID, "results come back in id order")
}

func TestFindByKeyword_EmptyMatchesAll(t *testing.T) {
	repo := seededRepo(t)

	recipes, err := repo.FindByKeyword(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Len(t, recipes, 3)
}

func TestFindByKeyword_LimitApplies(t *testing.T) {
	repo := seededRepo(t)

	recipes, err := repo.FindByKeyword(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}

func TestFindByKeyword_CaseInsensitive(t *testing.T) {
	repo := seededRepo(t)

	recipes, err := repo.FindByKeyword(context.Background(), "CHICKEN", 10)
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}

func TestFiltersCombineWithAND(t *testing.T) {
	repo := seededRepo(t)

	minutes := 60
	filters := types.SearchFilters{
		Ingredient: "chicken",
		MaxMinutes: &minutes,
	}

	total, err := repo.CountByFilters(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	recipes, err := repo.FindByFilters(context.Background(), filters, 10, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Chicken Stir Fry", recipes[0].Name)
}

func TestFindByFilters_QueryMatchesNameOrDescription(t *testing.T) {
	repo := seededRepo(t)

	recipes, err := repo.FindByFilters(context.Background(), types.SearchFilters{Query: "weeknight"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Chicken Stir Fry", recipes[0].Name)
}

func TestFindByFilters_Pagination(t *testing.T) {
	repo := seededRepo(t)

	page1, err := repo.FindByFilters(context.Background(), types.SearchFilters{}, 2, 0)
	require.NoError(t, err)
	page2, err := repo.FindByFilters(context.Background(), types.SearchFilters{}, 2, 2)
	require.NoError(t, err)

	require.Len(t, page1, 2)
	require.Len(t, page2, 1)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)
}

func TestFindByID(t *testing.T) {
	repo := seededRepo(t)

	recipes, err := repo.FindByKeyword(context.Background(), "mushrooms", 1)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	found, err := repo.FindByID(context.Background(), recipes[0].ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Mushroom Risotto", found.Name)
	assert.Equal(t, models.JSONBStringArray{"toast the rice", "ladle in stock", "stir"}, found.Instructions)

	missing, err := repo.FindByID(context.Background(), 99999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestVocabularyNames(t *testing.T) {
	repo := seededRepo(t)

	ingredients, err := repo.IngredientNames(context.Background())
	require.NoError(t, err)
	assert.Contains(t, ingredients, "chicken")
	assert.Contains(t, ingredients, "arborio rice")

	tags, err := repo.TagNames(context.Background())
	require.NoError(t, err)
	assert.Contains(t, tags, "vegetarian")
	assert.Contains(t, tags, "30-minutes-or-less")
}

func TestNutritionRoundTrip(t *testing.T) {
	repo := seededRepo(t)

	recipes, err := repo.FindByKeyword(context.Background(), "thyme", 1)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	require.NotNil(t, recipes[0].Calories)
	assert.Equal(t, 750.0, *recipes[0].Calories)

	noNutrition, err := repo.FindByKeyword(context.Background(), "parmesan", 1)
	require.NoError(t, err)
	require.Len(t, noNutrition, 1)
	assert.Nil(t, noNutrition[0].Calories)
}
