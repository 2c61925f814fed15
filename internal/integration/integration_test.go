package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/parser"
	"github.com/plateful/backend/internal/repository"
	"github.com/plateful/backend/internal/server"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/testhelpers"
	"github.com/plateful/backend/internal/types"
)

func postgresStack(t *testing.T) *server.Server {
	t.Helper()

	db := testhelpers.SetupPostgresDatabase(t)
	testhelpers.SeedRecipes(t, db, []models.Recipe{
		{
			Name: "Roast Chicken", Description: "a sunday roast",
			Minutes:      testhelpers.IntPtr(90),
			Ingredients:  models.JSONBStringArray{"chicken", "butter", "thyme"},
			Instructions: models.JSONBStringArray{"season", "roast", "rest"},
			Tags:         models.JSONBStringArray{"dinner"},
			Calories:     testhelpers.FloatPtr(750),
		},
		{
			Name: "Chicken Stir Fry", Description: "fast weeknight wok",
			Minutes:      testhelpers.IntPtr(25),
			Ingredients:  models.JSONBStringArray{"chicken breast", "soy sauce", "peanuts"},
			Instructions: models.JSONBStringArray{"slice", "fry", "serve"},
			Tags:         models.JSONBStringArray{"30-minutes-or-less"},
		},
		{
			Name: "Mushroom Risotto", Description: "slow stirred rice",
			Minutes:      testhelpers.IntPtr(45),
			Ingredients:  models.JSONBStringArray{"arborio rice", "mushrooms", "parmesan"},
			Instructions: models.JSONBStringArray{"toast", "ladle", "stir"},
			Tags:         models.JSONBStringArray{"vegetarian"},
		},
	})

	repo := repository.NewGormRecipeRepository(db)
	local := parser.NewHeuristicParser(parser.NewVocabularyProvider(repo), zap.NewNop())
	planner := service.NewPlannerService(repo, local, zap.NewNop())
	search := service.NewSearchService(repo)

	return server.NewServer(db, planner, search, nil, zap.NewNop())
}

func TestMigrationFilesApplyOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)

	require.NoError(t, database.RunMigrations(db, "../../migrations", zap.NewNop()))

	var applied int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM schema_migrations").Scan(&applied).Error)
	assert.Equal(t, int64(2), applied)

	// A second run is a no-op.
	require.NoError(t, database.RunMigrations(db, "../../migrations", zap.NewNop()))
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM schema_migrations").Scan(&applied).Error)
	assert.Equal(t, int64(2), applied)
}

func TestPlanMealsOverPostgres(t *testing.T) {
	srv := postgresStack(t)

	body := api.PlanRequest{UserPrompt: "2 chicken meals to feed two people, no peanuts"}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan-meals", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Query.NumMeals)
	assert.Equal(t, "chicken", resp.Query.IngredientKeyword)
	assert.Contains(t, resp.Query.ExcludedIngredients, "peanuts")

	require.Len(t, resp.Recipes, 1, "the JSONB ingredient filter must run on Postgres")
	assert.Equal(t, "Roast Chicken", resp.Recipes[0].Name)
}

func TestSearchOverPostgres(t *testing.T) {
	srv := postgresStack(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/recipes/search?ingredient=chicken&max_minutes=30", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Chicken Stir Fry", result.Recipes[0].Name)
	assert.Equal(t, 1, result.Total)
}
