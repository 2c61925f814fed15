package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/parser"
	"github.com/plateful/backend/internal/repository"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/testhelpers"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDatabase(t)
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

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewPlanHandler(planner, zap.NewNop()).RegisterRoutes(v1)
	NewRecipeHandler(search, zap.NewNop()).RegisterRoutes(v1)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
