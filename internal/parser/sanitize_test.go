package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plateful/backend/internal/types"
)

func TestSanitize_AppliesDefaults(t *testing.T) {
	q := Sanitize(&types.ParsedQuery{})

	assert.Equal(t, types.DefaultNumMeals, q.NumMeals)
	assert.Equal(t, types.DefaultServes, q.Serves)
	assert.Equal(t, types.ParserSourceRules, q.ParserSource)
}

func TestSanitize_ClampsMealCount(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-4, types.DefaultNumMeals},
		{0, types.DefaultNumMeals},
		{1, 1},
		{10, 10},
		{25, types.MaxMeals},
	}
	for _, tc := range cases {
		q := Sanitize(&types.ParsedQuery{NumMeals: tc.in})
		assert.Equal(t, tc.want, q.NumMeals, "num_meals %d", tc.in)
	}
}

func TestSanitize_NormalizesLists(t *testing.T) {
	q := Sanitize(&types.ParsedQuery{
		IngredientKeywords: []string{" Chicken ", "chicken", "", "Tofu"},
		IncludeTags:        []string{"Vegetarian", "vegetarian"},
	})

	assert.Equal(t, []string{"chicken", "tofu"}, q.IngredientKeywords)
	assert.Equal(t, []string{"vegetarian"}, q.IncludeTags)
	assert.Equal(t, "chicken", q.IngredientKeyword)
}

func TestSanitize_ExclusionWins(t *testing.T) {
	q := Sanitize(&types.ParsedQuery{
		IngredientKeywords:  []string{"pine nuts", "chicken"},
		ExcludedIngredients: []string{"nuts"},
		IncludeTags:         []string{"vegetarian", "vegan"},
		ExcludeTags:         []string{"vegan"},
	})

	assert.Equal(t, []string{"chicken"}, q.IngredientKeywords,
		"excluded 'nuts' removes the containing phrase 'pine nuts'")
	assert.Equal(t, []string{"vegetarian"}, q.IncludeTags)
	assert.Equal(t, []string{"nuts"}, q.ExcludedIngredients)
}

func TestSanitize_UnknownSourceFallsBackToRules(t *testing.T) {
	q := Sanitize(&types.ParsedQuery{ParserSource: "oracle"})
	assert.Equal(t, types.ParserSourceRules, q.ParserSource)

	q = Sanitize(&types.ParsedQuery{ParserSource: types.ParserSourceRemote})
	assert.Equal(t, types.ParserSourceRemote, q.ParserSource)
}

func TestTermsConflict(t *testing.T) {
	assert.True(t, termsConflict("nuts", "nuts"))
	assert.True(t, termsConflict("nuts", "pine nuts"))
	assert.True(t, termsConflict("pine nuts", "nuts"))
	assert.False(t, termsConflict("nuts", "chicken"))
	assert.False(t, termsConflict("", "nuts"))
}
