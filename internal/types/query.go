package types

// ParsedQuery is the structured intent extracted from a free-text
// meal-planning prompt. It is built once per request and never mutated
// afterwards. Parsing is total: an unparsable prompt still yields a
// ParsedQuery with documented defaults, never a nil value.
type ParsedQuery struct {
	NumMeals            int      `json:"num_meals"`
	Serves              int      `json:"serves"`
	IngredientKeyword   string   `json:"ingredient_keyword"`
	IngredientKeywords  []string `json:"ingredient_keywords"`
	IncludeTags         []string `json:"include_tags"`
	ExcludeTags         []string `json:"exclude_tags"`
	ExcludedIngredients []string `json:"excluded_ingredients"`
	MaxMinutes          *int     `json:"max_minutes"`
	MaxCalories         *float64 `json:"max_calories"`
	MinProteinPDV       *float64 `json:"min_protein_pdv"`
	MaxCarbsPDV         *float64 `json:"max_carbs_pdv"`
	SearchText          string   `json:"search_text"`
	ParserSource        string   `json:"parser_source"`
	RawPrompt           string   `json:"raw_prompt"`
}

// Parser sources reported in ParsedQuery.ParserSource.
const (
	ParserSourceRules  = "rules"
	ParserSourceRemote = "remote"
)

// Defaults applied when a prompt carries no usable signal.
const (
	DefaultNumMeals = 3
	DefaultServes   = 2

	MinMeals = 1
	MaxMeals = 10
)
