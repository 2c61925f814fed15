package types

// SearchFilters is the structured filter set for direct recipe search,
// bypassing prompt parsing. Absent filters impose no constraint; present
// filters combine with AND semantics.
type SearchFilters struct {
	Query      string `json:"q"`
	Ingredient string `json:"ingredient"`
	Tag        string `json:"tag"`
	MaxMinutes *int   `json:"max_minutes"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}

// Pagination bounds for search requests.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
)

// Nutrition holds the optional per-recipe nutrition record. A nil field
// means the value is unavailable, not zero.
type Nutrition struct {
	Calories         *float64 `json:"calories,omitempty"`
	TotalFatPDV      *float64 `json:"total_fat_pdv,omitempty"`
	SugarPDV         *float64 `json:"sugar_pdv,omitempty"`
	SodiumPDV        *float64 `json:"sodium_pdv,omitempty"`
	ProteinPDV       *float64 `json:"protein_pdv,omitempty"`
	SaturatedFatPDV  *float64 `json:"saturated_fat_pdv,omitempty"`
	CarbohydratesPDV *float64 `json:"carbohydrates_pdv,omitempty"`
}

// RecipeSummary is the recipe shape returned by search and plan results.
// Instructions are omitted here; the detail endpoint carries them.
type RecipeSummary struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Serves      *int       `json:"serves,omitempty"`
	Minutes     *int       `json:"minutes,omitempty"`
	Ingredients []string   `json:"ingredients"`
	Tags        []string   `json:"tags"`
	Nutrition   *Nutrition `json:"nutrition,omitempty"`
}

// RecipeDetail is the full recipe shape with complete ordered instructions.
type RecipeDetail struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Serves       *int       `json:"serves,omitempty"`
	Minutes      *int       `json:"minutes,omitempty"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	Tags         []string   `json:"tags"`
	Nutrition    *Nutrition `json:"nutrition,omitempty"`
}

// SearchResult is the assembled outcome of a plan match or a filter
// search. Recipes preserve selection order; Total counts all matches
// before pagination or truncation.
type SearchResult struct {
	Recipes   []RecipeSummary `json:"recipes"`
	Total     int             `json:"total"`
	Count     int             `json:"count"`
	Limit     int             `json:"limit"`
	Offset    int             `json:"offset"`
	NoResults bool            `json:"no_results"`
}
