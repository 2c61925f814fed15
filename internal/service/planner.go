package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/parser"
	"github.com/plateful/backend/internal/types"
)

// planCandidateLimit bounds the candidate pool fetched per plan request.
// Total reflects the filtered pool within this window.
const planCandidateLimit = 500

// PlannerService turns a meal-planning prompt into a set of matching
// recipes: parse the prompt, fetch candidates, apply exclusions and
// select the first num_meals survivors in id order.
type PlannerService struct {
	repo   RecipeRepository
	parser parser.Parser
	logger *zap.Logger
}

// NewPlannerService creates a PlannerService instance.
func NewPlannerService(repo RecipeRepository, p parser.Parser, logger *zap.Logger) *PlannerService {
	return &PlannerService{repo: repo, parser: p, logger: logger}
}

// PlanMeals parses the prompt and matches recipes for it. The returned
// query is always valid; repository failures propagate unwrapped so the
// transport layer can classify them.
func (s *PlannerService) PlanMeals(ctx context.Context, prompt string) (*types.ParsedQuery, *types.SearchResult, error) {
	q, err := s.parser.Parse(ctx, prompt)
	if err != nil {
		// The selector contract recovers upstream failures, so this
		// only fires on programmer error in a custom parser wiring.
		return nil, nil, err
	}

	result, err := s.Match(ctx, q)
	if err != nil {
		return q, nil, err
	}
	return q, result, nil
}

// Match converts a ParsedQuery into repository calls and selection
// logic. Selection is deterministic: identical queries against an
// unchanged repository yield identical recipe ids in identical order.
func (s *PlannerService) Match(ctx context.Context, q *types.ParsedQuery) (*types.SearchResult, error) {
	candidates, err := s.fetchCandidates(ctx, q)
	if err != nil {
		return nil, err
	}

	var survivors []models.Recipe
	seen := make(map[uint]struct{}, len(candidates))
	for _, r := range candidates {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		if matchesQuery(r, q) {
			survivors = append(survivors, r)
		}
	}

	selected := survivors
	if len(selected) > q.NumMeals {
		selected = selected[:q.NumMeals]
	}

	return &types.SearchResult{
		Recipes:   AssembleSummaries(selected),
		Total:     len(survivors),
		Count:     len(selected),
		Limit:     q.NumMeals,
		Offset:    0,
		NoResults: len(selected) == 0,
	}, nil
}

func (s *PlannerService) fetchCandidates(ctx context.Context, q *types.ParsedQuery) ([]models.Recipe, error) {
	if q.IngredientKeyword == "" && q.SearchText != "" {
		return s.repo.FindByFilters(ctx, types.SearchFilters{Query: q.SearchText}, planCandidateLimit, 0)
	}
	return s.repo.FindByKeyword(ctx, q.IngredientKeyword, planCandidateLimit)
}

// matchesQuery applies the in-memory constraints: every wanted keyword
// present, no excluded ingredient present, tag includes/excludes, and
// the time and nutrition caps. Ingredient and tag checks are
// case-insensitive containment on names, never on instruction text.
// Rows missing a capped value are dropped when that cap is set.
func matchesQuery(r models.Recipe, q *types.ParsedQuery) bool {
	for _, kw := range q.IngredientKeywords {
		if !anyNameContains(r.Ingredients, kw) {
			return false
		}
	}
	for _, ex := range q.ExcludedIngredients {
		if anyNameContains(r.Ingredients, ex) {
			return false
		}
	}
	for _, tag := range q.IncludeTags {
		if !anyNameContains(r.Tags, tag) {
			return false
		}
	}
	for _, tag := range q.ExcludeTags {
		if anyNameContains(r.Tags, tag) {
			return false
		}
	}

	if q.MaxMinutes != nil && (r.Minutes == nil || *r.Minutes > *q.MaxMinutes) {
		return false
	}
	if q.MaxCalories != nil && (r.Calories == nil || *r.Calories > *q.MaxCalories) {
		return false
	}
	if q.MinProteinPDV != nil && (r.ProteinPDV == nil || *r.ProteinPDV < *q.MinProteinPDV) {
		return false
	}
	if q.MaxCarbsPDV != nil && (r.CarbohydratesPDV == nil || *r.CarbohydratesPDV > *q.MaxCarbsPDV) {
		return false
	}

	return true
}

func anyNameContains(names []string, term string) bool {
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), term) {
			return true
		}
	}
	return false
}
