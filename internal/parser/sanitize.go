package parser

import (
	"strings"

	"github.com/plateful/backend/internal/types"
)

// Sanitize enforces the ParsedQuery invariants on a query from any
// source: positive meal and serving counts, normalized lowercase lists,
// and include/exclude conflict resolution where exclusion wins. It
// returns its argument for chaining.
func Sanitize(q *types.ParsedQuery) *types.ParsedQuery {
	if q.NumMeals <= 0 {
		q.NumMeals = types.DefaultNumMeals
	}
	q.NumMeals = clampInt(q.NumMeals, types.MinMeals, types.MaxMeals)

	if q.Serves <= 0 {
		q.Serves = types.DefaultServes
	}

	q.IngredientKeywords = normalizeItems(q.IngredientKeywords)
	q.IncludeTags = normalizeItems(q.IncludeTags)
	q.ExcludeTags = normalizeItems(q.ExcludeTags)
	q.ExcludedIngredients = normalizeItems(q.ExcludedIngredients)
	q.SearchText = strings.ToLower(strings.TrimSpace(q.SearchText))

	if q.ParserSource != types.ParserSourceRules && q.ParserSource != types.ParserSourceRemote {
		q.ParserSource = types.ParserSourceRules
	}

	// An ingredient that is both wanted and excluded stays excluded.
	q.IngredientKeywords = dropConflicts(q.IngredientKeywords, q.ExcludedIngredients)
	q.IncludeTags = dropConflicts(q.IncludeTags, q.ExcludeTags)

	q.IngredientKeyword = ""
	if len(q.IngredientKeywords) > 0 {
		q.IngredientKeyword = q.IngredientKeywords[0]
	}

	return q
}

// normalizeItems trims, lowercases and de-duplicates while keeping the
// first occurrence's position.
func normalizeItems(items []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		cleaned := strings.ToLower(strings.TrimSpace(item))
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}

func dropConflicts(items, excluded []string) []string {
	var out []string
	for _, item := range items {
		conflict := false
		for _, ex := range excluded {
			if termsConflict(item, ex) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, item)
		}
	}
	return out
}

// termsConflict treats equal terms and substring-contained terms as the
// same thing, so "nuts" conflicts with "pine nuts" in either direction.
func termsConflict(a, b string) bool {
	left := strings.ToLower(strings.TrimSpace(a))
	right := strings.ToLower(strings.TrimSpace(b))
	if left == "" || right == "" {
		return false
	}
	return left == right || strings.Contains(right, left) || strings.Contains(left, right)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
