package parser

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/plateful/backend/internal/types"
)

// HeuristicParser is the deterministic, offline prompt parser. Parse is
// a total function: it always returns a valid ParsedQuery and a nil
// error, degrading to documented defaults when the prompt carries no
// usable signal.
type HeuristicParser struct {
	vocab  VocabularyProvider
	logger *zap.Logger
}

// NewHeuristicParser creates a heuristic parser backed by the given
// vocabulary provider.
func NewHeuristicParser(vocab VocabularyProvider, logger *zap.Logger) *HeuristicParser {
	return &HeuristicParser{vocab: vocab, logger: logger}
}

// Parse builds a ParsedQuery from the prompt's lexical signals.
func (p *HeuristicParser) Parse(ctx context.Context, prompt string) (*types.ParsedQuery, error) {
	voc, err := p.vocab.Vocabulary(ctx)
	if err != nil {
		// A missing vocabulary degrades matching to the built-in
		// fallback ingredients; it never fails the parse.
		p.logger.Warn("vocabulary unavailable, matching against built-ins only", zap.Error(err))
		voc = Vocabulary{}
	}

	sig := Extract(prompt, voc)
	return queryFromSignals(prompt, sig, voc), nil
}

func queryFromSignals(prompt string, sig Signals, vocab Vocabulary) *types.ParsedQuery {
	q := &types.ParsedQuery{
		NumMeals:     types.DefaultNumMeals,
		Serves:       types.DefaultServes,
		ParserSource: types.ParserSourceRules,
		RawPrompt:    prompt,
	}

	if sig.CountHint != nil {
		q.NumMeals = *sig.CountHint
	}
	if sig.ServingHint != nil {
		q.Serves = *sig.ServingHint
	}

	q.ExcludedIngredients = sig.NegationSpans
	q.ExcludeTags = sig.ExcludedTags

	keywords := exceptAll(sig.IngredientCandidates, q.ExcludedIngredients)
	includeTags := exceptAll(sig.TagCandidates, q.ExcludeTags)

	if len(keywords) == 0 {
		for _, tok := range sig.Tokens {
			if _, ok := commonIngredientFallbacks[tok]; ok {
				keywords = append(keywords, tok)
				break
			}
		}
	}

	if sig.MaxMinutes != nil {
		q.MaxMinutes = sig.MaxMinutes
	} else if sig.QuickMeal {
		thirty := 30
		q.MaxMinutes = &thirty
		if vocab.HasTag("30-minutes-or-less") && !contains(includeTags, "30-minutes-or-less") {
			includeTags = append(includeTags, "30-minutes-or-less")
		}
	}

	q.MaxCalories = sig.MaxCalories
	q.MinProteinPDV = sig.MinProteinPDV
	q.MaxCarbsPDV = sig.MaxCarbsPDV
	if q.MinProteinPDV == nil && sig.HighProtein {
		floor := 20.0
		q.MinProteinPDV = &floor
	}
	if q.MaxCarbsPDV == nil && sig.LowCarb {
		carbCap := 15.0
		q.MaxCarbsPDV = &carbCap
	}

	if len(keywords) == 0 && len(includeTags) == 0 && len(sig.ContentTokens) > 0 {
		text := sig.ContentTokens
		if len(text) > 4 {
			text = text[:4]
		}
		q.SearchText = strings.Join(text, " ")
	}

	q.IngredientKeywords = keywords
	q.IncludeTags = includeTags

	return Sanitize(q)
}

func exceptAll(items, removed []string) []string {
	var out []string
	for _, item := range items {
		if !contains(removed, item) {
			out = append(out, item)
		}
	}
	return out
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
