package parser

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/metrics"
	"github.com/plateful/backend/internal/types"
)

// Parser turns a raw prompt into a ParsedQuery. Implementations must
// treat the query as a value object: construct once, never mutate.
type Parser interface {
	Parse(ctx context.Context, prompt string) (*types.ParsedQuery, error)
}

// Select picks the parsing strategy for the given configuration. With
// remote parsing disabled it returns the local heuristic parser. With it
// enabled it returns a composed parser that consults the remote service
// first and falls back to the heuristics on any upstream failure; the
// composed parser never returns an error, only a degraded-mode signal in
// logs and metrics.
func Select(cfg config.RemoteParserConfig, local *HeuristicParser, remote Parser, logger *zap.Logger) Parser {
	if !cfg.Enabled || remote == nil {
		return local
	}
	return &fallbackParser{
		remote:  remote,
		local:   local,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

type fallbackParser struct {
	remote  Parser
	local   *HeuristicParser
	timeout time.Duration
	logger  *zap.Logger
}

func (p *fallbackParser) Parse(ctx context.Context, prompt string) (*types.ParsedQuery, error) {
	// The heuristic result is needed either way: it is the fallback on
	// upstream failure and it fills the gaps the remote parser leaves.
	local, _ := p.local.Parse(ctx, prompt)

	rctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	remote, err := p.remote.Parse(rctx, prompt)
	if err != nil {
		p.logger.Warn("remote parser degraded, serving local heuristics",
			zap.Error(err),
			zap.String("parser_source", types.ParserSourceRules))
		metrics.ParserFallbacks.Inc()
		return local, nil
	}

	return Sanitize(merge(remote, local)), nil
}

// merge takes the remote result first and lets the heuristic result fill
// fields the remote left empty.
func merge(remote, local *types.ParsedQuery) *types.ParsedQuery {
	merged := *remote

	if len(merged.IngredientKeywords) == 0 {
		merged.IngredientKeywords = local.IngredientKeywords
	}
	if len(merged.IncludeTags) == 0 {
		merged.IncludeTags = local.IncludeTags
	}
	if len(merged.ExcludeTags) == 0 {
		merged.ExcludeTags = local.ExcludeTags
	}
	if len(merged.ExcludedIngredients) == 0 {
		merged.ExcludedIngredients = local.ExcludedIngredients
	}

	if merged.MaxMinutes == nil {
		merged.MaxMinutes = local.MaxMinutes
	}
	if merged.MaxCalories == nil {
		merged.MaxCalories = local.MaxCalories
	}
	if merged.MinProteinPDV == nil {
		merged.MinProteinPDV = local.MinProteinPDV
	}
	if merged.MaxCarbsPDV == nil {
		merged.MaxCarbsPDV = local.MaxCarbsPDV
	}

	if merged.SearchText == "" {
		merged.SearchText = local.SearchText
	}
	if merged.NumMeals <= 0 {
		merged.NumMeals = local.NumMeals
	}
	if merged.Serves <= 0 {
		merged.Serves = local.Serves
	}

	return &merged
}
