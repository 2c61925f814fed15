package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// SearchService answers direct filter-based searches over the corpus,
// bypassing prompt parsing entirely.
type SearchService struct {
	repo RecipeRepository
}

// NewSearchService creates a SearchService instance.
func NewSearchService(repo RecipeRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search validates and clamps the filters, then fetches the match count
// and the requested page. The two reads are independent and run
// concurrently; both must finish before the result is assembled.
// Ordering is the repository's natural order, the engine adds none.
func (s *SearchService) Search(ctx context.Context, filters types.SearchFilters) (*types.SearchResult, error) {
	if filters.MaxMinutes != nil && *filters.MaxMinutes < 0 {
		return nil, &types.InvalidFilterError{
			Field:  "max_minutes",
			Reason: "must not be negative",
		}
	}

	limit := filters.Limit
	if limit == 0 {
		limit = types.DefaultSearchLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > types.MaxSearchLimit {
		limit = types.MaxSearchLimit
	}

	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		total   int64
		recipes []models.Recipe
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountByFilters(gctx, filters)
		return err
	})
	g.Go(func() error {
		var err error
		recipes, err = s.repo.FindByFilters(gctx, filters, limit, offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.SearchResult{
		Recipes:   AssembleSummaries(recipes),
		Total:     int(total),
		Count:     len(recipes),
		Limit:     limit,
		Offset:    offset,
		NoResults: len(recipes) == 0,
	}, nil
}

// GetRecipe returns the full detail for one recipe, or (nil, nil) when
// the id is unknown.
func (s *SearchService) GetRecipe(ctx context.Context, id uint) (*types.RecipeDetail, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, nil
	}
	detail := AssembleDetail(*recipe)
	return &detail, nil
}
