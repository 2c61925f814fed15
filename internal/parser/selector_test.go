package parser

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/metrics"
	"github.com/plateful/backend/internal/types"
)

type stubParser struct {
	query *types.ParsedQuery
	err   error
}

func (s *stubParser) Parse(context.Context, string) (*types.ParsedQuery, error) {
	return s.query, s.err
}

func TestSelect_DisabledReturnsLocal(t *testing.T) {
	local := newTestParser(testVocab())

	p := Select(config.RemoteParserConfig{Enabled: false}, local, &stubParser{}, zap.NewNop())
	assert.Same(t, Parser(local), p)

	p = Select(config.RemoteParserConfig{Enabled: true}, local, nil, zap.NewNop())
	assert.Same(t, Parser(local), p)
}

func TestSelect_RemoteWins(t *testing.T) {
	local := newTestParser(testVocab())
	remote := &stubParser{query: &types.ParsedQuery{
		NumMeals:           5,
		Serves:             3,
		IngredientKeywords: []string{"tofu"},
		ParserSource:       types.ParserSourceRemote,
	}}

	p := Select(config.RemoteParserConfig{Enabled: true, Timeout: time.Second}, local, remote, zap.NewNop())

	q, err := p.Parse(context.Background(), "3 meals with chicken")
	require.NoError(t, err)

	assert.Equal(t, 5, q.NumMeals)
	assert.Equal(t, []string{"tofu"}, q.IngredientKeywords)
	assert.Equal(t, types.ParserSourceRemote, q.ParserSource)
}

func TestSelect_LocalFillsRemoteGaps(t *testing.T) {
	local := newTestParser(testVocab())
	remote := &stubParser{query: &types.ParsedQuery{
		ParserSource: types.ParserSourceRemote,
	}}

	p := Select(config.RemoteParserConfig{Enabled: true, Timeout: time.Second}, local, remote, zap.NewNop())

	q, err := p.Parse(context.Background(), "4 meals with chicken for six people")
	require.NoError(t, err)

	assert.Equal(t, 4, q.NumMeals, "empty remote count falls back to heuristics")
	assert.Equal(t, 6, q.Serves)
	assert.Equal(t, []string{"chicken"}, q.IngredientKeywords)
	assert.Equal(t, types.ParserSourceRemote, q.ParserSource)
}

func TestSelect_FallsBackOnUpstreamError(t *testing.T) {
	local := newTestParser(testVocab())
	remote := &stubParser{err: &types.UpstreamError{Op: "request"}}

	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	before := testutil.ToFloat64(metrics.ParserFallbacks)

	p := Select(config.RemoteParserConfig{Enabled: true, Timeout: time.Second}, local, remote, logger)

	q, err := p.Parse(context.Background(), "3 meals with chicken")
	require.NoError(t, err, "upstream failure must not surface to callers")

	assert.Equal(t, 3, q.NumMeals)
	assert.Equal(t, "chicken", q.IngredientKeyword)
	assert.Equal(t, types.ParserSourceRules, q.ParserSource)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ParserFallbacks))
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "degraded")
}
