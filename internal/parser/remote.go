package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/types"
)

const remoteSystemPrompt = "You are a meal planning parser. " +
	"Extract only structured query fields. " +
	"Return a single JSON object and no extra text."

const remoteSchemaPrompt = `Parse the request into this schema:
{
  "num_meals": int,
  "serves": int,
  "ingredient_keywords": string[],
  "include_tags": string[],
  "exclude_tags": string[],
  "excluded_ingredients": string[],
  "max_minutes": int|null,
  "max_calories": number|null,
  "min_protein_pdv": number|null,
  "max_carbs_pdv": number|null,
  "search_text": string
}
If a value is unknown, leave null or empty array/string.

User request: %s`

// chatMessage is a message in the completion request
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the hosted completion API
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// remoteQuery mirrors the ParsedQuery schema the model is instructed to
// return. Decoding is strict: unknown fields or mistyped values fail the
// call rather than being coerced.
type remoteQuery struct {
	NumMeals            *int     `json:"num_meals"`
	Serves              *int     `json:"serves"`
	IngredientKeywords  []string `json:"ingredient_keywords"`
	IncludeTags         []string `json:"include_tags"`
	ExcludeTags         []string `json:"exclude_tags"`
	ExcludedIngredients []string `json:"excluded_ingredients"`
	MaxMinutes          *int     `json:"max_minutes"`
	MaxCalories         *float64 `json:"max_calories"`
	MinProteinPDV       *float64 `json:"min_protein_pdv"`
	MaxCarbsPDV         *float64 `json:"max_carbs_pdv"`
	SearchText          string   `json:"search_text"`
}

// RemoteParser delegates prompt parsing to a hosted language-model
// service. Calls are bounded by the configured timeout and retried once
// on transient network failure; schema-validation failures are not
// retried. All failures surface as *types.UpstreamError.
type RemoteParser struct {
	client *resty.Client
	apiURL string
	model  string
	logger *zap.Logger
}

// NewRemoteParser creates a remote parser adapter from configuration.
func NewRemoteParser(cfg config.RemoteParserConfig, logger *zap.Logger) *RemoteParser {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(1).
		SetRetryWaitTime(0).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry network-level failures only; a response we could
			// read is never retried.
			return err != nil
		}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	return &RemoteParser{
		client: client,
		apiURL: cfg.APIURL,
		model:  cfg.Model,
		logger: logger,
	}
}

// Parse sends the prompt to the hosted parser and validates the response
// against the ParsedQuery schema. Fields the model left empty stay empty
// so the selector can fill them from the heuristic result; the selector
// sanitizes the merged query before it reaches the matcher.
func (p *RemoteParser) Parse(ctx context.Context, prompt string) (*types.ParsedQuery, error) {
	body := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: remoteSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(remoteSchemaPrompt, prompt)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	var result chatResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(p.apiURL)
	if err != nil {
		return nil, &types.UpstreamError{Op: "request", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &types.UpstreamError{Op: fmt.Sprintf("unexpected status %d", resp.StatusCode())}
	}
	if len(result.Choices) == 0 {
		return nil, &types.UpstreamError{Op: "empty completion"}
	}

	rq, err := decodeRemoteQuery(result.Choices[0].Message.Content)
	if err != nil {
		return nil, &types.UpstreamError{Op: "schema validation", Err: err}
	}

	q := &types.ParsedQuery{
		IngredientKeywords:  rq.IngredientKeywords,
		IncludeTags:         rq.IncludeTags,
		ExcludeTags:         rq.ExcludeTags,
		ExcludedIngredients: rq.ExcludedIngredients,
		MaxMinutes:          rq.MaxMinutes,
		MaxCalories:         rq.MaxCalories,
		MinProteinPDV:       rq.MinProteinPDV,
		MaxCarbsPDV:         rq.MaxCarbsPDV,
		SearchText:          rq.SearchText,
		ParserSource:        types.ParserSourceRemote,
		RawPrompt:           prompt,
	}
	if rq.NumMeals != nil {
		q.NumMeals = *rq.NumMeals
	}
	if rq.Serves != nil {
		q.Serves = *rq.Serves
	}

	return q, nil
}

func decodeRemoteQuery(content string) (*remoteQuery, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	dec.DisallowUnknownFields()

	var rq remoteQuery
	if err := dec.Decode(&rq); err != nil {
		return nil, fmt.Errorf("decoding completion content: %w", err)
	}

	if rq.NumMeals != nil && *rq.NumMeals < 0 {
		return nil, fmt.Errorf("num_meals must not be negative, got %d", *rq.NumMeals)
	}
	if rq.Serves != nil && *rq.Serves < 0 {
		return nil, fmt.Errorf("serves must not be negative, got %d", *rq.Serves)
	}
	if rq.MaxMinutes != nil && *rq.MaxMinutes < 0 {
		return nil, fmt.Errorf("max_minutes must not be negative, got %d", *rq.MaxMinutes)
	}

	return &rq, nil
}
