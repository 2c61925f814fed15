package parser

import (
	"context"
	"strings"
)

// Vocabulary carries the known ingredient and tag names the lexical
// extractor matches prompt n-grams against. Lookups are lowercase.
type Vocabulary struct {
	Ingredients map[string]struct{}
	Tags        map[string]struct{}
}

// NewVocabulary builds a Vocabulary from raw name lists, lowercasing as
// it goes.
func NewVocabulary(ingredients, tags []string) Vocabulary {
	v := Vocabulary{
		Ingredients: make(map[string]struct{}, len(ingredients)),
		Tags:        make(map[string]struct{}, len(tags)),
	}
	for _, name := range ingredients {
		v.Ingredients[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	for _, name := range tags {
		v.Tags[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	return v
}

// HasIngredient reports whether name is a known ingredient.
func (v Vocabulary) HasIngredient(name string) bool {
	_, ok := v.Ingredients[name]
	return ok
}

// HasTag reports whether name is a known tag.
func (v Vocabulary) HasTag(name string) bool {
	_, ok := v.Tags[name]
	return ok
}

// NameSource lists vocabulary names, typically backed by the recipe
// repository with an optional cache in front.
type NameSource interface {
	IngredientNames(ctx context.Context) ([]string, error)
	TagNames(ctx context.Context) ([]string, error)
}

// VocabularyProvider loads the current vocabulary for a parse call.
type VocabularyProvider interface {
	Vocabulary(ctx context.Context) (Vocabulary, error)
}

type sourceProvider struct {
	src NameSource
}

// NewVocabularyProvider adapts a NameSource into a VocabularyProvider.
func NewVocabularyProvider(src NameSource) VocabularyProvider {
	return &sourceProvider{src: src}
}

func (p *sourceProvider) Vocabulary(ctx context.Context) (Vocabulary, error) {
	ingredients, err := p.src.IngredientNames(ctx)
	if err != nil {
		return Vocabulary{}, err
	}
	tags, err := p.src.TagNames(ctx)
	if err != nil {
		return Vocabulary{}, err
	}
	return NewVocabulary(ingredients, tags), nil
}

// StaticVocabulary returns a provider serving a fixed vocabulary,
// useful in tests and offline tooling.
func StaticVocabulary(v Vocabulary) VocabularyProvider {
	return staticProvider{v: v}
}

type staticProvider struct {
	v Vocabulary
}

func (p staticProvider) Vocabulary(context.Context) (Vocabulary, error) {
	return p.v, nil
}
