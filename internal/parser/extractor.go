package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// stopwords are prompt tokens that never name an ingredient or tag on
// their own and are dropped from free-text fallbacks.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "create": {}, "dinner": {}, "dinners": {}, "dish": {},
	"dishes": {}, "feed": {}, "for": {}, "from": {}, "i": {}, "in": {},
	"is": {}, "it": {}, "main": {}, "meal": {}, "meals": {}, "my": {},
	"no": {}, "of": {}, "on": {}, "or": {}, "people": {}, "person": {},
	"please": {}, "recipe": {}, "recipes": {}, "that": {}, "the": {},
	"there": {}, "to": {}, "want": {}, "with": {}, "without": {},
	"allergy": {}, "allergies": {},
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// commonIngredientFallbacks are scanned when no vocabulary ingredient
// matched, so a prompt like "chicken please" still plans around chicken
// even with an empty vocabulary.
var commonIngredientFallbacks = map[string]struct{}{
	"chicken": {}, "beef": {}, "pork": {}, "tofu": {}, "salmon": {},
	"turkey": {}, "lamb": {}, "shrimp": {}, "fish": {}, "rice": {},
	"pasta": {},
}

var negationTokens = map[string]struct{}{
	"no": {}, "without": {}, "exclude": {}, "excluding": {}, "avoid": {},
}

var allergyTokens = map[string]struct{}{
	"allergy": {}, "allergies": {}, "allergic": {},
}

var allergyFillerTokens = map[string]struct{}{
	"to": {}, "against": {}, "with": {}, "from": {}, "i": {}, "am": {},
	"very": {}, "really": {}, "extremely": {},
}

var servingLeadTokens = map[string]struct{}{
	"feed": {}, "feeds": {}, "serve": {}, "serves": {},
}

// tokenAliases folds frequent misspellings onto their canonical token.
var tokenAliases = map[string]string{
	"vegeterian": "vegetarian",
	"vegatarian": "vegetarian",
	"vegitarian": "vegetarian",
	"chicen":     "chicken",
	"alergies":   "allergies",
}

var (
	tokenPattern   = regexp.MustCompile(`[a-zA-Z0-9']+`)
	minutesPattern = regexp.MustCompile(`(?:under|less than|below|max(?:imum)?|within)\s*(\d+)\s*(?:mins?|minutes?)`)
)

// Signals is the typed bag of hints the lexical extractor pulls from a
// raw prompt. Absent hints stay nil; the parser applies defaults, the
// extractor never guesses.
type Signals struct {
	Tokens               []string
	CountHint            *int
	ServingHint          *int
	IngredientCandidates []string
	TagCandidates        []string
	NegationSpans        []string
	ExcludedTags         []string
	MaxMinutes           *int
	QuickMeal            bool
	MaxCalories          *float64
	MinProteinPDV        *float64
	MaxCarbsPDV          *float64
	HighProtein          bool
	LowCarb              bool
	ContentTokens        []string
}

// Extract runs the lexical pass over a raw prompt against the given
// vocabulary. It is a pure function: case-insensitive, whitespace
// agnostic, no side effects.
func Extract(prompt string, vocab Vocabulary) Signals {
	lower := strings.ToLower(prompt)
	tokens := tokenize(prompt)

	sig := Signals{Tokens: tokens}

	sig.CountHint = extractCountHint(tokens)
	sig.ServingHint = extractServingHint(tokens)

	sig.IngredientCandidates, sig.TagCandidates = lookupKnownTerms(collectNgrams(tokens, 3), vocab)
	sig.NegationSpans, sig.ExcludedTags = extractNegations(tokens, vocab)

	if m := minutesPattern.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			sig.MaxMinutes = &v
		}
	}
	sig.QuickMeal = containsToken(tokens, "quick") || containsToken(tokens, "fast")

	sig.MaxCalories = extractNumericConstraint(maxConstraintPrefix, lower, "calories", "kcal")
	sig.MinProteinPDV = extractNumericConstraint(minConstraintPrefix, lower, "protein")
	sig.MaxCarbsPDV = extractNumericConstraint(maxConstraintPrefix, lower, "carb", "carbs", "carbohydrates")
	sig.HighProtein = strings.Contains(lower, "high protein")
	sig.LowCarb = strings.Contains(lower, "low carb")

	for _, tok := range tokens {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if isDigits(tok) {
			continue
		}
		sig.ContentTokens = append(sig.ContentTokens, tok)
	}

	return sig
}

// tokenize lowercases, splits on non-word runes and folds typo aliases.
// Any "veget*" prefix collapses to "vegetarian" to catch the long tail
// of misspellings.
func tokenize(prompt string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(prompt), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if alias, ok := tokenAliases[tok]; ok {
			tok = alias
		}
		if strings.HasPrefix(tok, "veget") {
			tok = "vegetarian"
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func tokenToInt(token string) *int {
	if isDigits(token) {
		if v, err := strconv.Atoi(token); err == nil {
			return &v
		}
		return nil
	}
	if v, ok := numberWords[token]; ok {
		return &v
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isMealNoun(token string) bool {
	for _, prefix := range []string{"meal", "recipe", "dish", "dinner"} {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

// extractCountHint finds "3 meals" style phrases, allowing one token
// between the number and the meal noun ("2 vegetarian meals").
func extractCountHint(tokens []string) *int {
	for i := 0; i < len(tokens)-1; i++ {
		n := tokenToInt(tokens[i])
		if n == nil {
			continue
		}
		if isMealNoun(tokens[i+1]) {
			return n
		}
		if i+2 < len(tokens) && isMealNoun(tokens[i+2]) {
			return n
		}
	}
	return nil
}

// extractServingHint finds "feed two people" and "serves 4" style
// phrases.
func extractServingHint(tokens []string) *int {
	for i, tok := range tokens {
		n := tokenToInt(tok)
		if n == nil {
			continue
		}
		if i+1 < len(tokens) &&
			(strings.HasPrefix(tokens[i+1], "people") || strings.HasPrefix(tokens[i+1], "person")) {
			return n
		}
		if i > 0 {
			if _, ok := servingLeadTokens[tokens[i-1]]; ok {
				return n
			}
		}
	}
	return nil
}

// collectNgrams yields all n-grams up to maxN, longest first, so
// multi-word vocabulary entries win over their sub-words.
func collectNgrams(tokens []string, maxN int) []string {
	var grams []string
	for n := maxN; n > 0; n-- {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

// lookupKnownTerms matches candidate phrases against the vocabulary.
// Tags use a hyphenated variant ("30 minutes or less" matches the tag
// "30-minutes-or-less").
func lookupKnownTerms(candidates []string, vocab Vocabulary) (ingredients, tags []string) {
	for _, candidate := range candidates {
		if vocab.HasIngredient(candidate) {
			ingredients = append(ingredients, candidate)
		}
		if vocab.HasTag(strings.ReplaceAll(candidate, " ", "-")) {
			tags = append(tags, strings.ReplaceAll(candidate, " ", "-"))
		}
	}
	return uniqueKeepOrder(ingredients), uniqueKeepOrder(tags)
}

// extractNegations collects the phrases following negation markers and
// allergy phrasing. Spans of three, two and one token are all recorded;
// a span that is itself a stopword ("no allergies") is skipped, which is
// what makes "there are no allergies" yield an empty exclusion set.
func extractNegations(tokens []string, vocab Vocabulary) (spans, excludedTags []string) {
	appendSpan := func(phrase string) {
		if phrase == "" {
			return
		}
		if _, stop := stopwords[phrase]; stop {
			return
		}
		spans = append(spans, phrase)
		tagVariant := strings.ReplaceAll(phrase, " ", "-")
		if vocab.HasTag(tagVariant) {
			excludedTags = append(excludedTags, tagVariant)
		}
	}

	for i, tok := range tokens {
		if _, ok := negationTokens[tok]; !ok {
			continue
		}
		for _, span := range []int{3, 2, 1} {
			if i+span >= len(tokens) {
				continue
			}
			appendSpan(strings.Join(tokens[i+1:i+1+span], " "))
		}
	}

	// Allergy phrasing is always an exclusion: "allergic to fish",
	// "allergy to nuts", "allergies with dairy".
	for i, tok := range tokens {
		if _, ok := allergyTokens[tok]; !ok {
			continue
		}
		start := i + 1
		for start < len(tokens) {
			if _, filler := allergyFillerTokens[tokens[start]]; !filler {
				break
			}
			start++
		}
		for _, span := range []int{3, 2, 1} {
			if start+span > len(tokens) {
				continue
			}
			appendSpan(strings.Join(tokens[start:start+span], " "))
		}
	}

	return uniqueKeepOrder(spans), uniqueKeepOrder(excludedTags)
}

const (
	maxConstraintPrefix = `(?:under|less than|below|max(?:imum)?|<=?)\s*(\d+(?:\.\d+)?)\s*`
	minConstraintPrefix = `(?:at least|over|more than|min(?:imum)?|>=?)\s*(\d+(?:\.\d+)?)\s*`
)

func extractNumericConstraint(prefix, lowerPrompt string, terms ...string) *float64 {
	for _, term := range terms {
		pattern := regexp.MustCompile(prefix + regexp.QuoteMeta(term))
		if m := pattern.FindStringSubmatch(lowerPrompt); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return &v
			}
		}
	}
	return nil
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}

func uniqueKeepOrder(items []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
