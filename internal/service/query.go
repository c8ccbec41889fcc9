package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNoIngredients is returned for an empty or whitespace-only query
	ErrNoIngredients = errors.New("no ingredients supplied")
	// ErrNonVegetarian is returned when a query names a non-vegetarian ingredient
	ErrNonVegetarian = errors.New("non-vegetarian request")
)

// nonVegKeywords are rejected as query tokens. The set is fixed at build time.
var nonVegKeywords = map[string]struct{}{
	"chicken": {},
	"mutton":  {},
	"fish":    {},
	"egg":     {},
	"pork":    {},
	"beef":    {},
	"prawn":   {},
	"shrimp":  {},
	"lamb":    {},
	"bacon":   {},
}

// IsNonVegKeyword reports whether token is in the banned keyword set
func IsNonVegKeyword(token string) bool {
	_, ok := nonVegKeywords[token]
	return ok
}

// Query is a parsed ingredient search: a set of lowercased, trimmed tokens
type Query struct {
	tokens []string
}

// ParseQuery lowercases raw, splits it on commas and trims every token.
// Empty tokens are dropped and duplicates collapse; first-seen order is kept.
// Only a blank raw string is an error. A query of bare commas has no tokens
// and matches every recipe.
func ParseQuery(raw string) (Query, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return Query{}, ErrNoIngredients
	}

	seen := make(map[string]struct{})
	var tokens []string
	for _, part := range strings.Split(raw, ",") {
		tok := strings.TrimSpace(part)
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	return Query{tokens: tokens}, nil
}

// Tokens returns a copy of the query tokens
func (q Query) Tokens() []string {
	return append([]string(nil), q.tokens...)
}

// Banned returns the tokens that are non-vegetarian keywords, in query order
func (q Query) Banned() []string {
	var banned []string
	for _, tok := range q.tokens {
		if IsNonVegKeyword(tok) {
			banned = append(banned, tok)
		}
	}
	return banned
}

// Key is a canonical form of the token set, independent of input order
func (q Query) Key() string {
	sorted := q.Tokens()
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// Matches reports whether ingredients contains every token as a substring.
// ingredients must already be lowercased. A query without tokens matches all.
func (q Query) Matches(ingredients string) bool {
	for _, tok := range q.tokens {
		if !strings.Contains(ingredients, tok) {
			return false
		}
	}
	return true
}
