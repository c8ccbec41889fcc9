// Package view renders the server-side recipe finder pages.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/pageza/vegfinder/backend/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultPageSize is how many results are shown before "Show more"
const DefaultPageSize = 5

var sentenceBreak = regexp.MustCompile(`\.\s+`)

// Recipe is a search result prepared for display
type Recipe struct {
	Name        string
	Ingredients string
	Steps       []string
	Image       string
}

// Page is everything the results template needs
type Page struct {
	Query       string
	Error       string
	Searched    bool
	Recipes     []Recipe
	Total       int
	ShowMoreURL string
}

// Renderer executes the embedded page templates
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the finder page for p
func (r *Renderer) Render(w io.Writer, p Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "index.html", p); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// SplitSteps breaks instructions into one step per sentence. Every step ends
// with exactly one period.
func SplitSteps(instructions string) []string {
	steps := []string{}
	for _, s := range sentenceBreak.Split(instructions, -1) {
		s = strings.TrimRight(strings.TrimSpace(s), ".")
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		steps = append(steps, s+".")
	}
	return steps
}

// JoinIngredients re-joins a comma-separated ingredient list with ", "
func JoinIngredients(ingredients string) string {
	parts := strings.Split(ingredients, ",")
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// Paginate reports how many of total results to show and whether a
// "Show more" link is needed.
func Paginate(total, limit int, showAll bool) (shown int, more bool) {
	if limit < 1 {
		limit = DefaultPageSize
	}
	if showAll || total <= limit {
		return total, false
	}
	return limit, true
}

// NewPage builds the results page for a successful search
func NewPage(query string, recipes []model.Recipe, limit int, showAll bool) Page {
	shown, more := Paginate(len(recipes), limit, showAll)

	p := Page{
		Query:    query,
		Searched: true,
		Total:    len(recipes),
		Recipes:  make([]Recipe, 0, shown),
	}
	for _, r := range recipes[:shown] {
		p.Recipes = append(p.Recipes, Recipe{
			Name:        r.Name,
			Ingredients: JoinIngredients(r.Ingredients),
			Steps:       SplitSteps(r.Instructions),
			Image:       r.ImageURL,
		})
	}
	if more {
		p.ShowMoreURL = ShowMoreURL(query)
	}
	return p
}

// ShowMoreURL links back to the results with every match revealed
func ShowMoreURL(query string) string {
	v := url.Values{}
	v.Set("ingredients", query)
	v.Set("all", "1")
	return "/recipes?" + v.Encode()
}
