// Package dataset reads the recipe CSV and derives its vegetarian column.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pageza/vegfinder/backend/internal/logger"
	"github.com/pageza/vegfinder/backend/internal/model"
)

// Field identifies a recipe attribute a CSV column maps onto
type Field int

const (
	FieldName Field = iota
	FieldIngredients
	FieldInstructions
	FieldImage
	FieldVeg
)

var fieldNames = map[Field]string{
	FieldName:         "recipe_name",
	FieldIngredients:  "ingredients",
	FieldInstructions: "instructions",
	FieldImage:        "image",
	FieldVeg:          "veg",
}

func (f Field) String() string {
	return fieldNames[f]
}

// DefaultColumns maps both the raw dataset headers and their renamed forms
var DefaultColumns = map[string]Field{
	"translatedrecipename":   FieldName,
	"recipe_name":            FieldName,
	"cleaned-ingredients":    FieldIngredients,
	"ingredients":            FieldIngredients,
	"translatedinstructions": FieldInstructions,
	"instructions":           FieldInstructions,
	"image-url":              FieldImage,
	"image":                  FieldImage,
	"veg":                    FieldVeg,
}

// ErrMissingColumn is returned when a required column is absent from the header
var ErrMissingColumn = errors.New("missing required column")

// columnIndex resolves header positions. Unknown headers are ignored and
// the first occurrence of a field wins.
func columnIndex(header []string, columns map[string]Field) map[Field]int {
	idx := make(map[Field]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if f, ok := columns[key]; ok {
			if _, seen := idx[f]; !seen {
				idx[f] = i
			}
		}
	}
	return idx
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// Load parses recipes from CSV in file order. Rows without a veg column
// are labeled with IsVegetarian; rows with an unrecognised flag load as
// non-vegetarian.
func Load(r io.Reader) ([]model.Recipe, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty dataset", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx := columnIndex(header, DefaultColumns)
	for _, f := range []Field{FieldName, FieldIngredients} {
		if _, ok := idx[f]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, f)
		}
	}
	vegIdx, hasVeg := idx[FieldVeg]

	get := func(row []string, f Field) string {
		i, ok := idx[f]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var recipes []model.Recipe
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		recipe := model.Recipe{
			Position:     len(recipes),
			Name:         get(row, FieldName),
			Ingredients:  get(row, FieldIngredients),
			Instructions: get(row, FieldInstructions),
			ImageURL:     get(row, FieldImage),
		}

		if hasVeg && vegIdx < len(row) {
			veg, err := ParseVeg(row[vegIdx])
			if err != nil {
				// an unreadable flag never makes a row searchable
				logger.Warn().Int("line", line).Str("veg", row[vegIdx]).Msg("[Dataset] unrecognised veg flag, treating row as non-vegetarian")
			}
			recipe.Veg = veg
		} else {
			recipe.Veg = IsVegetarian(recipe.Ingredients)
		}

		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

// ParseVeg accepts the flag spellings pandas and spreadsheets produce
func ParseVeg(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true", "yes", "y":
		return true, nil
	case "0", "0.0", "false", "no", "n", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid veg flag %q", s)
	}
}

// Source yields the recipe table in load order
type Source interface {
	Load(ctx context.Context) ([]model.Recipe, error)
}

// FileSource loads recipes from a CSV file on disk
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) ([]model.Recipe, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	recipes, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.Path, err)
	}
	logger.Ctx(ctx).Info().Str("path", s.Path).Int("rows", len(recipes)).Msg("[Dataset] loaded recipes from file")
	return recipes, nil
}
