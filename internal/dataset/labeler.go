package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// nonVegIngredients flags a recipe as non-vegetarian when any of them
// occurs anywhere in its ingredient text.
var nonVegIngredients = []string{"chicken", "fish", "egg", "mutton", "pork", "beef", "shrimp", "crab", "prawn"}

// IsVegetarian reports whether ingredients mention none of the non-veg items.
// Matching is by substring, so "eggplant" counts as egg.
func IsVegetarian(ingredients string) bool {
	text := strings.ToLower(ingredients)
	for _, item := range nonVegIngredients {
		if strings.Contains(text, item) {
			return false
		}
	}
	return true
}

// LabelStats summarises a LabelCSV run
type LabelStats struct {
	Rows       int
	Vegetarian int
}

// LabelCSV copies a recipe CSV from r to w, adding or overwriting a Veg
// column with 1 for vegetarian rows and 0 otherwise.
func LabelCSV(r io.Reader, w io.Writer) (LabelStats, error) {
	var stats LabelStats
	cr := newReader(r)
	cw := csv.NewWriter(w)

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return stats, fmt.Errorf("%w: empty dataset", ErrMissingColumn)
		}
		return stats, fmt.Errorf("failed to read header: %w", err)
	}

	idx := columnIndex(header, DefaultColumns)
	ingIdx, ok := idx[FieldIngredients]
	if !ok {
		return stats, fmt.Errorf("%w: %s", ErrMissingColumn, FieldIngredients)
	}
	vegIdx, ok := idx[FieldVeg]
	if !ok {
		vegIdx = len(header)
		header = append(header, "Veg")
	}

	if err := cw.Write(header); err != nil {
		return stats, fmt.Errorf("failed to write header: %w", err)
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		var ingredients string
		if ingIdx < len(row) {
			ingredients = row[ingIdx]
		}

		for len(row) <= vegIdx {
			row = append(row, "")
		}
		row[vegIdx] = "0"
		if IsVegetarian(ingredients) {
			row[vegIdx] = "1"
			stats.Vegetarian++
		}
		stats.Rows++

		if err := cw.Write(row); err != nil {
			return stats, fmt.Errorf("failed to write line %d: %w", line, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}
	return stats, nil
}
