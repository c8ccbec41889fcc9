package dataset_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vegfinder/backend/internal/dataset"
)

func TestIsVegetarian(t *testing.T) {
	tests := []struct {
		ingredients string
		want        bool
	}{
		{"potato, tomato, cumin", true},
		{"Chicken, onion", false},
		{"crab meat, garlic", false},
		{"eggplant, onion", false}, // substring match
		{"lamb, mint", true},       // lamb is only banned at query time
		{"", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dataset.IsVegetarian(tt.ingredients), tt.ingredients)
	}
}

func TestLabelCSVAddsColumn(t *testing.T) {
	in := "TranslatedRecipeName,Cleaned-Ingredients\nAloo,\"potato,salt\"\nFish Fry,\"fish,chilli\"\n"
	var out bytes.Buffer

	stats, err := dataset.LabelCSV(strings.NewReader(in), &out)
	require.NoError(t, err)
	assert.Equal(t, dataset.LabelStats{Rows: 2, Vegetarian: 1}, stats)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "TranslatedRecipeName,Cleaned-Ingredients,Veg", lines[0])
	assert.Equal(t, `Aloo,"potato,salt",1`, lines[1])
	assert.Equal(t, `Fish Fry,"fish,chilli",0`, lines[2])
}

func TestLabelCSVOverwritesColumn(t *testing.T) {
	in := "recipe_name,Veg,ingredients\nPrawn Curry,1,\"prawn,coconut\"\nShort row,1\n"
	var out bytes.Buffer

	stats, err := dataset.LabelCSV(strings.NewReader(in), &out)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 1, stats.Vegetarian)

	loaded, err := dataset.Load(strings.NewReader(out.String()))
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.False(t, loaded[0].Veg)
	assert.True(t, loaded[1].Veg)
}

func TestLabelCSVMissingIngredients(t *testing.T) {
	_, err := dataset.LabelCSV(strings.NewReader("recipe_name\nx\n"), &bytes.Buffer{})
	assert.True(t, errors.Is(err, dataset.ErrMissingColumn))
}
