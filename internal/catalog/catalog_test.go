package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/vegfinder/backend/internal/model"
)

func fixture() []model.Recipe {
	return []model.Recipe{
		{Name: "Aloo Gobi", Ingredients: "Potato, Cauliflower, Turmeric", Veg: true},
		{Name: "Chicken Curry", Ingredients: "chicken, onion", Veg: false},
		{Name: "Tomato Rice", Ingredients: "Rice, TOMATO", Veg: true},
	}
}

func TestNewKeepsVegetarianInOrder(t *testing.T) {
	c := New(fixture())
	assert.Equal(t, 2, c.Len())

	var names []string
	c.Each(func(r *model.Recipe) bool {
		names = append(names, r.Name)
		return true
	})
	assert.Equal(t, []string{"Aloo Gobi", "Tomato Rice"}, names)
}

func TestNewLowercasesIngredients(t *testing.T) {
	src := fixture()
	c := New(src)

	c.Each(func(r *model.Recipe) bool {
		assert.Equal(t, "potato, cauliflower, turmeric", r.Ingredients)
		return false
	})
	// the caller's slice is untouched
	assert.Equal(t, "Potato, Cauliflower, Turmeric", src[0].Ingredients)
}

func TestVersion(t *testing.T) {
	a := New(fixture())
	b := New(fixture())
	assert.Equal(t, a.Version(), b.Version())
	assert.Len(t, a.Version(), 16)

	changed := fixture()
	changed[2].Instructions = "Boil rice."
	assert.NotEqual(t, a.Version(), New(changed).Version())
}

func TestEmpty(t *testing.T) {
	c := New(nil)
	assert.Zero(t, c.Len())
	c.Each(func(*model.Recipe) bool {
		t.Fatal("unexpected recipe")
		return true
	})
}
