package testhelpers

import (
	"github.com/pageza/vegfinder/backend/internal/model"
)

// SampleCSV is a small dataset using the raw Kaggle column headers
const SampleCSV = `TranslatedRecipeName,Cleaned-Ingredients,TranslatedInstructions,image-url,Veg
Aloo Tamatar Sabzi,"Potato,Tomato,Cumin seeds,Salt",Heat oil. Add cumin seeds. Add potato and tomato and cook.,https://img.example/aloo.jpg,1
Egg Bhurji,"egg,onion,tomato",Whisk eggs. Cook with onion.,https://img.example/bhurji.jpg,0
Baingan Bharta,"eggplant,tomato,onion,garlic",Roast the eggplant. Mash and fry with onion and tomato.,,1
Masala Dosa,"rice,urad dal,potato,onion",Soak rice and dal overnight. Grind. Make dosa and fill with potato masala.,https://img.example/dosa.jpg,1
Chicken Biryani,"chicken,rice,yoghurt",Marinate chicken. Layer with rice.,https://img.example/biryani.jpg,0
Peanut Chikki,"peanut,jaggery,ghee",Roast peanuts. Melt jaggery. Mix and set.,https://img.example/chikki.jpg,1
`

// SampleRecipes mirrors SampleCSV in load order
func SampleRecipes() []model.Recipe {
	return []model.Recipe{
		{Position: 0, Name: "Aloo Tamatar Sabzi", Ingredients: "Potato,Tomato,Cumin seeds,Salt", Instructions: "Heat oil. Add cumin seeds. Add potato and tomato and cook.", ImageURL: "https://img.example/aloo.jpg", Veg: true},
		{Position: 1, Name: "Egg Bhurji", Ingredients: "egg,onion,tomato", Instructions: "Whisk eggs. Cook with onion.", ImageURL: "https://img.example/bhurji.jpg", Veg: false},
		{Position: 2, Name: "Baingan Bharta", Ingredients: "eggplant,tomato,onion,garlic", Instructions: "Roast the eggplant. Mash and fry with onion and tomato.", Veg: true},
		{Position: 3, Name: "Masala Dosa", Ingredients: "rice,urad dal,potato,onion", Instructions: "Soak rice and dal overnight. Grind. Make dosa and fill with potato masala.", ImageURL: "https://img.example/dosa.jpg", Veg: true},
		{Position: 4, Name: "Chicken Biryani", Ingredients: "chicken,rice,yoghurt", Instructions: "Marinate chicken. Layer with rice.", ImageURL: "https://img.example/biryani.jpg", Veg: false},
		{Position: 5, Name: "Peanut Chikki", Ingredients: "peanut,jaggery,ghee", Instructions: "Roast peanuts. Melt jaggery. Mix and set.", ImageURL: "https://img.example/chikki.jpg", Veg: true},
	}
}
