package seed

import "github.com/fridgely/fridgely/internal/models"

// starterEntries is the catalog installed by -seed when no catalog file is
// configured. Countable items use "count"; liquids use ml; everything else
// uses grams.
var starterEntries = []RecipeEntry{
	{
		Name:         "Strawberry Bagel",
		SourceURL:    "https://www.allrecipes.com/strawberry-cream-cheese-bagel",
		TotalTimeMin: minutes(5),
		Calories:     450,
		ProteinG:     12,
		Ingredients: []IngredientEntry{
			need("bagel", 1, "count"),
			need("cream cheese", 1, "count"),
			optional("flaky salt"),
		},
	},
	{
		Name:         "Protein Shake",
		SourceURL:    "https://www.bbcgoodfood.com/protein-shake",
		TotalTimeMin: minutes(5),
		Calories:     300,
		ProteinG:     30,
		Ingredients: []IngredientEntry{
			need("milk", 2000, "ml"),
		},
	},
	{
		Name:         "Scrambled Eggs",
		SourceURL:    "https://www.seriouseats.com/scrambled-eggs",
		TotalTimeMin: minutes(10),
		Calories:     320,
		ProteinG:     20,
		Ingredients: []IngredientEntry{
			need("eggs", 3, "count"),
			need("butter", 10, "g"),
			optional("chives"),
			optional("salt"),
		},
	},
	{
		Name:         "Cheese Omelette",
		SourceURL:    "https://www.bbcgoodfood.com/cheese-omelette",
		TotalTimeMin: minutes(10),
		Calories:     420,
		ProteinG:     26,
		Ingredients: []IngredientEntry{
			need("eggs", 3, "count"),
			need("cheddar", 40, "g"),
			need("butter", 10, "g"),
			optional("milk"),
		},
	},
	{
		Name:         "Greek Yogurt Parfait",
		SourceURL:    "https://www.eatingwell.com/greek-yogurt-parfait",
		TotalTimeMin: minutes(5),
		Calories:     350,
		ProteinG:     22,
		Ingredients: []IngredientEntry{
			need("greek yogurt", 200, "g"),
			need("granola", 40, "g"),
			optional("strawberries"),
			optional("honey"),
		},
	},
	{
		Name:         "Chicken Salad Wrap",
		SourceURL:    "https://www.delish.com/chicken-salad-wrap",
		TotalTimeMin: minutes(15),
		Calories:     560,
		ProteinG:     38,
		Ingredients: []IngredientEntry{
			need("chicken breast", 150, "g"),
			need("tortilla", 1, "count"),
			need("lettuce", 1, "count"),
			optional("mayonnaise"),
		},
	},
	{
		Name:         "Pasta Pomodoro",
		SourceURL:    "https://www.simplyrecipes.com/pasta-pomodoro",
		TotalTimeMin: minutes(25),
		Calories:     610,
		ProteinG:     18,
		Ingredients: []IngredientEntry{
			need("pasta", 120, "g"),
			need("tomato", 3, "count"),
			need("garlic", 2, "count"),
			optional("basil"),
			optional("parmesan"),
		},
	},
	{
		Name:         "Banana Oat Smoothie",
		SourceURL:    "https://www.eatingwell.com/banana-oat-smoothie",
		TotalTimeMin: minutes(5),
		Calories:     380,
		ProteinG:     14,
		Ingredients: []IngredientEntry{
			need("banana", 1, "count"),
			need("milk", 250, "ml"),
			need("oats", 30, "g"),
			optional("honey"),
		},
	},
}

// StarterCatalog returns fresh copies of the built-in recipes.
func StarterCatalog() []*models.Recipe {
	recipes := make([]*models.Recipe, len(starterEntries))
	for i, e := range starterEntries {
		recipes[i] = e.Recipe()
	}
	return recipes
}

func minutes(n int) *int { return &n }

func need(name string, qty float64, unit string) IngredientEntry {
	return IngredientEntry{Name: name, Quantity: &qty, Unit: unit}
}

func optional(name string) IngredientEntry {
	return IngredientEntry{Name: name}
}
