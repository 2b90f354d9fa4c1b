package game

import "math/rand/v2"

// wordCatalog maps a settings category to its word pool. An empty or
// unknown category draws from all pools combined.
var wordCatalog = map[string][]string{
	"animals": {
		"elephant", "penguin", "giraffe", "octopus", "kangaroo",
		"hedgehog", "dolphin", "flamingo", "raccoon", "chameleon",
		"walrus", "platypus", "peacock", "armadillo", "otter",
	},
	"food": {
		"pizza", "sushi", "pancake", "burrito", "lasagna",
		"croissant", "dumpling", "waffle", "meatball", "pretzel",
		"taco", "ramen", "cheesecake", "falafel", "popcorn",
	},
	"places": {
		"airport", "library", "lighthouse", "casino", "submarine",
		"circus", "hospital", "vineyard", "stadium", "monastery",
		"aquarium", "bakery", "castle", "junkyard", "observatory",
	},
	"objects": {
		"umbrella", "telescope", "typewriter", "compass", "hammock",
		"lantern", "accordion", "snowglobe", "stethoscope", "anvil",
		"kaleidoscope", "harmonica", "chandelier", "anchor", "teapot",
	},
	"jobs": {
		"firefighter", "astronaut", "locksmith", "beekeeper", "magician",
		"surgeon", "lifeguard", "archaeologist", "plumber", "conductor",
		"florist", "blacksmith", "pilot", "barista", "detective",
	},
}

// Categories lists the selectable word categories in no particular order.
func Categories() []string {
	categories := make([]string, 0, len(wordCatalog))
	for category := range wordCatalog {
		categories = append(categories, category)
	}

	return categories
}

// RandomWord draws one word from the given category, or from the whole
// catalog when the category is empty or unknown.
func RandomWord(category string) string {
	pool, ok := wordCatalog[category]
	if !ok {
		for _, words := range wordCatalog {
			pool = append(pool, words...)
		}
	}

	return pool[rand.IntN(len(pool))]
}
