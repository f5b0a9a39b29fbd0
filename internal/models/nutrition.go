package models

import "fmt"

// QuantityBase is the gram basis nutrient values are expressed against.
// A Food with 250 calories has 250 kcal per QuantityBase grams.
const QuantityBase = 100.0

// Nutrient identifies one of the tracked macronutrient values
type Nutrient string

const (
	NutrientCalories Nutrient = "calories"
	NutrientProteins Nutrient = "proteins"
	NutrientCarbs    Nutrient = "carbs"
)

// ParseNutrient converts user input into a Nutrient
func ParseNutrient(s string) (Nutrient, error) {
	switch Nutrient(s) {
	case NutrientCalories, NutrientProteins, NutrientCarbs:
		return Nutrient(s), nil
	case "kcal", "cals":
		return NutrientCalories, nil
	case "protein":
		return NutrientProteins, nil
	}
	return "", fmt.Errorf("%w: unknown nutrient %q", ErrInvalidInput, s)
}

// Nutrition is a calories/proteins/carbs triple
type Nutrition struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
}

// Add returns the component-wise sum of n and o.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Proteins: n.Proteins + o.Proteins,
		Carbs:    n.Carbs + o.Carbs,
	}
}

// Scale returns the values for quantity grams, given n is per QuantityBase grams.
func (n Nutrition) Scale(quantity float64) Nutrition {
	return Nutrition{
		Calories: n.Calories * quantity / QuantityBase,
		Proteins: n.Proteins * quantity / QuantityBase,
		Carbs:    n.Carbs * quantity / QuantityBase,
	}
}

// Value returns the field selected by nutrient.
func (n Nutrition) Value(nutrient Nutrient) float64 {
	switch nutrient {
	case NutrientProteins:
		return n.Proteins
	case NutrientCarbs:
		return n.Carbs
	default:
		return n.Calories
	}
}

// NutrientSource is anything that can report its nutrition totals:
// foods, recipe ingredients, recipes and diary meals.
type NutrientSource interface {
	Nutrition() Nutrition
}

// Sum folds the nutrition of every source.
func Sum[S NutrientSource](sources ...S) Nutrition {
	var total Nutrition
	for _, s := range sources {
		total = total.Add(s.Nutrition())
	}
	return total
}
