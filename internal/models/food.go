package models

import (
	"fmt"
	"math"
	"strings"
)

// Food represents an atomic catalog entry. Nutrient values are per QuantityBase grams.
type Food struct {
	ID          int64   `json:"id" db:"id"`
	Brand       string  `json:"brand" db:"brand"`
	Description string  `json:"description" db:"description"`
	Calories    float64 `json:"calories" db:"calories"`
	Proteins    float64 `json:"proteins" db:"protein"`
	Carbs       float64 `json:"carbs" db:"carbs"`
}

// NewFood creates a Food with the given values. Nothing is validated here.
func NewFood(id int64, brand, description string, calories, proteins, carbs float64) Food {
	return Food{
		ID:          id,
		Brand:       brand,
		Description: description,
		Calories:    calories,
		Proteins:    proteins,
		Carbs:       carbs,
	}
}

// Nutrition returns the per-100g values of the food
func (f Food) Nutrition() Nutrition {
	return Nutrition{Calories: f.Calories, Proteins: f.Proteins, Carbs: f.Carbs}
}

// Validate reports whether the food can be persisted.
func (f Food) Validate() error {
	if strings.TrimSpace(f.Brand) == "" {
		return fmt.Errorf("%w: food %d has no brand", ErrInvalidInput, f.ID)
	}
	values := []struct {
		nutrient Nutrient
		value    float64
	}{
		{NutrientCalories, f.Calories},
		{NutrientProteins, f.Proteins},
		{NutrientCarbs, f.Carbs},
	}
	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value < 0 {
			return fmt.Errorf("%w: food %d has invalid %s %v", ErrInvalidInput, f.ID, v.nutrient, v.value)
		}
	}
	return nil
}

func (f Food) String() string {
	return fmt.Sprintf("%d | %s | %s | %.2f | %.2f | %.2f",
		f.ID, f.Brand, f.Description, f.Calories, f.Proteins, f.Carbs)
}
