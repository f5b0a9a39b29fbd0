package postgres

import (
	"fmt"

	"github.com/Kerhoff/NutriboT/internal/models"
)

// foodColumns is the column list scanFood expects, in order.
const foodColumns = `f.id, f.brand, f.description, f.calories, f.protein, f.carbs`

// nutrientColumns maps nutrients to their food column. Threshold queries only
// ever interpolate values from this map.
var nutrientColumns = map[models.Nutrient]string{
	models.NutrientCalories: "f.calories",
	models.NutrientProteins: "f.protein",
	models.NutrientCarbs:    "f.carbs",
}

type scanner interface {
	Scan(dest ...any) error
}

// scanFood maps a row starting with foodColumns to a Food. extra receives any
// columns selected after them.
func scanFood(row scanner, extra ...any) (*models.Food, error) {
	food := &models.Food{}
	dest := append([]any{
		&food.ID,
		&food.Brand,
		&food.Description,
		&food.Calories,
		&food.Proteins,
		&food.Carbs,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return food, nil
}

func nutrientColumn(nutrient models.Nutrient) (string, error) {
	col, ok := nutrientColumns[nutrient]
	if !ok {
		return "", fmt.Errorf("%w: unknown nutrient %q", models.ErrInvalidInput, nutrient)
	}
	return col, nil
}
