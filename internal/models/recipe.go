package models

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// RecipeIngredient is a quantity in grams of a catalog Food
type RecipeIngredient struct {
	Food     Food    `json:"food"`
	Quantity float64 `json:"quantity" db:"quantity"`
}

// NewRecipeIngredient creates an ingredient of quantity grams of food
func NewRecipeIngredient(food Food, quantity float64) RecipeIngredient {
	return RecipeIngredient{Food: food, Quantity: quantity}
}

// Nutrition returns the food's values scaled to the ingredient quantity.
func (i RecipeIngredient) Nutrition() Nutrition {
	return i.Food.Nutrition().Scale(i.Quantity)
}

// Calories returns the calories contributed by the ingredient
func (i RecipeIngredient) Calories() float64 { return i.Nutrition().Calories }

// Proteins returns the proteins contributed by the ingredient
func (i RecipeIngredient) Proteins() float64 { return i.Nutrition().Proteins }

// Carbs returns the carbs contributed by the ingredient
func (i RecipeIngredient) Carbs() float64 { return i.Nutrition().Carbs }

// Validate requires a finite, positive quantity.
func (i RecipeIngredient) Validate() error {
	if math.IsNaN(i.Quantity) || math.IsInf(i.Quantity, 0) || i.Quantity <= 0 {
		return fmt.Errorf("%w: quantity of food %d must be a positive number of grams, got %v",
			ErrInvalidInput, i.Food.ID, i.Quantity)
	}
	return nil
}

func (i RecipeIngredient) String() string {
	return fmt.Sprintf("%s\t\t%.2f grams", i.Food, i.Quantity)
}

// Recipe is a named composition of ingredients. Its totals are always
// derived from the current ingredient list.
type Recipe struct {
	ID          int64              `json:"id" db:"id"`
	Name        string             `json:"name" db:"name"`
	Description string             `json:"description" db:"description"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// NewRecipe creates a recipe without ingredients
func NewRecipe(id int64, name, description string) *Recipe {
	return &Recipe{
		ID:          id,
		Name:        name,
		Description: description,
		Ingredients: []RecipeIngredient{},
	}
}

// AddIngredient appends ingredient to the recipe.
func (r *Recipe) AddIngredient(ingredient RecipeIngredient) {
	r.Ingredients = append(r.Ingredients, ingredient)
}

// RemoveIngredient removes the first ingredient equal to ingredient and
// reports whether one was found.
func (r *Recipe) RemoveIngredient(ingredient RecipeIngredient) bool {
	idx := slices.Index(r.Ingredients, ingredient)
	if idx < 0 {
		return false
	}
	r.Ingredients = slices.Delete(r.Ingredients, idx, idx+1)
	return true
}

// Nutrition sums the contributions of all ingredients.
func (r *Recipe) Nutrition() Nutrition {
	return Sum(r.Ingredients...)
}

// Calories returns the recipe's total calories
func (r *Recipe) Calories() float64 { return r.Nutrition().Calories }

// Proteins returns the recipe's total proteins
func (r *Recipe) Proteins() float64 { return r.Nutrition().Proteins }

// Carbs returns the recipe's total carbs
func (r *Recipe) Carbs() float64 { return r.Nutrition().Carbs }

// AsFood views the recipe as a Food, with the name in the brand slot
// and the current totals as nutrient values.
func (r *Recipe) AsFood() Food {
	n := r.Nutrition()
	return NewFood(r.ID, r.Name, r.Description, n.Calories, n.Proteins, n.Carbs)
}

// Validate checks the header and every ingredient.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: recipe %d has no name", ErrInvalidInput, r.ID)
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recipe) String() string {
	var sb strings.Builder
	sb.WriteString(r.AsFood().String())
	sb.WriteString("\nIngredients:")
	for _, ing := range r.Ingredients {
		sb.WriteString("\n\t")
		sb.WriteString(ing.String())
	}
	return sb.String()
}
