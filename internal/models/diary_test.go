package models

import (
	"errors"
	"testing"
	"time"
)

func TestDayTotalsAcrossMeals(t *testing.T) {
	t.Parallel()

	day := NewDay(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	oats := NewFood(1, "Oats", "", 389, 16.9, 66.3)
	banana := NewFood(2, "Banana", "", 89, 1.1, 22.8)

	porridge := NewRecipe(1, "Porridge", "")
	porridge.AddIngredient(NewRecipeIngredient(oats, 50))

	if err := day.AddTo(MealTypeBreakfast, porridge); err != nil {
		t.Fatalf("add to breakfast: %v", err)
	}
	if err := day.AddTo(MealTypeSnacks, NewRecipeIngredient(banana, 120)); err != nil {
		t.Fatalf("add to snacks: %v", err)
	}

	breakfast := day.Meal(MealTypeBreakfast).Nutrition()
	if !almostEqual(breakfast.Calories, 194.5) {
		t.Fatalf("breakfast calories = %v, want 194.5", breakfast.Calories)
	}

	total := day.Nutrition()
	if !almostEqual(total.Calories, 194.5+106.8) {
		t.Fatalf("day calories = %v, want %v", total.Calories, 194.5+106.8)
	}
	if day.Meal(MealTypeLunch).Nutrition() != (Nutrition{}) {
		t.Fatal("expected empty lunch")
	}
}

func TestDayRemoveFrom(t *testing.T) {
	t.Parallel()

	day := NewDay(time.Now())
	apple := NewRecipeIngredient(NewFood(1, "Apple", "", 52, 0.3, 14), 150)
	if err := day.AddTo(MealTypeLunch, apple); err != nil {
		t.Fatalf("add: %v", err)
	}

	if day.RemoveFrom(MealTypeDinner, apple) {
		t.Fatal("expected miss when removing from another meal")
	}
	if !day.RemoveFrom(MealTypeLunch, apple) {
		t.Fatal("expected apple to be removed from lunch")
	}
	if day.Nutrition() != (Nutrition{}) {
		t.Fatalf("expected empty day, got %+v", day.Nutrition())
	}
}

func TestDayRejectsUnknownMeal(t *testing.T) {
	t.Parallel()

	day := NewDay(time.Now())
	if err := day.AddTo(MealType("brunch"), NewFood(1, "X", "", 1, 1, 1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Nutrient
		ok    bool
	}{
		{"calories", NutrientCalories, true},
		{"kcal", NutrientCalories, true},
		{"protein", NutrientProteins, true},
		{"carbs", NutrientCarbs, true},
		{"fat", "", false},
	}
	for _, tt := range tests {
		got, err := ParseNutrient(tt.input)
		if (err == nil) != tt.ok || got != tt.want {
			t.Fatalf("ParseNutrient(%q) = %q, %v", tt.input, got, err)
		}
	}

	if _, err := ParseMealType("dinner"); err != nil {
		t.Fatalf("ParseMealType(dinner): %v", err)
	}
	if _, err := ParseMealType("supper"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for supper, got %v", err)
	}
}
