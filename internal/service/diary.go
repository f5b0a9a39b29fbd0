package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Kerhoff/NutriboT/internal/models"
)

// DiaryEntry is one thing eaten during a day. Exactly one of FoodID and
// RecipeID must be set. Foods are eaten by weight; a recipe entry counts
// the whole recipe.
type DiaryEntry struct {
	Meal     models.MealType `json:"meal"`
	FoodID   *int64          `json:"food_id,omitempty"`
	RecipeID *int64          `json:"recipe_id,omitempty"`
	Grams    float64         `json:"grams,omitempty"`
}

// MealSummary holds the totals of one meal.
type MealSummary struct {
	Type      models.MealType  `json:"type"`
	Items     int              `json:"items"`
	Nutrition models.Nutrition `json:"nutrition"`
}

// DaySummary holds per-meal and daily totals.
type DaySummary struct {
	Date  string           `json:"date"`
	Meals []MealSummary    `json:"meals"`
	Total models.Nutrition `json:"total"`
}

// SummarizeDay resolves every entry against the catalog, files it under its
// meal and returns the totals. Unknown foods or recipes yield ErrNotFound.
func (s *Service) SummarizeDay(ctx context.Context, date time.Time, entries []DiaryEntry) (*DaySummary, error) {
	day := models.NewDay(date)
	foods := make(map[int64]*models.Food)
	recipes := make(map[int64]*models.Recipe)

	for i, e := range entries {
		item, err := s.resolveEntry(ctx, e, foods, recipes)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if err := day.AddTo(e.Meal, item); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	summary := &DaySummary{
		Date:  date.Format(time.DateOnly),
		Meals: make([]MealSummary, 0, len(models.MealTypes)),
		Total: day.Nutrition(),
	}
	for _, t := range models.MealTypes {
		meal := day.Meal(t)
		summary.Meals = append(summary.Meals, MealSummary{
			Type:      t,
			Items:     len(meal.Items),
			Nutrition: meal.Nutrition(),
		})
	}

	s.logger.WithField("date", summary.Date).
		WithField("entries", len(entries)).
		Debug("Diary day summarized")
	return summary, nil
}

func (s *Service) resolveEntry(ctx context.Context, e DiaryEntry,
	foods map[int64]*models.Food, recipes map[int64]*models.Recipe,
) (models.NutrientSource, error) {
	switch {
	case e.FoodID != nil && e.RecipeID != nil:
		return nil, fmt.Errorf("%w: entry names both a food and a recipe", models.ErrInvalidInput)

	case e.FoodID != nil:
		food, ok := foods[*e.FoodID]
		if !ok {
			var err error
			if food, err = s.GetFood(ctx, *e.FoodID); err != nil {
				return nil, err
			}
			foods[food.ID] = food
		}
		portion := models.NewRecipeIngredient(*food, e.Grams)
		if err := portion.Validate(); err != nil {
			return nil, err
		}
		return portion, nil

	case e.RecipeID != nil:
		recipe, ok := recipes[*e.RecipeID]
		if !ok {
			var err error
			if recipe, err = s.GetRecipe(ctx, *e.RecipeID); err != nil {
				return nil, err
			}
			recipes[recipe.ID] = recipe
		}
		return recipe, nil
	}

	return nil, fmt.Errorf("%w: entry names neither a food nor a recipe", models.ErrInvalidInput)
}
