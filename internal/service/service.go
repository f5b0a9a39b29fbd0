package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Kerhoff/NutriboT/internal/models"
	"github.com/Kerhoff/NutriboT/internal/repository"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a referenced food or recipe does not exist.
var ErrNotFound = errors.New("not found")

// Comparison selects the side of a threshold query.
type Comparison string

const (
	Under Comparison = "under"
	Over  Comparison = "over"
)

// ParseComparison validates a comparison coming from user input
func ParseComparison(s string) (Comparison, error) {
	switch c := Comparison(strings.ToLower(strings.TrimSpace(s))); c {
	case Under, Over:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown comparison %q", models.ErrInvalidInput, s)
}

// Service is the central business logic layer that holds the repositories
// and provides high-level methods for the API and the bot.
type Service struct {
	db      *sql.DB
	logger  *logrus.Logger
	Foods   repository.FoodRepository
	Recipes repository.RecipeRepository
}

// New creates a new Service with all required dependencies.
func New(db *sql.DB, logger *logrus.Logger,
	foods repository.FoodRepository,
	recipes repository.RecipeRepository,
) *Service {
	return &Service{
		db: db, logger: logger,
		Foods: foods, Recipes: recipes,
	}
}

// Ping checks that the database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", repository.ErrStorageUnavailable, err)
	}
	return nil
}

// AddFood stores a new catalog entry.
func (s *Service) AddFood(ctx context.Context, food *models.Food) error {
	food.Brand = strings.TrimSpace(food.Brand)
	food.Description = strings.TrimSpace(food.Description)

	if err := s.Foods.Create(ctx, food); err != nil {
		return fmt.Errorf("failed to add food %d: %w", food.ID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"food_id": food.ID,
		"brand":   food.Brand,
	}).Info("Food added")
	return nil
}

// GetFood returns the food with the given id or ErrNotFound.
func (s *Service) GetFood(ctx context.Context, id int64) (*models.Food, error) {
	food, err := s.Foods.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup food %d: %w", id, err)
	}
	if food == nil {
		return nil, fmt.Errorf("food %d: %w", id, ErrNotFound)
	}
	return food, nil
}

// FindFoods runs a threshold query: foods at or below limit for Under,
// strictly above it for Over.
func (s *Service) FindFoods(ctx context.Context, nutrient models.Nutrient, cmp Comparison, limit float64) ([]*models.Food, error) {
	var (
		foods []*models.Food
		err   error
	)
	switch cmp {
	case Under:
		foods, err = s.Foods.GetUnder(ctx, nutrient, limit)
	case Over:
		foods, err = s.Foods.GetOver(ctx, nutrient, limit)
	default:
		return nil, fmt.Errorf("%w: unknown comparison %q", models.ErrInvalidInput, cmp)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find foods %s %g %s: %w", cmp, limit, nutrient, err)
	}

	s.logger.WithFields(logrus.Fields{
		"nutrient": nutrient,
		"cmp":      cmp,
		"limit":    limit,
		"results":  len(foods),
	}).Debug("Threshold query")
	return foods, nil
}

// AddRecipe stores a recipe and its ingredients atomically.
func (s *Service) AddRecipe(ctx context.Context, recipe *models.Recipe) error {
	recipe.Name = strings.TrimSpace(recipe.Name)
	recipe.Description = strings.TrimSpace(recipe.Description)

	if err := s.Recipes.Create(ctx, recipe); err != nil {
		return fmt.Errorf("failed to add recipe %d: %w", recipe.ID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"recipe_id":   recipe.ID,
		"name":        recipe.Name,
		"ingredients": len(recipe.Ingredients),
	}).Info("Recipe added")
	return nil
}

// GetRecipe returns the recipe with its ingredients loaded or ErrNotFound.
func (s *Service) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	recipe, err := s.Recipes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup recipe %d: %w", id, err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
	}
	return recipe, nil
}

// RecipeNutrition recomputes the totals of an existing recipe.
func (s *Service) RecipeNutrition(ctx context.Context, id int64) (models.Nutrition, error) {
	// Distinguish an unknown recipe from an empty one.
	if _, err := s.GetRecipe(ctx, id); err != nil {
		return models.Nutrition{}, err
	}
	n, err := s.Recipes.Nutrition(ctx, id)
	if err != nil {
		return models.Nutrition{}, fmt.Errorf("failed to compute nutrition of recipe %d: %w", id, err)
	}
	return n, nil
}

// AddIngredient links a catalog food to a recipe.
func (s *Service) AddIngredient(ctx context.Context, recipeID, foodID int64, quantity float64) error {
	if err := s.Recipes.AddIngredient(ctx, recipeID, foodID, quantity); err != nil {
		return fmt.Errorf("failed to add food %d to recipe %d: %w", foodID, recipeID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"recipe_id": recipeID,
		"food_id":   foodID,
		"quantity":  quantity,
	}).Info("Ingredient added")
	return nil
}
