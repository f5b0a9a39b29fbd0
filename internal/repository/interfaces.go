package repository

import (
	"context"

	"github.com/Kerhoff/NutriboT/internal/models"
)

// FoodRepository defines the interface for food catalog operations.
// GetByID returns nil, nil when no food has the given id.
type FoodRepository interface {
	Create(ctx context.Context, food *models.Food) error
	GetByID(ctx context.Context, id int64) (*models.Food, error)
	List(ctx context.Context) ([]*models.Food, error)
	Update(ctx context.Context, food *models.Food) (bool, error)
	Delete(ctx context.Context, id int64) error

	// GetUnder returns foods whose nutrient value is <= limit, GetOver those
	// strictly above it. Together they partition the catalog.
	GetUnder(ctx context.Context, nutrient models.Nutrient, limit float64) ([]*models.Food, error)
	GetOver(ctx context.Context, nutrient models.Nutrient, limit float64) ([]*models.Food, error)

	GetUnderCalories(ctx context.Context, limit float64) ([]*models.Food, error)
	GetOverCalories(ctx context.Context, limit float64) ([]*models.Food, error)
	GetUnderProteins(ctx context.Context, limit float64) ([]*models.Food, error)
	GetOverProteins(ctx context.Context, limit float64) ([]*models.Food, error)
	GetUnderCarbs(ctx context.Context, limit float64) ([]*models.Food, error)
	GetOverCarbs(ctx context.Context, limit float64) ([]*models.Food, error)
}

// RecipeRepository defines the interface for recipe and ingredient operations.
// Recipe totals are always derived from the stored ingredient rows.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	List(ctx context.Context) ([]*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) (bool, error)
	Delete(ctx context.Context, id int64) error

	GetIngredients(ctx context.Context, recipeID int64) ([]models.RecipeIngredient, error)
	AddIngredient(ctx context.Context, recipeID, foodID int64, quantity float64) error
	RemoveIngredient(ctx context.Context, recipeID, foodID int64) error

	Nutrition(ctx context.Context, recipeID int64) (models.Nutrition, error)
	Calories(ctx context.Context, recipeID int64) (float64, error)
	Proteins(ctx context.Context, recipeID int64) (float64, error)
	Carbs(ctx context.Context, recipeID int64) (float64, error)
}
