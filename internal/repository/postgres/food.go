package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kerhoff/NutriboT/internal/models"
	"github.com/Kerhoff/NutriboT/internal/repository"
)

type foodRepository struct {
	db *sql.DB
}

// NewFoodRepository creates a new food repository
func NewFoodRepository(db *sql.DB) repository.FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) Create(ctx context.Context, food *models.Food) error {
	if err := food.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO food (id, brand, description, calories, protein, carbs)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		food.ID,
		food.Brand,
		food.Description,
		food.Calories,
		food.Proteins,
		food.Carbs,
	)
	if err != nil {
		return fmt.Errorf("failed to create food %d: %w", food.ID, classify(err))
	}

	return nil
}

func (r *foodRepository) GetByID(ctx context.Context, id int64) (*models.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM food f WHERE f.id = $1`

	food, err := scanFood(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get food: %w", classify(err))
	}

	return food, nil
}

func (r *foodRepository) List(ctx context.Context) ([]*models.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM food f ORDER BY f.id ASC`
	return r.query(ctx, "list foods", query)
}

func (r *foodRepository) Update(ctx context.Context, food *models.Food) (bool, error) {
	if err := food.Validate(); err != nil {
		return false, err
	}

	query := `
		UPDATE food
		SET brand = $1, description = $2, calories = $3, protein = $4, carbs = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		food.Brand,
		food.Description,
		food.Calories,
		food.Proteins,
		food.Carbs,
		food.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update food %d: %w", food.ID, classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", classify(err))
	}

	return rowsAffected > 0, nil
}

// Delete removes the food and, through the foreign key, every ingredient row
// referencing it. Deleting a missing food is not an error.
func (r *foodRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM food WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete food %d: %w", id, classify(err))
	}

	return nil
}

func (r *foodRepository) GetUnder(ctx context.Context, nutrient models.Nutrient, limit float64) ([]*models.Food, error) {
	col, err := nutrientColumn(nutrient)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + foodColumns + ` FROM food f WHERE ` + col + ` <= $1 ORDER BY f.id ASC`
	return r.query(ctx, "query foods under "+string(nutrient), query, limit)
}

func (r *foodRepository) GetOver(ctx context.Context, nutrient models.Nutrient, limit float64) ([]*models.Food, error) {
	col, err := nutrientColumn(nutrient)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + foodColumns + ` FROM food f WHERE ` + col + ` > $1 ORDER BY f.id ASC`
	return r.query(ctx, "query foods over "+string(nutrient), query, limit)
}

func (r *foodRepository) GetUnderCalories(ctx context.Context, limit float64) ([]*models.Food, error) {
	return r.GetUnder(ctx, models.NutrientCalories, limit)
}

func (r *foodRepository) GetOverCalories(ctx context.Context, limit float64) ([]*models.Food, error) {
	return r.GetOver(ctx, models.NutrientCalories, limit)
}

func (r *foodRepository) GetUnderProteins(ctx context.Context, limit float64) ([]*models.Food, error) {
	return r.GetUnder(ctx, models.NutrientProteins, limit)
}

func (r *foodRepository) GetOverProteins(ctx context.Context, limit float64) ([]*models.Food, error) {
	return r.GetOver(ctx, models.NutrientProteins, limit)
}

func (r *foodRepository) GetUnderCarbs(ctx context.Context, limit float64) ([]*models.Food, error) {
	return r.GetUnder(ctx, models.NutrientCarbs, limit)
}

func (r *foodRepository) GetOverCarbs(ctx context.Context, limit float64) ([]*models.Food, error) {
	return r.GetOver(ctx, models.NutrientCarbs, limit)
}

func (r *foodRepository) query(ctx context.Context, op, query string, args ...any) ([]*models.Food, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, classify(err))
	}
	defer rows.Close()

	foods := []*models.Food{}
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", classify(err))
		}
		foods = append(foods, food)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, classify(err))
	}

	return foods, nil
}
