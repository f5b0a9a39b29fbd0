package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kerhoff/NutriboT/internal/models"
	"github.com/Kerhoff/NutriboT/internal/repository"
)

type recipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *sql.DB) repository.RecipeRepository {
	return &recipeRepository{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Create stores the recipe header and one ingredient row per ingredient in a
// single transaction. If any insert fails nothing is stored.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO recipe (id, name, description)
			VALUES ($1, $2, $3)`

		if _, err := tx.ExecContext(ctx, query, recipe.ID, recipe.Name, recipe.Description); err != nil {
			return fmt.Errorf("failed to create recipe %d: %w", recipe.ID, classify(err))
		}

		return insertIngredients(ctx, tx, recipe)
	})
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	query := `
		SELECT id, name, description
		FROM recipe
		WHERE id = $1`

	recipe := models.NewRecipe(0, "", "")
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&recipe.ID,
		&recipe.Name,
		&recipe.Description,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe: %w", classify(err))
	}

	ingredients, err := r.GetIngredients(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, ing := range ingredients {
		recipe.AddIngredient(ing)
	}

	return recipe, nil
}

// List returns every recipe header. Ingredients are not loaded.
func (r *recipeRepository) List(ctx context.Context) ([]*models.Recipe, error) {
	query := `
		SELECT id, name, description
		FROM recipe
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", classify(err))
	}
	defer rows.Close()

	recipes := []*models.Recipe{}
	for rows.Next() {
		recipe := models.NewRecipe(0, "", "")
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.Description); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", classify(err))
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", classify(err))
	}

	return recipes, nil
}

// Update replaces the header and the whole ingredient set of an existing
// recipe atomically. It reports false when the recipe does not exist.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) (bool, error) {
	if err := recipe.Validate(); err != nil {
		return false, err
	}

	found := false
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE recipe
			SET name = $1, description = $2
			WHERE id = $3`

		result, err := tx.ExecContext(ctx, query, recipe.Name, recipe.Description, recipe.ID)
		if err != nil {
			return fmt.Errorf("failed to update recipe %d: %w", recipe.ID, classify(err))
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", classify(err))
		}
		if rowsAffected == 0 {
			return nil
		}
		found = true

		if _, err := tx.ExecContext(ctx, `DELETE FROM ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
			return fmt.Errorf("failed to clear ingredients of recipe %d: %w", recipe.ID, classify(err))
		}

		return insertIngredients(ctx, tx, recipe)
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

// Delete removes the recipe header. Ingredient rows go with it through the
// foreign key; deleting a missing recipe is not an error.
func (r *recipeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM recipe WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete recipe %d: %w", id, classify(err))
	}

	return nil
}

func (r *recipeRepository) GetIngredients(ctx context.Context, recipeID int64) ([]models.RecipeIngredient, error) {
	query := `
		SELECT ` + foodColumns + `, ing.quantity
		FROM ingredients ing
		INNER JOIN food f ON f.id = ing.food_id
		WHERE ing.recipe_id = $1
		ORDER BY f.id ASC`

	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", classify(err))
	}
	defer rows.Close()

	ingredients := []models.RecipeIngredient{}
	for rows.Next() {
		var quantity float64
		food, err := scanFood(rows, &quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", classify(err))
		}
		ingredients = append(ingredients, models.NewRecipeIngredient(*food, quantity))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", classify(err))
	}

	return ingredients, nil
}

func (r *recipeRepository) AddIngredient(ctx context.Context, recipeID, foodID int64, quantity float64) error {
	ing := models.NewRecipeIngredient(models.Food{ID: foodID}, quantity)
	if err := ing.Validate(); err != nil {
		return err
	}
	return insertIngredient(ctx, r.db, recipeID, foodID, quantity)
}

// RemoveIngredient deletes the (recipeID, foodID) join row if present.
func (r *recipeRepository) RemoveIngredient(ctx context.Context, recipeID, foodID int64) error {
	query := `DELETE FROM ingredients WHERE recipe_id = $1 AND food_id = $2`

	if _, err := r.db.ExecContext(ctx, query, recipeID, foodID); err != nil {
		return fmt.Errorf("failed to remove food %d from recipe %d: %w", foodID, recipeID, classify(err))
	}

	return nil
}

// Nutrition recomputes the recipe totals from its stored ingredients.
func (r *recipeRepository) Nutrition(ctx context.Context, recipeID int64) (models.Nutrition, error) {
	ingredients, err := r.GetIngredients(ctx, recipeID)
	if err != nil {
		return models.Nutrition{}, err
	}
	return models.Sum(ingredients...), nil
}

func (r *recipeRepository) Calories(ctx context.Context, recipeID int64) (float64, error) {
	n, err := r.Nutrition(ctx, recipeID)
	return n.Calories, err
}

func (r *recipeRepository) Proteins(ctx context.Context, recipeID int64) (float64, error) {
	n, err := r.Nutrition(ctx, recipeID)
	return n.Proteins, err
}

func (r *recipeRepository) Carbs(ctx context.Context, recipeID int64) (float64, error) {
	n, err := r.Nutrition(ctx, recipeID)
	return n.Carbs, err
}

func insertIngredients(ctx context.Context, ex execer, recipe *models.Recipe) error {
	for _, ing := range recipe.Ingredients {
		if err := insertIngredient(ctx, ex, recipe.ID, ing.Food.ID, ing.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func insertIngredient(ctx context.Context, ex execer, recipeID, foodID int64, quantity float64) error {
	query := `
		INSERT INTO ingredients (recipe_id, food_id, quantity)
		VALUES ($1, $2, $3)`

	if _, err := ex.ExecContext(ctx, query, recipeID, foodID, quantity); err != nil {
		return fmt.Errorf("failed to add food %d to recipe %d: %w", foodID, recipeID, classify(err))
	}

	return nil
}
