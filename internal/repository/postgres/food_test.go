package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Kerhoff/NutriboT/internal/models"
	"github.com/Kerhoff/NutriboT/internal/repository"
)

func TestFoodCreateAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFoodRepository(newTestDB(t))

	food := models.NewFood(1, "Lay's", "Oregano", 536, 7, 53)
	if err := repo.Create(ctx, &food); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil || *got != food {
		t.Fatalf("GetByID() = %+v, want %+v", got, food)
	}
}

func TestFoodGetMissingReturnsNil(t *testing.T) {
	t.Parallel()

	got, err := NewFoodRepository(newTestDB(t)).GetByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil food, got %+v", got)
	}
}

func TestFoodCreateDuplicateID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	repo := NewFoodRepository(db)

	first := models.NewFood(1, "Original", "", 100, 1, 1)
	mustCreateFoods(t, repo, first)

	dup := models.NewFood(1, "Impostor", "", 999, 9, 9)
	err := repo.Create(ctx, &dup)
	if !errors.Is(err, repository.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}

	got, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if *got != first {
		t.Fatalf("stored food changed to %+v", got)
	}
}

func TestFoodCreateRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	repo := NewFoodRepository(db)

	bad := models.NewFood(1, "Brand", "", -5, 0, 0)
	if err := repo.Create(ctx, &bad); !errors.Is(err, repository.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if n := countRows(t, db, `SELECT COUNT(*) FROM food`); n != 0 {
		t.Fatalf("expected empty food table, got %d rows", n)
	}
}

func TestFoodDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFoodRepository(newTestDB(t))
	mustCreateFoods(t, repo, models.NewFood(1, "Brand", "", 1, 1, 1))

	for i := 0; i < 2; i++ {
		if err := repo.Delete(ctx, 1); err != nil {
			t.Fatalf("Delete() call %d error = %v", i+1, err)
		}
	}
	if got, _ := repo.GetByID(ctx, 1); got != nil {
		t.Fatalf("expected food to be deleted, got %+v", got)
	}
}

func TestFoodUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFoodRepository(newTestDB(t))
	mustCreateFoods(t, repo, models.NewFood(1, "Brand", "Old", 1, 1, 1))

	updated := models.NewFood(1, "Brand", "New", 2, 3, 4)
	found, err := repo.Update(ctx, &updated)
	if err != nil || !found {
		t.Fatalf("Update() = %v, %v", found, err)
	}
	got, _ := repo.GetByID(ctx, 1)
	if *got != updated {
		t.Fatalf("GetByID() after update = %+v, want %+v", got, updated)
	}

	missing := models.NewFood(2, "Brand", "", 0, 0, 0)
	found, err = repo.Update(ctx, &missing)
	if err != nil || found {
		t.Fatalf("Update() of missing food = %v, %v", found, err)
	}
}

func TestFoodCalorieThresholdScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFoodRepository(newTestDB(t))
	mustCreateFoods(t, repo,
		models.NewFood(1, "Light", "", 100, 0, 0),
		models.NewFood(2, "Heavy", "", 200, 0, 0),
	)

	under, err := repo.GetUnderCalories(ctx, 100)
	if err != nil {
		t.Fatalf("GetUnderCalories() error = %v", err)
	}
	if ids := foodIDs(under); !equalIDs(ids, []int64{1}) {
		t.Fatalf("GetUnderCalories(100) = %v, want [1]", ids)
	}

	over, err := repo.GetOverCalories(ctx, 100)
	if err != nil {
		t.Fatalf("GetOverCalories() error = %v", err)
	}
	if ids := foodIDs(over); !equalIDs(ids, []int64{2}) {
		t.Fatalf("GetOverCalories(100) = %v, want [2]", ids)
	}
}

func TestFoodThresholdsPartitionCatalog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFoodRepository(newTestDB(t))
	mustCreateFoods(t, repo,
		models.NewFood(1, "A", "", 0, 5, 10),
		models.NewFood(2, "B", "", 50.5, 10, 20),
		models.NewFood(3, "C", "", 100, 15, 30),
		models.NewFood(4, "D", "", 250, 20, 40),
	)

	for _, nutrient := range []models.Nutrient{models.NutrientCalories, models.NutrientProteins, models.NutrientCarbs} {
		for _, limit := range []float64{-1, 0, 10, 20, 50.5, 100, 1000} {
			nutrient, limit := nutrient, limit
			t.Run(fmt.Sprintf("%s/%v", nutrient, limit), func(t *testing.T) {
				under, err := repo.GetUnder(ctx, nutrient, limit)
				if err != nil {
					t.Fatalf("GetUnder() error = %v", err)
				}
				over, err := repo.GetOver(ctx, nutrient, limit)
				if err != nil {
					t.Fatalf("GetOver() error = %v", err)
				}
				if under == nil || over == nil {
					t.Fatal("expected non-nil slices")
				}

				seen := map[int64]bool{}
				for _, f := range under {
					if f.Nutrition().Value(nutrient) > limit {
						t.Fatalf("food %d in under bucket above limit", f.ID)
					}
					seen[f.ID] = true
				}
				for _, f := range over {
					if f.Nutrition().Value(nutrient) <= limit {
						t.Fatalf("food %d in over bucket at or below limit", f.ID)
					}
					if seen[f.ID] {
						t.Fatalf("food %d in both buckets", f.ID)
					}
					seen[f.ID] = true
				}
				if len(seen) != 4 {
					t.Fatalf("buckets cover %d foods, want 4", len(seen))
				}
			})
		}
	}
}

func TestFoodNamedThresholdQueries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFoodRepository(newTestDB(t))
	mustCreateFoods(t, repo,
		models.NewFood(1, "Chicken", "Breast", 165, 31, 0),
		models.NewFood(2, "Rice", "White", 130, 2.7, 28),
	)

	tests := []struct {
		name  string
		query func() ([]*models.Food, error)
		want  []int64
	}{
		{"under proteins 31", func() ([]*models.Food, error) { return repo.GetUnderProteins(ctx, 31) }, []int64{1, 2}},
		{"over proteins 2.7", func() ([]*models.Food, error) { return repo.GetOverProteins(ctx, 2.7) }, []int64{1}},
		{"under carbs 0", func() ([]*models.Food, error) { return repo.GetUnderCarbs(ctx, 0) }, []int64{1}},
		{"over carbs 28", func() ([]*models.Food, error) { return repo.GetOverCarbs(ctx, 28) }, []int64{}},
	}

	for _, tt := range tests {
		got, err := tt.query()
		if err != nil {
			t.Fatalf("%s: error = %v", tt.name, err)
		}
		if ids := foodIDs(got); !equalIDs(ids, tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.name, ids, tt.want)
		}
	}
}

func TestFoodUnknownNutrient(t *testing.T) {
	t.Parallel()

	_, err := NewFoodRepository(newTestDB(t)).GetUnder(context.Background(), models.Nutrient("fat; DROP TABLE food"), 1)
	if !errors.Is(err, repository.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFoodList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFoodRepository(newTestDB(t))

	foods, err := repo.List(ctx)
	if err != nil || len(foods) != 0 {
		t.Fatalf("List() on empty catalog = %v, %v", foods, err)
	}

	mustCreateFoods(t, repo, models.NewFood(3, "C", "", 1, 1, 1), models.NewFood(1, "A", "", 1, 1, 1))
	foods, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if ids := foodIDs(foods); !equalIDs(ids, []int64{1, 3}) {
		t.Fatalf("List() = %v, want [1 3]", ids)
	}
}

func TestFoodClosedDatabaseIsUnavailable(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewFoodRepository(db)
	db.Close()

	food := models.NewFood(1, "Brand", "", 1, 1, 1)
	if err := repo.Create(context.Background(), &food); !errors.Is(err, repository.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), 1); !errors.Is(err, repository.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
