package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Kerhoff/NutriboT/internal/metrics"
	"github.com/Kerhoff/NutriboT/internal/models"
	"github.com/Kerhoff/NutriboT/internal/repository"
	"github.com/Kerhoff/NutriboT/internal/service"
	"github.com/sirupsen/logrus"
)

// Server provides the HTTP JSON API over the food catalog and recipes.
type Server struct {
	svc     *service.Service
	logger  *logrus.Logger
	metrics *metrics.Metrics
	mux     *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it.
// m may be nil, in which case requests are not instrumented.
func NewServer(svc *service.Service, logger *logrus.Logger, m *metrics.Metrics) *Server {
	s := &Server{svc: svc, logger: logger, metrics: m, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	if s.metrics != nil {
		return s.metrics.Middleware(s.mux)
	}
	return s.mux
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	// API – Foods
	s.mux.HandleFunc("GET /api/foods", s.handleListFoods)
	s.mux.HandleFunc("POST /api/foods", s.handleCreateFood)
	s.mux.HandleFunc("GET /api/foods/{id}", s.handleGetFood)
	s.mux.HandleFunc("PUT /api/foods/{id}", s.handleUpdateFood)
	s.mux.HandleFunc("DELETE /api/foods/{id}", s.handleDeleteFood)

	// API – Recipes
	s.mux.HandleFunc("GET /api/recipes", s.handleListRecipes)
	s.mux.HandleFunc("POST /api/recipes", s.handleCreateRecipe)
	s.mux.HandleFunc("GET /api/recipes/{id}", s.handleGetRecipe)
	s.mux.HandleFunc("PUT /api/recipes/{id}", s.handleUpdateRecipe)
	s.mux.HandleFunc("DELETE /api/recipes/{id}", s.handleDeleteRecipe)
	s.mux.HandleFunc("GET /api/recipes/{id}/nutrition", s.handleRecipeNutrition)

	// API – Recipe ingredients
	s.mux.HandleFunc("GET /api/recipes/{id}/ingredients", s.handleGetIngredients)
	s.mux.HandleFunc("POST /api/recipes/{id}/ingredients", s.handleAddIngredient)
	s.mux.HandleFunc("DELETE /api/recipes/{id}/ingredients/{food_id}", s.handleRemoveIngredient)

	// API – Diary
	s.mux.HandleFunc("POST /api/diary/summary", s.handleDiarySummary)

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a service or repository error to a status code.
// Client errors carry the error text; everything else is logged and hidden.
func (s *Server) respondServiceError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, repository.ErrInvalidInput):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrConstraintViolation):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrStorageUnavailable):
		s.logger.WithError(err).Warn("storage unavailable while trying to " + action)
		s.respondError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		s.logger.WithError(err).Error("failed to " + action)
		s.respondError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// decodeJSON reads the request body into dst and returns an error message on
// failure.  The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil {
		return false, "request body is empty"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// pathID extracts the {id} path value and converts it to int64.
func pathID(r *http.Request) (int64, error) {
	return pathInt(r, "id")
}

func pathInt(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s in path", name)
	}
	return strconv.ParseInt(raw, 10, 64)
}

func parseLimit(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("limit must be a finite number")
	}
	return v, nil
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Ping(r.Context()); err != nil {
		s.logger.WithError(err).Warn("health check failed")
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---------------------------------------------------------------------------
// Foods
// ---------------------------------------------------------------------------

type foodRequest struct {
	ID          int64   `json:"id"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Proteins    float64 `json:"proteins"`
	Carbs       float64 `json:"carbs"`
}

func (req foodRequest) food() models.Food {
	return models.NewFood(req.ID, req.Brand, req.Description, req.Calories, req.Proteins, req.Carbs)
}

// handleListFoods lists the catalog, or runs a threshold query when an
// under or over limit is given:
//
//	GET /api/foods?nutrient=proteins&over=20
func (s *Server) handleListFoods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	under, over := q.Get("under"), q.Get("over")

	if under == "" && over == "" {
		foods, err := s.svc.Foods.List(r.Context())
		if err != nil {
			s.respondServiceError(w, err, "list foods")
			return
		}
		s.respondJSON(w, http.StatusOK, foods)
		return
	}
	if under != "" && over != "" {
		s.respondError(w, http.StatusBadRequest, "use either under or over, not both")
		return
	}

	nutrient := models.NutrientCalories
	if raw := q.Get("nutrient"); raw != "" {
		n, err := models.ParseNutrient(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		nutrient = n
	}

	cmp, raw := service.Under, under
	if over != "" {
		cmp, raw = service.Over, over
	}
	limit, err := parseLimit(raw)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	foods, err := s.svc.FindFoods(r.Context(), nutrient, cmp, limit)
	if err != nil {
		s.respondServiceError(w, err, "find foods")
		return
	}

	s.respondJSON(w, http.StatusOK, foods)
}

func (s *Server) handleCreateFood(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.ID == 0 {
		s.respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	food := req.food()
	if err := s.svc.AddFood(r.Context(), &food); err != nil {
		s.respondServiceError(w, err, "create food")
		return
	}

	s.respondJSON(w, http.StatusCreated, food)
}

func (s *Server) handleGetFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid food id")
		return
	}

	food, err := s.svc.GetFood(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err, "get food")
		return
	}

	s.respondJSON(w, http.StatusOK, food)
}

func (s *Server) handleUpdateFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid food id")
		return
	}

	var req foodRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	req.ID = id

	food := req.food()
	found, err := s.svc.Foods.Update(r.Context(), &food)
	if err != nil {
		s.respondServiceError(w, err, "update food")
		return
	}
	if !found {
		s.respondError(w, http.StatusNotFound, "food not found")
		return
	}

	s.respondJSON(w, http.StatusOK, food)
}

func (s *Server) handleDeleteFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid food id")
		return
	}

	if err := s.svc.Foods.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, err, "delete food")
		return
	}

	s.respondJSON(w, http.StatusNoContent, nil)
}

// ---------------------------------------------------------------------------
// Recipes
// ---------------------------------------------------------------------------

type ingredientRequest struct {
	FoodID   int64   `json:"food_id"`
	Quantity float64 `json:"quantity"`
}

type recipeRequest struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Ingredients []ingredientRequest `json:"ingredients"`
}

// recipe builds the entity from the request. Ingredient foods carry only
// their id; the stored rows reference the catalog.
func (req recipeRequest) recipe() *models.Recipe {
	recipe := models.NewRecipe(req.ID, req.Name, req.Description)
	for _, ing := range req.Ingredients {
		recipe.AddIngredient(models.NewRecipeIngredient(models.Food{ID: ing.FoodID}, ing.Quantity))
	}
	return recipe
}

type ingredientResponse struct {
	Food      models.Food      `json:"food"`
	Quantity  float64          `json:"quantity"`
	Nutrition models.Nutrition `json:"nutrition"`
}

type recipeResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Ingredients []ingredientResponse `json:"ingredients"`
	Nutrition   models.Nutrition     `json:"nutrition"`
}

func newIngredientResponses(ingredients []models.RecipeIngredient) []ingredientResponse {
	resp := make([]ingredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		resp = append(resp, ingredientResponse{
			Food:      ing.Food,
			Quantity:  ing.Quantity,
			Nutrition: ing.Nutrition(),
		})
	}
	return resp
}

func newRecipeResponse(recipe *models.Recipe) recipeResponse {
	return recipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Description: recipe.Description,
		Ingredients: newIngredientResponses(recipe.Ingredients),
		Nutrition:   recipe.Nutrition(),
	}
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.svc.Recipes.List(r.Context())
	if err != nil {
		s.respondServiceError(w, err, "list recipes")
		return
	}

	s.respondJSON(w, http.StatusOK, recipes)
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.ID == 0 {
		s.respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.svc.AddRecipe(r.Context(), req.recipe()); err != nil {
		s.respondServiceError(w, err, "create recipe")
		return
	}

	// Reload so the response carries the catalog foods and the totals.
	created, err := s.svc.GetRecipe(r.Context(), req.ID)
	if err != nil {
		s.respondServiceError(w, err, "get recipe")
		return
	}

	s.respondJSON(w, http.StatusCreated, newRecipeResponse(created))
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	recipe, err := s.svc.GetRecipe(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err, "get recipe")
		return
	}

	s.respondJSON(w, http.StatusOK, newRecipeResponse(recipe))
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	var req recipeRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	req.ID = id

	found, err := s.svc.Recipes.Update(r.Context(), req.recipe())
	if err != nil {
		s.respondServiceError(w, err, "update recipe")
		return
	}
	if !found {
		s.respondError(w, http.StatusNotFound, "recipe not found")
		return
	}

	updated, err := s.svc.GetRecipe(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err, "get recipe")
		return
	}

	s.respondJSON(w, http.StatusOK, newRecipeResponse(updated))
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	if err := s.svc.Recipes.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, err, "delete recipe")
		return
	}

	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleRecipeNutrition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	n, err := s.svc.RecipeNutrition(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err, "compute recipe nutrition")
		return
	}

	s.respondJSON(w, http.StatusOK, n)
}

// ---------------------------------------------------------------------------
// Recipe ingredients
// ---------------------------------------------------------------------------

func (s *Server) handleGetIngredients(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	recipe, err := s.svc.GetRecipe(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err, "get ingredients")
		return
	}

	s.respondJSON(w, http.StatusOK, newIngredientResponses(recipe.Ingredients))
}

func (s *Server) handleAddIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	var req ingredientRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.FoodID == 0 {
		s.respondError(w, http.StatusBadRequest, "food_id is required")
		return
	}

	if err := s.svc.AddIngredient(r.Context(), id, req.FoodID, req.Quantity); err != nil {
		s.respondServiceError(w, err, "add ingredient")
		return
	}

	s.respondJSON(w, http.StatusCreated, req)
}

func (s *Server) handleRemoveIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}
	foodID, err := pathInt(r, "food_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid food id")
		return
	}

	if err := s.svc.Recipes.RemoveIngredient(r.Context(), id, foodID); err != nil {
		s.respondServiceError(w, err, "remove ingredient")
		return
	}

	s.respondJSON(w, http.StatusNoContent, nil)
}

// ---------------------------------------------------------------------------
// Diary
// ---------------------------------------------------------------------------

type diarySummaryRequest struct {
	Date    string               `json:"date"` // YYYY-MM-DD, defaults to today
	Entries []service.DiaryEntry `json:"entries"`
}

func (s *Server) handleDiarySummary(w http.ResponseWriter, r *http.Request) {
	var req diarySummaryRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	date := time.Now()
	if req.Date != "" {
		d, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = d
	}

	summary, err := s.svc.SummarizeDay(r.Context(), date, req.Entries)
	if err != nil {
		s.respondServiceError(w, err, "summarize day")
		return
	}

	s.respondJSON(w, http.StatusOK, summary)
}
