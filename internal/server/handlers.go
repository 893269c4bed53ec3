package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mkoda/recipe-collector/internal/db"
	"github.com/mkoda/recipe-collector/internal/types"
)

var validate = validator.New()

// UpdateRecipeRequest is the body for PUT /api/recipes/{id}.
// Nil fields are left untouched.
type UpdateRecipeRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
	Description *string  `json:"description"`
	Ingredients []string `json:"ingredients" validate:"omitempty,max=5,dive,min=1"`
	CuisineType *string  `json:"cuisine_type"`
	Category    *string  `json:"category"`
}

// HealthResponse is the body for GET /api/health.
type HealthResponse struct {
	Status      string `json:"status"`
	RecipeCount int    `json:"recipe_count"`
}

// handleListRecipes returns all recipes, optionally filtered by cuisine
// type and category.
func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	filters := db.RecipeFilters{
		CuisineType: r.URL.Query().Get("cuisine_type"),
		Category:    r.URL.Query().Get("category"),
	}

	recipes, err := s.store.ListRecipes(r.Context(), filters)
	if err != nil {
		log.Printf("Failed to list recipes: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.jsonResponse(w, http.StatusOK, recipes)
}

// handleGetRecipe returns one recipe by id.
func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	recipe, err := s.store.GetRecipe(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get recipe %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if recipe == nil {
		s.errorResponse(w, http.StatusNotFound, "Recipe not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, recipe)
}

// handleUpdateRecipe applies a partial update to a recipe.
func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	var req UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	recipe, err := s.store.GetRecipe(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get recipe %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if recipe == nil {
		s.errorResponse(w, http.StatusNotFound, "Recipe not found")
		return
	}

	patch := types.RecipePatch{
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Ingredients: req.Ingredients,
	}
	if req.CuisineType != nil {
		cuisine := types.ParseCuisineType(*req.CuisineType)
		patch.CuisineType = &cuisine
	}
	if req.Category != nil {
		category := types.ParseCategory(*req.Category)
		patch.Category = &category
	}

	if err := s.store.UpdateRecipe(r.Context(), id, patch); err != nil {
		log.Printf("Failed to update recipe %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	updated, err := s.store.GetRecipe(r.Context(), id)
	if err != nil || updated == nil {
		log.Printf("Failed to reload recipe %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteRecipe removes a recipe by id.
func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	recipe, err := s.store.GetRecipe(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get recipe %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if recipe == nil {
		s.errorResponse(w, http.StatusNotFound, "Recipe not found")
		return
	}

	if err := s.store.DeleteRecipe(r.Context(), id); err != nil {
		log.Printf("Failed to delete recipe %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth reports service status and the recipe count.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountRecipes(r.Context())
	if err != nil {
		log.Printf("Health check failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.jsonResponse(w, http.StatusOK, HealthResponse{Status: "ok", RecipeCount: count})
}

// handleCollect synchronously executes one collector run and returns its
// statistics. Failures surface as a generic server error; details go to
// the log only.
func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	stats, err := s.runner.Run(r.Context())
	if err != nil {
		log.Printf("Collector run failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}
