// Package server provides the HTTP REST API for the recipe collector.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkoda/recipe-collector/internal/db"
	"github.com/mkoda/recipe-collector/internal/types"
)

// RecipeStore is the read/update surface the API serves.
type RecipeStore interface {
	ListRecipes(ctx context.Context, filters db.RecipeFilters) ([]types.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*types.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, patch types.RecipePatch) error
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	CountRecipes(ctx context.Context) (int, error)
}

// Runner executes one collector run synchronously.
type Runner interface {
	Run(ctx context.Context) (types.RunStats, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      RecipeStore
	runner     Runner
}

// Config holds server configuration
type Config struct {
	Port   int
	Store  RecipeStore
	Runner Runner
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		store:  cfg.Store,
		runner: cfg.Runner,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/recipes", s.handleListRecipes)
	mux.HandleFunc("GET /api/recipes/{id}", s.handleGetRecipe)
	mux.HandleFunc("PUT /api/recipes/{id}", s.handleUpdateRecipe)
	mux.HandleFunc("DELETE /api/recipes/{id}", s.handleDeleteRecipe)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/collect", s.handleCollect)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           corsMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the routed handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// corsMiddleware adds the CORS headers the frontend needs and answers
// preflight requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response with the given status
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
