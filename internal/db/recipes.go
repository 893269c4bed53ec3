package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mkoda/recipe-collector/internal/types"
)

const recipeColumns = `id, url, title, image_url, description, ingredients,
	cuisine_type, category, posted_by, posted_at, created_at, updated_at`

// ExistsByURL reports whether a recipe with this URL is already stored.
// Used to skip rework before the expensive scrape and classify steps.
func (db *DB) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT id FROM recipes WHERE url = $1`, url,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check URL %s: %w", url, err)
	}
	return true, nil
}

// CreateRecipe inserts one recipe row and returns its generated id.
// Uniqueness on URL is the caller's responsibility via ExistsByURL; no
// re-check happens here.
func (db *DB) CreateRecipe(ctx context.Context, recipe types.NewRecipe) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now().UTC()

	_, err := db.pool.Exec(ctx,
		`INSERT INTO recipes (id, url, title, image_url, description, ingredients,
			cuisine_type, category, posted_by, posted_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		id,
		recipe.URL,
		recipe.Title,
		recipe.ImageURL,
		recipe.Description,
		types.EncodeIngredients(recipe.Ingredients),
		string(recipe.CuisineType),
		string(recipe.Category),
		recipe.PostedBy,
		recipe.PostedAt,
		now,
		now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return id, nil
}

// GetRecipe retrieves a recipe by id. Returns nil when not found.
func (db *DB) GetRecipe(ctx context.Context, id uuid.UUID) (*types.Recipe, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id)

	recipe, err := scanRecipe(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// RecipeFilters holds optional filters for listing recipes
type RecipeFilters struct {
	CuisineType string
	Category    string
}

// ListRecipes retrieves recipes newest-posted first, with optional
// cuisine/category filters.
func (db *DB) ListRecipes(ctx context.Context, filters RecipeFilters) ([]types.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.CuisineType != "" {
		query += fmt.Sprintf(" AND cuisine_type = $%d", argNum)
		args = append(args, filters.CuisineType)
		argNum++
	}
	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, filters.Category)
	}

	query += " ORDER BY posted_at DESC NULLS LAST, created_at DESC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []types.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe applies a partial update. Only non-nil patch fields are
// touched; updated_at is always restamped.
func (db *DB) UpdateRecipe(ctx context.Context, id uuid.UUID, patch types.RecipePatch) error {
	setClause, args := buildRecipePatch(patch)
	args = append(args, id)

	result, err := db.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE recipes SET %s WHERE id = $%d`, setClause, len(args)),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("recipe not found: %s", id)
	}
	return nil
}

// DeleteRecipe removes a recipe by id.
func (db *DB) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("recipe not found: %s", id)
	}
	return nil
}

// CountRecipes returns the total number of stored recipes.
func (db *DB) CountRecipes(ctx context.Context) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

// buildRecipePatch renders the SET clause and arguments for a partial update.
func buildRecipePatch(patch types.RecipePatch) (string, []any) {
	setClause := "updated_at = NOW()"
	args := []any{}
	argNum := 1

	appendSet := func(column string, value any) {
		setClause += fmt.Sprintf(", %s = $%d", column, argNum)
		args = append(args, value)
		argNum++
	}

	if patch.Title != nil {
		appendSet("title", *patch.Title)
	}
	if patch.ImageURL != nil {
		appendSet("image_url", *patch.ImageURL)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Ingredients != nil {
		appendSet("ingredients", types.EncodeIngredients(patch.Ingredients))
	}
	if patch.CuisineType != nil {
		appendSet("cuisine_type", string(*patch.CuisineType))
	}
	if patch.Category != nil {
		appendSet("category", string(*patch.Category))
	}

	return setClause, args
}

// scanRecipe reads one recipe row. The stored ingredient JSON degrades to an
// empty list when corrupt rather than failing the read.
func scanRecipe(row pgx.Row) (*types.Recipe, error) {
	var recipe types.Recipe
	var ingredients string

	err := row.Scan(
		&recipe.ID,
		&recipe.URL,
		&recipe.Title,
		&recipe.ImageURL,
		&recipe.Description,
		&ingredients,
		&recipe.CuisineType,
		&recipe.Category,
		&recipe.PostedBy,
		&recipe.PostedAt,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	recipe.Ingredients = types.DecodeIngredients(ingredients)
	return &recipe, nil
}
