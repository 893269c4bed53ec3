// Package types defines the shared data structures for the recipe collector.
package types

import (
	"time"

	"github.com/google/uuid"
)

// CuisineType is the closed vocabulary for recipe cuisine classification.
type CuisineType string

// CuisineType values. Anything the classifier returns outside this set
// normalizes to CuisineOther.
const (
	CuisineJapanese CuisineType = "Japanese"
	CuisineWestern  CuisineType = "Western"
	CuisineChinese  CuisineType = "Chinese"
	CuisineItalian  CuisineType = "Italian"
	CuisineFrench   CuisineType = "French"
	CuisineEthnic   CuisineType = "Ethnic"
	CuisineOther    CuisineType = "Other"
)

// Category is the closed vocabulary for the kind of dish.
type Category string

// Category values. Anything outside this set normalizes to CategoryOther.
const (
	CategoryMainDish    Category = "Main Dish"
	CategorySideDish    Category = "Side Dish"
	CategorySoup        Category = "Soup"
	CategoryRiceNoodles Category = "Rice & Noodles"
	CategoryDessert     Category = "Dessert"
	CategoryOther       Category = "Other"
)

// CuisineTypes lists every valid cuisine value, in prompt order.
func CuisineTypes() []CuisineType {
	return []CuisineType{
		CuisineJapanese, CuisineWestern, CuisineChinese,
		CuisineItalian, CuisineFrench, CuisineEthnic, CuisineOther,
	}
}

// Categories lists every valid category value, in prompt order.
func Categories() []Category {
	return []Category{
		CategoryMainDish, CategorySideDish, CategorySoup,
		CategoryRiceNoodles, CategoryDessert, CategoryOther,
	}
}

// ParseCuisineType normalizes a free-form string to the closed vocabulary.
// Unrecognized or empty input maps to CuisineOther, never an error.
func ParseCuisineType(s string) CuisineType {
	for _, c := range CuisineTypes() {
		if s == string(c) {
			return c
		}
	}
	return CuisineOther
}

// ParseCategory normalizes a free-form string to the closed vocabulary.
// Unrecognized or empty input maps to CategoryOther, never an error.
func ParseCategory(s string) Category {
	for _, c := range Categories() {
		if s == string(c) {
			return c
		}
	}
	return CategoryOther
}

// Recipe is a persisted recipe record.
type Recipe struct {
	ID          uuid.UUID   `json:"id"`
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	ImageURL    *string     `json:"image_url"`
	Description *string     `json:"description"`
	Ingredients []string    `json:"ingredients"`
	CuisineType CuisineType `json:"cuisine_type"`
	Category    Category    `json:"category"`
	PostedBy    *string     `json:"posted_by"`
	PostedAt    *time.Time  `json:"posted_at"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewRecipe carries the fields for creating a recipe record.
type NewRecipe struct {
	URL         string
	Title       string
	ImageURL    *string
	Description *string
	Ingredients []string
	CuisineType CuisineType
	Category    Category
	PostedBy    *string
	PostedAt    *time.Time
}

// RecipePatch carries optional fields for a partial recipe update.
// Nil fields are left untouched.
type RecipePatch struct {
	Title       *string
	ImageURL    *string
	Description *string
	Ingredients []string
	CuisineType *CuisineType
	Category    *Category
}
