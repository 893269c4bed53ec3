package types

import (
	"encoding/json"
	"log"
)

// EncodeIngredients serializes an ingredient list to its stored JSON form.
// A nil list encodes as an empty array.
func EncodeIngredients(ingredients []string) string {
	if ingredients == nil {
		ingredients = []string{}
	}
	data, err := json.Marshal(ingredients)
	if err != nil {
		// []string cannot fail to marshal; keep the stored form valid anyway.
		return "[]"
	}
	return string(data)
}

// DecodeIngredients deserializes the stored ingredient JSON. Corrupt data
// degrades to an empty list with a warning rather than failing the read.
func DecodeIngredients(encoded string) []string {
	if encoded == "" {
		return []string{}
	}
	var ingredients []string
	if err := json.Unmarshal([]byte(encoded), &ingredients); err != nil {
		log.Printf("Failed to decode ingredients %q: %v", encoded, err)
		return []string{}
	}
	if ingredients == nil {
		return []string{}
	}
	return ingredients
}
