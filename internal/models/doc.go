// Package models defines the core domain models for CookNote.
//
// # Models
//
//   - Recipe: a dish with images, ingredients, steps, cost and member likes
//   - Ingredient: one line of a recipe's ingredient list
//   - Category: the closed six-value ingredient classification
//   - FamilyMember: a household member whose likes are recorded on recipes
//   - Draft: a structured recipe returned by the image analysis service
//
// # Design Principles
//
//  1. **Names are identity**: ingredients are matched and deduplicated by Name, never by ID
//  2. **Tolerant decoding**: stored JSON has no schema version, so legacy shapes are
//     sanitized on read (string amounts, missing likedBy/cost/category)
//  3. **IDs, not pointers**: recipes reference members through LikedBy ID strings
//  4. **Copies out**: collections handed to callers are deep copies (see CloneRecipes)
package models
