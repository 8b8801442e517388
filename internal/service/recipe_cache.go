package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cached recipes are served for this long before a fresh generation.
const recipeCacheTTL = 5 * time.Minute

// RecipeCache deduplicates identical ingredient-list requests across sessions
// for a short window.
type RecipeCache struct {
	redis *redis.Client
}

// NewRecipeCache creates a new RecipeCache instance
func NewRecipeCache(redisClient *redis.Client) *RecipeCache {
	return &RecipeCache{redis: redisClient}
}

// CacheKey derives the cache key for an ingredient list: lowercased,
// comma-joined, in submission order. Order is deliberately preserved, so
// ["a","b"] and ["b","a"] are distinct entries.
func CacheKey(ingredients []string) string {
	return fmt.Sprintf("recipe:%s", strings.ToLower(strings.Join(ingredients, ",")))
}

// Get returns the cached recipe for the ingredient list, and whether one was
// present.
func (c *RecipeCache) Get(ctx context.Context, ingredients []string) (string, bool, error) {
	val, err := c.redis.Get(ctx, CacheKey(ingredients)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read recipe cache: %w", err)
	}
	return val, true, nil
}

// Set stores the recipe under the ingredient list's key with the cache TTL.
func (c *RecipeCache) Set(ctx context.Context, ingredients []string, recipe string) error {
	if err := c.redis.Set(ctx, CacheKey(ingredients), recipe, recipeCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to write recipe cache: %w", err)
	}
	return nil
}
