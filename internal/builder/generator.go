package builder

import (
	"log"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Generator serves assistant replies, remembering recently rendered prompts.
// A nil cache disables memoization.
type Generator struct {
	cache *lru.Cache[string, string]
}

// NewGenerator builds a Generator with room for cacheSize replies.
// cacheSize <= 0 turns the cache off.
func NewGenerator(cacheSize int) *Generator {
	if cacheSize <= 0 {
		return &Generator{}
	}

	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		log.Printf("WARN: Failed to create reply cache (size %d): %v. Continuing without cache.", cacheSize, err)
		return &Generator{}
	}
	return &Generator{cache: cache}
}

// Respond returns GenerateResponse(prompt), served from cache when possible.
func (g *Generator) Respond(prompt string) string {
	if g == nil || g.cache == nil {
		return GenerateResponse(prompt)
	}
	if reply, ok := g.cache.Get(prompt); ok {
		return reply
	}
	reply := GenerateResponse(prompt)
	g.cache.Add(prompt, reply)
	return reply
}

// Plan returns the structured plan for prompt. Plans are cheap to build and
// callers may mutate the slices, so they are not cached.
func (g *Generator) Plan(prompt string) AppPlan {
	return BuildPlan(prompt)
}

// CachedReplies reports how many replies are currently memoized.
func (g *Generator) CachedReplies() int {
	if g == nil || g.cache == nil {
		return 0
	}
	return g.cache.Len()
}
