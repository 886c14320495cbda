package pubCache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mediapack/internal/cache"
	"mediapack/internal/models"
)

// pubCache implements Service using a generic cache. It is an explicit cache
// struct with its own TTL; there is no ambient shared state.
type pubCache struct {
	cache cache.Service
	ttl   time.Duration
}

// New creates a new synced-publication cache
func New(cache cache.Service, ttl time.Duration) Service {
	return &pubCache{
		cache: cache,
		ttl:   ttl,
	}
}

// Get retrieves a synced publication snapshot from the cache
func (p *pubCache) Get(ctx context.Context, publicationID string) (*models.Publication, error) {
	cacheKey := fmt.Sprintf("publication:%s", publicationID)
	value, err := p.cache.Get(ctx, cacheKey)
	if err != nil {
		return nil, err
	}

	// Handle type conversion
	switch v := value.(type) {
	case *models.Publication:
		// Memory cache returns the actual object
		return v, nil
	case models.Publication:
		return &v, nil
	case string:
		// Redis cache returns JSON string, unmarshal it
		var pub models.Publication
		if err := json.Unmarshal([]byte(v), &pub); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached publication: %w", err)
		}
		return &pub, nil
	default:
		return nil, fmt.Errorf("unexpected type in cache: %T", v)
	}
}

// Set stores a synced publication snapshot in the cache
func (p *pubCache) Set(ctx context.Context, publicationID string, pub *models.Publication, ttl time.Duration) error {
	cacheKey := fmt.Sprintf("publication:%s", publicationID)

	// Use provided TTL or default from pubCache
	cacheTTL := ttl
	if cacheTTL == 0 {
		cacheTTL = p.ttl
	}

	return p.cache.Set(ctx, cacheKey, pub, cacheTTL)
}

// Delete removes a publication snapshot from the cache
func (p *pubCache) Delete(ctx context.Context, publicationID string) error {
	cacheKey := fmt.Sprintf("publication:%s", publicationID)
	return p.cache.Delete(ctx, cacheKey)
}
