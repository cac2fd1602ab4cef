package matcher

import (
	"context"
	"log"
	"sync"
	"time"

	"Backend-Bioattend-003/src/models"
)

// FetchFunc loads the full persisted candidate population.
type FetchFunc func(ctx context.Context) ([]models.CandidateRecord, error)

// PopulationCache is a TTL-bounded snapshot of all enrolled candidates.
// It is owned by the matcher services and only ever overwritten wholesale.
type PopulationCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	fetch     FetchFunc
	records   []models.CandidateRecord
	fetchedAt time.Time
	now       func() time.Time
}

func NewPopulationCache(ttl time.Duration, fetch FetchFunc) *PopulationCache {
	return &PopulationCache{
		ttl:   ttl,
		fetch: fetch,
		now:   time.Now,
	}
}

// Get returns the cached snapshot, refreshing it when empty or expired.
func (c *PopulationCache) Get(ctx context.Context) ([]models.CandidateRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.records != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.records, nil
	}

	records, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.CandidateRecord{}
	}
	c.records = records
	c.fetchedAt = c.now()
	return c.records, nil
}

// Invalidate drops the snapshot. Called after every successful enrollment
// write so the next Get sees the new candidate set.
func (c *PopulationCache) Invalidate() {
	c.mu.Lock()
	c.records = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

// Prewarm refreshes the snapshot in the background, fire-and-forget.
// The duplicate detector reads it opportunistically and falls back to a
// blocking Get.
// The request context is deliberately not used here: the warm-up outlives
// the request that triggered it.
func (c *PopulationCache) Prewarm() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := c.Get(ctx); err != nil {
			log.Println("⚠️ population cache prewarm failed:", err)
		}
	}()
}
