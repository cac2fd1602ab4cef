package matcher

import (
	"context"
	"testing"
	"time"

	"Backend-Bioattend-003/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulationCacheServesSnapshotWithinTTL(t *testing.T) {
	fetches := 0
	cache := NewPopulationCache(5*time.Minute, func(ctx context.Context) ([]models.CandidateRecord, error) {
		fetches++
		return somePopulation(2), nil
	})

	now := time.Now()
	cache.now = func() time.Time { return now }

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, fetches)

	// 4 minutes later: still fresh
	now = now.Add(4 * time.Minute)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)

	// past the 5-minute TTL: refreshed wholesale
	now = now.Add(2 * time.Minute)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestPopulationCacheInvalidateForcesRefetch(t *testing.T) {
	fetches := 0
	cache := NewPopulationCache(time.Hour, func(ctx context.Context) ([]models.CandidateRecord, error) {
		fetches++
		return somePopulation(1), nil
	})

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)

	cache.Invalidate()

	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestPopulationCacheEmptyPopulationIsCached(t *testing.T) {
	fetches := 0
	cache := NewPopulationCache(time.Hour, func(ctx context.Context) ([]models.CandidateRecord, error) {
		fetches++
		return nil, nil
	})

	records, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
}
