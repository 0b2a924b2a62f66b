package riskcalc

import "sync"

// EstimateCache memoizes Estimate keyed on the full Profile value. The
// estimator is cheap and deterministic, so the cache is an optimization
// only; results are identical with or without it. Safe for concurrent use.
type EstimateCache struct {
	mu      sync.RWMutex
	results map[Profile]float64
}

func NewEstimateCache() *EstimateCache {
	return &EstimateCache{results: map[Profile]float64{}}
}

// Estimate returns the cached baseline risk for p, computing and storing it
// on a miss. Invalid inputs are never cached.
func (c *EstimateCache) Estimate(p Profile) (float64, error) {
	c.mu.RLock()
	risk, ok := c.results[p]
	c.mu.RUnlock()
	if ok {
		return risk, nil
	}

	risk, err := Estimate(p)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.results[p] = risk
	c.mu.Unlock()
	return risk, nil
}
