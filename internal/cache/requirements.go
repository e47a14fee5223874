package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// requirementsPrefix is the Redis key prefix for requirements probes.
	requirementsPrefix = "requirements:acct:"
	// requirementsTTL bounds how stale a cached probe may be. The
	// provider also pushes account.updated events that invalidate
	// entries early.
	requirementsTTL = 2 * time.Minute
)

// cachedRequirements is the requirements probe result stored in Redis.
type cachedRequirements struct {
	Outstanding  bool     `json:"outstanding"`
	CurrentlyDue []string `json:"currently_due,omitempty"`
}

// GetRequirementsStatus retrieves a cached requirements probe for an
// account. Returns nil on cache miss; a miss is not an error.
func (c *Cache) GetRequirementsStatus(ctx context.Context, accountID string) (*bool, error) {
	key := requirementsPrefix + accountID

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedRequirements
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &cached.Outstanding, nil
}

// SetRequirementsStatus caches a requirements probe result.
func (c *Cache) SetRequirementsStatus(ctx context.Context, accountID string, outstanding bool, currentlyDue []string) error {
	key := requirementsPrefix + accountID

	data, err := json.Marshal(cachedRequirements{
		Outstanding:  outstanding,
		CurrentlyDue: currentlyDue,
	})
	if err != nil {
		return fmt.Errorf("marshal requirements status: %w", err)
	}

	return c.client.Set(ctx, key, data, requirementsTTL).Err()
}

// DeleteRequirementsStatus removes a cached probe. Called when the
// provider reports an account change.
func (c *Cache) DeleteRequirementsStatus(ctx context.Context, accountID string) error {
	key := requirementsPrefix + accountID
	return c.client.Del(ctx, key).Err()
}
