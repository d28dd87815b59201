// Package cache memoizes full recommendation responses keyed by the
// canonical hash of their input.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"fourthandshort/domain"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/blake2b"
)

const digestSize = 16 // 128-bit keys

// ResultCache is a capacity-bounded LRU from canonical situation hashes to
// previously computed results. Safe for concurrent get/set. There is no
// invalidation: after retraining, callers bypass stale entries by passing
// a model-version override, which is folded into the key.
type ResultCache struct {
	entries *lru.Cache[string, domain.RecommendationResult]
}

func NewResultCache(capacity int) (*ResultCache, error) {
	entries, err := lru.New[string, domain.RecommendationResult](capacity)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &ResultCache{entries: entries}, nil
}

// Key canonicalizes the query (sorted-key JSON, no extraneous whitespace)
// and hashes it with a fixed-length non-cryptographic digest, so
// semantically identical inputs hash identically.
func (c *ResultCache) Key(q domain.SituationQuery, versionOverride string) (string, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("canonicalize situation: %w", err)
	}

	// Round-trip through a map: encoding/json writes map keys sorted.
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("canonicalize situation: %w", err)
	}
	if versionOverride != "" {
		fields["model_version"] = versionOverride
	}

	canonical, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("canonicalize situation: %w", err)
	}

	digest, err := blake2b.New(digestSize, nil)
	if err != nil {
		return "", fmt.Errorf("init digest: %w", err)
	}
	digest.Write(canonical)
	return hex.EncodeToString(digest.Sum(nil)), nil
}

func (c *ResultCache) Get(key string) (domain.RecommendationResult, bool) {
	return c.entries.Get(key)
}

func (c *ResultCache) Set(key string, value domain.RecommendationResult) {
	c.entries.Add(key, value)
}

// Len reports the number of live entries, for observability.
func (c *ResultCache) Len() int {
	return c.entries.Len()
}
