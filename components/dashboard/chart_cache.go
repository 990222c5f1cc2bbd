package dashboard

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML so repeated fetches are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache is an in-memory TTL cache for rendered charts. A non-positive TTL
// disables caching. Expired entries are swept at most once per TTL on write;
// as a RefreshHook it also drops the entries of deleted panels.
type ChartCache struct {
	ttl       time.Duration
	mu        sync.RWMutex
	entries   map[string]cachedChart
	lastSweep time.Time
}

var _ RefreshHook = (*ChartCache)(nil)

type cachedChart struct {
	html    string
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		entries: make(map[string]cachedChart),
	}
}

// GetOrRender returns a cached entry or renders/stores a new one.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.get(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, html)
	return html, nil
}

func (c *ChartCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return "", false
	}
	return entry.html, true
}

func (c *ChartCache) set(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	now := time.Now()
	c.mu.Lock()
	if now.Sub(c.lastSweep) >= c.ttl {
		c.purgeLocked(now)
		c.lastSweep = now
	}
	c.entries[key] = cachedChart{
		html:    html,
		expires: now.Add(c.ttl),
	}
	c.mu.Unlock()
}

// dataHash returns a deterministic hash for chart content so regenerated data
// never hits a stale entry.
func dataHash(data ChartData) string {
	if len(data.Series) == 0 {
		return "empty"
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

// Purge drops expired entries and returns how many were removed.
func (c *ChartCache) Purge(now time.Time) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purgeLocked(now)
}

func (c *ChartCache) purgeLocked(now time.Time) int {
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Forget drops every entry rendered for panelID.
func (c *ChartCache) Forget(panelID string) int {
	if c == nil || panelID == "" {
		return 0
	}
	prefix := panelID + ":"
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// PanelUpdated satisfies RefreshHook.
func (c *ChartCache) PanelUpdated(_ context.Context, event PanelEvent) error {
	if event.Reason == reasonDelete {
		c.Forget(event.PanelID)
	}
	return nil
}

// Run purges expired entries every interval until ctx is done.
func (c *ChartCache) Run(ctx context.Context, interval time.Duration) {
	if c == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.Purge(now)
		}
	}
}

// Len reports the number of cached entries, expired ones included.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
