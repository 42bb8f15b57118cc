package recurrence

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/cyp0633/caldora-recur/recur/rfc5545"
)

// CacheEntry represents a cached recurrence result
type CacheEntry struct {
	Result     any // bool for range checks, []time.Time for expansions
	ExpiresAt  time.Time
	AccessedAt time.Time
}

// RecurrenceCache caches expansion and range check results. Rules are keyed
// by their canonical RRULE text, so equivalent rules share entries.
type RecurrenceCache struct {
	entries         map[string]*CacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// CacheConfig holds configuration for the recurrence cache
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Maximum number of entries before cleanup
	CleanupInterval time.Duration // How often to run cleanup
}

// DefaultCacheConfig provides sensible defaults for recurrence caching
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// NewRecurrenceCache creates a new recurrence cache and starts its cleanup goroutine
func NewRecurrenceCache(config CacheConfig) *RecurrenceCache {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultCacheConfig.CleanupInterval
	}
	cache := &RecurrenceCache{
		entries:         make(map[string]*CacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	go cache.cleanupLoop()

	return cache
}

func (c *RecurrenceCache) generateCacheKey(operation string, masterStart, masterEnd time.Time, info RecurrenceInfo, rangeStart, rangeEnd time.Time) string {
	h := sha256.New()
	write := func(s string) {
		io.WriteString(h, s)
		h.Write([]byte{0})
	}
	// The offset alone does not identify the zone; expansion follows DST.
	writeTime := func(t time.Time) {
		write(t.Format(time.RFC3339Nano))
		write(t.Location().String())
	}

	write(operation)
	writeTime(masterStart)
	writeTime(masterEnd)
	writeTime(rangeStart)
	writeTime(rangeEnd)

	if rule, ok := info.Rule.Get(); ok {
		write(rfc5545.Format(rule))
	} else {
		write("")
	}
	for _, rdate := range info.RDATE {
		writeTime(rdate)
	}
	write("EXDATE")
	for _, exdate := range info.EXDATE {
		writeTime(exdate)
	}
	if info.RecurrenceID != nil {
		writeTime(*info.RecurrenceID)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached result if it exists and hasn't expired
func (c *RecurrenceCache) Get(operation string, masterStart, masterEnd time.Time, info RecurrenceInfo, rangeStart, rangeEnd time.Time) (any, bool) {
	key := c.generateCacheKey(operation, masterStart, masterEnd, info, rangeStart, rangeEnd)
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}
	if now.After(entry.ExpiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	entry.AccessedAt = now
	return entry.Result, true
}

// Set stores a result in the cache
func (c *RecurrenceCache) Set(operation string, masterStart, masterEnd time.Time, info RecurrenceInfo, rangeStart, rangeEnd time.Time, result any) {
	key := c.generateCacheKey(operation, masterStart, masterEnd, info, rangeStart, rangeEnd)
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = &CacheEntry{
		Result:     result,
		ExpiresAt:  now.Add(c.ttl),
		AccessedAt: now,
	}

	if len(c.entries) > c.maxEntries {
		c.cleanup()
	}
}

// cleanup removes expired entries, then the least recently accessed ones
// until the cache is within its limit. Callers hold the write lock.
func (c *RecurrenceCache) cleanup() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
		}
	}

	excess := len(c.entries) - c.maxEntries
	if excess <= 0 {
		return
	}

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return c.entries[a].AccessedAt.Compare(c.entries[b].AccessedAt)
	})
	for _, key := range keys[:excess] {
		delete(c.entries, key)
	}
}

func (c *RecurrenceCache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.cleanup()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and clears the cache. It is safe to call more than once.
func (c *RecurrenceCache) Close() {
	c.closeOnce.Do(func() {
		close(c.stopCleanup)
	})
	c.mutex.Lock()
	c.entries = make(map[string]*CacheEntry)
	c.mutex.Unlock()
}

// CacheStats provides information about cache contents
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}

// Stats returns cache statistics
func (c *RecurrenceCache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := time.Now()
	expired := 0
	for _, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			expired++
		}
	}

	return CacheStats{
		TotalEntries:   len(c.entries),
		ExpiredEntries: expired,
		ActiveEntries:  len(c.entries) - expired,
	}
}
