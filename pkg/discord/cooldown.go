package discord

import (
	"sync"
	"time"
)

// CooldownTable tracks per-(command, user) cooldown expirations. Entries are
// removed by a timer when they expire, so the table does not grow unbounded.
type CooldownTable struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewCooldownTable creates an empty cooldown table
func NewCooldownTable() *CooldownTable {
	return &CooldownTable{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (c *CooldownTable) WithClock(now func() time.Time) *CooldownTable {
	c.now = now
	return c
}

// Check reports whether the (command, user) pair is on cooldown and, if so,
// how long remains. When the pair is clear and d > 0 the cooldown is armed.
func (c *CooldownTable) Check(command, userID string, d time.Duration) (time.Duration, bool) {
	if d <= 0 {
		return 0, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := command + ":" + userID
	now := c.now()

	if expires, ok := c.entries[key]; ok && now.Before(expires) {
		return expires.Sub(now), true
	}

	c.entries[key] = now.Add(d)
	time.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if expires, ok := c.entries[key]; ok && !c.now().Before(expires) {
			delete(c.entries, key)
		}
	})

	return 0, false
}

// Clear removes the cooldown for a (command, user) pair
func (c *CooldownTable) Clear(command, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, command+":"+userID)
}
