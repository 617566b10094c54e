package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownAcceptRejectAccept(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	table := NewCooldownTable().WithClock(func() time.Time { return now })

	// First use arms the cooldown
	remaining, blocked := table.Check("slots", "user-1", 5*time.Second)
	assert.False(t, blocked)
	assert.Zero(t, remaining)

	// Inside the window the pair is blocked
	now = now.Add(2 * time.Second)
	remaining, blocked = table.Check("slots", "user-1", 5*time.Second)
	assert.True(t, blocked)
	assert.Equal(t, 3*time.Second, remaining)

	// After the window it is clear again
	now = now.Add(4 * time.Second)
	_, blocked = table.Check("slots", "user-1", 5*time.Second)
	assert.False(t, blocked)
}

func TestCooldownIsPerCommandPerUser(t *testing.T) {
	table := NewCooldownTable()

	_, blocked := table.Check("slots", "user-1", time.Minute)
	assert.False(t, blocked)

	// A different user and a different command are unaffected
	_, blocked = table.Check("slots", "user-2", time.Minute)
	assert.False(t, blocked)
	_, blocked = table.Check("coinflip", "user-1", time.Minute)
	assert.False(t, blocked)

	_, blocked = table.Check("slots", "user-1", time.Minute)
	assert.True(t, blocked)
}

func TestCooldownZeroDurationNeverBlocks(t *testing.T) {
	table := NewCooldownTable()

	for i := 0; i < 3; i++ {
		_, blocked := table.Check("ping", "user-1", 0)
		assert.False(t, blocked)
	}
}

func TestCooldownClear(t *testing.T) {
	table := NewCooldownTable()

	_, _ = table.Check("slots", "user-1", time.Minute)
	table.Clear("slots", "user-1")

	_, blocked := table.Check("slots", "user-1", time.Minute)
	assert.False(t, blocked)
}
