package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded command execution
type Entry struct {
	ID        string        `json:"id"`
	GuildID   string        `json:"guild_id"`
	UserID    string        `json:"user_id"`
	Command   string        `json:"command"`
	Args      []string      `json:"args"`
	Duration  time.Duration `json:"duration_ns"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewEntry builds an audit entry for a finished command execution
func NewEntry(guildID, userID, command string, args []string, duration time.Duration, err error) Entry {
	entry := Entry{
		ID:        uuid.New().String(),
		GuildID:   guildID,
		UserID:    userID,
		Command:   command,
		Args:      args,
		Duration:  duration,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	return entry
}

// Sink records command executions. Implementations must never surface
// failures to users; the dispatcher only logs them.
type Sink interface {
	Record(ctx context.Context, entry Entry) error
	Close() error
}
