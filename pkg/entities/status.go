package entities

import "time"

// BotStatus mirrors the bot's state for the external dashboard. It cannot
// control the bot process; IsDisabled only short-circuits command dispatch.
type BotStatus struct {
	Status      string     `json:"status"` // "online" or "offline"
	LastActive  *time.Time `json:"last_active"`
	LastRestart *time.Time `json:"last_restart"`
	Commands    int64      `json:"commands"`
	Servers     int        `json:"servers"`
	IsDisabled  bool       `json:"is_disabled"`
}

// NewBotStatus returns the default status record
func NewBotStatus() *BotStatus {
	return &BotStatus{
		Status: "offline",
	}
}
