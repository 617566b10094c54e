package entities

import "time"

// InventoryItem is an owned shop item. ItemID is unique within a user's
// inventory; repeat purchases increment Quantity instead of appending.
type InventoryItem struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Usable      bool   `json:"usable"`
}

// Warning is a moderation warning. ID is a 1-based sequence number local to
// the user within a guild; IDs are never reused, even after warnings are
// cleared.
type Warning struct {
	ID           int       `json:"id"`
	Reason       string    `json:"reason"`
	ModeratorID  string    `json:"moderator_id"`
	ModeratorTag string    `json:"moderator_tag"`
	Timestamp    time.Time `json:"timestamp"`
}

// UserRecord is the per-(guild, user) economy and moderation ledger entry
type UserRecord struct {
	UserID    string          `json:"user_id"`
	GuildID   string          `json:"guild_id"`
	Balance   int64           `json:"balance"`
	Bank      int64           `json:"bank"`
	Inventory []InventoryItem `json:"inventory"`
	LastDaily *time.Time      `json:"last_daily"`
	LastWork  *time.Time      `json:"last_work"`
	Warnings  []Warning       `json:"warnings"`

	// WarningSeq is the highest warning ID ever issued to this user, so
	// cleared warnings never free their IDs for reuse
	WarningSeq int `json:"warning_seq"`

	// Retained for schema compatibility with older records; no handler
	// reads or writes these.
	Experience int64 `json:"experience"`
	Level      int   `json:"level"`
}

// NewUserRecord returns the default ledger entry for a user
func NewUserRecord(userID, guildID string) *UserRecord {
	return &UserRecord{
		UserID:  userID,
		GuildID: guildID,
		Balance: 100,
		Bank:    0,
		Level:   1,
	}
}

// AddItem merges an item into the inventory, incrementing Quantity when the
// ItemID is already present
func (u *UserRecord) AddItem(item InventoryItem) {
	for i := range u.Inventory {
		if u.Inventory[i].ItemID == item.ItemID {
			u.Inventory[i].Quantity += item.Quantity
			return
		}
	}
	u.Inventory = append(u.Inventory, item)
}

// AddWarning appends a warning with the next 1-based ID and returns it.
// IDs come from a monotonic per-user counter, backfilled from existing
// warnings for records written before the counter was stored.
func (u *UserRecord) AddWarning(reason, moderatorID, moderatorTag string, now time.Time) Warning {
	next := u.WarningSeq + 1
	for _, w := range u.Warnings {
		if w.ID >= next {
			next = w.ID + 1
		}
	}

	w := Warning{
		ID:           next,
		Reason:       reason,
		ModeratorID:  moderatorID,
		ModeratorTag: moderatorTag,
		Timestamp:    now,
	}
	u.Warnings = append(u.Warnings, w)
	u.WarningSeq = next
	return w
}
