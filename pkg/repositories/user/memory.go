package user

import (
	"context"
	"sync"

	"github.com/darkangel/imperialbot/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	records map[string]*entities.UserRecord
	mu      sync.RWMutex
}

// NewMemoryRepository creates a new in-memory ledger repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*entities.UserRecord),
	}
}

// Get retrieves a user record
func (r *MemoryRepository) Get(ctx context.Context, guildID, userID string) (*entities.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[Key(guildID, userID)]
	if !exists {
		return nil, ErrUserNotFound
	}

	return cloneRecord(record), nil
}

// Save creates or updates a user record
func (r *MemoryRepository) Save(ctx context.Context, record *entities.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[Key(record.GuildID, record.UserID)] = cloneRecord(record)
	return nil
}

// Update applies fn to the stored record while holding the write lock
func (r *MemoryRepository) Update(ctx context.Context, guildID, userID string, fn func(*entities.UserRecord) error) (*entities.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[Key(guildID, userID)]
	if !exists {
		return nil, ErrUserNotFound
	}

	if err := fn(record); err != nil {
		return nil, err
	}

	return cloneRecord(record), nil
}

// UpdatePair applies fn to two records under a single lock acquisition
func (r *MemoryRepository) UpdatePair(ctx context.Context, guildID, userA, userB string, fn func(a, b *entities.UserRecord) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recordA, exists := r.records[Key(guildID, userA)]
	if !exists {
		return ErrUserNotFound
	}
	recordB, exists := r.records[Key(guildID, userB)]
	if !exists {
		return ErrUserNotFound
	}

	// fn mutates in place; on error the caller must not have touched either
	// record, which our services guarantee by validating before mutating
	return fn(recordA, recordB)
}

// Close implements Repository
func (r *MemoryRepository) Close() error {
	return nil
}

// cloneRecord deep-copies a ledger entry so callers never share the stored
// slices
func cloneRecord(u *entities.UserRecord) *entities.UserRecord {
	c := *u

	if u.Inventory != nil {
		c.Inventory = make([]entities.InventoryItem, len(u.Inventory))
		copy(c.Inventory, u.Inventory)
	}
	if u.Warnings != nil {
		c.Warnings = make([]entities.Warning, len(u.Warnings))
		copy(c.Warnings, u.Warnings)
	}
	if u.LastDaily != nil {
		t := *u.LastDaily
		c.LastDaily = &t
	}
	if u.LastWork != nil {
		t := *u.LastWork
		c.LastWork = &t
	}

	return &c
}
