package user

import (
	"context"
	"errors"

	"github.com/darkangel/imperialbot/pkg/entities"
)

var (
	ErrUserNotFound = errors.New("user record not found")
)

// Repository defines the interface for the per-(guild, user) ledger
type Repository interface {
	// Get retrieves a user record
	Get(ctx context.Context, guildID, userID string) (*entities.UserRecord, error)

	// Save creates or updates a user record
	Save(ctx context.Context, record *entities.UserRecord) error

	// Update applies fn to the stored record under the store's lock so
	// read-modify-write sequences never interleave
	Update(ctx context.Context, guildID, userID string, fn func(*entities.UserRecord) error) (*entities.UserRecord, error)

	// UpdatePair applies fn to two records atomically with respect to other
	// Update calls. Used for transfers so both balances move or neither does.
	UpdatePair(ctx context.Context, guildID, userA, userB string, fn func(a, b *entities.UserRecord) error) error

	// Close releases any underlying resources
	Close() error
}

// Key builds the composite ledger key
func Key(guildID, userID string) string {
	return guildID + "-" + userID
}
