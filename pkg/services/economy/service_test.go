package economy

import (
	"context"
	"math/rand"
	"testing"
	"time"

	userRepo "github.com/darkangel/imperialbot/pkg/repositories/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(userRepo.NewMemoryRepository()).
		WithRand(rand.New(rand.NewSource(1)))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGetOrCreateUserDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	record, created, err := svc.GetOrCreateUser(ctx, "guild-1", "user-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(100), record.Balance)
	assert.Equal(t, int64(0), record.Bank)
	assert.Empty(t, record.Inventory)

	_, created, err = svc.GetOrCreateUser(ctx, "guild-1", "user-1")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestDaily(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(fixedClock(start))

	result, err := svc.Daily(ctx, "guild-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(DailyReward), result.Reward)
	assert.Equal(t, int64(100+DailyReward), result.Record.Balance)

	// Second claim within 24h is rejected and the balance does not move
	svc.WithClock(fixedClock(start.Add(6 * time.Hour)))
	result, err = svc.Daily(ctx, "guild-1", "user-1")
	assert.ErrorIs(t, err, ErrDailyClaimed)
	assert.True(t, result.Rejected)
	assert.Equal(t, 18*time.Hour, result.NextIn)

	record, _, err := svc.GetOrCreateUser(ctx, "guild-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100+DailyReward), record.Balance)

	// Claim succeeds again once the gate expires
	svc.WithClock(fixedClock(start.Add(24 * time.Hour)))
	result, err = svc.Daily(ctx, "guild-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100+2*DailyReward), result.Record.Balance)
}

func TestWork(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(fixedClock(start))

	result, err := svc.Work(ctx, "guild-1", "user-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Earned, result.Job.Min)
	assert.LessOrEqual(t, result.Earned, result.Job.Max)
	assert.Equal(t, int64(100)+result.Earned, result.Record.Balance)

	// Within the cooldown the shift is rejected
	svc.WithClock(fixedClock(start.Add(10 * time.Minute)))
	result, err = svc.Work(ctx, "guild-1", "user-1")
	assert.ErrorIs(t, err, ErrWorkCooldown)
	assert.True(t, result.Rejected)
	assert.Equal(t, 20*time.Minute, result.NextIn)

	// After the cooldown a second shift pays out
	svc.WithClock(fixedClock(start.Add(WorkInterval)))
	_, err = svc.Work(ctx, "guild-1", "user-1")
	require.NoError(t, err)
}

func TestTransfer(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	senderBalance, err := svc.Transfer(ctx, "guild-1", "user-a", "user-b", 40)
	require.NoError(t, err)
	assert.Equal(t, int64(60), senderBalance)

	receiver, _, err := svc.GetOrCreateUser(ctx, "guild-1", "user-b")
	require.NoError(t, err)
	assert.Equal(t, int64(140), receiver.Balance)
}

func TestTransferInsufficientFunds(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Transfer(ctx, "guild-1", "user-a", "user-b", 500)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Neither balance moved
	sender, _, err := svc.GetOrCreateUser(ctx, "guild-1", "user-a")
	require.NoError(t, err)
	receiver, _, err := svc.GetOrCreateUser(ctx, "guild-1", "user-b")
	require.NoError(t, err)
	assert.Equal(t, int64(100), sender.Balance)
	assert.Equal(t, int64(100), receiver.Balance)
}

func TestTransferRejectsSelfAndNonPositive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Transfer(ctx, "guild-1", "user-a", "user-a", 10)
	assert.ErrorIs(t, err, ErrSelfTransfer)

	_, err = svc.Transfer(ctx, "guild-1", "user-a", "user-b", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Transfer(ctx, "guild-1", "user-a", "user-b", -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPurchase(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// Seed enough coins for a fishing rod
	_, err := svc.AdjustBalance(ctx, "guild-1", "user-1", 200)
	require.NoError(t, err)

	record, item, err := svc.Purchase(ctx, "guild-1", "user-1", "fishing_rod", 1)
	require.NoError(t, err)
	assert.Equal(t, "Fishing Rod", item.Name)
	assert.Equal(t, int64(50), record.Balance)
	require.Len(t, record.Inventory, 1)
	assert.Equal(t, 1, record.Inventory[0].Quantity)
}

func TestPurchaseMergesQuantity(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.AdjustBalance(ctx, "guild-1", "user-1", 900)
	require.NoError(t, err)

	_, _, err = svc.Purchase(ctx, "guild-1", "user-1", "Fishing Rod", 1)
	require.NoError(t, err)
	record, _, err := svc.Purchase(ctx, "guild-1", "user-1", "fishing_rod", 2)
	require.NoError(t, err)

	require.Len(t, record.Inventory, 1)
	assert.Equal(t, 3, record.Inventory[0].Quantity)
	assert.Equal(t, int64(250), record.Balance)
}

func TestPurchaseErrors(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _, err := svc.Purchase(ctx, "guild-1", "user-1", "dragon", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, _, err = svc.Purchase(ctx, "guild-1", "user-1", "crown", 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, _, err = svc.Purchase(ctx, "guild-1", "user-1", "fishing_rod", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAdjustBalance(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	record, err := svc.AdjustBalance(ctx, "guild-1", "user-1", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(150), record.Balance)

	record, err = svc.AdjustBalance(ctx, "guild-1", "user-1", -150)
	require.NoError(t, err)
	assert.Equal(t, int64(0), record.Balance)

	_, err = svc.AdjustBalance(ctx, "guild-1", "user-1", -1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestCatalog(t *testing.T) {
	svc := newTestService()

	items := svc.Catalog()
	require.Len(t, items, 5)
	assert.Equal(t, "fishing_rod", items[0].ItemID)
	assert.Equal(t, int64(5000), items[3].Price)

	// Returned slice is a copy
	items[0].Price = 1
	assert.Equal(t, int64(250), svc.Catalog()[0].Price)
}
