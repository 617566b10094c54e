package economy

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/darkangel/imperialbot/pkg/entities"
	userRepo "github.com/darkangel/imperialbot/pkg/repositories/user"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrSelfTransfer      = errors.New("cannot transfer coins to yourself")
	ErrItemNotFound      = errors.New("item not found in the shop")
	ErrDailyClaimed      = errors.New("daily reward already claimed")
	ErrWorkCooldown      = errors.New("still resting from the last job")
)

const (
	// DailyReward is the fixed daily payout
	DailyReward = 250
	// DailyInterval is the gate between daily claims
	DailyInterval = 24 * time.Hour
	// WorkInterval is the gate between work shifts
	WorkInterval = 30 * time.Minute
)

// Job describes a work assignment with a salary range
type Job struct {
	Title   string
	Min     int64
	Max     int64
	Message string // {amount} placeholder
}

// jobs a user can be assigned by the work command
var jobs = []Job{
	{Title: "Guard", Min: 50, Max: 150, Message: "You patrolled the Imperial City and earned {amount} coins."},
	{Title: "Merchant", Min: 70, Max: 180, Message: "You sold exotic goods in the market and earned {amount} coins."},
	{Title: "Blacksmith", Min: 80, Max: 200, Message: "You forged weapons for the Imperial Army and earned {amount} coins."},
	{Title: "Courier", Min: 40, Max: 120, Message: "You delivered important messages across the Empire and earned {amount} coins."},
	{Title: "Alchemist", Min: 90, Max: 220, Message: "You brewed magical potions and earned {amount} coins."},
	{Title: "Miner", Min: 60, Max: 160, Message: "You mined precious minerals from the Imperial Mines and earned {amount} coins."},
	{Title: "Hunter", Min: 50, Max: 170, Message: "You hunted wild animals and earned {amount} coins for the pelts."},
	{Title: "Scribe", Min: 70, Max: 190, Message: "You copied ancient manuscripts for the Imperial Library and earned {amount} coins."},
}

// catalog of purchasable shop items
var catalog = []entities.ShopItem{
	{ItemID: "fishing_rod", Name: "Fishing Rod", Description: "Use this to catch fish and earn coins", Price: 250, Emoji: "🎣", Usable: true},
	{ItemID: "pickaxe", Name: "Pickaxe", Description: "Mine resources and earn coins", Price: 300, Emoji: "⛏️", Usable: true},
	{ItemID: "sword", Name: "Sword", Description: "Hunt monsters and earn coins", Price: 500, Emoji: "⚔️", Usable: true},
	{ItemID: "crown", Name: "Imperial Crown", Description: "Show off your wealth", Price: 5000, Emoji: "👑", Usable: false},
	{ItemID: "bank_upgrade", Name: "Bank Upgrade", Description: "Increase your bank capacity", Price: 1000, Emoji: "🏦", Usable: true},
}

// Service handles economy business logic
type Service struct {
	repo userRepo.Repository
	now  func() time.Time
	rng  *rand.Rand
}

// NewService creates a new economy service
func NewService(repo userRepo.Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithRand overrides the random source. Used by tests.
func (s *Service) WithRand(rng *rand.Rand) *Service {
	s.rng = rng
	return s
}

// GetOrCreateUser retrieves a ledger entry or creates one with the default
// starting balance
func (s *Service) GetOrCreateUser(ctx context.Context, guildID, userID string) (*entities.UserRecord, bool, error) {
	record, err := s.repo.Get(ctx, guildID, userID)
	if err == nil {
		return record, false, nil
	}

	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, false, err
	}

	newRecord := entities.NewUserRecord(userID, guildID)
	if err := s.repo.Save(ctx, newRecord); err != nil {
		return nil, false, err
	}

	return newRecord, true, nil
}

// DailyResult reports the outcome of a daily claim
type DailyResult struct {
	Record   *entities.UserRecord
	Reward   int64
	NextIn   time.Duration // set when the claim is rejected
	Rejected bool
}

// Daily claims the daily reward, gated to once per 24 hours
func (s *Service) Daily(ctx context.Context, guildID, userID string) (*DailyResult, error) {
	if _, _, err := s.GetOrCreateUser(ctx, guildID, userID); err != nil {
		return nil, err
	}

	now := s.now()
	result := &DailyResult{Reward: DailyReward}

	record, err := s.repo.Update(ctx, guildID, userID, func(u *entities.UserRecord) error {
		if u.LastDaily != nil {
			next := u.LastDaily.Add(DailyInterval)
			if now.Before(next) {
				result.Rejected = true
				result.NextIn = next.Sub(now)
				return ErrDailyClaimed
			}
		}
		u.Balance += DailyReward
		t := now
		u.LastDaily = &t
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDailyClaimed) {
			return result, err
		}
		return nil, err
	}

	result.Record = record
	return result, nil
}

// WorkResult reports the outcome of a work shift
type WorkResult struct {
	Record   *entities.UserRecord
	Job      Job
	Earned   int64
	NextIn   time.Duration // set when the shift is rejected
	Rejected bool
}

// Work assigns a random job and pays a salary within its range, gated to
// once per 30 minutes
func (s *Service) Work(ctx context.Context, guildID, userID string) (*WorkResult, error) {
	if _, _, err := s.GetOrCreateUser(ctx, guildID, userID); err != nil {
		return nil, err
	}

	now := s.now()
	job := jobs[s.rng.Intn(len(jobs))]
	earned := job.Min + s.rng.Int63n(job.Max-job.Min+1)
	result := &WorkResult{Job: job, Earned: earned}

	record, err := s.repo.Update(ctx, guildID, userID, func(u *entities.UserRecord) error {
		if u.LastWork != nil {
			next := u.LastWork.Add(WorkInterval)
			if now.Before(next) {
				result.Rejected = true
				result.NextIn = next.Sub(now)
				return ErrWorkCooldown
			}
		}
		u.Balance += earned
		t := now
		u.LastWork = &t
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrWorkCooldown) {
			return result, err
		}
		return nil, err
	}

	result.Record = record
	return result, nil
}

// Transfer moves coins between two users in the same guild. Both balances
// move or neither does.
func (s *Service) Transfer(ctx context.Context, guildID, fromID, toID string, amount int64) (senderBalance int64, err error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if fromID == toID {
		return 0, ErrSelfTransfer
	}

	if _, _, err := s.GetOrCreateUser(ctx, guildID, fromID); err != nil {
		return 0, err
	}
	if _, _, err := s.GetOrCreateUser(ctx, guildID, toID); err != nil {
		return 0, err
	}

	err = s.repo.UpdatePair(ctx, guildID, fromID, toID, func(sender, receiver *entities.UserRecord) error {
		if sender.Balance < amount {
			return fmt.Errorf("%w: balance %d, need %d", ErrInsufficientFunds, sender.Balance, amount)
		}
		sender.Balance -= amount
		receiver.Balance += amount
		senderBalance = sender.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}

	return senderBalance, nil
}

// Catalog returns the shop items in display order
func (s *Service) Catalog() []entities.ShopItem {
	items := make([]entities.ShopItem, len(catalog))
	copy(items, catalog)
	return items
}

// FindItem looks an item up by ID or case-insensitive name
func (s *Service) FindItem(nameOrID string) (entities.ShopItem, bool) {
	for _, item := range catalog {
		if item.ItemID == nameOrID || strings.EqualFold(item.Name, nameOrID) {
			return item, true
		}
	}
	return entities.ShopItem{}, false
}

// Purchase buys quantity of an item, merging into an existing inventory slot
// when the item is already owned
func (s *Service) Purchase(ctx context.Context, guildID, userID, itemNameOrID string, quantity int) (*entities.UserRecord, entities.ShopItem, error) {
	if quantity <= 0 {
		return nil, entities.ShopItem{}, ErrInvalidAmount
	}

	item, ok := s.FindItem(itemNameOrID)
	if !ok {
		return nil, entities.ShopItem{}, fmt.Errorf("%w: %q", ErrItemNotFound, itemNameOrID)
	}

	if _, _, err := s.GetOrCreateUser(ctx, guildID, userID); err != nil {
		return nil, entities.ShopItem{}, err
	}

	totalCost := item.Price * int64(quantity)
	record, err := s.repo.Update(ctx, guildID, userID, func(u *entities.UserRecord) error {
		if u.Balance < totalCost {
			return fmt.Errorf("%w: balance %d, need %d", ErrInsufficientFunds, u.Balance, totalCost)
		}
		u.Balance -= totalCost
		u.AddItem(entities.InventoryItem{
			ItemID:      item.ItemID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    quantity,
			Usable:      item.Usable,
		})
		return nil
	})
	if err != nil {
		return nil, entities.ShopItem{}, err
	}

	return record, item, nil
}

// AdjustBalance applies a game win or loss. A negative delta fails with
// ErrInsufficientFunds when the balance would go below zero.
func (s *Service) AdjustBalance(ctx context.Context, guildID, userID string, delta int64) (*entities.UserRecord, error) {
	if _, _, err := s.GetOrCreateUser(ctx, guildID, userID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, guildID, userID, func(u *entities.UserRecord) error {
		if u.Balance+delta < 0 {
			return fmt.Errorf("%w: balance %d", ErrInsufficientFunds, u.Balance)
		}
		u.Balance += delta
		return nil
	})
}
