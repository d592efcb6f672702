// Package game implements the simulation engine: the per-user grass
// inventory, the purchase economy and the cattle hunger state machine.
//
// There is no background scheduler. Satiation decay is settled lazily:
// current hunger is a function of the stored state and the wall clock,
// realized whenever UpdateCattleTimers (or a read that calls it) observes
// an expired countdown. Correctness never depends on how often callers
// poll, only on settling before trusting hunger or timer values.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Phate334/cattle-farm-poc/internal/identity"
	"github.com/Phate334/cattle-farm-poc/internal/model"
	"github.com/Phate334/cattle-farm-poc/internal/store"
)

// Error represents a domain failure of a simulation operation. The error
// text is the human-readable message callers may surface verbatim.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrInvalidAmount indicates a non-positive purchase amount.
	ErrInvalidAmount Error = "purchase amount must be greater than zero"

	// ErrInsufficientPoints indicates the user cannot afford the purchase.
	ErrInsufficientPoints Error = "not enough points to buy grass"

	// ErrNoGameData indicates the user has no game data record yet.
	ErrNoGameData Error = "no game data found"

	// ErrInsufficientGrass indicates the grass inventory is empty.
	ErrInsufficientGrass Error = "not enough grass, buy some first"

	// ErrCattleNotFound indicates the cattle id is not in the herd.
	ErrCattleNotFound Error = "no such cattle in the herd"

	// ErrAlreadySatiated indicates the cattle is already fully fed.
	ErrAlreadySatiated Error = "this cattle is already full"
)

// PurchaseResult reports the state after a successful grass purchase.
type PurchaseResult struct {
	Grass  int
	Points int
}

// FeedResult reports the state after a successful feeding.
type FeedResult struct {
	Grass        int
	Hunger       int
	TimerEndTime *int64
}

// Service is the simulation engine. It owns the game data table and calls
// back into the identity service to move points on purchases.
type Service struct {
	data     *store.Table[map[string]model.GameData]
	identity *identity.Service
	now      func() time.Time
}

// NewService creates a simulation engine on top of the given store and
// identity service.
func NewService(st store.Store, ident *identity.Service) *Service {
	return NewServiceWithClock(st, ident, time.Now)
}

// NewServiceWithClock creates a simulation engine with an injected clock.
// Tests use this to control wall-clock time.
func NewServiceWithClock(st store.Store, ident *identity.Service, now func() time.Time) *Service {
	return &Service{
		data:     store.NewTable[map[string]model.GameData](st, store.KeyGameData),
		identity: ident,
		now:      now,
	}
}

// InitGameData returns the user's game data record, creating it with an
// empty inventory and a fresh herd on first access. It is idempotent.
func (s *Service) InitGameData(ctx context.Context, userID string) (*model.GameData, error) {
	all, _, err := s.data.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading game data: %w", err)
	}
	if gd, ok := all[userID]; ok {
		return &gd, nil
	}

	if all == nil {
		all = make(map[string]model.GameData)
	}
	gd := model.NewGameData(userID)
	all[userID] = gd
	if err := s.data.Save(ctx, all); err != nil {
		return nil, fmt.Errorf("saving game data: %w", err)
	}

	slog.Info("game data created", "category", "game", "user_id", userID)
	return &gd, nil
}

// GameData returns the user's record with expired countdowns settled
// first, or nil if the user has none.
func (s *Service) GameData(ctx context.Context, userID string) (*model.GameData, error) {
	return s.UpdateCattleTimers(ctx, userID)
}

// BuyGrass exchanges points for grass at the fixed rate of one point per
// unit. The ledger is debited first; game data is only written after the
// debit succeeds, so a failed debit never credits grass.
func (s *Service) BuyGrass(ctx context.Context, userID string, amount int) (*PurchaseResult, error) {
	user, err := s.identity.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	cost := amount * model.GrassCost
	if user.Points < cost {
		return nil, ErrInsufficientPoints
	}

	newPoints := user.Points - cost
	if err := s.identity.UpdatePoints(ctx, userID, newPoints); err != nil {
		return nil, err
	}

	gd, err := s.InitGameData(ctx, userID)
	if err != nil {
		return nil, err
	}
	gd.Grass += amount
	if err := s.saveGameData(ctx, *gd); err != nil {
		return nil, err
	}

	slog.Info("grass purchased", "category", "ledger", "user_id", userID, "amount", amount, "points", newPoints)
	return &PurchaseResult{Grass: gd.Grass, Points: newPoints}, nil
}

// FeedCattle consumes one grass and raises the cattle's hunger by the
// fixed feeding step, clamped to the maximum. Landing exactly on the
// maximum arms the satiation countdown.
func (s *Service) FeedCattle(ctx context.Context, userID string, cattleID int) (*FeedResult, error) {
	all, _, err := s.data.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading game data: %w", err)
	}
	gd, ok := all[userID]
	if !ok {
		return nil, ErrNoGameData
	}

	if gd.Grass < 1 {
		return nil, ErrInsufficientGrass
	}
	cattle := gd.FindCattle(cattleID)
	if cattle == nil {
		return nil, ErrCattleNotFound
	}
	if cattle.IsSatiated() {
		return nil, ErrAlreadySatiated
	}

	gd.Grass--
	cattle.Hunger = min(cattle.Hunger+model.HungerPerFeed, cattle.MaxHunger)
	if cattle.Hunger == cattle.MaxHunger {
		cattle.ArmTimer(s.now())
	}

	all[userID] = gd
	if err := s.data.Save(ctx, all); err != nil {
		return nil, fmt.Errorf("saving game data: %w", err)
	}

	slog.Info("cattle fed", "category", "game",
		"user_id", userID, "cattle_id", cattleID, "hunger", cattle.Hunger, "grass", gd.Grass)
	return &FeedResult{Grass: gd.Grass, Hunger: cattle.Hunger, TimerEndTime: cattle.TimerEndTime}, nil
}

// UpdateCattleTimers settles every expired satiation countdown in the
// user's herd: hunger resets to zero and the timer clears. It persists
// only when something actually changed and returns the settled record,
// or nil if the user has no game data.
func (s *Service) UpdateCattleTimers(ctx context.Context, userID string) (*model.GameData, error) {
	all, _, err := s.data.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading game data: %w", err)
	}
	gd, ok := all[userID]
	if !ok {
		return nil, nil
	}

	now := s.now()
	changed := false
	for i := range gd.Cattle {
		if gd.Cattle[i].TimerExpired(now) {
			gd.Cattle[i].ClearTimer()
			changed = true
		}
	}

	if changed {
		all[userID] = gd
		if err := s.data.Save(ctx, all); err != nil {
			return nil, fmt.Errorf("saving game data: %w", err)
		}
		slog.Info("satiation countdown settled", "category", "game", "user_id", userID)
	}
	return &gd, nil
}

// CattleRemainingTime projects the countdown of a single cattle onto
// whole seconds, rounding up and never going below zero. It returns -1
// when no countdown is armed and never mutates state.
func (s *Service) CattleRemainingTime(cattle *model.Cattle) int {
	return cattle.RemainingSeconds(s.now())
}

// CattleStatus returns the settled view of one cattle.
func (s *Service) CattleStatus(ctx context.Context, userID string, cattleID int) (*model.Cattle, error) {
	gd, err := s.UpdateCattleTimers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if gd == nil {
		return nil, ErrNoGameData
	}
	cattle := gd.FindCattle(cattleID)
	if cattle == nil {
		return nil, ErrCattleNotFound
	}
	return cattle, nil
}

// saveGameData writes a single user's record back into the table.
func (s *Service) saveGameData(ctx context.Context, gd model.GameData) error {
	all, _, err := s.data.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}
	if all == nil {
		all = make(map[string]model.GameData)
	}
	all[gd.UserID] = gd
	if err := s.data.Save(ctx, all); err != nil {
		return fmt.Errorf("saving game data: %w", err)
	}
	return nil
}
