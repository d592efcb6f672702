package model

import (
	"fmt"
	"time"
)

// Simulation constants. The exchange rate is fixed: one point buys one
// unit of grass, one grass raises hunger by HungerPerFeed.
const (
	HerdSize      = 3
	MaxHunger     = 100
	HungerPerFeed = 10
	GrassCost     = 1
)

// SatiationCountdown is how long a fully fed cattle stays satiated before
// its hunger lazily resets to zero.
const SatiationCountdown = 60 * time.Second

// Cattle is one member of a user's herd.
//
// TimerEndTime is an epoch-millisecond timestamp and is non-nil exactly
// while Hunger == MaxHunger and the satiation countdown has not yet been
// observed as expired. All other timestamps in the store are RFC 3339
// strings; this one stays integral because the countdown arithmetic works
// in milliseconds.
type Cattle struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Hunger       int    `json:"hunger"`
	MaxHunger    int    `json:"maxHunger"`
	TimerEndTime *int64 `json:"timerEndTime"`
}

// IsSatiated returns true when the cattle cannot be fed further.
func (c *Cattle) IsSatiated() bool {
	return c.Hunger >= c.MaxHunger
}

// HasTimer returns true while the satiation countdown is armed.
func (c *Cattle) HasTimer() bool {
	return c.TimerEndTime != nil
}

// ArmTimer starts the satiation countdown relative to now.
func (c *Cattle) ArmTimer(now time.Time) {
	end := now.Add(SatiationCountdown).UnixMilli()
	c.TimerEndTime = &end
}

// ClearTimer resets hunger to zero and disarms the countdown.
func (c *Cattle) ClearTimer() {
	c.Hunger = 0
	c.TimerEndTime = nil
}

// TimerExpired reports whether the countdown is armed and now has reached
// or passed its end.
func (c *Cattle) TimerExpired(now time.Time) bool {
	return c.TimerEndTime != nil && now.UnixMilli() >= *c.TimerEndTime
}

// RemainingSeconds projects the countdown onto whole seconds, rounding up,
// never below zero. It returns -1 when no countdown is armed and never
// mutates the cattle.
func (c *Cattle) RemainingSeconds(now time.Time) int {
	if c.TimerEndTime == nil {
		return -1
	}
	ms := *c.TimerEndTime - now.UnixMilli()
	if ms <= 0 {
		return 0
	}
	return int((ms + 999) / 1000)
}

// GameData is the per-user simulation record: grass inventory plus the
// fixed-size herd. Exactly one exists per user, created lazily.
type GameData struct {
	UserID string   `json:"userId"`
	Grass  int      `json:"grass"`
	Cattle []Cattle `json:"cattle"`
}

// NewGameData builds a fresh record with an empty grass inventory and a
// full herd of hungry cattle.
func NewGameData(userID string) GameData {
	herd := make([]Cattle, 0, HerdSize)
	for i := 1; i <= HerdSize; i++ {
		herd = append(herd, Cattle{
			ID:        i,
			Name:      fmt.Sprintf("乳牛 #%d", i),
			Hunger:    0,
			MaxHunger: MaxHunger,
		})
	}
	return GameData{UserID: userID, Cattle: herd}
}

// FindCattle returns the herd member with the given id, or nil.
func (g *GameData) FindCattle(id int) *Cattle {
	for i := range g.Cattle {
		if g.Cattle[i].ID == id {
			return &g.Cattle[i]
		}
	}
	return nil
}
