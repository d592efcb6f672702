// Package audit persists an event log through the store and provides a
// slog handler that feeds it. Warnings and errors logged anywhere in the
// application end up in the event table for later administrative review.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/Phate334/cattle-farm-poc/internal/store"
)

// Event levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Event categories.
const (
	CategoryAuth   = "auth"
	CategoryLedger = "ledger"
	CategoryGame   = "game"
	CategorySystem = "system"
)

// MaxEvents caps the event table; the oldest entries are dropped first.
const MaxEvents = 500

// Event is one entry of the audit log.
type Event struct {
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	UserID    string    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Log is the store-backed event log. Entries are kept newest-last.
type Log struct {
	events *store.Table[[]Event]
}

// NewLog creates an event log on top of the given store.
func NewLog(st store.Store) *Log {
	return &Log{
		events: store.NewTable[[]Event](st, store.KeyEvents),
	}
}

// Append adds an event, trimming the table to MaxEvents.
func (l *Log) Append(ctx context.Context, e Event) error {
	events, _, err := l.events.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	events = append(events, e)
	if len(events) > MaxEvents {
		events = events[len(events)-MaxEvents:]
	}

	if err := l.events.Save(ctx, events); err != nil {
		return fmt.Errorf("saving events: %w", err)
	}
	return nil
}

// Recent returns up to n of the newest events, oldest first.
func (l *Log) Recent(ctx context.Context, n int) ([]Event, error) {
	events, _, err := l.events.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}
