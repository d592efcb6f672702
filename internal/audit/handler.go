package audit

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Handler is a slog.Handler that wraps another handler and also writes
// records at WARN level and above to the store-backed event log.
type Handler struct {
	inner slog.Handler
	log   *Log
	level slog.Level // Minimum level to forward to the event log
}

// NewHandler creates a Handler that wraps the given handler. Records at
// WARN level and above are written to both the wrapped handler and the
// event log.
func NewHandler(inner slog.Handler, log *Log) *Handler {
	return NewHandlerWithLevel(inner, log, slog.LevelWarn)
}

// NewHandlerWithLevel creates a Handler with a custom minimum level.
func NewHandlerWithLevel(inner slog.Handler, log *Log, level slog.Level) *Handler {
	return &Handler{
		inner: inner,
		log:   log,
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeEvent(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		inner: h.inner.WithAttrs(attrs),
		log:   h.log,
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		inner: h.inner.WithGroup(name),
		log:   h.log,
		level: h.level,
	}
}

// writeEvent appends a log record to the event log. A background context
// is used so the event is recorded even if the caller's context is done.
func (h *Handler) writeEvent(r slog.Record) {
	createdAt := r.Time
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_ = h.log.Append(context.Background(), Event{
		Level:     levelToEventLevel(r.Level),
		Category:  extractCategory(r),
		Message:   r.Message,
		UserID:    extractUserID(r),
		CreatedAt: createdAt,
	})
}

// levelToEventLevel converts a slog.Level to an event log level.
func levelToEventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return LevelError
	case level >= slog.LevelWarn:
		return LevelWarning
	default:
		return LevelInfo
	}
}

// extractCategory takes the category from a "category" attribute, or
// infers one from common message patterns.
func extractCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false // Stop iteration
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") || strings.Contains(msg, "register"):
		return CategoryAuth
	case strings.Contains(msg, "points") || strings.Contains(msg, "grass"):
		return CategoryLedger
	case strings.Contains(msg, "cattle") || strings.Contains(msg, "feed") || strings.Contains(msg, "hunger"):
		return CategoryGame
	default:
		return CategorySystem
	}
}

// extractUserID takes the user id from a "user_id" attribute, if present.
func extractUserID(r slog.Record) string {
	var userID string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "user_id" {
			userID = a.Value.String()
			return false
		}
		return true
	})
	return userID
}
