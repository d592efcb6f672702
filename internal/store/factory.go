package store

// Config holds configuration for store creation.
type Config struct {
	// Type is the store backend type: "memory", "sqlite" or "redis".
	Type string

	// Path is the database file path (only for sqlite type).
	Path string

	// RedisURL is the Redis connection URL (only for redis type).
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis (only for redis type).
	Prefix string
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		Type: "sqlite",
		Path: "./data/farm.db",
	}
}

// New creates a store based on the provided configuration.
func New(cfg Config) (Store, error) {
	switch cfg.Type {
	case "redis":
		opts := DefaultRedisOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		return NewRedisStore(opts)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return NewSQLiteStore(cfg.Path)
	}
}
