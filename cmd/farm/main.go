package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Phate334/cattle-farm-poc/internal/audit"
	"github.com/Phate334/cattle-farm-poc/internal/config"
	"github.com/Phate334/cattle-farm-poc/internal/game"
	"github.com/Phate334/cattle-farm-poc/internal/identity"
	"github.com/Phate334/cattle-farm-poc/internal/model"
	"github.com/Phate334/cattle-farm-poc/internal/store"
	"github.com/Phate334/cattle-farm-poc/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "farm - cattle farm console\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FARM_STORE_PATH    SQLite database path (default: ./data/farm.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FARM_REDIS_URL     Redis URL for a shared store backend (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FARM_ENV           Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FARM_LOG_LEVEL     Log level: debug|info|warn|error (default: info)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("farm %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Create version info from build-time injected values
	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure the data directory exists for the SQLite backend
	if !cfg.UseRedisStore() {
		if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	st, err := store.New(cfg.StoreConfig())
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()

	// Upgrade the logger to also write WARN and ERROR records to the
	// store-backed event log
	eventLog := audit.NewLog(st)
	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(audit.NewHandler(textHandler, eventLog)))

	ctx := context.Background()

	ident := identity.NewService(st)
	if err := ident.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrapping identity: %w", err)
	}
	sim := game.NewService(st, ident)

	console := &console{
		identity: ident,
		game:     sim,
		events:   eventLog,
		version:  versionInfo,
		out:      os.Stdout,
	}
	return console.repl(ctx, os.Stdin)
}

// console wires the interactive commands to the core services. It holds
// no state of its own; the session lives in the store.
type console struct {
	identity *identity.Service
	game     *game.Service
	events   *audit.Log
	version  *version.Info
	out      *os.File
}

func (c *console) repl(ctx context.Context, in *os.File) error {
	c.printf("cattle farm console - type 'help' for commands\n")

	scanner := bufio.NewScanner(in)
	for {
		c.printf("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			break
		}
		if err := c.dispatch(ctx, cmd, args); err != nil {
			c.printf("error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (c *console) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		c.printHelp()
		return nil
	case "register":
		return c.register(ctx, args)
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.identity.Logout(ctx)
	case "whoami":
		return c.whoami(ctx)
	case "users":
		return c.users(ctx)
	case "grant":
		return c.grant(ctx, args)
	case "buy":
		return c.buy(ctx, args)
	case "feed":
		return c.feed(ctx, args)
	case "status":
		return c.status(ctx)
	case "events":
		return c.recentEvents(ctx, args)
	case "version":
		c.printf("farm %s (commit: %s, built: %s)\n", c.version.Version, c.version.GitCommit, c.version.BuildTime)
		return nil
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
}

func (c *console) printHelp() {
	c.printf(`commands:
  register <username> <password>   create an account
  login <username> <password>      log in
  logout                           log out
  whoami                           show the current user
  users                            list regular users (admin)
  grant <username> <amount>        grant points (admin)
  buy <amount>                     buy grass with points
  feed <cattle-id>                 feed one cattle
  status                           show grass and herd state
  events [n]                       show recent audit events (admin)
  version                          show build information
  quit                             exit
`)
}

func (c *console) register(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: register <username> <password>")
	}
	user, err := c.identity.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	c.printf("registered %s - you can log in now\n", user.Username)
	return nil
}

func (c *console) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <username> <password>")
	}
	user, err := c.identity.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	c.printf("welcome, %s (%s) - %d points\n", user.Username, user.Role, user.Points)
	return nil
}

func (c *console) whoami(ctx context.Context) error {
	user, err := c.identity.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		c.printf("not logged in\n")
		return nil
	}
	c.printf("%s (%s) - %d points, registered %s, last login %s\n",
		user.Username, user.Role, user.Points,
		user.CreatedAt.Format("2006-01-02 15:04:05"), formatLastLogin(user))
	return nil
}

func (c *console) users(ctx context.Context) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	users, err := c.identity.RegularUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		c.printf("no regular users yet\n")
		return nil
	}
	for _, u := range users {
		c.printf("  %-16s %6d points  registered %s  last login %s\n",
			u.Username, u.Points, u.CreatedAt.Format("2006-01-02 15:04:05"), formatLastLogin(&u))
	}
	return nil
}

func (c *console) grant(ctx context.Context, args []string) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: grant <username> <amount>")
	}
	amount, err := strconv.Atoi(args[1])
	if err != nil || amount < 1 {
		return fmt.Errorf("amount must be a positive number")
	}

	user, err := c.identity.UserByUsername(ctx, args[0])
	if err != nil {
		return err
	}
	if err := c.identity.UpdatePoints(ctx, user.ID, user.Points+amount); err != nil {
		return err
	}
	c.printf("granted %d points to %s (now %d)\n", amount, user.Username, user.Points+amount)
	return nil
}

func (c *console) buy(ctx context.Context, args []string) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: buy <amount>")
	}
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("amount must be a number")
	}

	result, err := c.game.BuyGrass(ctx, user.ID, amount)
	if err != nil {
		return err
	}
	c.printf("bought %d grass - %d grass, %d points\n", amount, result.Grass, result.Points)
	return nil
}

func (c *console) feed(ctx context.Context, args []string) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: feed <cattle-id>")
	}
	cattleID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("cattle-id must be a number")
	}

	// Settle expired countdowns before feeding so a cow whose satiation
	// lapsed while the console idled can be fed again.
	if _, err := c.game.UpdateCattleTimers(ctx, user.ID); err != nil {
		return err
	}

	result, err := c.game.FeedCattle(ctx, user.ID, cattleID)
	if err != nil {
		return err
	}
	c.printf("fed cattle #%d - hunger %d/%d, %d grass left\n",
		cattleID, result.Hunger, model.MaxHunger, result.Grass)
	return nil
}

func (c *console) status(ctx context.Context) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	if _, err := c.game.InitGameData(ctx, user.ID); err != nil {
		return err
	}
	gd, err := c.game.GameData(ctx, user.ID)
	if err != nil {
		return err
	}

	c.printf("grass: %d\n", gd.Grass)
	for i := range gd.Cattle {
		cattle := &gd.Cattle[i]
		line := fmt.Sprintf("  [%d] %s  hunger %d/%d", cattle.ID, cattle.Name, cattle.Hunger, cattle.MaxHunger)
		if remaining := c.game.CattleRemainingTime(cattle); remaining >= 0 {
			line += fmt.Sprintf("  full for another %ds", remaining)
		}
		c.printf("%s\n", line)
	}
	return nil
}

func (c *console) recentEvents(ctx context.Context, args []string) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	n := 20
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			return fmt.Errorf("usage: events [n]")
		}
		n = parsed
	}

	events, err := c.events.Recent(ctx, n)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		c.printf("no events recorded\n")
		return nil
	}
	for _, e := range events {
		c.printf("  %s  %-7s %-6s %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Level, e.Category, e.Message)
	}
	return nil
}

func (c *console) requireUser(ctx context.Context) (*model.User, error) {
	user, err := c.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("log in first")
	}
	return user, nil
}

func (c *console) requireAdmin(ctx context.Context) error {
	isAdmin, err := c.identity.IsAdmin(ctx)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("admin only")
	}
	return nil
}

func (c *console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func formatLastLogin(u *model.User) string {
	if u.LastLogin == nil {
		return "never"
	}
	return u.LastLogin.Format("2006-01-02 15:04:05")
}
