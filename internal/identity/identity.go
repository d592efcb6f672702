// Package identity owns user accounts, authentication, session selection
// and the point ledger. It is constructed around an injected store handle
// and keeps no state of its own; every operation is a whole-table
// read-modify-write against the user table or the session record.
package identity

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Phate334/cattle-farm-poc/internal/model"
	"github.com/Phate334/cattle-farm-poc/internal/store"
)

// Validation limits for registration.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// Bootstrap credentials for the single admin account created on first use.
const (
	BootstrapUsername = "admin"
	BootstrapPassword = "admin"
)

// Error represents a domain failure of an identity operation. The error
// text is the human-readable message callers may surface verbatim.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrDuplicateUsername indicates the username is already registered.
	ErrDuplicateUsername Error = "this username is already taken"

	// ErrUsernameTooShort indicates the username has fewer than MinUsernameLength characters.
	ErrUsernameTooShort Error = "username must be at least 3 characters"

	// ErrPasswordTooShort indicates the password has fewer than MinPasswordLength characters.
	ErrPasswordTooShort Error = "password must be at least 6 characters"

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; the message deliberately does not say which.
	ErrInvalidCredentials Error = "invalid username or password"

	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound Error = "user not found"

	// ErrNegativePoints indicates an attempt to set a negative balance.
	ErrNegativePoints Error = "points cannot be negative"
)

// Service is the identity and ledger service.
type Service struct {
	users   *store.Table[[]model.User]
	session *store.Table[model.PublicUser]
	now     func() time.Time
}

// NewService creates an identity service on top of the given store.
func NewService(st store.Store) *Service {
	return NewServiceWithClock(st, time.Now)
}

// NewServiceWithClock creates an identity service with an injected clock.
// Tests use this to control wall-clock time.
func NewServiceWithClock(st store.Store, now func() time.Time) *Service {
	return &Service{
		users:   store.NewTable[[]model.User](st, store.KeyUsers),
		session: store.NewTable[model.PublicUser](st, store.KeyCurrentUser),
		now:     now,
	}
}

// Bootstrap creates the default admin account if the user table is empty.
// It is idempotent: once any user exists it does nothing.
func (s *Service) Bootstrap(ctx context.Context) error {
	users, _, err := s.users.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	if len(users) > 0 {
		return nil
	}

	admin := model.User{
		ID:        uuid.NewString(),
		Username:  BootstrapUsername,
		Password:  BootstrapPassword,
		Role:      model.RoleAdmin,
		CreatedAt: s.now(),
	}
	if err := s.users.Save(ctx, append(users, admin)); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}

	slog.Info("created default admin account", "category", "auth", "username", admin.Username)
	return nil
}

// Register creates a new regular user. It does not log the user in.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	users, _, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	if findByUsername(users, username) != nil {
		return nil, ErrDuplicateUsername
	}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	user := model.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  password,
		Role:      model.RoleUser,
		CreatedAt: s.now(),
	}
	if err := s.users.Save(ctx, append(users, user)); err != nil {
		return nil, fmt.Errorf("saving users: %w", err)
	}

	slog.Info("user registered", "category", "auth", "user_id", user.ID, "username", user.Username)
	return &user, nil
}

// Login authenticates a user, records the login time and establishes a
// session. Unknown username and wrong password fail identically.
func (s *Service) Login(ctx context.Context, username, password string) (*model.PublicUser, error) {
	users, _, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	user := findByUsername(users, username)
	if user == nil || user.Password != password {
		slog.Warn("login failed", "category", "auth", "username", username)
		return nil, ErrInvalidCredentials
	}

	loginTime := s.now()
	user.LastLogin = &loginTime
	if err := s.users.Save(ctx, users); err != nil {
		return nil, fmt.Errorf("saving users: %w", err)
	}

	public := user.Public()
	if err := s.session.Save(ctx, public); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	slog.Info("user logged in", "category", "auth", "user_id", user.ID, "username", user.Username)
	return &public, nil
}

// Logout clears the session. It is a no-op when nobody is logged in.
func (s *Service) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

// CurrentUser resolves the session record back to the authoritative user
// row. It returns nil when no session exists or when the session points
// at a user that no longer resolves; cached session fields are never
// trusted for mutable attributes like Points.
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	session, ok, err := s.session.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	users, _, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return findByID(users, session.ID), nil
}

// IsLoggedIn reports whether a resolvable session exists.
func (s *Service) IsLoggedIn(ctx context.Context) (bool, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// IsAdmin reports whether the session user has the admin role.
func (s *Service) IsAdmin(ctx context.Context) (bool, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin(), nil
}

// UpdatePoints sets a user's balance to an absolute value. Callers
// compute deltas themselves (current + grant, current - cost). When the
// mutated user is the session user the session copy is refreshed too.
func (s *Service) UpdatePoints(ctx context.Context, userID string, points int) error {
	users, _, err := s.users.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}

	user := findByID(users, userID)
	if user == nil {
		return ErrUserNotFound
	}
	if points < 0 {
		return ErrNegativePoints
	}

	user.Points = points
	if err := s.users.Save(ctx, users); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}

	if session, ok, err := s.session.Load(ctx); err == nil && ok && session.ID == userID {
		if err := s.session.Save(ctx, user.Public()); err != nil {
			return fmt.Errorf("refreshing session: %w", err)
		}
	}

	slog.Info("points updated", "category", "ledger", "user_id", userID, "points", points)
	return nil
}

// RegularUsers returns all users with the regular role in insertion
// order; the admin account is excluded.
func (s *Service) RegularUsers(ctx context.Context) ([]model.User, error) {
	users, _, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	var regular []model.User
	for _, u := range users {
		if u.Role == model.RoleUser {
			regular = append(regular, u)
		}
	}
	return regular, nil
}

// UserByID returns the user with the given id.
func (s *Service) UserByID(ctx context.Context, id string) (*model.User, error) {
	users, _, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	user := findByID(users, id)
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UserByUsername returns the user with the given username (case-sensitive).
func (s *Service) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	users, _, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	user := findByUsername(users, username)
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func findByUsername(users []model.User, username string) *model.User {
	for i := range users {
		if users[i].Username == username {
			return &users[i]
		}
	}
	return nil
}

func findByID(users []model.User, id string) *model.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}
