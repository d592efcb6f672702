package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role string
		want bool
	}{
		{
			name: "admin role",
			role: RoleAdmin,
			want: true,
		},
		{
			name: "user role",
			role: RoleUser,
			want: false,
		},
		{
			name: "empty role",
			role: "",
			want: false,
		},
		{
			name: "Admin uppercase",
			role: "Admin",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserPublicStripsPassword(t *testing.T) {
	login := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	u := User{
		ID:        "u-1",
		Username:  "alice",
		Password:  "secret1",
		Role:      RoleUser,
		Points:    42,
		CreatedAt: time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
		LastLogin: &login,
	}

	p := u.Public()
	if p.ID != u.ID || p.Username != u.Username || p.Role != u.Role || p.Points != u.Points {
		t.Errorf("Public() dropped fields: %+v", p)
	}
	if p.LastLogin == nil || !p.LastLogin.Equal(login) {
		t.Errorf("Public() LastLogin = %v, want %v", p.LastLogin, login)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "secret1") || strings.Contains(string(data), "password") {
		t.Errorf("public record leaks the credential: %s", data)
	}
}

func TestUserJSONTimestamps(t *testing.T) {
	u := User{
		ID:        "u-1",
		Username:  "alice",
		CreatedAt: time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Timestamps serialize as ISO-8601 strings, a never-logged-in user as null
	if !strings.Contains(string(data), `"createdAt":"2026-07-01T09:30:00Z"`) {
		t.Errorf("createdAt not ISO-8601: %s", data)
	}
	if !strings.Contains(string(data), `"lastLogin":null`) {
		t.Errorf("lastLogin should be null: %s", data)
	}
}
