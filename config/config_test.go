package config

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"12h", 12 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{" 30s ", 30 * time.Second, false},
		{"0d", 0, true},
		{"xd", 0, true},
		{"-1h", 0, true},
		{"soon", 0, true},
	}
	for _, c := range cases {
		got, err := ParseDuration(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseDuration(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDuration(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("FRONTEND_URL", "http://example.com/")
	t.Setenv("PORT", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.JWTExpiresIn != 7*24*time.Hour {
		t.Errorf("JWTExpiresIn = %v", cfg.JWTExpiresIn)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.FrontendURL != "http://example.com" {
		t.Errorf("FrontendURL = %q", cfg.FrontendURL)
	}
	if cfg.RefreshTokenSecret == "" || cfg.RefreshTokenSecret == cfg.JWTSecret {
		t.Errorf("RefreshTokenSecret should default to a distinct value, got %q", cfg.RefreshTokenSecret)
	}
}

func TestFromEnvRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "forever")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for invalid JWT_EXPIRES_IN")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty config")
	}
	cfg.DatabaseURL = "postgres://localhost/hostel"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without JWT secret")
	}
	cfg.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
