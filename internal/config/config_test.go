package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseExpiresIn(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "1h", want: time.Hour},
		{in: "90m", want: 90 * time.Minute},
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "3600", want: time.Hour},
		{in: " 2h ", want: 2 * time.Hour},
		{in: "", wantErr: true},
		{in: "xd", wantErr: true},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseExpiresIn(tt.in)

		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseExpiresIn(%q): expected error, got %v", tt.in, got)
			}
			continue
		}

		if err != nil {
			t.Fatalf("ParseExpiresIn(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseExpiresIn(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("EXPIRES_IN", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}

	if cfg.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.JWTExpiresIn != time.Hour {
		t.Fatalf("expected default expiry 1h, got %v", cfg.JWTExpiresIn)
	}
	if cfg.StoreDriver != StoreMongo {
		t.Fatalf("expected mongo store, got %q", cfg.StoreDriver)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS origin, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.MaxBodyBytes != 100*1024 {
		t.Fatalf("unexpected body cap %d", cfg.MaxBodyBytes)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8081")
	t.Setenv("EXPIRES_IN", "2d")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("MONGODB_ENSURE_INDEXES", "true")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}

	if cfg.Port != 8081 {
		t.Fatalf("expected port 8081, got %d", cfg.Port)
	}
	if cfg.JWTExpiresIn != 48*time.Hour {
		t.Fatalf("expected 48h expiry, got %v", cfg.JWTExpiresIn)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory store, got %q", cfg.StoreDriver)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.MongoEnsureIndexes {
		t.Fatalf("expected index creation to be enabled")
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("expected 30s cache ttl, got %v", cfg.CacheTTL)
	}
}

func TestFromEnv_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is empty")
	}
}

func TestFromEnv_UnknownStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("STORE_DRIVER", "sqlite")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for unknown store driver")
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from-dotenv\nEXPIRES_IN=15m\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Chdir(dir)

	// register cleanup for both keys, then make them absent so the file wins
	t.Setenv("JWT_SECRET", "")
	t.Setenv("EXPIRES_IN", "")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("EXPIRES_IN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.JWTSecret != "from-dotenv" {
		t.Fatalf("expected secret from .env, got %q", cfg.JWTSecret)
	}
	if cfg.JWTExpiresIn != 15*time.Minute {
		t.Fatalf("expected 15m expiry, got %v", cfg.JWTExpiresIn)
	}
}
