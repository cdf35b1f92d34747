package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ALLOWED_ORIGIN", "DATABASE_URL", "REDIS_ADDR",
		"STORE_NAME", "LOW_STOCK_THRESHOLD", "ACCESS_TOKEN_TTL_MINUTES", "OPERATOR_USERNAME",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.Address())
	}
	if cfg.StoreName != "Toko Anda" {
		t.Fatalf("expected default store name, got %q", cfg.StoreName)
	}
	if cfg.LowStockThreshold != 10 {
		t.Fatalf("expected low stock threshold 10, got %d", cfg.LowStockThreshold)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected token ttl 480, got %d", cfg.AccessTokenTTLMinutes)
	}
	if cfg.OperatorUsername != "operator" {
		t.Fatalf("expected default operator username, got %q", cfg.OperatorUsername)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_NAME", "Warung Kita")
	t.Setenv("LOW_STOCK_THRESHOLD", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.StoreName != "Warung Kita" {
		t.Fatalf("expected store name override, got %q", cfg.StoreName)
	}
	if cfg.LowStockThreshold != 5 {
		t.Fatalf("expected threshold 5, got %d", cfg.LowStockThreshold)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Fatalf("redis settings not picked up: %q db=%d", cfg.RedisAddr, cfg.RedisDB)
	}
}

func TestLoadRejectsGarbageNumbers(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "banana")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "-3")

	cfg := Load()
	if cfg.LowStockThreshold != 10 {
		t.Fatalf("expected fallback threshold, got %d", cfg.LowStockThreshold)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected fallback ttl, got %d", cfg.AccessTokenTTLMinutes)
	}
}
