package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/ketaqwaan_test")
	os.Setenv("MONGODB_DATABASE", "ketaqwaan_test")
	os.Setenv("JWT_SECRET", "testsecret123456789012345678901234")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.JWT.Secret == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.Server.Port != "5000" {
		t.Fatalf("expected default port 5000, got %s", cfg.Server.Port)
	}
	if cfg.JWT.TokenTTL.Minutes() != 1440 {
		t.Fatalf("unexpected token TTL: %v", cfg.JWT.TokenTTL)
	}
	if cfg.IsProduction() {
		t.Fatal("development config should not report production")
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		t.Fatal("expected dev CORS origins to be seeded")
	}
}
