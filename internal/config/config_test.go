package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.RedisAddr == "" {
		t.Fatalf("expected default redis addr")
	}
	if cfg.POIFetchTimeoutSec <= 0 {
		t.Fatalf("expected default poi fetch timeout")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("POI_SOURCES", "https://a.example/pois.json, https://b.example/pois.json")
	t.Setenv("POI_FETCH_TIMEOUT_SEC", "30")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.POIFetchTimeoutSec != 30 {
		t.Fatalf("expected override timeout")
	}

	urls := cfg.POISourceURLs()
	if len(urls) != 2 || urls[0] != "https://a.example/pois.json" || urls[1] != "https://b.example/pois.json" {
		t.Fatalf("unexpected source urls: %v", urls)
	}
}

func TestPOISourceURLsEmpty(t *testing.T) {
	t.Setenv("POI_SOURCES", " , ")
	cfg := Load()
	if urls := cfg.POISourceURLs(); len(urls) != 0 {
		t.Fatalf("expected no urls, got %v", urls)
	}
}
