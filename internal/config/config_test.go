package config

import (
	"testing"
	"time"
)

func TestLoadEnvOnlyDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.HTTPAddr != ":8080" {
		t.Fatalf("http_addr got=%q", cfg.Server.HTTPAddr)
	}
	if cfg.Pipeline.Schedule != "0 0 3 * * *" || cfg.Pipeline.Timezone != "Europe/Lisbon" {
		t.Fatalf("pipeline defaults got=%+v", cfg.Pipeline)
	}
	if cfg.Pipeline.CooldownDays != 30 || cfg.Pipeline.PriceDropPct != 5.0 {
		t.Fatalf("alert defaults got=%+v", cfg.Pipeline)
	}
	if cfg.Pipeline.MinSample != 30 || cfg.Pipeline.EarthRadiusM != 6_371_000.0 {
		t.Fatalf("scoring defaults got=%+v", cfg.Pipeline)
	}
	if cfg.Pipeline.AllowGeolessMatch {
		t.Fatal("geoless matching must default off")
	}
	if cfg.Push.FCMEndpoint != "https://fcm.googleapis.com/fcm/send" {
		t.Fatalf("fcm endpoint got=%q", cfg.Push.FCMEndpoint)
	}
	if cfg.Push.Timeout != 15*time.Second {
		t.Fatalf("push timeout got=%v", cfg.Push.Timeout)
	}
	if cfg.Stream.Buffer != 16 {
		t.Fatalf("stream buffer got=%d", cfg.Stream.Buffer)
	}
}
