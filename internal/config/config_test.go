package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "SESSION_TTL_HOURS", "LOG_FORMAT", "NODE_ENV"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.Addr() != ":5175" {
		t.Errorf("Addr = %q", c.Addr())
	}
	if c.Session.TTL != 24*time.Hour {
		t.Errorf("TTL = %v", c.Session.TTL)
	}
	if c.Logging.Format != "json" || c.IsProduction() {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("SESSION_SWEEP_MINUTES", "nope")
	t.Setenv("NODE_ENV", "production")
	c := Load()
	if c.Addr() != ":9000" || c.Session.TTL != 2*time.Hour || !c.IsProduction() {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.Session.SweepInterval != 10*time.Minute {
		t.Errorf("malformed int should fall back, got %v", c.Session.SweepInterval)
	}
}
