package config

import (
	"testing"
)

func TestConfig_GetVolume_Default(t *testing.T) {
	c := &Config{}

	if got := c.GetVolume(); got != 1.0 {
		t.Errorf("GetVolume() = %v, want 1.0", got)
	}
}

func TestConfig_GetVolume_Clamps(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.5, 0.5},
		{-1, 0},
		{3, 1},
	}
	for _, c := range cases {
		cfg := &Config{Volume: &c.in}
		if got := cfg.GetVolume(); got != c.want {
			t.Errorf("GetVolume() with %v = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestConfig_GetLog_Defaults(t *testing.T) {
	c := &Config{}

	log := c.GetLog()
	if log.Level != "info" || log.Format != "text" {
		t.Errorf("GetLog() = %+v, want info/text", log)
	}
}

func TestConfig_GetLog_Explicit(t *testing.T) {
	c := &Config{Log: LogConfig{Level: "debug", Format: "json"}}

	log := c.GetLog()
	if log.Level != "debug" || log.Format != "json" {
		t.Errorf("GetLog() = %+v, want debug/json", log)
	}
}
