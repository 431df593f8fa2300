package config

import (
	"errors"
	"testing"

	"github.com/dshills/vstack/internal/autoupdate"
)

func lookupMap(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestEnvName(t *testing.T) {
	tests := map[string]string{
		"item-span":                 "VSTACK_ITEM_SPAN",
		"auto-update-mode":          "VSTACK_AUTO_UPDATE_MODE",
		"allow-layout-update-delay": "VSTACK_ALLOW_LAYOUT_UPDATE_DELAY",
		"logging.level":             "VSTACK_LOG_LEVEL",
	}
	for key, want := range tests {
		if got := EnvName(key); got != want {
			t.Errorf("expected %s for %s, got %s", want, key, got)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	cfg, err := ApplyEnv(Default(), lookupMap(map[string]string{
		"VSTACK_ITEM_SPAN":        "30",
		"VSTACK_AUTO_UPDATE_MODE": "viewport-resize",
		"VSTACK_VIRTUALIZE":       "false",
		"VSTACK_SPAN_MAP":         "1, 2,3",
		"VSTACK_LOG_LEVEL":        "WARN",
		"OTHER_ITEM_SPAN":         "99",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ItemSpan != 30 {
		t.Errorf("expected item span 30, got %v", cfg.ItemSpan)
	}
	if cfg.AutoUpdateMode != autoupdate.ViewportResize {
		t.Errorf("expected viewport-resize, got %s", cfg.AutoUpdateMode)
	}
	if cfg.Virtualize {
		t.Error("expected virtualize false")
	}
	if len(cfg.SpanMap) != 3 || cfg.SpanMap[2] != 3 {
		t.Errorf("expected span map [1 2 3], got %v", cfg.SpanMap)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected warn, got %s", cfg.Logging.Level)
	}
}

func TestApplyEnvError(t *testing.T) {
	base := Default()
	cfg, err := ApplyEnv(base, lookupMap(map[string]string{
		"VSTACK_VIEWPORT_BUFFER": "lots",
	}))

	var verr *ValueError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValueError, got %v", err)
	}
	if verr.Key != "viewport-buffer" {
		t.Errorf("expected viewport-buffer, got %s", verr.Key)
	}
	if cfg.ViewportBuffer != base.ViewportBuffer {
		t.Error("expected base config on error")
	}
}

func TestApplyEnvEmpty(t *testing.T) {
	cfg, err := ApplyEnv(Default(), lookupMap(map[string]string{
		"VSTACK_VIEWPORT": "",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Viewport != "" {
		t.Errorf("expected empty viewport, got %q", cfg.Viewport)
	}
}
